package enums

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/apstndb/parsefrom"
	"github.com/apstndb/parsefrom/combinator"
	"github.com/apstndb/parsefrom/input"
)

// OutputFormat represents the output format of parsed values.
type OutputFormat int

const (
	OutputFormatUnspecified OutputFormat = iota
	OutputFormatText
	OutputFormatJSON
	OutputFormatYAML
	OutputFormatTable
)

var outputFormatNames = map[string]OutputFormat{
	"TEXT":  OutputFormatText,
	"JSON":  OutputFormatJSON,
	"YAML":  OutputFormatYAML,
	"TABLE": OutputFormatTable,
}

func (f OutputFormat) String() string {
	if name, ok := lo.FindKey(outputFormatNames, f); ok {
		return name
	}
	if f == OutputFormatUnspecified {
		return "UNSPECIFIED"
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// OutputFormatNames returns the accepted names in sorted order.
func OutputFormatNames() []string {
	return slices.Sorted(slices.Values(lo.Keys(outputFormatNames)))
}

// ParseOutputFormat parses a format name case-insensitively.
func ParseOutputFormat(s string) (OutputFormat, error) {
	return parseName("output format", outputFormatNames, s)
}

var duplicatePolicyNames = map[string]parsefrom.DuplicatePolicy{
	"LAST":   parsefrom.LastWins,
	"FIRST":  parsefrom.FirstWins,
	"REJECT": parsefrom.RejectDuplicates,
}

// DuplicatePolicyNames returns the accepted duplicate key policy names in
// sorted order.
func DuplicatePolicyNames() []string {
	return slices.Sorted(slices.Values(lo.Keys(duplicatePolicyNames)))
}

// ParseDuplicatePolicy parses a duplicate key policy name case-insensitively.
func ParseDuplicatePolicy(s string) (parsefrom.DuplicatePolicy, error) {
	return parseName("duplicate key policy", duplicatePolicyNames, s)
}

func parseName[T any](kind string, values map[string]T, s string) (T, error) {
	p := combinator.AllConsuming[T](combinator.NewEnum(values).CaseInsensitive().Parse)
	_, v, err := p(input.New(s))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("invalid %s %q, must be one of %v", kind, s, combinator.NewEnum(values).Literals())
	}
	return v, nil
}
