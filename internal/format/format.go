package format

// This file contains output formatters for parsed values.
// All formatters propagate errors instead of logging and ignoring them.

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/goccy/go-yaml"
	"github.com/k0kubun/pp/v3"

	"github.com/apstndb/parsefrom/enums"
)

// New creates a formatter function for the output format.
func New(f enums.OutputFormat) (Func, error) {
	switch f {
	case enums.OutputFormatUnspecified, enums.OutputFormatText:
		return formatText, nil
	case enums.OutputFormatJSON:
		return formatJSON, nil
	case enums.OutputFormatYAML:
		return formatYAML, nil
	case enums.OutputFormatTable:
		return formatTable, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %v", f)
	}
}

// writeBuffered writes to a temporary buffer first, and only writes to out if no error occurs.
func writeBuffered(out io.Writer, buildFunc func(out io.Writer) error) error {
	var buf strings.Builder
	if err := buildFunc(&buf); err != nil {
		return err
	}

	if buf.Len() > 0 {
		_, err := io.WriteString(out, buf.String())
		return err
	}
	return nil
}

// formatText pretty prints the normalized value.
func formatText(out io.Writer, v any, config Config) error {
	pprinter := pp.New()
	pprinter.SetColoringEnabled(config.Color)
	_, err := pprinter.Fprintln(out, Normalize(v))
	return err
}

// formatJSON writes the value as indented JSON. Mapping keys become object
// keys in their text form.
func formatJSON(out io.Writer, v any, config Config) error {
	b, err := marshalJSON(Normalize(v), jsontext.WithIndent("  "))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", b)
	return err
}

func marshalJSON(v any, opts ...json.Options) ([]byte, error) {
	b, err := json.Marshal(jsonValue(v), append(opts, json.Deterministic(true))...)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return b, nil
}

func jsonValue(v any) any {
	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = jsonValue(e)
		}
		return out
	case []Entry:
		out := make(map[string]any, len(v))
		for _, e := range v {
			out[keyString(e.Key)] = jsonValue(e.Value)
		}
		return out
	default:
		return v
	}
}

// formatYAML writes the value as a YAML document. Mappings keep their key
// order and key types.
func formatYAML(out io.Writer, v any, config Config) error {
	return writeBuffered(out, func(out io.Writer) error {
		b, err := yaml.Marshal(yamlValue(Normalize(v)))
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = out.Write(b)
		return err
	})
}

func yamlValue(v any) any {
	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = yamlValue(e)
		}
		return out
	case []Entry:
		out := make(yaml.MapSlice, 0, len(v))
		for _, e := range v {
			out = append(out, yaml.MapItem{Key: e.Key, Value: yamlValue(e.Value)})
		}
		return out
	default:
		return v
	}
}
