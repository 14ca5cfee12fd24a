package format

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/apstndb/parsefrom"
)

// Entry is one key/value pair of a normalized mapping.
type Entry struct {
	Key   any
	Value any
}

// Normalize converts a parsed value into plain Go values that every encoder
// understands: int64, uint64, float64, bool, string, []any and []Entry.
// Characters and arbitrary precision numbers become strings, non-finite
// floats become "NaN", "+Inf" or "-Inf", sets become sorted slices and
// mappings become entries sorted by key.
func Normalize(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case parsefrom.Char:
		return string(rune(v))
	case parsefrom.BigInt:
		if v.Int == nil {
			return nil
		}
		return v.String()
	case parsefrom.Decimal:
		if v.Decimal == nil {
			return nil
		}
		return v.String()
	case []any:
		return lo.Map(v, func(e any, _ int) any { return Normalize(e) })
	case map[any]struct{}:
		out := lo.Map(lo.Keys(v), func(e any, _ int) any { return Normalize(e) })
		slices.SortFunc(out, compareValues)
		return out
	case map[any]any:
		out := lo.MapToSlice(v, func(k, e any) Entry { return Entry{Key: Normalize(k), Value: Normalize(e)} })
		slices.SortFunc(out, func(a, b Entry) int { return compareValues(a.Key, b.Key) })
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		if rv.Kind() == reflect.Float32 {
			// Keep the shortest representation of the float32 value.
			f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'g', -1, 32), 64)
		}
		return f
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	default:
		return fmt.Sprint(v)
	}
}

func compareValues(a, b any) int {
	switch a := a.(type) {
	case int64:
		if b, ok := b.(int64); ok {
			return cmp.Compare(a, b)
		}
	case uint64:
		if b, ok := b.(uint64); ok {
			return cmp.Compare(a, b)
		}
	case float64:
		if b, ok := b.(float64); ok {
			return cmp.Compare(a, b)
		}
	case bool:
		if b, ok := b.(bool); ok {
			return cmp.Compare(lo.Ternary(a, 1, 0), lo.Ternary(b, 1, 0))
		}
	case string:
		if b, ok := b.(string); ok {
			return strings.Compare(a, b)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// keyString renders a normalized mapping key as an object key.
func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
