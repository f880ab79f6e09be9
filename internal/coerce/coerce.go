// Package coerce converts loosely-typed values into the types the domain
// model uses. It sits on two boundaries: values scanned from SQLite (which
// may come back as int64, float64, string or []byte depending on how a row
// was written) and JSON request bodies decoded with UseNumber.
//
// Every function is total: nil, empty and unparseable inputs become the
// zero value instead of an error. Applying a function to its own output
// returns the same value.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Int converts v to an int. Numeric strings with a fractional part are
// truncated toward zero ("250.9" -> 250).
func Int(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case float64:
		return floatToInt(t)
	case float32:
		return floatToInt(float64(t))
	case string:
		return parseInt(t)
	case []byte:
		return parseInt(string(t))
	case json.Number:
		return parseInt(t.String())
	}
	return cast.ToInt(v)
}

// Float converts v to a float64. NaN and infinities become 0.
func Float(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		f = parseFloat(t)
	case []byte:
		f = parseFloat(string(t))
	case json.Number:
		f = parseFloat(t.String())
	default:
		f = cast.ToFloat64(v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// String converts v to a string. Numbers render without a trailing ".0".
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case json.Number:
		return t.String()
	}
	return cast.ToString(v)
}

// Bool accepts booleans, 0/1 and the usual textual spellings.
func Bool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case []byte:
		return cast.ToBool(strings.TrimSpace(string(t)))
	case json.Number:
		return parseFloat(t.String()) != 0
	case string:
		return cast.ToBool(strings.TrimSpace(t))
	}
	return cast.ToBool(v)
}

// Strings converts a JSON array (or a single string) into a []string,
// dropping nil elements. The result is never nil.
func Strings(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, String(item))
		}
		return out
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	}
	return []string{String(v)}
}

// inputLayouts are tried before falling back to cast. Values without a zone
// are read in the supplied location.
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Time parses v as an instant. Zone-less inputs are interpreted in loc.
// The second result is false when v is empty or not a recognisable time.
func Time(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t, !t.IsZero()
	case []byte:
		v = string(t)
	}
	s, ok := v.(string)
	if !ok {
		parsed, err := cast.ToTimeInDefaultLocationE(v, loc)
		return parsed, err == nil && !parsed.IsZero()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
			return parsed, true
		}
	}
	parsed, err := cast.ToTimeInDefaultLocationE(s, loc)
	return parsed, err == nil && !parsed.IsZero()
}

// Date normalises v to a YYYY-MM-DD calendar date in loc. Inputs that do
// not parse are returned trimmed so a validator can reject them with a
// useful message; nil and empty input return "".
func Date(v any, loc *time.Location) string {
	if v == nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, ok := Time(v, loc); ok {
		return t.In(loc).Format("2006-01-02")
	}
	return strings.TrimSpace(String(v))
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return floatToInt(parseFloat(s))
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func floatToInt(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int(f)
}
