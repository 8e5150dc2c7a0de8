package utils

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// StripNumeric keeps digits and dots only ("$1,234.50" -> "1234.50").
func StripNumeric(s string) string {
	return nonNumeric.ReplaceAllString(s, "")
}

// ToFloat converts API values (numbers, numeric strings, json.Number) to a
// non-negative float. Anything unparseable is zero.
func ToFloat(value any) float64 {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if v {
			f = 1
		}
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// ToInt is ToFloat truncated to an integer count.
func ToInt(value any) int64 {
	return int64(ToFloat(value))
}

// ToString renders scalar API values as text, "" for nil.
func ToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
