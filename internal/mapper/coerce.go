package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ToFloat converts v to a float64, returning def for nil, non-numeric,
// NaN or infinite input.
func ToFloat(v any, def float64) float64 {
	if v == nil {
		return def
	}
	v = scalar(v)

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// ToInt converts v to an int, returning def for nil or non-numeric input.
// Numbers truncate toward zero. Strings must hold a base 10 integer, so
// "1.0" and "0x1" are rejected.
func ToInt(v any, def int) int {
	switch s := v.(type) {
	case nil:
		return def
	case json.Number:
		if i, err := s.Int64(); err == nil {
			return int(i)
		}
		return truncate(ToFloat(s, math.NaN()), def)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return i
	case float32, float64:
		return truncate(ToFloat(s, math.NaN()), def)
	}

	i, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return i
}

func truncate(f float64, def int) int {
	if math.IsNaN(f) || f >= 1<<63 || f < -(1<<63) {
		return def
	}
	return int(f)
}

// Scaled coerces v and divides by the fixed point scale.
func Scaled(v any, scale float64) float64 {
	f := ToFloat(v, 0)
	if scale == 0 || scale == 1 {
		return f
	}
	return f / scale
}

// ToText renders a scalar as a string, returning def for nil.
func ToText(v any, def string) string {
	switch s := v.(type) {
	case nil:
		return def
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

// scalar trims strings and unwraps json.Number so cast sees plain text.
func scalar(v any) any {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return string(s)
	}
	return v
}
