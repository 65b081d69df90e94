package stats

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToNumber coerces a loosely-typed value into a finite float64. Values arrive
// from JSON decoded into interface{}, so numbers, numeric strings (with
// thousands separators or stray whitespace), json.Number, nil and missing
// fields all have to be handled. Any value that cannot be interpreted as a
// finite number yields the fallback; the function never panics and never
// returns NaN or an infinity.
func ToNumber(v interface{}, fallback float64) float64 {
	switch n := v.(type) {
	case nil:
		return fallback
	case float64:
		return finiteOr(n, fallback)
	case float32:
		return finiteOr(float64(n), fallback)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return fallback
		}
		return finiteOr(f, fallback)
	case string:
		cleaned := strings.NewReplacer(",", "", " ", "", "\t", "", "\n", "", "\r", "").Replace(n)
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return fallback
		}
		return finiteOr(f, fallback)
	default:
		return fallback
	}
}

func finiteOr(f, fallback float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}
