package stats

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		fallback float64
		expected float64
	}{
		{"Nil", nil, 7, 7},
		{"Float", 12.5, 0, 12.5},
		{"Int", 42, 0, 42},
		{"Int64", int64(42), 0, 42},
		{"PlainString", "1234.5", 0, 1234.5},
		{"ThousandsSeparators", "1,234,567", 0, 1234567},
		{"Whitespace", " 2 500 ", 0, 2500},
		{"NegativeString", "-300", 0, -300},
		{"JSONNumber", json.Number("99.5"), 0, 99.5},
		{"Garbage", "abc", 3, 3},
		{"EmptyString", "", 5, 5},
		{"Bool", true, 1, 1},
		{"Map", map[string]interface{}{}, 2, 2},
		{"NaN", math.NaN(), 9, 9},
		{"Inf", math.Inf(1), 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNumber(tt.value, tt.fallback); got != tt.expected {
				t.Errorf("ToNumber(%v) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestToNumberNeverNonFinite(t *testing.T) {
	inputs := []interface{}{math.NaN(), math.Inf(1), math.Inf(-1), "NaN", "Inf", "1e999"}
	for _, in := range inputs {
		got := ToNumber(in, 0)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("ToNumber(%v) returned non-finite %v", in, got)
		}
	}
}
