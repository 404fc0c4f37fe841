package mapper

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"float", 12.5, 0, 12.5},
		{"int", 7, 0, 7},
		{"numeric string", "1500", 0, 1500},
		{"padded string", " 42 ", 0, 42},
		{"json number", json.Number("3.25"), 0, 3.25},
		{"bool", true, 0, 1},
		{"not a number", "N/A", 0, 0},
		{"empty string", "", -1, -1},
		{"nil", nil, 9, 9},
		{"object", map[string]any{"a": 1}, 0, 0},
		{"list", []any{1}, 0, 0},
		{"nan", math.NaN(), 0, 0},
		{"inf string", "Inf", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFloat(tt.in, tt.def))
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"int", 1, 1},
		{"string", "1", 1},
		{"float truncates", 1.9, 1},
		{"json number", json.Number("2"), 2},
		{"json float truncates", json.Number("1.5"), 1},
		{"json exponent", json.Number("1e0"), 1},
		{"padded string", " 3 ", 3},
		{"decimal string", "1.0", 0},
		{"hex string", "0x1", 0},
		{"octal string", "010", 10},
		{"garbage", "x", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in, 0))
		})
	}
}

func TestScaled(t *testing.T) {
	assert.InDelta(t, 35.1, Scaled("351", 10), 1e-9)
	assert.InDelta(t, 0.5, Scaled(json.Number("50"), 100), 1e-9)
	assert.Equal(t, 12.0, Scaled(12, 1))
	assert.Equal(t, 0.0, Scaled("bad", 10))
}

func TestToText(t *testing.T) {
	assert.Equal(t, "X1", ToText("X1", "d"))
	assert.Equal(t, "d", ToText(nil, "d"))
	assert.Equal(t, "123456", ToText(json.Number("123456"), "d"))
	assert.Equal(t, "true", ToText(true, "d"))
}
