package format

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo2(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"integer", 8, "8.00"},
		{"fraction", 1.005, "1.00"},
		{"rounds up", 2.666, "2.67"},
		{"numeric string", " 7.5 ", "7.50"},
		{"garbage string", "abc", "0.00"},
		{"nil", nil, "0.00"},
		{"nan", math.NaN(), "0.00"},
		{"inf", math.Inf(1), "0.00"},
		{"negative zero", -0.001, "0.00"},
		{"json number", json.Number("196"), "196.00"},
		{"struct", struct{}{}, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, To2(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "", ToString(false))
	assert.Equal(t, "", ToString(0.0))
	assert.Equal(t, "2024", ToString(2024.0))
	assert.Equal(t, "09:00", ToString("09:00"))
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, "", ToString(json.Number("0")))
	assert.Equal(t, "", ToString(json.Number("0.0")))
	assert.Equal(t, "20240101", ToString(json.Number("20240101")))
}
