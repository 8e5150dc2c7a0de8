package utils

import (
	"encoding/json"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"json number", json.Number("3.25"), 3.25},
		{"numeric string", " 42 ", 42},
		{"garbage string", "n/a", 0},
		{"negative", -5.0, 0},
		{"nan", math.NaN(), 0},
		{"bool", true, 1},
		{"unsupported", []int{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFloat(tt.value))
		})
	}
}

func TestToIntAndString(t *testing.T) {
	assert.EqualValues(t, 9, ToInt("9.9"))
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "12", ToString(int64(12)))
	assert.Equal(t, "true", ToString(true))
}

func TestStripNumeric(t *testing.T) {
	assert.Equal(t, "1234.50", StripNumeric("$1,234.50"))
}

func TestParseAnyDate(t *testing.T) {
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"2024-03-01", "2024-03-01T00:00:00+0000", "2024-03-01 00:00:00", "March 1, 2024"} {
		parsed, ok := ParseAnyDate(input)
		assert.True(t, ok, input)
		assert.True(t, march.Equal(DateOnly(parsed)), input)
	}

	_, ok := ParseAnyDate("")
	assert.False(t, ok)
	_, ok = ParseAnyDate("not a date")
	assert.False(t, ok)
	_, ok = ParseAnyDate(42)
	assert.False(t, ok)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.March, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), DateOnly(in))
	assert.True(t, DateOnly(time.Time{}).IsZero())
}

func TestNewRunID(t *testing.T) {
	id := NewRunID(time.Date(2024, time.March, 3, 6, 5, 4, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^load-job-20240303-060504-[a-z0-9]{6}$`), id)
}
