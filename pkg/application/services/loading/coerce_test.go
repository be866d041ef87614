package loading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"1000", "1000", true},
		{" 1,234.50 ", "1234.5", true},
		{"¥12", "12", true},
		{"$ 7.2", "7.2", true},
		{"3 000", "3000", true},
		{"", "", false},
		{"nan", "", false},
		{"NaN", "", false},
		{"-", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDecimal(tt.raw).Get()
		if !assert.Equal(t, tt.ok, ok, "raw %q", tt.raw) || !ok {
			continue
		}
		assert.Equal(t, tt.want, got.String(), "raw %q", tt.raw)
	}
}

func TestParseQuantity(t *testing.T) {
	q, ok := ParseQuantity("1,200.9").Get()
	assert.True(t, ok)
	assert.EqualValues(t, 1200, q)

	assert.False(t, ParseQuantity("n/a").IsSome())
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2024-01-01", "2024/1/1", "2024年1月1日", "2024-01-01 00:00:00", "45292"} {
		got, ok := ParseDate(raw).Get()
		if assert.True(t, ok, "raw %q", raw) {
			assert.True(t, want.Equal(got), "raw %q parsed as %v", raw, got)
		}
	}

	assert.False(t, ParseDate("").IsSome())
	assert.False(t, ParseDate("soon").IsSome())
}
