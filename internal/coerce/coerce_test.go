package coerce

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"nil is zero", nil, 0},
		{"int64 from driver", int64(280), 280},
		{"float64 from driver", float64(280), 280},
		{"textual number", "250", 250},
		{"textual number with spaces", " 250 ", 250},
		{"textual decimal truncates", "250.9", 250},
		{"bytes from driver", []byte("250"), 250},
		{"json number", json.Number("42"), 42},
		{"garbage is zero", "lots", 0},
		{"empty string is zero", "", 0},
		{"bool true", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Int(tt.in))
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil is zero", nil, 0},
		{"float64", 12.5, 12.5},
		{"int64", int64(12), 12},
		{"textual decimal", "12.5", 12.5},
		{"bytes", []byte("3.25"), 3.25},
		{"json number", json.Number("7.75"), 7.75},
		{"garbage is zero", "n/a", 0},
		{"NaN is zero", "NaN", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Float(tt.in), 1e-9)
		})
	}
}

func TestIdempotent(t *testing.T) {
	inputs := []any{nil, "250", int64(7), 3.9, []byte("12"), json.Number("5"), "x"}

	for _, in := range inputs {
		once := Int(in)
		assert.Equal(t, once, Int(once), "Int(%v)", in)

		f := Float(in)
		assert.Equal(t, f, Float(f), "Float(%v)", in)

		s := String(in)
		assert.Equal(t, s, String(s), "String(%v)", in)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "abc", String([]byte("abc")))
	assert.Equal(t, "250", String(250))
	assert.Equal(t, "250", String(float64(250)))
	assert.Equal(t, "1.5", String(json.Number("1.5")))
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(true))
	assert.True(t, Bool(int64(1)))
	assert.True(t, Bool("true"))
	assert.True(t, Bool("1"))
	assert.True(t, Bool(json.Number("1")))
	assert.False(t, Bool(nil))
	assert.False(t, Bool("0"))
	assert.False(t, Bool(int64(0)))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{}, Strings(nil))
	assert.Equal(t, []string{"asthma", "peanut allergy"}, Strings([]any{"asthma", "peanut allergy"}))
	assert.Equal(t, []string{"a", "3"}, Strings([]any{"a", nil, json.Number("3")}))
	assert.Equal(t, []string{"solo"}, Strings("solo"))
	assert.Equal(t, []string{}, Strings(""))
}

func TestTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	t.Run("rfc3339 keeps its own zone", func(t *testing.T) {
		got, ok := Time("2024-03-01T10:00:00Z", loc)
		assert.True(t, ok)
		assert.True(t, got.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("datetime-local is read in loc", func(t *testing.T) {
		got, ok := Time("2024-03-01T10:00", loc)
		assert.True(t, ok)
		assert.True(t, got.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))
	})

	t.Run("date only", func(t *testing.T) {
		got, ok := Time("2024-03-01", loc)
		assert.True(t, ok)
		assert.Equal(t, 1, got.Day())
	})

	t.Run("empty and garbage fail", func(t *testing.T) {
		_, ok := Time("", loc)
		assert.False(t, ok)
		_, ok = Time("not a date", loc)
		assert.False(t, ok)
		_, ok = Time(nil, loc)
		assert.False(t, ok)
	})
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)

	assert.Equal(t, "2024-03-01", Date("2024-03-01", loc))
	// 02:00 UTC is still the previous evening five hours west.
	assert.Equal(t, "2024-02-29", Date("2024-03-01T02:00:00Z", loc))
	assert.Equal(t, "", Date(nil, loc))
	assert.Equal(t, "someday", Date(" someday ", loc))
}
