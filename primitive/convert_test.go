package primitive_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntouran/yamlize/options"
	"github.com/ntouran/yamlize/primitive"
)

type Color int

const (
	ColorRed Color = iota
	ColorGreen
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	default:
		return "unknown"
	}
}

func (c *Color) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "red":
		*c = ColorRed
	case "green":
		*c = ColorGreen
	default:
		return errors.New("no such color")
	}

	return nil
}

func (c Color) IsValid() bool { return c == ColorRed || c == ColorGreen }

type Level string

func (l Level) IsValid() bool { return l == "low" || l == "high" }

func convert(t *testing.T, v any, dst reflect.Type) (any, error) {
	t.Helper()

	out, err := primitive.Convert(reflect.ValueOf(v), dst, options.CategoryAll)
	if err != nil {
		return nil, err
	}

	return out.Interface(), nil
}

func TestConvert(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		dst  reflect.Type
		want any
	}{
		{"int to float64", 3, reflect.TypeFor[float64](), 3.0},
		{"float64 to int truncates", 3.7, reflect.TypeFor[int](), 3},
		{"negative float to int truncates", -3.7, reflect.TypeFor[int](), -3},
		{"int to uint8", 200, reflect.TypeFor[uint8](), uint8(200)},
		{"string to int", " 42 ", reflect.TypeFor[int](), 42},
		{"string to float32", "1.5", reflect.TypeFor[float32](), float32(1.5)},
		{"string to uint", "7", reflect.TypeFor[uint](), uint(7)},
		{"int to string", 42, reflect.TypeFor[string](), "42"},
		{"float to string", 2.5, reflect.TypeFor[string](), "2.5"},
		{"int to bool", 2, reflect.TypeFor[bool](), true},
		{"bool to int", true, reflect.TypeFor[int](), 1},
		{"yes to bool", "yes", reflect.TypeFor[bool](), true},
		{"Off to bool", "Off", reflect.TypeFor[bool](), false},
		{"bool to string", false, reflect.TypeFor[string](), "false"},
		{"string to time", "2024-03-01T10:30:00Z", reflect.TypeFor[time.Time](), stamp},
		{"time to string", stamp, reflect.TypeFor[string](), "2024-03-01T10:30:00Z"},
		{"int to time", int64(stamp.Unix()), reflect.TypeFor[time.Time](), stamp},
		{"time to int64", stamp, reflect.TypeFor[int64](), stamp.Unix()},
		{"string to duration", "1h30m", reflect.TypeFor[time.Duration](), 90 * time.Minute},
		{"duration to string", 90 * time.Minute, reflect.TypeFor[string](), "1h30m0s"},
		{"int to duration", 1500, reflect.TypeFor[time.Duration](), 1500 * time.Nanosecond},
		{"float seconds to duration", 1.5, reflect.TypeFor[time.Duration](), 1500 * time.Millisecond},
		{"duration to float seconds", 2 * time.Second, reflect.TypeFor[float64](), 2.0},
		{"string to int enum", "green", reflect.TypeFor[Color](), ColorGreen},
		{"int to int enum", 1, reflect.TypeFor[Color](), ColorGreen},
		{"int enum to string", ColorRed, reflect.TypeFor[string](), "red"},
		{"int enum to int", ColorGreen, reflect.TypeFor[int](), 1},
		{"string to string enum", "high", reflect.TypeFor[Level](), Level("high")},
		{"string enum to string", Level("low"), reflect.TypeFor[string](), "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := convert(t, tt.in, tt.dst)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		dst     reflect.Type
		wantErr error
	}{
		{"int overflows int8", 300, reflect.TypeFor[int8](), primitive.ErrOutOfRange},
		{"negative to uint", -1, reflect.TypeFor[uint](), primitive.ErrOutOfRange},
		{"huge float to int32", 1e20, reflect.TypeFor[int32](), primitive.ErrOutOfRange},
		{"bad bool text", "maybe", reflect.TypeFor[bool](), primitive.ErrInvalidBool},
		{"unknown color", "blue", reflect.TypeFor[Color](), primitive.ErrInvalidEnum},
		{"out of set color", 5, reflect.TypeFor[Color](), primitive.ErrInvalidEnum},
		{"invalid level", "medium", reflect.TypeFor[Level](), primitive.ErrInvalidEnum},
		{"int to string enum", 3, reflect.TypeFor[Level](), primitive.ErrInvalidEnum},
		{"struct is not primitive", struct{}{}, reflect.TypeFor[int](), primitive.ErrNotPrimitive},
		{"float to bool not covered", 1.5, reflect.TypeFor[bool](), primitive.ErrNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := convert(t, tt.in, tt.dst)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("non numeric string", func(t *testing.T) {
		t.Parallel()

		_, err := convert(t, "abc", reflect.TypeFor[int]())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid syntax")
	})
}

func TestConvertRespectsAllowedCategories(t *testing.T) {
	t.Parallel()

	_, err := primitive.Convert(reflect.ValueOf("42"), reflect.TypeFor[int](), options.CategorySafeNumber)
	require.ErrorIs(t, err, primitive.ErrNotAllowed)

	out, err := primitive.Convert(reflect.ValueOf(int8(4)), reflect.TypeFor[int64](), options.CategorySafeNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Interface())

	_, err = primitive.Convert(reflect.ValueOf(int64(4)), reflect.TypeFor[int8](), options.CategorySafeNumber)
	require.ErrorIs(t, err, primitive.ErrNotAllowed)
}

func TestAllowed(t *testing.T) {
	t.Parallel()

	pair := primitive.ConversionPair{From: primitive.KindString, To: primitive.KindDuration}
	assert.True(t, primitive.Allowed(pair, options.CategoryDuration))
	assert.False(t, primitive.Allowed(pair, options.CategoryTextNumber))
	assert.False(t, primitive.Allowed(pair, options.CategoryNone))
}

func TestSafeNumberPairs(t *testing.T) {
	t.Parallel()

	p := func(from, to primitive.KindEnum) primitive.ConversionPair {
		return primitive.ConversionPair{From: from, To: to}
	}

	safe := []primitive.ConversionPair{
		p(primitive.KindInt, primitive.KindInt),
		p(primitive.KindInt, primitive.KindInt64),
		p(primitive.KindInt32, primitive.KindInt),
		p(primitive.KindUint16, primitive.KindFloat32),
		p(primitive.KindUint32, primitive.KindInt64),
		p(primitive.KindInt32, primitive.KindFloat64),
		p(primitive.KindFloat32, primitive.KindFloat64),
	}
	unsafe := []primitive.ConversionPair{
		p(primitive.KindInt, primitive.KindInt32),
		p(primitive.KindInt32, primitive.KindFloat32),
		p(primitive.KindUint32, primitive.KindInt),
		p(primitive.KindInt8, primitive.KindUint64),
		p(primitive.KindFloat64, primitive.KindFloat32),
		p(primitive.KindFloat32, primitive.KindInt64),
	}

	for _, pair := range safe {
		assert.True(t, primitive.Allowed(pair, options.CategorySafeNumber), "%v", pair)
	}

	for _, pair := range unsafe {
		assert.False(t, primitive.Allowed(pair, options.CategorySafeNumber), "%v", pair)
		assert.True(t, primitive.Allowed(pair, options.CategoryUnsafeNumber), "%v", pair)
	}
}
