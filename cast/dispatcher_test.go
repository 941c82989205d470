package cast_test

import (
	"fmt"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntouran/yamlize/cast"
	"github.com/ntouran/yamlize/options"
	"github.com/ntouran/yamlize/primitive"
)

type Meters float64

type Celsius struct{ Degrees float64 }

type Kelvin struct{ Degrees float64 }

func ExampleDispatch() {
	fmt.Println(cast.Dispatch(reflect.TypeFor[string](), reflect.TypeFor[int]()))
	fmt.Println(cast.Dispatch(reflect.TypeFor[int](), reflect.TypeFor[fmt.Stringer]()))
	fmt.Println(cast.Dispatch(reflect.TypeFor[[]any](), reflect.TypeFor[[3]int]()))
	fmt.Println(cast.Dispatch(reflect.TypeFor[map[string]any](), reflect.TypeFor[map[string]int]()))
	fmt.Println(cast.Dispatch(reflect.TypeFor[Celsius](), reflect.TypeFor[Kelvin]()))
	fmt.Println(cast.Dispatch(reflect.TypeFor[string](), reflect.TypeFor[[]byte]()))

	// Output:
	// primitive
	// interface
	// slice
	// map
	// struct
	// unknown
}

func TestConverter(t *testing.T) {
	t.Parallel()

	conv := cast.NewConverter(options.CategoryDefault)
	seven := 7

	tests := []struct {
		name string
		in   any
		dst  reflect.Type
		want any
	}{
		{"assignable passes through", 3, reflect.TypeFor[int](), 3},
		{"to interface", 3, reflect.TypeFor[any](), 3},
		{"primitive", "3", reflect.TypeFor[int](), 3},
		{"to pointer", "3", reflect.TypeFor[*int](), &seven},
		{"from pointer", &seven, reflect.TypeFor[string](), "7"},
		{"nil to slice", nil, reflect.TypeFor[[]int](), []int(nil)},
		{"sequence", []any{"1", 2, 3.0}, reflect.TypeFor[[]int](), []int{1, 2, 3}},
		{"sequence to array", []any{1, 2}, reflect.TypeFor[[2]string](), [2]string{"1", "2"}},
		{"nested sequence", []any{[]any{"1"}, []any{}}, reflect.TypeFor[[][]int](), [][]int{{1}, {}}},
		{"mapping", map[string]any{"a": "1h"}, reflect.TypeFor[map[string]time.Duration](), map[string]time.Duration{"a": time.Hour}},
		{"mapping with any keys", map[any]any{1: true}, reflect.TypeFor[map[string]bool](), map[string]bool{"1": true}},
		{"named float", 2.5, reflect.TypeFor[Meters](), Meters(2.5)},
		{"identical structs", Celsius{Degrees: 1}, reflect.TypeFor[Kelvin](), Kelvin{Degrees: 1}},
		{"string to bytes", "hi", reflect.TypeFor[[]byte](), []byte("hi")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.Convert(tt.in, tt.dst)
			require.NoError(t, err)

			if tt.name == "to pointer" {
				require.IsType(t, &seven, got)
				assert.Equal(t, 3, *got.(*int))

				return
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConverterFailures(t *testing.T) {
	t.Parallel()

	conv := cast.NewConverter(options.CategoryDefault)

	tests := []struct {
		name    string
		in      any
		dst     reflect.Type
		wantErr error
	}{
		{"nil to int", nil, reflect.TypeFor[int](), cast.ErrNilValue},
		{"nil element", []any{nil}, reflect.TypeFor[[]int](), cast.ErrNilValue},
		{"int to stringer", 1, reflect.TypeFor[fmt.Stringer](), cast.ErrNotConvertible},
		{"int to string slice", 65, reflect.TypeFor[[]string](), cast.ErrNotConvertible},
		{"array too short", []any{1, 2, 3}, reflect.TypeFor[[2]int](), cast.ErrArrayLength},
		{"array too long", []any{1}, reflect.TypeFor[[2]int](), cast.ErrArrayLength},
		{"bad element", []any{"1", "x"}, reflect.TypeFor[[]bool](), primitive.ErrInvalidBool},
		{"mapping to scalar", map[string]any{}, reflect.TypeFor[string](), cast.ErrNotConvertible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := conv.Convert(tt.in, tt.dst)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("element index in message", func(t *testing.T) {
		t.Parallel()

		_, err := conv.Convert([]any{"1", "x"}, reflect.TypeFor[[]int]())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "[1]")
	})
}

func TestConverterUnsafeArray(t *testing.T) {
	t.Parallel()

	conv := cast.NewConverter(options.CategoryAll)

	got, err := conv.Convert([]any{1, 2, 3}, reflect.TypeFor[[2]int]())
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 2}, got)

	got, err = conv.Convert([]any{1}, reflect.TypeFor[[2]int]())
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, got)
}

func TestConverterPrefersRegisteredCasters(t *testing.T) {
	t.Parallel()

	reg, err := cast.NewRegistry(func(i int) string { return "#" + strconv.Itoa(i) })
	require.NoError(t, err)

	conv := &cast.Converter{Allowed: options.CategoryDefault, Registry: reg}

	got, err := conv.Convert([]any{1, 2}, reflect.TypeFor[[]string]())
	require.NoError(t, err)
	assert.Equal(t, []string{"#1", "#2"}, got)

	got, err = conv.Convert(int64(5), reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "5", got)
}
