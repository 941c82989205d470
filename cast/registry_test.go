package cast_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntouran/yamlize/cast"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	r, err := cast.NewRegistry(strconv.Itoa, strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	c, ok := r.Lookup(reflect.TypeFor[int](), reflect.TypeFor[string]())
	require.True(t, ok)
	assert.Equal(t, "Itoa", c.Name)

	_, ok = r.Lookup(reflect.TypeFor[string](), reflect.TypeFor[float64]())
	assert.False(t, ok)

	err = r.Register(func(i int) string { return "#" + strconv.Itoa(i) })
	require.ErrorIs(t, err, cast.ErrDuplicateCaster)

	err = r.Register("not a function")
	require.ErrorIs(t, err, cast.ErrCasterIsNotAFunction)
}

func TestNilRegistry(t *testing.T) {
	t.Parallel()

	var r *cast.Registry

	_, ok := r.Lookup(reflect.TypeFor[int](), reflect.TypeFor[string]())
	assert.False(t, ok)
	assert.Zero(t, r.Len())

	var zero cast.Registry
	require.NoError(t, zero.Register(strconv.Itoa))
	assert.Equal(t, 1, zero.Len())
}
