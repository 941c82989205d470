package primitive_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ntouran/yamlize/primitive"
)

func ExampleFromReflectType() {
	type Level int8
	type Name string
	type Flags uint

	for _, t := range []reflect.Type{
		reflect.TypeFor[int](),
		reflect.TypeFor[string](),
		reflect.TypeFor[Level](),
		reflect.TypeFor[Name](),
		reflect.TypeFor[time.Duration](),
		reflect.TypeFor[time.Time](),
		reflect.TypeFor[Flags](),
		reflect.TypeFor[struct{}](),
	} {
		fmt.Println(primitive.FromReflectType(t))
	}

	// Output:
	// KindInt
	// KindString
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindDuration
	// KindTime
	// KindEnum(0)
	// KindEnum(0)
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, primitive.KindInt16.IsSigned())
	assert.True(t, primitive.KindUint8.IsUnsigned())
	assert.True(t, primitive.KindUint8.IsInteger())
	assert.True(t, primitive.KindFloat32.IsFloat())
	assert.False(t, primitive.KindFloat32.IsInteger())
	assert.False(t, primitive.KindDuration.IsNumber())
	assert.False(t, primitive.KindPrimitiveEnum.IsNumber())
	assert.False(t, primitive.KindEnum(0).IsNumber())

	assert.Equal(t, 16, primitive.KindUint16.Bits())
	assert.Equal(t, reflect.TypeFor[int]().Bits(), primitive.KindInt.Bits())
	assert.Panics(t, func() { primitive.KindString.Bits() })
}
