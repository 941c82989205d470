package cast

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/ntouran/yamlize/options"
	"github.com/ntouran/yamlize/primitive"
)

var (
	ErrNotConvertible = errors.New("value is not convertible")
	ErrNilValue       = errors.New("nil value for non-nillable type")
	ErrArrayLength    = errors.New("sequence length does not fit array")
)

// Dispatch classifies the conversion from src to dst. Pointer types must be unwrapped by the caller.
func Dispatch(src, dst reflect.Type) DispatcherEnum {
	if src.Kind() == reflect.Ptr || dst.Kind() == reflect.Ptr {
		panic("dispatcher is not allowing pointer reflect types")
	}

	if dst.Kind() == reflect.Interface {
		return DispatcherInterface
	}

	if dst.Kind() == reflect.Slice || dst.Kind() == reflect.Array {
		if src.Kind() == reflect.Slice || src.Kind() == reflect.Array {
			return DispatcherSlice
		}

		return DispatcherUnknown
	}

	if dst.Kind() == reflect.Map {
		if src.Kind() == reflect.Map {
			return DispatcherMap
		}

		return DispatcherUnknown
	}

	dstKind := primitive.FromReflectType(dst)
	if dstKind != 0 {
		srcKind := primitive.FromReflectType(src)
		if srcKind != 0 {
			return DispatcherPrimitive
		}

		return DispatcherUnknown
	}

	if dst.Kind() == reflect.Struct {
		if src.Kind() == reflect.Struct {
			return DispatcherStruct
		}

		return DispatcherUnknown
	}

	return DispatcherUnknown
}

// Converter performs single argument construction of a destination type from an arbitrary value.
//
// Registered casters win over everything else, then assignable values pass through untouched,
// then the value is taken apart by shape: pointers, sequences and maps element by element,
// primitives through the category tables.
type Converter struct {
	Allowed  options.CategoryEnum
	Registry *Registry
}

// NewConverter returns a converter allowing the given categories, with no user casters.
func NewConverter(allowed options.CategoryEnum) *Converter {
	return &Converter{Allowed: allowed}
}

// Convert builds a dst value from v. A nil v becomes the zero value of nillable types.
func (c *Converter) Convert(v any, dst reflect.Type) (any, error) {
	if dst == nil {
		return nil, fmt.Errorf("%w: no destination type", ErrNotConvertible)
	}

	if v == nil {
		if isNillable(dst) {
			return reflect.Zero(dst).Interface(), nil
		}

		return nil, fmt.Errorf("%w: %s", ErrNilValue, typeStr(dst))
	}

	out, err := c.convert(reflect.ValueOf(v), dst)
	if err != nil {
		return nil, err
	}

	return out.Interface(), nil
}

func (c *Converter) convert(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if src.Kind() == reflect.Interface {
		if src.IsNil() {
			return c.nilValue(dst)
		}

		return c.convert(src.Elem(), dst)
	}

	srcType := src.Type()

	if caster, ok := c.Registry.Lookup(srcType, dst); ok {
		return caster.Call(src)
	}

	if srcType.AssignableTo(dst) {
		out := reflect.New(dst).Elem()
		out.Set(src)

		return out, nil
	}

	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			return c.nilValue(dst)
		}

		return c.convert(src.Elem(), dst)
	}

	if dst.Kind() == reflect.Ptr {
		inner, err := c.convert(src, dst.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(dst.Elem())
		ptr.Elem().Set(inner)

		return ptr, nil
	}

	switch Dispatch(srcType, dst) {
	case DispatcherInterface:
		return reflect.Value{}, fmt.Errorf("%w: %s does not implement %s",
			ErrNotConvertible, typeStr(srcType), typeStr(dst))

	case DispatcherPrimitive:
		return primitive.Convert(src, dst, c.Allowed)

	case DispatcherSlice:
		return c.convertSlice(src, dst)

	case DispatcherMap:
		return c.convertMap(src, dst)

	case DispatcherStruct, DispatcherUnknown:
	}

	if srcType.ConvertibleTo(dst) && !isRuneConversion(srcType, dst) {
		return src.Convert(dst), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotConvertible, typeStr(srcType), typeStr(dst))
}

func (c *Converter) nilValue(dst reflect.Type) (reflect.Value, error) {
	if isNillable(dst) {
		return reflect.Zero(dst), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s", ErrNilValue, typeStr(dst))
}

func (c *Converter) convertSlice(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	n := src.Len()

	var out reflect.Value

	switch {
	case dst.Kind() == reflect.Array:
		fits := n == dst.Len()
		if !(fits && c.Allowed&(options.CategorySafeArray|options.CategoryUnsafeArray) != 0) &&
			!c.Allowed.Has(options.CategoryUnsafeArray) {
			return reflect.Value{}, fmt.Errorf("%w: %d elements into %s", ErrArrayLength, n, typeStr(dst))
		}

		out = reflect.New(dst).Elem()
	case src.Kind() == reflect.Slice && src.IsNil():
		return reflect.Zero(dst), nil
	default:
		out = reflect.MakeSlice(dst, n, n)
	}

	for i := range min(n, out.Len()) {
		elem, err := c.convert(src.Index(i), dst.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("[%d]: %w", i, err)
		}

		out.Index(i).Set(elem)
	}

	return out, nil
}

func (c *Converter) convertMap(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if src.IsNil() {
		return reflect.Zero(dst), nil
	}

	out := reflect.MakeMapWithSize(dst, src.Len())

	iter := src.MapRange()
	for iter.Next() {
		key, err := c.convert(iter.Key(), dst.Key())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
		}

		val, err := c.convert(iter.Value(), dst.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("[%v]: %w", iter.Key(), err)
		}

		out.SetMapIndex(key, val)
	}

	return out, nil
}

// isRuneConversion guards against reflect turning integers into single rune strings.
func isRuneConversion(src, dst reflect.Type) bool {
	if dst.Kind() != reflect.String {
		return false
	}

	switch src.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}
