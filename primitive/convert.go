package primitive

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ntouran/yamlize/options"
)

var (
	ErrNotPrimitive = errors.New("type is not a primitive kind")
	ErrNotAllowed   = errors.New("conversion category is not allowed")
	ErrOutOfRange   = errors.New("value is out of range")
	ErrInvalidBool  = errors.New("invalid boolean text")
	ErrInvalidEnum  = errors.New("invalid enum value")
)

var (
	stringerType        = reflect.TypeFor[fmt.Stringer]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

type validator interface {
	IsValid() bool
}

// Convert builds a value of type dst from src, provided both are primitive kinds
// and some category in allowed covers the pair.
//
// It is the runtime counterpart of the conversion pair tables: every pair
// registered there has a branch here.
func Convert(src reflect.Value, dst reflect.Type, allowed options.CategoryEnum) (reflect.Value, error) {
	srcKind := FromReflectType(src.Type())
	dstKind := FromReflectType(dst)

	if srcKind == 0 || dstKind == 0 {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotPrimitive, src.Type(), dst)
	}

	if !Allowed(ConversionPair{srcKind, dstKind}, allowed) {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotAllowed, srcKind, dstKind)
	}

	out := reflect.New(dst).Elem()

	err := convert(src, srcKind, out, dstKind)
	if err != nil {
		return reflect.Value{}, err
	}

	return out, nil
}

func convert(src reflect.Value, srcKind KindEnum, out reflect.Value, dstKind KindEnum) error {
	switch {
	case srcKind == KindPrimitiveEnum || dstKind == KindPrimitiveEnum:
		return convertEnum(src, out, dstKind)

	case srcKind.IsNumber() && dstKind.IsNumber():
		return setNumber(out, dstKind, src)

	case srcKind == KindString && dstKind.IsNumber():
		return parseNumber(out, dstKind, src.String())

	case srcKind.IsNumber() && dstKind == KindString:
		out.SetString(formatNumber(src, srcKind))
		return nil

	case srcKind.IsInteger() && dstKind == KindBool:
		out.SetBool(!src.IsZero())
		return nil

	case srcKind == KindBool && dstKind.IsInteger():
		var n int64
		if src.Bool() {
			n = 1
		}

		return setNumber(out, dstKind, reflect.ValueOf(n))

	case srcKind == KindString && dstKind == KindBool:
		b, err := parseBool(src.String())
		if err != nil {
			return err
		}

		out.SetBool(b)

		return nil

	case srcKind == KindBool && dstKind == KindString:
		out.SetString(strconv.FormatBool(src.Bool()))
		return nil

	case srcKind == KindString && dstKind == KindTime:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(src.String()))
		if err != nil {
			return err
		}

		out.Set(reflect.ValueOf(t))

		return nil

	case srcKind == KindTime && dstKind == KindString:
		out.SetString(src.Interface().(time.Time).Format(time.RFC3339Nano))
		return nil

	case srcKind.IsInteger() && dstKind == KindTime:
		var secs int64

		err := setNumber(reflect.ValueOf(&secs).Elem(), KindInt64, src)
		if err != nil {
			return err
		}

		out.Set(reflect.ValueOf(time.Unix(secs, 0).UTC()))

		return nil

	case srcKind == KindTime && dstKind.IsInteger():
		return setNumber(out, dstKind, reflect.ValueOf(src.Interface().(time.Time).Unix()))

	case srcKind == KindString && dstKind == KindDuration:
		d, err := time.ParseDuration(strings.TrimSpace(src.String()))
		if err != nil {
			return err
		}

		out.SetInt(int64(d))

		return nil

	case srcKind == KindDuration && dstKind == KindString:
		out.SetString(time.Duration(src.Int()).String())
		return nil

	case srcKind.IsInteger() && dstKind == KindDuration:
		return setNumber(out, KindInt64, src)

	case srcKind == KindDuration && dstKind.IsInteger():
		return setNumber(out, dstKind, reflect.ValueOf(src.Int()))

	case srcKind.IsFloat() && dstKind == KindDuration:
		secs := src.Float() * float64(time.Second)

		return setNumber(out, KindInt64, reflect.ValueOf(secs))

	case srcKind == KindDuration && dstKind.IsFloat():
		return setNumber(out, dstKind, reflect.ValueOf(time.Duration(src.Int()).Seconds()))
	}

	return fmt.Errorf("%w: %s to %s", ErrNotAllowed, srcKind, dstKind)
}

// setNumber stores the numeric value of src into out, failing when it does not fit
// dstKind. Fractions are truncated toward zero for integer destinations.
func setNumber(out reflect.Value, dstKind KindEnum, src reflect.Value) error {
	switch {
	case dstKind.IsSigned() || (dstKind == KindPrimitiveEnum && isSignedKind(out.Kind())) || dstKind == KindDuration:
		bits := out.Type().Bits()
		minV := int64(-1) << (bits - 1)
		maxV := int64(uint64(1)<<(bits-1) - 1)

		switch {
		case isSignedKind(src.Kind()):
			v := src.Int()
			if !inRange(minV, v, maxV) {
				return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, out.Type())
			}

			out.SetInt(v)
		case isUnsignedKind(src.Kind()):
			v := src.Uint()
			if v > uint64(maxV) {
				return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, out.Type())
			}

			out.SetInt(int64(v))
		default:
			f := math.Trunc(src.Float())
			if math.IsNaN(f) || f < float64(minV) || f >= -float64(minV) {
				return fmt.Errorf("%w: %v does not fit %s", ErrOutOfRange, src.Float(), out.Type())
			}

			out.SetInt(int64(f))
		}

	case dstKind.IsUnsigned():
		bits := out.Type().Bits()
		maxV := uint64(math.MaxUint64) >> (64 - bits)

		switch {
		case isSignedKind(src.Kind()):
			v := src.Int()
			if v < 0 || uint64(v) > maxV {
				return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, out.Type())
			}

			out.SetUint(uint64(v))
		case isUnsignedKind(src.Kind()):
			v := src.Uint()
			if !inRange(0, v, maxV) {
				return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, out.Type())
			}

			out.SetUint(v)
		default:
			f := math.Trunc(src.Float())
			if math.IsNaN(f) || f < 0 || f >= math.Ldexp(1, bits) {
				return fmt.Errorf("%w: %v does not fit %s", ErrOutOfRange, src.Float(), out.Type())
			}

			out.SetUint(uint64(f))
		}

	case dstKind.IsFloat():
		var f float64

		switch {
		case isSignedKind(src.Kind()):
			f = float64(src.Int())
		case isUnsignedKind(src.Kind()):
			f = float64(src.Uint())
		default:
			f = src.Float()
		}

		if dstKind == KindFloat32 && !math.IsInf(f, 0) && !math.IsNaN(f) &&
			!inRange(-math.MaxFloat32, f, math.MaxFloat32) {
			return fmt.Errorf("%w: %v does not fit %s", ErrOutOfRange, f, out.Type())
		}

		out.SetFloat(f)

	default:
		return fmt.Errorf("%w: %s is not a number", ErrNotAllowed, dstKind)
	}

	return nil
}

func parseNumber(out reflect.Value, dstKind KindEnum, text string) error {
	text = strings.TrimSpace(text)

	switch {
	case dstKind.IsSigned():
		v, err := strconv.ParseInt(text, 10, dstKind.Bits())
		if err != nil {
			return err
		}

		out.SetInt(v)
	case dstKind.IsUnsigned():
		v, err := strconv.ParseUint(text, 10, dstKind.Bits())
		if err != nil {
			return err
		}

		out.SetUint(v)
	default:
		v, err := strconv.ParseFloat(text, dstKind.Bits())
		if err != nil {
			return err
		}

		out.SetFloat(v)
	}

	return nil
}

func formatNumber(src reflect.Value, srcKind KindEnum) string {
	switch {
	case srcKind.IsSigned():
		return strconv.FormatInt(src.Int(), 10)
	case srcKind.IsUnsigned():
		return strconv.FormatUint(src.Uint(), 10)
	default:
		return strconv.FormatFloat(src.Float(), 'f', -1, srcKind.Bits())
	}
}

func parseBool(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "yes", "on", "y", "t", "1":
		return true, nil
	case "false", "no", "off", "n", "f", "0":
		return false, nil
	}

	return false, fmt.Errorf("%w: %q", ErrInvalidBool, text)
}

// convertEnum handles every pair where at least one side is a named int or string type.
// Integer enums travel as their ordinal; textual forms go through String and UnmarshalText.
func convertEnum(src reflect.Value, out reflect.Value, dstKind KindEnum) error {
	switch {
	case dstKind == KindPrimitiveEnum && isSignedKind(out.Kind()):
		if isSignedKind(src.Kind()) || isUnsignedKind(src.Kind()) {
			err := setNumber(out, dstKind, src)
			if err != nil {
				return err
			}

			break
		}

		if !reflect.PointerTo(out.Type()).Implements(textUnmarshalerType) {
			return fmt.Errorf("%w: %s cannot be parsed from text", ErrInvalidEnum, out.Type())
		}

		text, err := enumText(src)
		if err != nil {
			return err
		}

		err = out.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEnum, err)
		}

	case dstKind == KindPrimitiveEnum || dstKind == KindString:
		text, err := enumText(src)
		if err != nil {
			return err
		}

		out.SetString(text)

	case dstKind.IsInteger():
		if !isSignedKind(src.Kind()) {
			return fmt.Errorf("%w: %s has no ordinal", ErrInvalidEnum, src.Type())
		}

		return setNumber(out, dstKind, src)

	default:
		return fmt.Errorf("%w: %s to %s", ErrNotAllowed, src.Type(), out.Type())
	}

	if v, ok := out.Interface().(validator); ok && !v.IsValid() {
		return fmt.Errorf("%w: %v is not a valid %s", ErrInvalidEnum, out.Interface(), out.Type())
	}

	return nil
}

func enumText(src reflect.Value) (string, error) {
	if src.Type().Implements(stringerType) {
		return src.Interface().(fmt.Stringer).String(), nil
	}

	if src.Kind() == reflect.String {
		return src.String(), nil
	}

	return "", fmt.Errorf("%w: %s has no textual form", ErrInvalidEnum, src.Type())
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
}
