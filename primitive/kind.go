package primitive

import (
	"reflect"
	"strconv"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum classifies the scalar types a conversion can start from or end in.
type KindEnum int

const (
	_ KindEnum = iota // zero means "not a scalar"

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named signed integer or string type

	KindTotal = int(iota)
)

type numberClass uint8

const (
	classNone numberClass = iota
	classSigned
	classUnsigned
	classFloat
)

type kindInfo struct {
	class numberClass
	bits  int
}

var kinds = [KindTotal]kindInfo{
	KindInt:     {classSigned, strconv.IntSize},
	KindInt8:    {classSigned, 8},
	KindInt16:   {classSigned, 16},
	KindInt32:   {classSigned, 32},
	KindInt64:   {classSigned, 64},
	KindUint:    {classUnsigned, strconv.IntSize},
	KindUint8:   {classUnsigned, 8},
	KindUint16:  {classUnsigned, 16},
	KindUint32:  {classUnsigned, 32},
	KindUint64:  {classUnsigned, 64},
	KindFloat32: {classFloat, 32},
	KindFloat64: {classFloat, 64},
}

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

var exactTypes = map[reflect.Type]KindEnum{
	reflect.TypeFor[int]():     KindInt,
	reflect.TypeFor[int8]():    KindInt8,
	reflect.TypeFor[int16]():   KindInt16,
	reflect.TypeFor[int32]():   KindInt32,
	reflect.TypeFor[int64]():   KindInt64,
	reflect.TypeFor[uint]():    KindUint,
	reflect.TypeFor[uint8]():   KindUint8,
	reflect.TypeFor[uint16]():  KindUint16,
	reflect.TypeFor[uint32]():  KindUint32,
	reflect.TypeFor[uint64]():  KindUint64,
	reflect.TypeFor[float32](): KindFloat32,
	reflect.TypeFor[float64](): KindFloat64,
	reflect.TypeFor[bool]():    KindBool,
	reflect.TypeFor[string]():  KindString,
	timeType:                   KindTime,
	durationType:               KindDuration,
}

func (k KindEnum) info() kindInfo {
	if k <= 0 || int(k) >= KindTotal {
		return kindInfo{}
	}

	return kinds[k]
}

func (k KindEnum) IsNumber() bool { return k.info().class != classNone }

func (k KindEnum) IsInteger() bool { return k.IsSigned() || k.IsUnsigned() }

func (k KindEnum) IsFloat() bool { return k.info().class == classFloat }

func (k KindEnum) IsSigned() bool { return k.info().class == classSigned }

func (k KindEnum) IsUnsigned() bool { return k.info().class == classUnsigned }

// Bits is the storage width of a number kind. It panics for other kinds.
func (k KindEnum) Bits() int {
	info := k.info()
	if info.class == classNone {
		panic("only number kinds have a bit width, requested for: " + k.String())
	}

	return info.bits
}

// FromReflectType returns the kind of rtype, or zero when rtype is not a scalar
// the conversion tables know about.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	if k, ok := exactTypes[rtype]; ok {
		return k
	}

	switch rtype.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.String:
		return KindPrimitiveEnum
	default:
		return 0
	}
}
