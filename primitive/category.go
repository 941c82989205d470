package primitive

import "github.com/ntouran/yamlize/options"

// ConversionPair is an ordered (from, to) pair of kinds.
type ConversionPair struct {
	From, To KindEnum
}

// pairCategories maps each known pair to every category that permits it.
var pairCategories = buildPairCategories()

// Allowed reports whether any category of allowed covers the pair.
func Allowed(pair ConversionPair, allowed options.CategoryEnum) bool {
	return pairCategories[pair]&allowed != 0
}

type pairTable map[ConversionPair]options.CategoryEnum

func (t pairTable) both(category options.CategoryEnum, a, b KindEnum) {
	t[ConversionPair{a, b}] |= category
	t[ConversionPair{b, a}] |= category
}

func buildPairCategories() pairTable {
	t := pairTable{}

	for from := KindEnum(1); int(from) < KindTotal; from++ {
		switch {
		case from.IsNumber():
			for to := KindEnum(1); int(to) < KindTotal; to++ {
				if !to.IsNumber() {
					continue
				}

				if isSafeNumber(from, to) {
					t[ConversionPair{from, to}] |= options.CategorySafeNumber
				} else {
					t[ConversionPair{from, to}] |= options.CategoryUnsafeNumber
				}
			}

			t.both(options.CategoryTextNumber, from, KindString)

			if from.IsInteger() {
				t.both(options.CategoryNumericBool, from, KindBool)
				t.both(options.CategoryTimestamp, from, KindTime)
				t.both(options.CategoryEnumString, from, KindPrimitiveEnum)

				// uint64 nanoseconds do not fit a Duration
				if from != KindUint64 {
					t.both(options.CategoryNanoseconds, from, KindDuration)
				}
			}

			if from.IsFloat() {
				t.both(options.CategorySeconds, from, KindDuration)
			}
		}
	}

	t.both(options.CategoryTextualBool, KindString, KindBool)
	t.both(options.CategoryDatetime, KindString, KindTime)
	t.both(options.CategoryDuration, KindString, KindDuration)
	t.both(options.CategoryEnumString, KindString, KindPrimitiveEnum)
	t[ConversionPair{KindPrimitiveEnum, KindPrimitiveEnum}] |= options.CategoryEnumString

	return t
}

// isSafeNumber reports whether every value of from is exactly representable in to.
// int and uint count as 64 bits wide on the source side and 32 on the destination side.
func isSafeNumber(from, to KindEnum) bool {
	if from == to {
		return true
	}

	srcBits, dstBits := from.Bits(), to.Bits()
	if from == KindInt || from == KindUint {
		srcBits = 64
	}

	if to == KindInt || to == KindUint {
		dstBits = 32
	}

	switch {
	case to.IsFloat():
		if from.IsFloat() {
			return srcBits <= dstBits
		}

		return srcBits < mantissaBits(to)
	case from.IsFloat():
		return false
	case from.IsSigned() == to.IsSigned():
		return srcBits <= dstBits
	case from.IsUnsigned():
		return srcBits < dstBits
	default:
		return false
	}
}

func mantissaBits(k KindEnum) int {
	if k == KindFloat32 {
		return 24
	}

	return 53
}
