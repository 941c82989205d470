package options

import "strings"

// CategoryEnum is a bit set of conversion categories a caster is allowed to apply
// when a value does not already have the declared type.
type CategoryEnum int

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration: numerical (integer) duration representation
	CategorySeconds                               // float(seconds) <-> time.Duration: numerical (floating-point) duration representation
	CategoryEnumString                            // string <-> enum: textual representation of an enum type (uses parse/isValid/string methods)
	CategorySafeArray                             // slice <-> array: slice perfectly fits into an array
	CategoryUnsafeArray                           // slice <-> array: slice does not fit into an array, slices are cut, arrays leaved with zero values

	CategoryAll  CategoryEnum = (1 << iota) - 1 // all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected

	// CategoryDefault is what a loader allows unless configured otherwise:
	// everything except silently cutting sequences to fit an array.
	CategoryDefault = CategoryAll &^ CategoryUnsafeArray
)

var categoryNames = []string{
	"SafeNumber",
	"UnsafeNumber",
	"TextNumber",
	"NumericBool",
	"TextualBool",
	"Datetime",
	"Timestamp",
	"Duration",
	"Nanoseconds",
	"Seconds",
	"EnumString",
	"SafeArray",
	"UnsafeArray",
}

// Has reports whether every category of other is present in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}

// String returns the "|" separated names of the categories in c.
func (c CategoryEnum) String() string {
	if c == CategoryNone {
		return "None"
	}

	if c == CategoryAll {
		return "All"
	}

	var parts []string

	for i, name := range categoryNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}

	return strings.Join(parts, "|")
}
