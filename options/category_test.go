package options_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ntouran/yamlize/options"
)

func ExampleCategoryEnum() {
	fmt.Println(options.CategoryNone)
	fmt.Println(options.CategoryAll)
	fmt.Println(options.CategoryTextNumber | options.CategoryDuration)
	fmt.Println(options.CategoryDefault.Has(options.CategorySafeArray))
	fmt.Println(options.CategoryDefault.Has(options.CategoryUnsafeArray))

	// Output:
	// None
	// All
	// TextNumber|Duration
	// true
	// false
}

func TestCategoryConstantsAreTyped(t *testing.T) {
	t.Parallel()

	all, none := options.CategoryAll, options.CategoryNone
	assert.IsType(t, options.CategoryEnum(0), all)
	assert.IsType(t, options.CategoryEnum(0), none)
	assert.Equal(t, "All", all.String())
	assert.Equal(t, "None", none.String())
	assert.True(t, all.Has(options.CategoryUnsafeArray|options.CategorySafeNumber))
}
