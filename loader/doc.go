// Package loader is the node source and sink the attribute engine talks to.
//
// It sits on top of gopkg.in/yaml.v3:
//
//   - ConstructObject turns a node into its natural Go value, fully realized
//     (mappings become map[string]any, sequences []any, scalars int, float64,
//     bool, string or nil).
//   - RepresentData turns any Go value back into a node.
//   - Coerce performs single argument construction of a declared type through
//     a cast.Converter, honoring the configured options.CategoryEnum and any
//     user casters registered in a cast.Registry.
//
// A Loader is immutable once built and may be shared between goroutines.
package loader
