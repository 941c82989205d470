// Package yamlizable binds an attribute.Collection to a Go struct type and
// reads and writes whole YAML mappings with it.
//
// For input, each key of the mapping is resolved through Collection.ByKey and
// the value node is handed to that attribute. Attributes whose key is absent
// get their default; absent required attributes and unknown keys are reported
// together in one error wrapping ErrInvalidObject. Coercion errors are
// returned as they come from the attribute.
//
// For output, attributes are visited in declaration order and every non
// omitted node lands in a mapping node under the attribute key.
//
// Nested types compose by implementing attribute.Yamlizable on top of their
// own Object:
//
//	var limitsObject = yamlizable.MustDefine[Limits](
//		[]any{"MaxConn", "max_conn", "int", 100},
//	)
//
//	func (x *Limits) FromYAML(l attribute.Loader, n *yaml.Node) error {
//		return limitsObject.Into(l, n, x)
//	}
//
//	func (x Limits) ToYAML(l attribute.Loader) (*yaml.Node, error) {
//		return limitsObject.ToYAML(l, x)
//	}
package yamlizable
