// Package attribute maps one named, typed slot of a Go value to one key of a
// YAML mapping, and keeps the set of such slots for a type.
//
// # Attributes
//
// An Attribute carries:
//
//   - Name: the Go side identifier (a struct field name)
//   - Key: the YAML side key, Name unless given
//   - Type: the declared type, or Any to keep whatever YAML produced
//   - Default: a value used when the key is absent, or NoDefault
//
// Reading a node (FromYAML):
//
//  1. Types implementing Yamlizable (on the type or its pointer) decode the node themselves.
//  2. Otherwise the node's natural value is constructed.
//  3. Any, or a natural value already of Type, is returned unchanged.
//  4. Otherwise the value is coerced into Type; failure is a *CoercionError
//     carrying the value, the type and the node position.
//
// Writing a value (ToYAML) mirrors this: Yamlizable types encode themselves,
// a value that is not yet of such a type and equals the declared default is
// omitted (nil node, nil error), other values are coerced into Type before
// being represented.
//
// # Collections
//
// A Collection indexes attributes by Key and by Name and rejects duplicates of
// either with a *CollisionError. It is built once per type and only read after.
package attribute
