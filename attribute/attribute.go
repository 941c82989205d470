package attribute

import (
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

// Loader is what an attribute needs from the node layer: natural value
// construction, representation, and single argument construction of a type.
type Loader interface {
	ConstructObject(n *yaml.Node) (any, error)
	RepresentData(v any) (*yaml.Node, error)
	Coerce(v any, t reflect.Type) (any, error)
}

// Yamlizable is implemented by types that read themselves from a node and
// write themselves to one. An attribute whose type (or pointer to it)
// implements Yamlizable hands the whole conversion over to the type.
type Yamlizable interface {
	FromYAML(l Loader, n *yaml.Node) error
	ToYAML(l Loader) (*yaml.Node, error)
}

// wildcard has no implementations, so no value ever has it as its type.
type wildcard interface{ wildcard() }

// Any is the type of attributes that keep whatever the loader constructs.
var Any = reflect.TypeFor[wildcard]()

var yamlizableType = reflect.TypeFor[Yamlizable]()

// Default is either a declared default value or NoDefault.
type Default struct {
	value any
	ok    bool
}

// NoDefault marks an attribute that must always be supplied. It never yields a value.
var NoDefault Default

// DefaultValue declares v as a default. Passing a Default returns it unchanged.
func DefaultValue(v any) Default {
	if d, ok := v.(Default); ok {
		return d
	}

	return Default{value: v, ok: true}
}

// Get returns the default value, or ErrNoDefault for NoDefault.
func (d Default) Get() (any, error) {
	if !d.ok {
		return nil, ErrNoDefault
	}

	return d.value, nil
}

// IsSet reports whether a default was declared.
func (d Default) IsSet() bool { return d.ok }

// Equal reports whether a default was declared and deeply equals v.
// A nil default equals every nil pointer, map, slice or interface.
func (d Default) Equal(v any) bool {
	if !d.ok {
		return false
	}

	if isNil(d.value) {
		return isNil(v)
	}

	return reflect.DeepEqual(d.value, v)
}

func (d Default) String() string {
	if !d.ok {
		return "NODEFAULT"
	}

	return spew.Sprintf("%v", d.value)
}

// Attribute describes one slot of a Go value and the YAML key it travels under.
type Attribute struct {
	// Name is the Go side identifier.
	Name string
	// Key is the YAML mapping key.
	Key string
	// Type is the declared type, or Any.
	Type reflect.Type
	// Default is used when the key is missing.
	Default Default
}

// Option configures an Attribute under construction.
type Option func(*Attribute)

// WithKey sets the YAML key. An empty key means the name.
func WithKey(key string) Option {
	return func(a *Attribute) { a.Key = key }
}

// WithType sets the declared type. A nil type means Any.
func WithType(t reflect.Type) Option {
	return func(a *Attribute) { a.Type = t }
}

// WithDefault declares a default value. WithDefault(NoDefault) keeps the attribute required.
func WithDefault(v any) Option {
	return func(a *Attribute) { a.Default = DefaultValue(v) }
}

// New creates an attribute. Key defaults to name, Type to Any, Default to NoDefault.
func New(name string, opts ...Option) *Attribute {
	a := &Attribute{Name: name, Type: Any}

	for _, opt := range opts {
		opt(a)
	}

	if a.Key == "" {
		a.Key = a.Name
	}

	if a.Type == nil {
		a.Type = Any
	}

	return a
}

// IsAny reports whether the attribute keeps natural values as they are.
func (a *Attribute) IsAny() bool { return a.Type == nil || a.Type == Any }

// IsYamlizable reports whether conversions are delegated to the declared type.
func (a *Attribute) IsYamlizable() bool { return isYamlizable(a.Type) }

// HasDefault reports whether a default was declared.
func (a *Attribute) HasDefault() bool { return a.Default.IsSet() }

func (a *Attribute) String() string {
	return fmt.Sprintf("Attribute(name=%q, key=%q, type=%s, default=%s)",
		a.Name, a.Key, typeName(a.Type), a.Default)
}

// FromYAML returns the value n holds for this attribute.
func (a *Attribute) FromYAML(l Loader, n *yaml.Node) (any, error) {
	if a.IsYamlizable() {
		return decodeYamlizable(a.Type, l, n)
	}

	value, err := l.ConstructObject(n)
	if err != nil {
		return nil, err
	}

	if a.IsAny() || isInstance(value, a.Type) {
		return value, nil
	}

	coerced, err := l.Coerce(value, a.Type)
	if err != nil {
		return nil, newCoercionError(value, a.Type, n, err)
	}

	return coerced, nil
}

// ToYAML returns the node representing data. A nil node with a nil error
// means the attribute is left out of the output.
func (a *Attribute) ToYAML(l Loader, data any) (*yaml.Node, error) {
	if a.IsYamlizable() {
		if !isInstance(data, a.Type) {
			// compared before coercion, so defaults of a foreign type still short circuit
			if a.Default.Equal(data) {
				return nil, nil
			}

			coerced, err := l.Coerce(data, a.Type)
			if err != nil {
				return nil, newCoercionError(data, a.Type, nil, err)
			}

			data = coerced
		}

		return encodeYamlizable(l, data)
	}

	if !a.IsAny() && !isInstance(data, a.Type) {
		coerced, err := l.Coerce(data, a.Type)
		if err != nil {
			return nil, newCoercionError(data, a.Type, nil, err)
		}

		data = coerced
	}

	return l.RepresentData(data)
}

// isInstance reports whether v is a non-nil value of type t.
func isInstance(v any, t reflect.Type) bool {
	return !isNil(v) && reflect.TypeOf(v).AssignableTo(t)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// isNullNode reports whether n, after aliases, is an explicit YAML null.
func isNullNode(n *yaml.Node) bool {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}

	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func isYamlizable(t reflect.Type) bool {
	if t == nil || t == Any || t.Kind() == reflect.Interface {
		return false
	}

	if t.Implements(yamlizableType) {
		return true
	}

	return t.Kind() != reflect.Ptr && reflect.PointerTo(t).Implements(yamlizableType)
}

// decodeYamlizable lets a fresh instance of t read n. Pointer types yield the pointer
// itself, or a nil pointer for an explicit null.
func decodeYamlizable(t reflect.Type, l Loader, n *yaml.Node) (any, error) {
	if t.Kind() == reflect.Ptr {
		if isNullNode(n) {
			return reflect.Zero(t).Interface(), nil
		}

		ptr := reflect.New(t.Elem())

		err := ptr.Interface().(Yamlizable).FromYAML(l, n)
		if err != nil {
			return nil, err
		}

		return ptr.Interface(), nil
	}

	ptr := reflect.New(t)

	err := ptr.Interface().(Yamlizable).FromYAML(l, n)
	if err != nil {
		return nil, err
	}

	return ptr.Elem().Interface(), nil
}

func encodeYamlizable(l Loader, data any) (*yaml.Node, error) {
	v := reflect.ValueOf(data)
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return l.RepresentData(nil)
	}

	if y, ok := data.(Yamlizable); ok {
		return y.ToYAML(l)
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)

	return ptr.Interface().(Yamlizable).ToYAML(l)
}

func typeName(t reflect.Type) string {
	switch t {
	case nil, Any:
		return "ANY"
	default:
		return t.String()
	}
}
