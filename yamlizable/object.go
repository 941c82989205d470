package yamlizable

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ntouran/yamlize/attribute"
	"github.com/ntouran/yamlize/internal/diagnostic"
	"github.com/ntouran/yamlize/loader"
	"github.com/ntouran/yamlize/options"
	"github.com/ntouran/yamlize/primitive"
)

var (
	ErrNotStruct     = errors.New("object type must be a struct")
	ErrUnknownField  = errors.New("attribute does not name an exported field")
	ErrFieldType     = errors.New("attribute type cannot be stored in field")
	ErrNoAttributes  = errors.New("nil attribute collection")
	ErrNotMapping    = errors.New("expected a mapping node")
	ErrInvalidObject = errors.New("invalid object")
)

// Object reads and writes values of struct type T through a collection of attributes.
// It is immutable once built and safe for concurrent use.
type Object[T any] struct {
	name   string
	attrs  *attribute.Collection
	fields map[string][]int
	log    zerolog.Logger
	strict bool
}

type config struct {
	log    zerolog.Logger
	strict bool
}

// Option configures an Object.
type Option func(*config)

// WithLogger sets the logger used for debug events. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithStrict controls whether unknown keys are errors (the default) or skipped.
func WithStrict(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// NewObject binds attrs to T. Every attribute name must be an exported field of T
// whose type the attribute type can be converted to.
func NewObject[T any](attrs *attribute.Collection, opts ...Option) (*Object[T], error) {
	if attrs == nil {
		return nil, ErrNoAttributes
	}

	cfg := config{log: zerolog.Nop(), strict: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, rt)
	}

	fields := make(map[string][]int, attrs.Len())

	for _, attr := range attrs.Attributes() {
		field, err := exportedField(rt, attr.Name)
		if err != nil {
			return nil, err
		}

		if !attr.IsAny() && !fits(attr.Type, field.Type) {
			return nil, fmt.Errorf("%w: %s.%s is %s, attribute %q is %s",
				ErrFieldType, rt, attr.Name, field.Type, attr.Key, attr.Type)
		}

		fields[attr.Name] = field.Index
	}

	return &Object[T]{
		name:   rt.String(),
		attrs:  attrs,
		fields: fields,
		log:    cfg.log.With().Str("object", rt.String()).Logger(),
		strict: cfg.strict,
	}, nil
}

// Define builds the collection from specs (see attribute.FromSpec) and binds it to T.
func Define[T any](specs ...any) (*Object[T], error) {
	attrs, err := attribute.NewCollection(specs...)
	if err != nil {
		return nil, err
	}

	return NewObject[T](attrs)
}

// MustDefine is Define for package level declarations; it panics on error.
func MustDefine[T any](specs ...any) *Object[T] {
	o, err := Define[T](specs...)
	if err != nil {
		panic(err)
	}

	return o
}

// exportedField finds an exported field, refusing promotion through embedded pointers
// since those may be nil on a zero value.
func exportedField(rt reflect.Type, name string) (reflect.StructField, error) {
	field, ok := rt.FieldByName(name)
	if !ok || !field.IsExported() {
		return reflect.StructField{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, rt, name)
	}

	t := rt
	for _, i := range field.Index[:len(field.Index)-1] {
		t = t.Field(i).Type
		if t.Kind() == reflect.Ptr {
			return reflect.StructField{}, fmt.Errorf("%w: %s.%s is promoted through a pointer", ErrUnknownField, rt, name)
		}
	}

	return field, nil
}

// fits reports whether the built-in conversions can turn a src value into a dst value.
// Interface sources are decided at run time. Pairs that only a registered caster
// bridges need an Any attribute.
func fits(src, dst reflect.Type) bool {
	switch {
	case src.AssignableTo(dst), src.ConvertibleTo(dst), src.Kind() == reflect.Interface:
		return true
	case dst.Kind() == reflect.Ptr:
		return fits(src, dst.Elem())
	case src.Kind() == reflect.Ptr:
		return fits(src.Elem(), dst)
	case isSequence(src) && isSequence(dst):
		return fits(src.Elem(), dst.Elem())
	case src.Kind() == reflect.Map && dst.Kind() == reflect.Map:
		return fits(src.Key(), dst.Key()) && fits(src.Elem(), dst.Elem())
	}

	from, to := primitive.FromReflectType(src), primitive.FromReflectType(dst)

	return from != 0 && to != 0 && primitive.Allowed(primitive.ConversionPair{From: from, To: to}, options.CategoryAll)
}

func isSequence(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}

// Attributes returns the collection the object was built from.
func (o *Object[T]) Attributes() *attribute.Collection {
	return o.attrs
}

// FromYAML builds a T from a mapping node.
func (o *Object[T]) FromYAML(l attribute.Loader, n *yaml.Node) (T, error) {
	var out T

	n = loader.Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		kind := yaml.Kind(0)
		if n != nil {
			kind = n.Kind
		}

		return out, fmt.Errorf("%w for %s at %s, got %s", ErrNotMapping, o.name, loader.Mark(n), loader.KindName(kind))
	}

	rv := reflect.ValueOf(&out).Elem()
	seen := make(map[string]bool, o.attrs.Len())

	var diags diagnostic.Diagnostics

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]

		attr, ok := o.attrs.ByKey(keyNode.Value)
		if !ok {
			if o.strict {
				diags.AddError(diagnostic.CodeUnknownKey, "unknown key", keyNode.Value, keyNode.Line, keyNode.Column)
			} else {
				diags.AddWarning(diagnostic.CodeUnknownKey, "unknown key skipped", keyNode.Value, keyNode.Line, keyNode.Column)
			}

			continue
		}

		if seen[attr.Name] {
			diags.AddError(diagnostic.CodeDuplicateKey, "key given more than once", keyNode.Value, keyNode.Line, keyNode.Column)
			continue
		}

		seen[attr.Name] = true

		value, err := attr.FromYAML(l, valueNode)
		if err != nil {
			return out, err
		}

		err = o.set(l, rv, attr, value, valueNode)
		if err != nil {
			return out, err
		}
	}

	for _, attr := range o.attrs.Attributes() {
		if seen[attr.Name] {
			continue
		}

		def, err := attr.Default.Get()
		if err != nil {
			diags.AddError(diagnostic.CodeMissingRequired, "required attribute is missing", attr.Key, n.Line, n.Column)
			continue
		}

		err = o.set(l, rv, attr, def, nil)
		if err != nil {
			return out, err
		}

		diags.AddInfo(diagnostic.CodeDefaultApplied, "default applied", attr.Key, 0, 0)
	}

	for d := range diags.Notes() {
		ev := o.log.Debug().Str("code", string(d.Code)).Str("key", d.Key)
		if d.Line > 0 {
			ev = ev.Int("line", d.Line).Int("column", d.Column)
		}

		ev.Msg(d.Message)
	}

	if diags.HasErrors() {
		return out, fmt.Errorf("%w %s: %w", ErrInvalidObject, o.name, diags.Error())
	}

	return out, nil
}

// Into is FromYAML storing the result in dst, for use in attribute.Yamlizable implementations.
func (o *Object[T]) Into(l attribute.Loader, n *yaml.Node, dst *T) error {
	v, err := o.FromYAML(l, n)
	if err != nil {
		return err
	}

	*dst = v

	return nil
}

// set stores value in the field bound to attr, coercing it to the field type when needed.
func (o *Object[T]) set(l attribute.Loader, rv reflect.Value, attr *attribute.Attribute, value any, n *yaml.Node) error {
	field := rv.FieldByIndex(o.fields[attr.Name])

	if value != nil && reflect.TypeOf(value).AssignableTo(field.Type()) {
		field.Set(reflect.ValueOf(value))
		return nil
	}

	coerced, err := l.Coerce(value, field.Type())
	if err != nil {
		ce := &attribute.CoercionError{Value: value, Type: field.Type(), Err: err}
		if n != nil {
			ce.Line, ce.Column = n.Line, n.Column
		}

		return ce
	}

	if coerced == nil {
		field.SetZero()
		return nil
	}

	field.Set(reflect.ValueOf(coerced))

	return nil
}

// ToYAML builds a mapping node from v, leaving out attributes that resolve to nothing.
func (o *Object[T]) ToYAML(l attribute.Loader, v T) (*yaml.Node, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	rv := reflect.ValueOf(v)

	for _, attr := range o.attrs.Attributes() {
		field := rv.FieldByIndex(o.fields[attr.Name])

		n, err := attr.ToYAML(l, field.Interface())
		if err != nil {
			return nil, err
		}

		if n == nil {
			o.log.Debug().Str("key", attr.Key).Msg("default omitted")
			continue
		}

		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: attr.Key},
			n,
		)
	}

	return out, nil
}

// Unmarshal parses data and reads a T from its root mapping.
func (o *Object[T]) Unmarshal(data []byte, opts ...loader.Option) (T, error) {
	l := loader.New(opts...)

	root, err := l.Parse(data)
	if err != nil {
		var zero T
		return zero, err
	}

	return o.FromYAML(l, root)
}

// Marshal renders v as a YAML mapping.
func (o *Object[T]) Marshal(v T, opts ...loader.Option) ([]byte, error) {
	l := loader.New(opts...)

	n, err := o.ToYAML(l, v)
	if err != nil {
		return nil, err
	}

	return l.Emit(n)
}
