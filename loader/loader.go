package loader

import (
	"errors"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/ntouran/yamlize/cast"
	"github.com/ntouran/yamlize/options"
)

var (
	ErrNilNode       = errors.New("nil or empty node")
	ErrEmptyDocument = errors.New("empty YAML document")
)

// Loader constructs natural values from nodes, represents values as nodes and
// coerces values into declared types.
type Loader struct {
	conv *cast.Converter
}

// Option configures a Loader.
type Option func(*Loader)

// WithCategories sets which conversion categories coercion may apply.
func WithCategories(allowed options.CategoryEnum) Option {
	return func(l *Loader) {
		l.conv.Allowed = allowed
	}
}

// WithRegistry installs user casters, consulted before any built-in conversion.
func WithRegistry(r *cast.Registry) Option {
	return func(l *Loader) {
		l.conv.Registry = r
	}
}

// New creates a Loader allowing options.CategoryDefault conversions.
func New(opts ...Option) *Loader {
	l := &Loader{conv: cast.NewConverter(options.CategoryDefault)}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Categories returns the conversion categories coercion may apply.
func (l *Loader) Categories() options.CategoryEnum {
	return l.conv.Allowed
}

// ConstructObject returns the natural value of n, deeply constructed.
func (l *Loader) ConstructObject(n *yaml.Node) (any, error) {
	if n == nil || n.Kind == 0 {
		return nil, ErrNilNode
	}

	var v any

	err := n.Decode(&v)
	if err != nil {
		return nil, fmt.Errorf("construct value at %s: %w", Mark(n), err)
	}

	return v, nil
}

// RepresentData returns a node representing v.
func (l *Loader) RepresentData(v any) (*yaml.Node, error) {
	var n yaml.Node

	err := n.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("represent %T: %w", v, err)
	}

	return &n, nil
}

// Coerce builds a value of type t from v.
func (l *Loader) Coerce(v any, t reflect.Type) (any, error) {
	return l.conv.Convert(v, t)
}

// Parse reads a single YAML document and returns its root node.
func (l *Loader) Parse(data []byte) (*yaml.Node, error) {
	var doc yaml.Node

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	root := Resolve(&doc)
	if root == nil || root.Kind == 0 {
		return nil, ErrEmptyDocument
	}

	return root, nil
}

// Emit renders n as YAML text.
func (l *Loader) Emit(n *yaml.Node) ([]byte, error) {
	if n == nil {
		return nil, ErrNilNode
	}

	data, err := yaml.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to emit YAML: %w", err)
	}

	return data, nil
}
