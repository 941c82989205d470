package attribute

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

var (
	ErrCoercion        = errors.New("failed to coerce value")
	ErrCollision       = errors.New("attribute collection already contains an entry")
	ErrUnsupportedSpec = errors.New("unsupported attribute specification")
	ErrNoDefault       = errors.New("attribute has no default")
)

// CoercionError reports a value that could not be converted to an attribute's type.
// Line and Column are zero when the value did not come from a node.
type CoercionError struct {
	Value  any
	Type   reflect.Type
	Line   int
	Column int
	Err    error
}

func newCoercionError(value any, t reflect.Type, n *yaml.Node, err error) *CoercionError {
	e := &CoercionError{Value: value, Type: t, Err: err}
	if n != nil {
		e.Line, e.Column = n.Line, n.Column
	}

	return e
}

func (e *CoercionError) Error() string {
	msg := spew.Sprintf("failed to coerce value `%v` to type `%s`", e.Value, typeName(e.Type))

	if e.Line > 0 {
		msg = fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, msg)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *CoercionError) Unwrap() error { return e.Err }

func (e *CoercionError) Is(target error) bool { return target == ErrCoercion }

// CollisionError reports an attribute whose key or name is already taken.
type CollisionError struct {
	// Field is "key" or "name".
	Field     string
	Value     string
	Attribute *Attribute
	Previous  *Attribute
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s for %s %q, previously defined: %s", ErrCollision, e.Field, e.Value, e.Previous)
}

func (e *CollisionError) Is(target error) bool { return target == ErrCollision }

// UnsupportedSpecError reports a raw collection entry that cannot become an Attribute.
type UnsupportedSpecError struct {
	Spec   any
	Reason string
}

func (e *UnsupportedSpecError) Error() string {
	msg := fmt.Sprintf("%s %T: %v", ErrUnsupportedSpec, e.Spec, e.Spec)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}

	return msg
}

func (e *UnsupportedSpecError) Is(target error) bool { return target == ErrUnsupportedSpec }
