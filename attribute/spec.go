package attribute

import (
	"fmt"
	"reflect"
	"time"
)

var basicTypes = map[string]reflect.Type{
	"any":            Any,
	"bool":           reflect.TypeFor[bool](),
	"string":         reflect.TypeFor[string](),
	"int":            reflect.TypeFor[int](),
	"int8":           reflect.TypeFor[int8](),
	"int16":          reflect.TypeFor[int16](),
	"int32":          reflect.TypeFor[int32](),
	"int64":          reflect.TypeFor[int64](),
	"uint":           reflect.TypeFor[uint](),
	"uint8":          reflect.TypeFor[uint8](),
	"uint16":         reflect.TypeFor[uint16](),
	"uint32":         reflect.TypeFor[uint32](),
	"uint64":         reflect.TypeFor[uint64](),
	"byte":           reflect.TypeFor[byte](),
	"rune":           reflect.TypeFor[rune](),
	"float32":        reflect.TypeFor[float32](),
	"float64":        reflect.TypeFor[float64](),
	"time.Time":      reflect.TypeFor[time.Time](),
	"time.Duration":  reflect.TypeFor[time.Duration](),
	"[]any":          reflect.TypeFor[[]any](),
	"map[string]any": reflect.TypeFor[map[string]any](),
}

// TypeByName resolves the basic Go type names usable in raw specs. "any" is Any.
func TypeByName(name string) (reflect.Type, bool) {
	t, ok := basicTypes[name]
	return t, ok
}

// FromSpec normalizes one collection entry into an Attribute. Accepted forms:
//
//   - *Attribute or Attribute
//   - map[string]any with keys "name", "key", "type", "default"
//   - []any positional (name[, key[, type[, default]]])
//
// Types may be a reflect.Type, a name known to TypeByName, or nil for Any.
// A missing default means NoDefault.
func FromSpec(spec any) (*Attribute, error) {
	switch s := spec.(type) {
	case *Attribute:
		if s == nil {
			return nil, &UnsupportedSpecError{Spec: spec, Reason: "nil attribute"}
		}

		return s, nil

	case Attribute:
		return New(s.Name, WithKey(s.Key), WithType(s.Type), WithDefault(s.Default)), nil

	case map[string]any:
		return fromKeywords(s)

	case []any:
		return fromPositional(s)

	default:
		return nil, &UnsupportedSpecError{Spec: spec}
	}
}

func fromKeywords(spec map[string]any) (*Attribute, error) {
	var opts []Option

	for k := range spec {
		switch k {
		case "name", "key", "type", "default":
		default:
			return nil, &UnsupportedSpecError{Spec: spec, Reason: fmt.Sprintf("unexpected keyword %q", k)}
		}
	}

	name, ok := spec["name"].(string)
	if !ok || name == "" {
		return nil, &UnsupportedSpecError{Spec: spec, Reason: "name must be a non-empty string"}
	}

	if v, present := spec["key"]; present && v != nil {
		key, ok := v.(string)
		if !ok {
			return nil, &UnsupportedSpecError{Spec: spec, Reason: "key must be a string"}
		}

		opts = append(opts, WithKey(key))
	}

	t, err := parseType(spec, spec["type"])
	if err != nil {
		return nil, err
	}

	opts = append(opts, WithType(t))

	if v, present := spec["default"]; present {
		opts = append(opts, WithDefault(v))
	}

	return New(name, opts...), nil
}

func fromPositional(spec []any) (*Attribute, error) {
	if len(spec) == 0 || len(spec) > 4 {
		return nil, &UnsupportedSpecError{Spec: spec, Reason: "expected 1 to 4 positional values"}
	}

	name, ok := spec[0].(string)
	if !ok || name == "" {
		return nil, &UnsupportedSpecError{Spec: spec, Reason: "name must be a non-empty string"}
	}

	var opts []Option

	if len(spec) > 1 && spec[1] != nil {
		key, ok := spec[1].(string)
		if !ok {
			return nil, &UnsupportedSpecError{Spec: spec, Reason: "key must be a string"}
		}

		opts = append(opts, WithKey(key))
	}

	if len(spec) > 2 {
		t, err := parseType(spec, spec[2])
		if err != nil {
			return nil, err
		}

		opts = append(opts, WithType(t))
	}

	if len(spec) > 3 {
		opts = append(opts, WithDefault(spec[3]))
	}

	return New(name, opts...), nil
}

func parseType(spec, v any) (reflect.Type, error) {
	switch t := v.(type) {
	case nil:
		return Any, nil
	case reflect.Type:
		return t, nil
	case string:
		rt, ok := TypeByName(t)
		if !ok {
			return nil, &UnsupportedSpecError{Spec: spec, Reason: fmt.Sprintf("unknown type name %q", t)}
		}

		return rt, nil
	default:
		return nil, &UnsupportedSpecError{Spec: spec, Reason: fmt.Sprintf("type must be reflect.Type or a type name, got %T", v)}
	}
}
