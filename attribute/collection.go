package attribute

import (
	"fmt"
	"slices"
)

// Collection holds the attributes of one type, indexed by key and by name.
// Attributes keeps declaration order for output.
type Collection struct {
	byKey  map[string]*Attribute
	byName map[string]*Attribute
	order  []*Attribute
}

// NewCollection builds a collection from attributes or raw specs (see FromSpec).
func NewCollection(specs ...any) (*Collection, error) {
	c := &Collection{
		byKey:  make(map[string]*Attribute, len(specs)),
		byName: make(map[string]*Attribute, len(specs)),
		order:  make([]*Attribute, 0, len(specs)),
	}

	for i, spec := range specs {
		attr, err := FromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("attribute #%d: %w", i, err)
		}

		err = c.Add(attr)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// MustCollection is NewCollection for package level schema declarations; it panics on error.
func MustCollection(specs ...any) *Collection {
	c, err := NewCollection(specs...)
	if err != nil {
		panic(err)
	}

	return c
}

// Add registers a copy of an attribute. Its key and its name must both be unused.
func (c *Collection) Add(a *Attribute) error {
	if a == nil {
		return &UnsupportedSpecError{Spec: a, Reason: "nil attribute"}
	}

	if c.byKey == nil {
		c.byKey = make(map[string]*Attribute)
		c.byName = make(map[string]*Attribute)
	}

	if prev, ok := c.byKey[a.Key]; ok {
		return &CollisionError{Field: "key", Value: a.Key, Attribute: a, Previous: prev}
	}

	if prev, ok := c.byName[a.Name]; ok {
		return &CollisionError{Field: "name", Value: a.Name, Attribute: a, Previous: prev}
	}

	owned := *a

	c.byKey[a.Key] = &owned
	c.byName[a.Name] = &owned
	c.order = append(c.order, &owned)

	return nil
}

// ByKey returns the attribute read from YAML key key.
func (c *Collection) ByKey(key string) (*Attribute, bool) {
	a, ok := c.byKey[key]
	return a, ok
}

// ByName returns the attribute bound to Go identifier name.
func (c *Collection) ByName(name string) (*Attribute, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// Attributes returns the attributes in declaration order.
func (c *Collection) Attributes() []*Attribute {
	return slices.Clone(c.order)
}

// Len returns the number of attributes.
func (c *Collection) Len() int {
	return len(c.order)
}
