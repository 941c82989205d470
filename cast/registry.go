package cast

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrDuplicateCaster = errors.New("caster already registered")

// Pair identifies a conversion by its source and destination types.
type Pair struct{ Src, Dst reflect.Type }

// Registry holds user casters indexed by their (source, destination) pair.
// It is filled during setup and only read afterwards.
type Registry struct {
	casters map[Pair]Caster
}

// NewRegistry creates a registry holding the given caster functions.
func NewRegistry(fns ...any) (*Registry, error) {
	r := &Registry{casters: make(map[Pair]Caster)}

	err := r.Register(fns...)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Register parses and adds caster functions. The first invalid or duplicate one stops registration.
func (r *Registry) Register(fns ...any) error {
	if r.casters == nil {
		r.casters = make(map[Pair]Caster)
	}

	for _, fn := range fns {
		caster, err := ParseCaster(fn)
		if err != nil {
			return fmt.Errorf("register %T: %w", fn, err)
		}

		pair := Pair{Src: caster.Src, Dst: caster.Dst}
		if prev, exists := r.casters[pair]; exists {
			return fmt.Errorf("%w: %s -> %s is handled by %s",
				ErrDuplicateCaster, typeStr(pair.Src), typeStr(pair.Dst), prev)
		}

		r.casters[pair] = caster
	}

	return nil
}

// Lookup returns the caster registered for exactly src -> dst. A nil registry has none.
func (r *Registry) Lookup(src, dst reflect.Type) (Caster, bool) {
	if r == nil {
		return Caster{}, false
	}

	caster, ok := r.casters[Pair{Src: src, Dst: dst}]

	return caster, ok
}

// Len returns the number of registered casters.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.casters)
}
