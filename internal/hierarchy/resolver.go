// Package hierarchy keeps the aliasing and inheritance facts discovered while
// reading a schema and resolves complex types down to the simple type they
// are grounded on.
//
// A Resolver has two phases. While ingesting, facts are registered from a
// single goroutine. Freeze ends that phase; from then on the resolver is
// read-only and may be shared by any number of goroutines.
package hierarchy

import (
	"errors"
	"fmt"
)

var (
	// ErrFrozen is returned when a fact is registered after Freeze.
	ErrFrozen = errors.New("type hierarchy is frozen")
	// ErrCycleDetected is returned when the parent chain of a type loops.
	ErrCycleDetected = errors.New("cycle detected in type hierarchy")
)

type Resolver struct {
	aliasToPrimitive map[string]string
	parentOf         map[string]string
	frozen           bool
}

func NewResolver() *Resolver {
	return &Resolver{
		aliasToPrimitive: make(map[string]string),
		parentOf:         make(map[string]string),
	}
}

// RegisterAlias records that complexName directly restricts the simple type
// primitiveName. The last registration for a name wins.
func (resolver *Resolver) RegisterAlias(complexName string, primitiveName string) error {
	if resolver.frozen {
		return fmt.Errorf("register alias %q: %w", complexName, ErrFrozen)
	}

	resolver.aliasToPrimitive[complexName] = primitiveName
	return nil
}

// RegisterParent records that complexName extends parentName. The last
// registration for a name wins.
func (resolver *Resolver) RegisterParent(complexName string, parentName string) error {
	if resolver.frozen {
		return fmt.Errorf("register parent of %q: %w", complexName, ErrFrozen)
	}

	resolver.parentOf[complexName] = parentName
	return nil
}

func (resolver *Resolver) Freeze() {
	resolver.frozen = true
}

func (resolver *Resolver) Frozen() bool {
	return resolver.frozen
}

// ResolveGroundedPrimitive walks up the parent chain of complexName to its
// root ancestor and returns the simple type that ancestor aliases, if any.
func (resolver *Resolver) ResolveGroundedPrimitive(complexName string) (primitiveName string, found bool, err error) {
	root, err := resolver.rootOf(complexName)
	if err != nil {
		return "", false, err
	}

	primitiveName, found = resolver.aliasToPrimitive[root]
	return primitiveName, found, nil
}

// IsKnownComplex reports whether complexName has a recorded parent.
func (resolver *Resolver) IsKnownComplex(complexName string) bool {
	_, found := resolver.parentOf[complexName]
	return found
}

// Len returns the number of recorded aliases and parent links.
func (resolver *Resolver) Len() (aliases int, parents int) {
	return len(resolver.aliasToPrimitive), len(resolver.parentOf)
}

// An acyclic chain visits every recorded parent at most once, so any walk
// longer than len(parentOf) hops has to be going round a loop.
func (resolver *Resolver) rootOf(complexName string) (string, error) {
	current := complexName
	for hops := 0; ; hops++ {
		parent, found := resolver.parentOf[current]
		if !found {
			return current, nil
		}
		if hops >= len(resolver.parentOf) {
			return "", fmt.Errorf("resolve %q: %w", complexName, ErrCycleDetected)
		}
		current = parent
	}
}
