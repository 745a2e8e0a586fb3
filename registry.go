package objmap

import (
	"reflect"
	"sync"
)

// MapperKey identifies a registered custom mapper by its exact nominal
// (source, target) type pair. Container type arguments never appear here:
// container conversion is always structural, so pairs like []string to []int
// are not separately registrable.
type MapperKey struct {
	From reflect.Type
	To   reflect.Type
}

// MapperFunc converts a single source value into the target type. The second
// return reports whether a value was produced; returning false lets the
// cascade fall through to the built-in scalar conversion.
type MapperFunc func(source any) (any, bool)

// MapperRegistry associates (source, target) type pairs with user-supplied
// conversion functions.
//
// At most one entry exists per pair: registering a second mapper for the same
// pair silently replaces the first (last-write-wins, not an error).
//
// The registry is read-mostly. Entries are immutable once stored, so
// concurrent lookups are always safe; the mutex only guarantees map integrity
// under concurrent registration, not any ordering between writers.
type MapperRegistry struct {
	mu sync.RWMutex
	m  map[MapperKey]MapperFunc
}

func NewMapperRegistry() *MapperRegistry {
	return &MapperRegistry{
		m: make(map[MapperKey]MapperFunc),
	}
}

// Register stores fn for the (from, to) pair, overwriting any previous entry.
func (reg *MapperRegistry) Register(from, to reflect.Type, fn MapperFunc) {
	reg.mu.Lock()
	reg.m[MapperKey{From: from, To: to}] = fn
	reg.mu.Unlock()
}

// Lookup returns the mapper registered for the (from, to) pair, if any.
func (reg *MapperRegistry) Lookup(from, to reflect.Type) (MapperFunc, bool) {
	reg.mu.RLock()
	fn, ok := reg.m[MapperKey{From: from, To: to}]
	reg.mu.RUnlock()
	return fn, ok
}

// Len returns the number of registered mappers.
func (reg *MapperRegistry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.m)
}

// RegisterMapperFunc registers a typed conversion function, wrapping it with
// the type erasure the registry needs. A source value of an unexpected
// dynamic type makes the wrapped mapper report "no value" instead of
// panicking.
func RegisterMapperFunc[S any, T any](reg *MapperRegistry, fn func(S) (T, bool)) {
	from := reflect.TypeOf(*new(S))
	to := reflect.TypeOf(*new(T))

	reg.Register(from, to, func(source any) (any, bool) {
		typed, ok := source.(S)
		if !ok {
			return nil, false
		}
		out, ok := fn(typed)
		if !ok {
			return nil, false
		}
		return out, true
	})
}
