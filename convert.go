package objmap

import (
	"fmt"
	"reflect"
)

// Engine runs the conversion cascade for a single value. Rules are tried in
// fixed order and the first rule that produces a value wins:
//
//  1. identity (exact type match)
//  2. sequence recursion
//  3. set recursion
//  4. keyed-map recursion
//  5. custom mapper registered for the (source, target) pair
//  6. built-in scalar conversion
//
// The engine is stateless apart from its registry reference and safe for
// concurrent use under the registry's read-mostly contract.
type Engine struct {
	registry *MapperRegistry
	rules    []convertRule
}

// convertRule is one strategy of the cascade: a predicate over the (from, to)
// type pair plus the conversion function applied when it matches.
type convertRule struct {
	name    string
	applies func(from, to reflect.Type) bool
	apply   func(eng *Engine, value reflect.Value, to reflect.Type) (ConvertResult, error)
}

func NewEngine(registry *MapperRegistry) *Engine {
	eng := &Engine{registry: registry}
	eng.rules = []convertRule{
		{
			name:    "sequence",
			applies: bothClassify(classSequence),
			apply:   (*Engine).convertSequence,
		},
		{
			name:    "set",
			applies: bothClassify(classSet),
			apply:   (*Engine).convertSet,
		},
		{
			name:    "keyed-map",
			applies: bothClassify(classKeyedMap),
			apply:   (*Engine).convertKeyedMap,
		},
		{
			name:    "custom-mapper",
			applies: nominallyDifferent,
			apply:   (*Engine).convertCustom,
		},
		{
			name:    "scalar",
			applies: func(from, to reflect.Type) bool { return true },
			apply:   (*Engine).convertScalar,
		},
	}
	return eng
}

// Convert attempts to convert value to the target type.
//
// An unconverted result with a nil error means the cascade exhausted all
// rules; the orchestrator turns that into a ConversionFailedError. A non-nil
// error is a hard failure from inside container recursion or from a
// misbehaving custom mapper, and carries the offending element, key or value.
func (eng *Engine) Convert(value reflect.Value, to reflect.Type) (ConvertResult, error) {
	if value.Kind() == reflect.Interface && !value.IsNil() {
		value = value.Elem()
	}
	if !value.IsValid() {
		return ConvertResultNone(), nil
	}

	// Identity short-circuit. Repeated conversion passes are idempotent.
	if value.Type() == to {
		return ConvertResultValue(value), nil
	}

	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return ConvertResultNone(), nil
		}
		return eng.Convert(value.Elem(), to)
	}

	// A pointer target converts to its element type, then gets wrapped.
	if to.Kind() == reflect.Ptr {
		res, err := eng.Convert(value, to.Elem())
		if err != nil || !res.Converted {
			return res, err
		}
		ptr := reflect.New(to.Elem())
		ptr.Elem().Set(res.Value)
		return ConvertResultValue(ptr), nil
	}

	from := value.Type()
	for _, rule := range eng.rules {
		if !rule.applies(from, to) {
			continue
		}
		res, err := rule.apply(eng, value, to)
		if err != nil {
			return ConvertResultNone(), err
		}
		if res.Converted {
			return res, nil
		}
	}

	return ConvertResultNone(), nil
}

// bothClassify matches when both types declare the same container class.
func bothClassify(class containerClass) func(from, to reflect.Type) bool {
	return func(from, to reflect.Type) bool {
		return classifyContainer(from) == class && classifyContainer(to) == class
	}
}

// nominallyDifferent matches pairs eligible for custom-mapper lookup: the
// types differ, and shared container-classifier equality does not count as
// different.
func nominallyDifferent(from, to reflect.Type) bool {
	if from == to {
		return false
	}
	if c := classifyContainer(from); c != classNone && c == classifyContainer(to) {
		return false
	}
	return true
}

// convertSequence rebuilds an ordered container of the target kind,
// converting every element from its runtime type to the target's declared
// element type. An empty source yields an empty target. An element that
// cannot convert fails the whole conversion.
func (eng *Engine) convertSequence(value reflect.Value, to reflect.Type) (ConvertResult, error) {
	length := value.Len()
	elemType := to.Elem()

	var out reflect.Value
	switch to.Kind() {
	case reflect.Slice:
		out = reflect.MakeSlice(to, length, length)
	case reflect.Array:
		if length != to.Len() {
			return ConvertResultNone(), fmt.Errorf(
				"cannot convert sequence of length %d into %s", length, to,
			)
		}
		out = reflect.New(to).Elem()
	}

	for i := 0; i < length; i++ {
		res, err := eng.Convert(value.Index(i), elemType)
		if err != nil {
			return ConvertResultNone(), err
		}
		if !res.Converted {
			return ConvertResultNone(), fmt.Errorf(
				"cannot convert element %d (%v) of %s to %s",
				i, value.Index(i).Interface(), value.Type(), elemType,
			)
		}
		out.Index(i).Set(res.Value)
	}

	return ConvertResultValue(out), nil
}

// convertSet rebuilds a set container, converting every member to the
// target's key type. Members deduplicate per the target's equality semantics.
func (eng *Engine) convertSet(value reflect.Value, to reflect.Type) (ConvertResult, error) {
	out := reflect.MakeMapWithSize(to, value.Len())
	member := reflect.ValueOf(struct{}{})

	iter := value.MapRange()
	for iter.Next() {
		res, err := eng.Convert(iter.Key(), to.Key())
		if err != nil {
			return ConvertResultNone(), err
		}
		if !res.Converted {
			return ConvertResultNone(), fmt.Errorf(
				"cannot convert set member %v (%s) to %s",
				iter.Key().Interface(), iter.Key().Type(), to.Key(),
			)
		}
		out.SetMapIndex(res.Value, member)
	}

	return ConvertResultValue(out), nil
}

// convertKeyedMap rebuilds a keyed mapping, converting every key and every
// value independently. A key or value that cannot convert fails the whole
// conversion immediately, identifying the offending entry.
func (eng *Engine) convertKeyedMap(value reflect.Value, to reflect.Type) (ConvertResult, error) {
	out := reflect.MakeMapWithSize(to, value.Len())

	iter := value.MapRange()
	for iter.Next() {
		kres, err := eng.Convert(iter.Key(), to.Key())
		if err != nil {
			return ConvertResultNone(), err
		}
		if !kres.Converted {
			return ConvertResultNone(), fmt.Errorf(
				"cannot convert map key %v (%s) to %s",
				iter.Key().Interface(), iter.Key().Type(), to.Key(),
			)
		}

		vres, err := eng.Convert(iter.Value(), to.Elem())
		if err != nil {
			return ConvertResultNone(), err
		}
		if !vres.Converted {
			return ConvertResultNone(), fmt.Errorf(
				"cannot convert map value %v (%s) for key %v to %s",
				iter.Value().Interface(), iter.Value().Type(), iter.Key().Interface(), to.Elem(),
			)
		}

		out.SetMapIndex(kres.Value, vres.Value)
	}

	return ConvertResultValue(out), nil
}

// convertCustom consults the registry for the exact (from, to) pair. A hit
// that produces a value wins; a mapper reporting "no value" falls through so
// the scalar table can still be attempted.
func (eng *Engine) convertCustom(value reflect.Value, to reflect.Type) (ConvertResult, error) {
	if eng.registry == nil {
		return ConvertResultNone(), nil
	}

	fn, ok := eng.registry.Lookup(value.Type(), to)
	if !ok {
		return ConvertResultNone(), nil
	}

	out, produced := fn(value.Interface())
	if !produced {
		return ConvertResultNone(), nil
	}
	if out == nil {
		return ConvertResultNone(), fmt.Errorf(
			"custom mapper for %s to %s produced an untyped nil", value.Type(), to,
		)
	}
	rv := reflect.ValueOf(out)
	if !rv.Type().AssignableTo(to) {
		return ConvertResultNone(), fmt.Errorf(
			"custom mapper for %s to %s produced %T", value.Type(), to, out,
		)
	}
	return ConvertResultValue(rv), nil
}

// convertScalar is the final fallback: the built-in scalar table applied to
// the value's canonical text form.
func (eng *Engine) convertScalar(value reflect.Value, to reflect.Type) (ConvertResult, error) {
	return parseScalar(canonicalText(value), to), nil
}
