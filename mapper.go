package objmap

import (
	"fmt"
	"reflect"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

// NoConstructorError reports a destination that cannot be constructed: it was
// not a non-nil pointer to a struct.
type NoConstructorError struct {
	Target reflect.Type
}

func (e *NoConstructorError) Error() string {
	return fmt.Sprintf(
		"target %v is not constructible: destination must be a non-nil pointer to a struct",
		e.Target,
	)
}

// UnresolvedFieldError reports a target field for which no source field
// matched by alias or by name.
type UnresolvedFieldError struct {
	Param     string
	ParamType reflect.Type
}

func (e *UnresolvedFieldError) Error() string {
	return fmt.Sprintf(
		"no source field matches target field %s (%s) by alias or name",
		e.Param, e.ParamType,
	)
}

// NonNullableViolationError reports an absent source value bound to a target
// field that requires one.
type NonNullableViolationError struct {
	Param     string
	ParamType reflect.Type
	Field     string
}

func (e *NonNullableViolationError) Error() string {
	return fmt.Sprintf(
		"source field %s is absent but target field %s (%s) requires a value",
		e.Field, e.Param, e.ParamType,
	)
}

// ConversionFailedError reports a value the conversion cascade could not
// produce for its target field. Cause, when set, names the nested element,
// key or value that broke a container conversion.
type ConversionFailedError struct {
	Param     string
	ParamType reflect.Type
	Field     string
	FieldType reflect.Type
	Cause     error
}

func (e *ConversionFailedError) Error() string {
	msg := fmt.Sprintf(
		"cannot convert source field %s (%v) to target field %s (%v)",
		e.Field, e.FieldType, e.Param, e.ParamType,
	)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConversionFailedError) Unwrap() error { return e.Cause }

///////////////////////////////////////////////////////////////////////////////
// Mapper
///////////////////////////////////////////////////////////////////////////////

// Mapper orchestrates construction of target values from source instances.
//
// It is re-entrant and stateless apart from its MapperRegistry: concurrent
// Map calls against the same mapper are safe as long as no goroutine is
// concurrently registering new mappers.
type Mapper struct {
	registry *MapperRegistry
	engine   *Engine
}

type MapperOpts struct {
	// Registry is the custom mapper registry to consult during conversion.
	// A fresh empty registry is created when nil.
	Registry *MapperRegistry
}

func NewMapper(opts MapperOpts) *Mapper {
	reg := opts.Registry
	if reg == nil {
		reg = NewMapperRegistry()
	}
	return &Mapper{
		registry: reg,
		engine:   NewEngine(reg),
	}
}

// Registry returns the custom mapper registry this mapper consults.
func (m *Mapper) Registry() *MapperRegistry {
	return m.registry
}

// Map constructs dest from source.
//
// dest must be a non-nil pointer to a struct; its exported fields, in
// declaration order, are the constructor parameter list. source must be a
// struct or a non-nil pointer to one.
//
// Construction either fully succeeds or the whole call fails: on any error
// dest is zeroed before returning, so a partially-populated target is never
// observable.
func (m *Mapper) Map(source any, dest any) error {
	destValue := reflect.ValueOf(dest)
	if dest == nil || destValue.Kind() != reflect.Ptr || destValue.IsNil() ||
		destValue.Elem().Kind() != reflect.Struct {
		return &NoConstructorError{Target: reflect.TypeOf(dest)}
	}

	srcValue := reflect.ValueOf(source)
	for srcValue.Kind() == reflect.Ptr && !srcValue.IsNil() {
		srcValue = srcValue.Elem()
	}
	if !srcValue.IsValid() || srcValue.Kind() != reflect.Struct {
		return fmt.Errorf("source must be a struct or non-nil pointer to one, got %T", source)
	}

	elem := destValue.Elem()
	if err := m.mapStruct(srcValue, elem); err != nil {
		zeroStructFields(elem)
		return err
	}
	return nil
}

// mapStruct resolves and binds every target field from the source instance.
func (m *Mapper) mapStruct(src reflect.Value, dest reflect.Value) error {
	fields := sourceFields(src)

	for _, param := range targetParams(dest.Type()) {
		field, ok := resolveField(fields, param.Name)
		if !ok {
			return &UnresolvedFieldError{Param: param.Name, ParamType: param.Type}
		}
		if err := m.bindParam(dest.Field(param.Index), param, field); err != nil {
			return err
		}
	}
	return nil
}

// bindParam binds a single resolved source field to its target field,
// applying the absence policy and the conversion cascade.
func (m *Mapper) bindParam(target reflect.Value, param paramDescriptor, field fieldDescriptor) error {
	value := field.Get()

	if isAbsent(value) {
		switch {
		case param.Type.Kind() == reflect.Ptr:
			// Nullable target: absence binds as nil.
			return nil
		case param.HasDefault:
			res := parseScalar(param.Default, param.Type)
			if !res.Converted {
				return &ConversionFailedError{
					Param:     param.Name,
					ParamType: param.Type,
					Field:     field.Name,
					FieldType: field.Type,
					Cause:     fmt.Errorf("default value %q does not parse", param.Default),
				}
			}
			target.Set(res.Value)
			return nil
		default:
			return &NonNullableViolationError{
				Param:     param.Name,
				ParamType: param.Type,
				Field:     field.Name,
			}
		}
	}

	if value.Kind() == reflect.Interface && !value.IsNil() {
		value = value.Elem()
	}
	if value.Type() == param.Type {
		target.Set(value)
		return nil
	}

	res, err := m.engine.Convert(value, param.Type)
	if err != nil || !res.Converted {
		return &ConversionFailedError{
			Param:     param.Name,
			ParamType: param.Type,
			Field:     field.Name,
			FieldType: field.Type,
			Cause:     err,
		}
	}
	target.Set(res.Value)
	return nil
}

// MapToWith constructs a new T from source using the given mapper.
func MapToWith[T any](m *Mapper, source any) (T, error) {
	var out T
	err := m.Map(source, &out)
	return out, err
}

// RegisterMapped registers a custom mapper for the S to T pair that delegates
// to the mapper's own Map, letting nested structures of different shapes
// reuse the field resolution rules during container and field conversion.
func RegisterMapped[S any, T any](m *Mapper) {
	RegisterMapperFunc(m.registry, func(source S) (T, bool) {
		var out T
		if err := m.Map(source, &out); err != nil {
			return out, false
		}
		return out, true
	})
}

///////////////////////////////////////////////////////////////////////////////
// Global Singleton and Package Functions
///////////////////////////////////////////////////////////////////////////////

var _gMapper *Mapper = nil

func init() {
	_gMapper = NewMapper(MapperOpts{})
}

// Package-level functions that delegate to the global Mapper instance

// Map constructs dest from source using the global mapper.
func Map(source any, dest any) error {
	return _gMapper.Map(source, dest)
}

// MapTo constructs a new T from source using the global mapper.
func MapTo[T any](source any) (T, error) {
	return MapToWith[T](_gMapper, source)
}

// MapJSON constructs dest from a JSON document using the global mapper.
func MapJSON(data []byte, dest any) error {
	return _gMapper.MapJSON(data, dest)
}

// MapJSONString constructs dest from a JSON string using the global mapper.
func MapJSONString(data string, dest any) error {
	return _gMapper.MapJSONString(data, dest)
}

// RegisterMapper registers a custom mapper with the global mapper's registry.
func RegisterMapper(from, to reflect.Type, fn MapperFunc) {
	_gMapper.registry.Register(from, to, fn)
}

// Registry returns the global mapper's registry.
func Registry() *MapperRegistry {
	return _gMapper.registry
}
