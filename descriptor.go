package objmap

import "reflect"

// fieldDescriptor describes one named field on a source instance: its name,
// optional alias override, declared type, and an accessor for the runtime
// value. Descriptors are derived fresh on every call; nothing is cached
// across mappings.
type fieldDescriptor struct {
	Name  string
	Alias string
	Type  reflect.Type
	Get   func() reflect.Value
}

// paramDescriptor describes one constructor parameter of the target type: an
// exported settable field, its declared type, and its default text, if any.
type paramDescriptor struct {
	Name       string
	Type       reflect.Type
	Index      int
	Default    string
	HasDefault bool
}

// sourceFields enumerates the exported fields of a source struct instance in
// declaration order.
func sourceFields(src reflect.Value) []fieldDescriptor {
	typ := src.Type()
	fields := make([]fieldDescriptor, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		alias, _ := sf.Tag.Lookup(AliasTagKey)
		value := src.Field(i)
		fields = append(fields, fieldDescriptor{
			Name:  sf.Name,
			Alias: alias,
			Type:  sf.Type,
			Get:   func() reflect.Value { return value },
		})
	}
	return fields
}

// targetParams enumerates the target struct's constructor parameter list: its
// exported fields in declaration order.
func targetParams(typ reflect.Type) []paramDescriptor {
	params := make([]paramDescriptor, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		def, hasDef := sf.Tag.Lookup(DefaultTagKey)
		params = append(params, paramDescriptor{
			Name:       sf.Name,
			Type:       sf.Type,
			Index:      i,
			Default:    def,
			HasDefault: hasDef,
		})
	}
	return params
}

// resolveField finds the source field for a target parameter name. Alias
// matches are preferred over own-name matches when both exist on different
// fields.
func resolveField(fields []fieldDescriptor, name string) (fieldDescriptor, bool) {
	for _, f := range fields {
		if f.Alias == name {
			return f, true
		}
	}
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return fieldDescriptor{}, false
}

///////////////////////////////////////////////////////////////////////////////
// Container classification
///////////////////////////////////////////////////////////////////////////////

// containerClass is the declared container kind of a type. Classification is
// purely static: a nil or empty container still classifies by its type, never
// by its contents.
type containerClass int

const (
	classNone containerClass = iota
	classSequence
	classSet
	classKeyedMap
)

// classifyContainer classifies a type by its declared container kind. A map
// whose element type is struct{} is a set; any other map is a keyed mapping.
func classifyContainer(t reflect.Type) containerClass {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return classSequence
	case reflect.Map:
		if t.Elem() == EmptyStructType {
			return classSet
		}
		return classKeyedMap
	}
	return classNone
}
