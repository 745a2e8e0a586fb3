package objmap

import (
	"fmt"
	"reflect"
	"time"
	"unicode"
)

///////////////////////////////////////////////////////////////////////////////
// Helpers
///////////////////////////////////////////////////////////////////////////////

// canonicalText returns the canonical string form of a value, used as the
// textual intermediate for every scalar conversion.
func canonicalText(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	// time.Time's own String() is not its parseable form.
	if v.Type() == TimeType {
		return v.Interface().(time.Time).Format(time.RFC3339Nano)
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	if b, ok := v.Interface().([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v.Interface())
}

// isAbsent reports whether a source value carries no value at all. Nil
// slices and maps are not absent: container classification is static, so
// they still convert as empty containers.
func isAbsent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr:
		return v.IsNil()
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		return isAbsent(v.Elem())
	}
	return false
}

// zeroStructFields recursively sets all fields of a struct to their default
// values, so a failed mapping never leaves a partially-populated destination
// behind.
func zeroStructFields(value reflect.Value) {
	if value.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct && !isSpecialStructType(field.Type()) {
			zeroStructFields(field)
		} else {
			field.Set(reflect.Zero(field.Type()))
		}
	}
}

// isSpecialStructType checks if a struct type should be treated as a scalar
// rather than a nested structure. Special types include time.Time, uuid.UUID,
// decimal.Decimal and the temporal newtypes.
func isSpecialStructType(t reflect.Type) bool {
	switch t {
	case TimeType, UUIDType, DecimalType, YearMonthType, DateType, DateTimeType:
		return true
	}
	return false
}

// derefType unwraps one level of pointer indirection.
func derefType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// lowerCamel lowercases the leading rune of an exported field name.
func lowerCamel(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
