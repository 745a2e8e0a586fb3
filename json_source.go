package objmap

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
)

// MapJSON constructs dest from a JSON document, letting the document play the
// role of the source instance: its top-level keys are the source fields.
//
// Each target field resolves against the document by its `json` tag, then its
// own name, then the lowerCamel form of its name. Resolved values flow
// through the same absence policy, default handling and conversion cascade as
// struct sources; nested objects recurse into nested struct targets, and
// arrays recurse per element.
func (m *Mapper) MapJSON(data []byte, dest any) error {
	destValue := reflect.ValueOf(dest)
	if dest == nil || destValue.Kind() != reflect.Ptr || destValue.IsNil() ||
		destValue.Elem().Kind() != reflect.Struct {
		return &NoConstructorError{Target: reflect.TypeOf(dest)}
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return fmt.Errorf("JSON source must be an object, got %s", doc.Type)
	}

	elem := destValue.Elem()
	if err := m.mapJSONObject(doc, elem); err != nil {
		zeroStructFields(elem)
		return err
	}
	return nil
}

// MapJSONString is MapJSON for a string document.
func (m *Mapper) MapJSONString(data string, dest any) error {
	return m.MapJSON([]byte(data), dest)
}

// mapJSONObject resolves and binds every target field from one JSON object.
func (m *Mapper) mapJSONObject(doc gjson.Result, dest reflect.Value) error {
	for _, param := range targetParams(dest.Type()) {
		structField := dest.Type().Field(param.Index)
		result, key := lookupJSONKey(doc, structField)
		target := dest.Field(param.Index)

		if !result.Exists() || result.Type == gjson.Null {
			switch {
			case param.Type.Kind() == reflect.Ptr:
				// Nullable target: absence binds as nil.
				continue
			case param.HasDefault:
				res := parseScalar(param.Default, param.Type)
				if !res.Converted {
					return &ConversionFailedError{
						Param:     param.Name,
						ParamType: param.Type,
						Field:     key,
						Cause:     fmt.Errorf("default value %q does not parse", param.Default),
					}
				}
				target.Set(res.Value)
				continue
			case !result.Exists():
				return &UnresolvedFieldError{Param: param.Name, ParamType: param.Type}
			default:
				return &NonNullableViolationError{
					Param:     param.Name,
					ParamType: param.Type,
					Field:     key,
				}
			}
		}

		if err := m.bindJSONValue(result, target); err != nil {
			return &ConversionFailedError{
				Param:     param.Name,
				ParamType: param.Type,
				Field:     key,
				FieldType: reflect.TypeOf(result.Value()),
				Cause:     err,
			}
		}
	}
	return nil
}

// bindJSONValue binds one JSON value to a target value, recursing through
// objects and arrays before handing scalars to the conversion cascade.
func (m *Mapper) bindJSONValue(result gjson.Result, target reflect.Value) error {
	typ := target.Type()

	if typ.Kind() == reflect.Ptr {
		ptr := reflect.New(typ.Elem())
		if err := m.bindJSONValue(result, ptr.Elem()); err != nil {
			return err
		}
		target.Set(ptr)
		return nil
	}

	if result.IsObject() && typ.Kind() == reflect.Struct && !isSpecialStructType(typ) {
		return m.mapJSONObject(result, target)
	}

	if result.IsArray() && typ.Kind() == reflect.Slice {
		items := result.Array()
		out := reflect.MakeSlice(typ, len(items), len(items))
		for i, item := range items {
			if err := m.bindJSONValue(item, out.Index(i)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		target.Set(out)
		return nil
	}

	value := reflect.ValueOf(result.Value())
	if value.IsValid() && value.Type() == typ {
		target.Set(value)
		return nil
	}

	res, err := m.engine.Convert(value, typ)
	if err != nil {
		return err
	}
	if !res.Converted {
		return fmt.Errorf("cannot convert JSON %s value %s to %s", result.Type, result.Raw, typ)
	}
	target.Set(res.Value)
	return nil
}

// lookupJSONKey resolves a target field against the document: the `json` tag
// wins, then the exported field name, then its lowerCamel form.
func lookupJSONKey(doc gjson.Result, field reflect.StructField) (gjson.Result, string) {
	if tag, ok := field.Tag.Lookup(JSONTagKey); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return doc.Get(name), name
		}
	}
	if r := doc.Get(field.Name); r.Exists() {
		return r, field.Name
	}
	camel := lowerCamel(field.Name)
	return doc.Get(camel), camel
}
