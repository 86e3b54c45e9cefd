// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package dbgstr

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/golangee/dbgstr/ast"
)

// Unmarshal parses a debug string and places its contents into the given struct pointer.
// As this uses go's reflect package, only exported names can be unmarshalled.
// Strict mode requires that all fields of the struct are set exactly once.
//
// Struct tags have the form `dbgstr:"name"` and rename the key that is read for a field.
// Without a tag the field name is converted to snake_case, so NodeCount reads node_count.
// A tag of "-" skips the field.
//
//	// This debug string...
//	name: "Gopher" age: 3
//	// could be unmarshalled into this go struct.
//	type Animal struct {
//	    Name string
//	    Years uint `dbgstr:"age"`
//	}
//
// Scalars can be parsed into string, bool and the integer (signed & unsigned) and float types.
// Should the value not be valid for the target type, e.g. an integer that is too large or a negative
// value for an uint, an error is returned describing the issue. Messages are parsed into structs
// or maps with string keys. A slice receives all values of a repeated key or a single value.
// An interface{} receives strings, map[string]any and []any.
func Unmarshal(text string, into any, strict bool) error {
	if into == nil {
		return fmt.Errorf("cannot unmarshal into nil")
	}

	doc, err := Parse(text)
	if err != nil {
		return NewUnmarshalError("", "parser error", err)
	}

	return Decode(doc, into, strict)
}

// Decode places the contents of an already parsed message into the given struct pointer.
// See Unmarshal for the rules.
func Decode(m *ast.Message, into any, strict bool) error {
	value := reflect.ValueOf(into)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return fmt.Errorf("cannot unmarshal into non-pointer %T", into)
	}

	dec := decoder{strict: strict}

	return dec.value("", m, value)
}

// UnmarshalError is an error that occurred during unmarshalling.
// It contains the offending key, a string with details and an underlying error (if any).
type UnmarshalError struct {
	Key      string
	Detail   string
	wrapping error
}

func NewUnmarshalError(key, detail string, wrapping error) *UnmarshalError {
	return &UnmarshalError{
		Key:      key,
		Detail:   detail,
		wrapping: wrapping,
	}
}

func (u *UnmarshalError) Error() string {
	if u.wrapping != nil {
		return fmt.Sprintf("cannot unmarshal '%s', %s: %s", u.Key, u.Detail, u.wrapping.Error())
	}

	return fmt.Sprintf("cannot unmarshal '%s', %s", u.Key, u.Detail)
}

func (u *UnmarshalError) Unwrap() error {
	return u.wrapping
}

// decoder is a helper struct for easier managing the unmarshalling process.
type decoder struct {
	strict bool
}

// value will place the document value v inside the given reflect value. key is only used for errors.
func (d *decoder) value(key string, v ast.Value, value reflect.Value) error {
	valueType := value.Type()

	switch value.Kind() {
	case reflect.String:
		text, err := d.text(key, v)
		if err != nil {
			return err
		}

		value.SetString(text)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		text, err := d.text(key, v)
		if err != nil {
			return err
		}

		i, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return NewUnmarshalError(key, fmt.Sprintf("'%s' is not a valid integer", text), err)
		}

		if value.OverflowInt(i) {
			return NewUnmarshalError(key, fmt.Sprintf("value for '%s' out of bounds", valueType.Name()), nil)
		}

		value.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		text, err := d.text(key, v)
		if err != nil {
			return err
		}

		i, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return NewUnmarshalError(key, fmt.Sprintf("'%s' is not a valid unsigned integer", text), err)
		}

		if value.OverflowUint(i) {
			return NewUnmarshalError(key, fmt.Sprintf("value for '%s' out of bounds", valueType.Name()), nil)
		}

		value.SetUint(i)
	case reflect.Bool:
		text, err := d.text(key, v)
		if err != nil {
			return err
		}

		b, err := strconv.ParseBool(text)
		if err != nil {
			return NewUnmarshalError(key, fmt.Sprintf("'%s' is not a valid boolean", text), err)
		}

		value.SetBool(b)
	case reflect.Float64, reflect.Float32:
		text, err := d.text(key, v)
		if err != nil {
			return err
		}

		bitSize := 64
		if value.Kind() == reflect.Float32 {
			bitSize = 32
		}

		f, err := strconv.ParseFloat(trimFloatSuffix(text), bitSize)
		if err != nil {
			return NewUnmarshalError(key, fmt.Sprintf("'%s' is not a valid float", text), err)
		}

		value.SetFloat(f)
	case reflect.Ptr:
		if value.IsNil() {
			value.Set(reflect.New(valueType.Elem()))
		}

		// Dereference pointer
		return d.value(key, v, value.Elem())
	case reflect.Slice:
		values := []ast.Value{v}
		if r, ok := v.(*ast.Repeated); ok {
			values = r.Values
		}

		for _, item := range values {
			element := reflect.New(valueType.Elem()).Elem()
			if err := d.value(key, item, element); err != nil {
				return NewUnmarshalError(key, "cannot read list element", err)
			}

			value.Set(reflect.Append(value, element))
		}
	case reflect.Array:
		return NewUnmarshalError(key, "arrays not supported, use a slice instead", nil)
	case reflect.Map:
		if valueType.Key().Kind() != reflect.String {
			return NewUnmarshalError(key, "only maps with string keys are supported", nil)
		}

		m, ok := v.(*ast.Message)
		if !ok {
			return NewUnmarshalError(key, fmt.Sprintf("message required, found %s", v.Kind()), nil)
		}

		if value.IsNil() {
			value.Set(reflect.MakeMapWithSize(valueType, m.Len()))
		}

		for _, f := range m.Fields {
			element := reflect.New(valueType.Elem()).Elem()
			if err := d.value(f.Key, f.Value, element); err != nil {
				return err
			}

			value.SetMapIndex(reflect.ValueOf(f.Key).Convert(valueType.Key()), element)
		}
	case reflect.Interface:
		if valueType.NumMethod() != 0 {
			return NewUnmarshalError(key, fmt.Sprintf("unsupported interface type '%s'", valueType), nil)
		}

		value.Set(reflect.ValueOf(generic(v)))
	case reflect.Struct:
		m, ok := v.(*ast.Message)
		if !ok {
			return NewUnmarshalError(key, fmt.Sprintf("message required, found %s", v.Kind()), nil)
		}

		return d.message(key, m, value)
	default:
		return NewUnmarshalError(key, fmt.Sprintf("with unsupported type '%s'", valueType), nil)
	}

	return nil
}

// message iterates over all struct fields and reads the keys from m.
func (d *decoder) message(key string, m *ast.Message, value reflect.Value) error {
	for i := 0; i < value.NumField(); i++ {
		fieldType := value.Type().Field(i)
		if !fieldType.IsExported() {
			continue
		}

		fieldName := snakeCase(fieldType.Name)

		if tag, ok := fieldType.Tag.Lookup("dbgstr"); ok {
			rename, _, _ := strings.Cut(tag, ",")
			if rename == "-" {
				continue
			}

			if rename != "" {
				fieldName = rename
			}
		}

		v, ok := m.Get(fieldName)
		if !ok {
			if d.strict {
				return NewUnmarshalError(key, fmt.Sprintf("key '%s' required", fieldName), nil)
			}

			continue
		}

		// Only slices may receive a repeated key.
		field := value.Field(i)
		if r, isRepeated := v.(*ast.Repeated); isRepeated && !acceptsList(field.Type()) {
			if d.strict {
				return NewUnmarshalError(key, fmt.Sprintf("'%s' defined multiple times", fieldName), nil)
			}

			v = r.Values[0]
		}

		if err := d.value(fieldName, v, field); err != nil {
			return NewUnmarshalError(key, fmt.Sprintf("while processing field '%s'", fieldType.Name), err)
		}
	}

	return nil
}

// text returns the text of a scalar.
func (d *decoder) text(key string, v ast.Value) (string, error) {
	s, ok := v.(*ast.Scalar)
	if !ok {
		kind := "nothing"
		if v != nil {
			kind = v.Kind().String()
		}

		return "", NewUnmarshalError(key, fmt.Sprintf("scalar required, found %s", kind), nil)
	}

	return s.Text, nil
}

func acceptsList(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Kind() == reflect.Slice || t.Kind() == reflect.Interface
}

// generic converts v into strings, map[string]any and []any.
func generic(v ast.Value) any {
	switch v := v.(type) {
	case *ast.Scalar:
		return v.Text
	case *ast.Message:
		m := make(map[string]any, v.Len())
		for _, f := range v.Fields {
			m[f.Key] = generic(f.Value)
		}

		return m
	case *ast.Repeated:
		list := make([]any, 0, v.Len())
		for _, item := range v.Values {
			list = append(list, generic(item))
		}

		return list
	default:
		return nil
	}
}

// trimFloatSuffix removes the f or l suffix of numbers like 1e5f, which strconv does not accept.
func trimFloatSuffix(text string) string {
	if n := len(text); n > 1 && strings.ContainsRune("fFlL", rune(text[n-1])) && unicode.IsDigit(rune(text[n-2])) {
		return text[:n-1]
	}

	return text
}

// snakeCase converts a go identifier like HTTPServerName into http_server_name.
func snakeCase(name string) string {
	runes := []rune(name)

	var sb strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}
