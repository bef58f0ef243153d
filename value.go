package vetter

import (
	"fmt"
	"reflect"
	"strings"
)

// isBlank reports whether a value counts as blank: the absence-value (nil),
// empty text, or a zero-length sequence or map.
func isBlank(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return isBlank(rv.Elem().Interface())
	default:
		return false
	}
}

// Truthy is the permissive boolean coercion used by the acceptance rule.
// Falsey values: nil, boolean false, numeric zero of any kind, and the
// literal text "0". Everything else, including "1", empty strings, and
// arbitrary non-nil objects, is truthy.
func Truthy(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String:
		return rv.String() != "0"
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// sizeOf measures a value for the size rule. Text, sequences, and maps use
// their length; integers use their own value. The second result is false
// for values with no meaningful size.
func sizeOf(v any) (int, bool) {
	if v == nil {
		return 0, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	default:
		return 0, false
	}
}

// strictEqual is the confirmation rule's equality: deep equality with no
// type coercion, so int(1) does not confirm int64(1).
func strictEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// stringify renders a value to text for the format rule.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// contains reports membership of value in the declared collection. The
// collection may be a Collection implementation, a slice or array (element
// equality), a map (key membership), or a string (substring for string
// values, equality rendering otherwise). Any other shape is a malformed
// declaration.
func contains(collection, value any) (bool, error) {
	if c, ok := collection.(Collection); ok {
		return c.Contains(value), nil
	}

	rv := reflect.ValueOf(collection)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if strictEqual(rv.Index(i).Interface(), value) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			if strictEqual(key.Interface(), value) {
				return true, nil
			}
		}
		return false, nil
	case reflect.String:
		return strings.Contains(rv.String(), stringify(value)), nil
	default:
		return false, fmt.Errorf("collection must be a slice, array, map, string, or Collection, got %T", collection)
	}
}
