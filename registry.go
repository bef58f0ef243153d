package vetter

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Coercion errors.
var (
	// ErrUnknownCoercion is returned by Registry.Convert for an unregistered
	// target type name. This is a declaration defect, not a data failure.
	ErrUnknownCoercion = errors.New("vetter: unknown coercion target")

	// ErrNotCoercible is wrapped by converters when the given value cannot
	// be converted to the target type. This is a per-field failure.
	ErrNotCoercible = errors.New("vetter: value is not coercible")
)

// Converter transforms a raw value into the target type, or reports
// ErrNotCoercible when the value cannot be converted.
type Converter func(value any) (any, error)

// Registry maps target type names to converters. The zero Registry has no
// converters; DefaultRegistry ships the built-in set.
type Registry struct {
	converters map[string]Converter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// DefaultRegistry creates a registry with the built-in targets:
// string, int, int64, float64, bool, time, duration, uuid.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.converters["string"] = coerceString
	r.converters["int"] = coerceInt
	r.converters["int64"] = coerceInt64
	r.converters["float64"] = coerceFloat64
	r.converters["bool"] = coerceBool
	r.converters["time"] = coerceTime
	r.converters["duration"] = coerceDuration
	r.converters["uuid"] = coerceUUID
	return r
}

// Register adds a user converter under the given target name, replacing any
// existing one. Malformed registrations are rejected here, at declaration
// time, rather than surfacing during a validation run.
func (r *Registry) Register(name string, fn Converter) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return &ConfigError{Rule: Coerce, Code: ErrCodeBadConverter, Message: "converter name is empty"}
	}
	if fn == nil {
		return &ConfigError{Rule: Coerce, Code: ErrCodeBadConverter, Message: fmt.Sprintf("converter %q is nil", name)}
	}
	if r.converters == nil {
		r.converters = make(map[string]Converter)
	}
	r.converters[name] = fn
	return nil
}

// Convert runs the converter registered under name. It returns
// ErrUnknownCoercion for an unregistered name and the converter's error
// (wrapping ErrNotCoercible) when the value cannot be converted.
func (r *Registry) Convert(name string, value any) (any, error) {
	fn, ok := r.converters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCoercion, name)
	}
	return fn(value)
}

// defaultRegistry backs attributes constructed without WithRegistry.
var defaultRegistry = DefaultRegistry()

func coerceString(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case fmt.Stringer:
		return s.String(), nil
	}
	return fmt.Sprint(v), nil
}

func coerceInt(v any) (any, error) {
	n, err := coerceInt64(v)
	if err != nil {
		return nil, err
	}
	i := n.(int64)
	if i > math.MaxInt || i < math.MinInt {
		return nil, fmt.Errorf("%w: %d overflows int", ErrNotCoercible, i)
	}
	return int(i), nil
}

func coerceInt64(v any) (any, error) {
	switch n := v.(type) {
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrNotCoercible, n)
		}
		return i, nil
	case float32:
		return wholeToInt64(float64(n))
	case float64:
		return wholeToInt64(n)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows int64", ErrNotCoercible, u)
		}
		return int64(u), nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T to integer", ErrNotCoercible, v)
}

// wholeToInt64 accepts floats with no fractional part. JSON numbers decode
// as float64, so "age": 42 arrives here.
func wholeToInt64(f float64) (any, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("%w: %v is not a whole number", ErrNotCoercible, f)
	}
	return int64(f), nil
}

func coerceFloat64(v any) (any, error) {
	switch n := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrNotCoercible, n)
		}
		return f, nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T to float64", ErrNotCoercible, v)
}

func coerceBool(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrNotCoercible, b)
		}
		return parsed, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch rv.Int() {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch rv.Uint() {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot convert %T to bool", ErrNotCoercible, v)
}

func coerceTime(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(t))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an RFC 3339 timestamp", ErrNotCoercible, t)
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T to time", ErrNotCoercible, v)
}

func coerceDuration(v any) (any, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(strings.TrimSpace(d))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a duration", ErrNotCoercible, d)
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T to duration", ErrNotCoercible, v)
}

func coerceUUID(v any) (any, error) {
	switch u := v.(type) {
	case uuid.UUID:
		return u, nil
	case string:
		parsed, err := uuid.Parse(strings.TrimSpace(u))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a UUID", ErrNotCoercible, u)
		}
		return parsed, nil
	case []byte:
		parsed, err := uuid.FromBytes(u)
		if err != nil {
			return nil, fmt.Errorf("%w: %d bytes is not a UUID", ErrNotCoercible, len(u))
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T to uuid", ErrNotCoercible, v)
}
