package vetter

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/Azhovan/vetter/internal/normalize"
)

// ParseTag parses a `vet` struct tag into a rule mapping.
// Tag format: "directive1:value1,directive2:value2,..."
// Boolean directives can omit `:true` (e.g., "required" == "required:true").
//
// Directives (aliases in parentheses):
//
//	required (presence)      presence check
//	accepted (acceptance)    acceptance check
//	confirmed (confirmation) confirmation against <name>_confirmation
//	format:<pattern>         regular expression the value must match
//	coerce:<type>            coercion target name (type)
//	in:<a|b|c>               inclusion collection (inclusion)
//	not_in:<a|b|c>           exclusion collection (exclusion)
//	size:<N or a..b>         exact size or inclusive range (length)
//
// Collection values are separated by '|' so that patterns and values may
// contain commas.
func ParseTag(tag string) (Rules, error) {
	if tag == "" {
		return nil, nil
	}

	rules := make(Rules)

	for _, directive := range splitDirectives(tag) {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		// Split by colon to separate directive name from value
		parts := strings.SplitN(directive, ":", 2)
		name := strings.TrimSpace(parts[0])
		var value string
		if len(parts) > 1 {
			value = parts[1] // Don't trim value - whitespace may be intentional
		}

		canonical, known := normalize.Rule(name)
		if !known {
			return nil, fmt.Errorf("vetter: unknown tag directive %q", name)
		}

		switch RuleName(canonical) {
		case Presence, Acceptance, Confirmation:
			flag, err := boolDirective(name, value)
			if err != nil {
				return nil, err
			}
			rules[RuleName(canonical)] = flag

		case Format:
			re, err := regexp.Compile(value)
			if err != nil {
				return nil, fmt.Errorf("vetter: tag format pattern %q does not compile: %w", value, err)
			}
			rules[Format] = re

		case Coerce:
			if strings.TrimSpace(value) == "" {
				return nil, fmt.Errorf("vetter: tag directive %q needs a target type", name)
			}
			rules[Coerce] = strings.TrimSpace(value)

		case Inclusion, Exclusion:
			items := strings.Split(value, "|")
			for i := range items {
				items[i] = strings.TrimSpace(items[i])
			}
			rules[RuleName(canonical)] = items

		case Size:
			quantity, err := parseQuantity(value)
			if err != nil {
				return nil, err
			}
			rules[Size] = quantity
		}
	}

	return rules, nil
}

// boolDirective interprets a boolean directive value: empty or "true" means
// true, "false" means false.
func boolDirective(name, value string) (bool, error) {
	switch value {
	case "", "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("vetter: tag directive %q takes true or false, got %q", name, value)
	}
}

// parseQuantity parses a size directive value: "8" is an exact count,
// "0..120" is an inclusive range.
func parseQuantity(value string) (any, error) {
	value = strings.TrimSpace(value)

	if lo, hi, ok := strings.Cut(value, ".."); ok {
		min, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("vetter: size range %q has a bad lower bound", value)
		}
		max, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("vetter: size range %q has a bad upper bound", value)
		}
		return Between(min, max), nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("vetter: size %q is neither a count nor a range", value)
	}
	return n, nil
}

// splitDirectives splits a tag string into individual directives. A comma
// separates directives only when what follows starts with a known directive
// name, so format patterns and collection values may contain commas.
func splitDirectives(tag string) []string {
	var directives []string
	var current strings.Builder

	for i := 0; i < len(tag); i++ {
		ch := tag[i]

		if ch == ',' && startsWithDirective(tag[i+1:]) {
			directives = append(directives, current.String())
			current.Reset()
			continue
		}

		current.WriteByte(ch)
	}

	// Add the last directive
	if current.Len() > 0 {
		directives = append(directives, current.String())
	}

	return directives
}

// startsWithDirective checks if a string starts with a known directive name.
func startsWithDirective(s string) bool {
	s = strings.TrimSpace(s)
	head, _, _ := strings.Cut(s, ",")
	name, _, _ := strings.Cut(head, ":")
	_, known := normalize.Rule(name)
	return known
}

// SchemaOf builds a Schema from the `vet` tags of a struct's exported
// fields, in field order. Attribute names are the snake_case form of the
// field names. Untagged fields carry no rules and are skipped.
func SchemaOf(v any) (Schema, error) {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("vetter: SchemaOf needs a struct, got %T", v)
	}

	var schema Schema
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("vet")
		if tag == "" {
			continue
		}

		rules, err := ParseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		schema = append(schema, AttributeRules{
			Name:  normalize.AttributeKey(field.Name),
			Rules: rules,
		})
	}

	return schema, nil
}

// RecordOf builds a MapRecord from a struct's exported fields. Field names
// become snake_case attribute names; nil pointers become absent attributes,
// non-nil pointers are dereferenced.
func RecordOf(v any) (*MapRecord, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("vetter: RecordOf needs a struct, got nil")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("vetter: RecordOf needs a struct, got %T", v)
	}

	values := make(map[string]any)
	t := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fv := rv.Field(i)
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				continue // absent attribute
			}
			fv = fv.Elem()
		}

		values[normalize.AttributeKey(field.Name)] = fv.Interface()
	}

	return NewMapRecord(values), nil
}
