// Package vetter validates named attributes on record-like objects against
// declared rule sets and records structured failures.
//
// Quick Start:
//
//	rec := vetter.NewMapRecord(map[string]any{"age": "42"})
//	attr := vetter.NewAttribute(rec, "age", vetter.Rules{
//	    vetter.Coerce: "int",
//	    vetter.Size:   vetter.Between(0, 120),
//	})
//	err := attr.Validate() // non-nil only for malformed declarations
//	rec.Failures()         // per-field validation failures
//
// Rules: presence, acceptance, format, coerce, inclusion, exclusion, size,
// confirmation. Rules run in that fixed order; a missing (nil) value
// short-circuits everything after acceptance. Successful coercion writes
// the converted value back to the record so later rules and the caller
// observe it.
//
// See example_test.go and the schemafile package for declaring whole
// schemas and validating many attributes at once.
package vetter
