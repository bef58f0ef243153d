// Package schemafile loads attribute rule declarations from YAML, JSON, or
// TOML documents into a vetter.Schema.
//
// Format is auto-detected from extension (.yaml, .json, .toml).
//
// Example document (YAML):
//
//	age:
//	  coerce: int
//	  size: {min: 0, max: 120}
//	role:
//	  inclusion: [admin, user]
//	password:
//	  presence: true
//	  confirmation: true
//
// YAML schemas keep document order; JSON and TOML maps are unordered, so
// their attributes are sorted by name for a deterministic schema.
package schemafile
