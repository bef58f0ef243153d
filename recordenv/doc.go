// Package recordenv builds validation records from environment variables,
// for checking deployment environments against a schema.
//
// Key normalization: FOO_BAR → foo_bar
//
// Example:
//
//	rec := recordenv.New(recordenv.Options{Prefix: "APP_"})
//	err := vetter.New(schema).Validate(rec)
package recordenv
