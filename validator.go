package vetter

import "fmt"

// Validator runs an ordered schema of attribute declarations over one
// record. Attributes are validated in declaration order; a single logical
// pass per record, never concurrent passes over the same record.
type Validator struct {
	schema   Schema
	registry *Registry
	strict   bool
}

// New creates a Validator for the schema with strict mode enabled and the
// default coercion registry.
func New(schema Schema) *Validator {
	return &Validator{
		schema:   schema,
		registry: defaultRegistry,
		strict:   true,
	}
}

// WithRegistry sets the coercion registry used by every attribute pass.
func (v *Validator) WithRegistry(registry *Registry) *Validator {
	if registry != nil {
		v.registry = registry
	}
	return v
}

// Strict controls whether unknown rule names in the schema are rejected
// before any attribute runs. Default: true.
func (v *Validator) Strict(strict bool) *Validator {
	v.strict = strict
	return v
}

// Validate runs every attribute declaration against the record. It returns
// a *ConfigError for a malformed declaration (aborting the run) or a
// *ValidationError when any per-field failures were collected.
func (v *Validator) Validate(record Record) error {
	if v.strict {
		if err := v.checkSchema(); err != nil {
			return err
		}
	}

	for _, decl := range v.schema {
		attr := NewAttribute(record, decl.Name, decl.Rules).WithRegistry(v.registry)
		if err := attr.Validate(); err != nil {
			return err
		}
	}

	return record.Failures().AsError()
}

// checkSchema rejects rule names outside the closed rule set.
func (v *Validator) checkSchema() error {
	for _, decl := range v.schema {
		for name := range decl.Rules {
			if !knownRules[name] {
				return &ConfigError{
					Attribute: decl.Name,
					Rule:      name,
					Code:      ErrCodeUnknownRule,
					Message:   fmt.Sprintf("unknown rule %q (strict mode)", string(name)),
				}
			}
		}
	}
	return nil
}
