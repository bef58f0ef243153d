package vetter

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Azhovan/vetter/internal/normalize"
)

// Attribute validates a single named attribute on a record against its rule
// mapping. An instance is bound to one attribute for its lifetime and used
// for exactly one validation pass; it is not safe for concurrent use.
type Attribute struct {
	record   Record
	name     string
	rules    Rules
	registry *Registry
	value    any
}

// NewAttribute binds a validator to one attribute of the record and
// snapshots the attribute's current value. The default coercion registry is
// used unless WithRegistry overrides it.
func NewAttribute(record Record, name string, rules Rules) *Attribute {
	value, _ := record.Value(name)
	return &Attribute{
		record:   record,
		name:     name,
		rules:    rules,
		registry: defaultRegistry,
		value:    value,
	}
}

// WithRegistry sets the coercion registry consulted by the coerce rule.
func (a *Attribute) WithRegistry(registry *Registry) *Attribute {
	if registry != nil {
		a.registry = registry
	}
	return a
}

// Validate runs the declared rules in a fixed order: presence and
// acceptance always run; a nil snapshot skips everything else; otherwise
// format, coerce, inclusion, exclusion, size, and confirmation follow.
// Each declared rule that fails appends one FieldError to the record's
// failure collector. A successful coercion overwrites the working value and
// writes through to the record, so later rules and the caller observe it.
//
// The returned error is non-nil only for a malformed declaration
// (*ConfigError), which aborts the run. Per-field failures never abort.
func (a *Attribute) Validate() error {
	a.checkPresence()
	a.checkAcceptance()

	// Presence and acceptance are the only rules applied to a missing value.
	if a.value == nil {
		return nil
	}

	if err := a.checkFormat(); err != nil {
		return err
	}
	if err := a.coerceValue(); err != nil {
		return err
	}
	if err := a.checkInclusion(); err != nil {
		return err
	}
	if err := a.checkExclusion(); err != nil {
		return err
	}
	if err := a.checkSize(); err != nil {
		return err
	}
	a.checkConfirmation()

	return nil
}

// Value returns the validator's working value, reflecting any coercion.
func (a *Attribute) Value() any {
	return a.value
}

// fail records one per-field failure for this attribute.
func (a *Attribute) fail(code string, expected any, message string) {
	a.record.Failures().Add(FieldError{
		Attribute: a.name,
		Code:      code,
		Expected:  expected,
		Actual:    a.value,
		Message:   message,
	})
}

func (a *Attribute) checkPresence() {
	if _, ok := a.rules.declared(Presence); !ok {
		return
	}
	if isBlank(a.value) {
		a.fail(ErrCodePresence, true, "value is required but blank")
	}
}

func (a *Attribute) checkAcceptance() {
	if _, ok := a.rules.declared(Acceptance); !ok {
		return
	}
	if !Truthy(a.value) {
		a.fail(ErrCodeAcceptance, true, "value must be accepted")
	}
}

func (a *Attribute) checkFormat() error {
	arg, ok := a.rules.declared(Format)
	if !ok {
		return nil
	}

	matcher, err := a.matcherFor(arg)
	if err != nil {
		return err
	}

	if !matcher.MatchString(stringify(a.value)) {
		a.fail(ErrCodeFormat, arg, "value does not match the declared format")
	}
	return nil
}

// matcherFor resolves the format argument: a Matcher is used as-is, a
// string is compiled as a regular expression.
func (a *Attribute) matcherFor(arg any) (Matcher, error) {
	switch m := arg.(type) {
	case Matcher:
		return m, nil
	case string:
		re, err := regexp.Compile(m)
		if err != nil {
			return nil, &ConfigError{
				Attribute: a.name,
				Rule:      Format,
				Code:      ErrCodeBadArgument,
				Message:   fmt.Sprintf("pattern %q does not compile: %v", m, err),
			}
		}
		return re, nil
	default:
		return nil, &ConfigError{
			Attribute: a.name,
			Rule:      Format,
			Code:      ErrCodeBadArgument,
			Message:   fmt.Sprintf("argument must be a Matcher or pattern string, got %T", arg),
		}
	}
}

func (a *Attribute) coerceValue() error {
	arg, ok := a.rules.declared(Coerce)
	if !ok {
		return nil
	}

	target, ok := arg.(string)
	if !ok {
		return &ConfigError{
			Attribute: a.name,
			Rule:      Coerce,
			Code:      ErrCodeBadArgument,
			Message:   fmt.Sprintf("target must be a type name string, got %T", arg),
		}
	}

	converted, err := a.registry.Convert(target, a.value)
	switch {
	case err == nil:
		a.value = converted
		a.record.SetValue(a.name, converted)
	case errors.Is(err, ErrUnknownCoercion):
		return &ConfigError{
			Attribute: a.name,
			Rule:      Coerce,
			Code:      ErrCodeUnknownCoercion,
			Message:   err.Error(),
		}
	default:
		a.fail(ErrCodeCoerce, target, err.Error())
	}
	return nil
}

func (a *Attribute) checkInclusion() error {
	arg, ok := a.rules.declared(Inclusion)
	if !ok {
		return nil
	}

	member, err := contains(arg, a.value)
	if err != nil {
		return &ConfigError{Attribute: a.name, Rule: Inclusion, Code: ErrCodeBadArgument, Message: err.Error()}
	}
	if !member {
		a.fail(ErrCodeInclusion, arg, "value is not in the allowed collection")
	}
	return nil
}

func (a *Attribute) checkExclusion() error {
	arg, ok := a.rules.declared(Exclusion)
	if !ok {
		return nil
	}

	member, err := contains(arg, a.value)
	if err != nil {
		return &ConfigError{Attribute: a.name, Rule: Exclusion, Code: ErrCodeBadArgument, Message: err.Error()}
	}
	if member {
		a.fail(ErrCodeExclusion, arg, "value is in the forbidden collection")
	}
	return nil
}

func (a *Attribute) checkSize() error {
	arg, ok := a.rules.declared(Size)
	if !ok {
		return nil
	}

	n, measurable := sizeOf(a.value)

	switch quantity := arg.(type) {
	case int:
		if !measurable || n != quantity {
			a.fail(ErrCodeSize, quantity, fmt.Sprintf("size must be exactly %d", quantity))
		}
	case Range:
		if !measurable || !quantity.Contains(n) {
			a.fail(ErrCodeSize, quantity, fmt.Sprintf("size must be between %d and %d", quantity.Min, quantity.Max))
		}
	default:
		return &ConfigError{
			Attribute: a.name,
			Rule:      Size,
			Code:      ErrCodeBadSize,
			Message:   fmt.Sprintf("quantity must be an int or Range, got %T", arg),
		}
	}
	return nil
}

func (a *Attribute) checkConfirmation() {
	if _, ok := a.rules.declared(Confirmation); !ok {
		return
	}

	other, _ := a.record.Value(normalize.ConfirmationKey(a.name))
	if !strictEqual(a.value, other) {
		a.fail(ErrCodeConfirmation, true, "value does not match its confirmation")
	}
}
