package vetter

// RuleName identifies one of the closed set of validation rules.
type RuleName string

// The supported rules, listed in evaluation order.
const (
	Presence     RuleName = "presence"
	Acceptance   RuleName = "acceptance"
	Format       RuleName = "format"
	Coerce       RuleName = "coerce"
	Inclusion    RuleName = "inclusion"
	Exclusion    RuleName = "exclusion"
	Size         RuleName = "size"
	Confirmation RuleName = "confirmation"
)

// knownRules is the closed rule set. Evaluation order is fixed in
// Attribute.Validate and never derived from this map.
var knownRules = map[RuleName]bool{
	Presence:     true,
	Acceptance:   true,
	Format:       true,
	Coerce:       true,
	Inclusion:    true,
	Exclusion:    true,
	Size:         true,
	Confirmation: true,
}

// Rules maps rule names to their arguments for one attribute. A rule with
// no entry is never evaluated. Argument shapes per rule:
//
//   - Presence, Acceptance, Confirmation: bool
//   - Format: Matcher (a *regexp.Regexp qualifies) or a pattern string
//   - Coerce: target type name registered in the coercion Registry
//   - Inclusion, Exclusion: slice, array, map (key membership), string
//     (substring for string values), or a Collection implementation
//   - Size: int (exact) or Range (inclusive bounds)
type Rules map[RuleName]any

// declared returns the argument for a rule and whether it was declared.
// Boolean rules declared as false count as not requested.
func (r Rules) declared(name RuleName) (any, bool) {
	arg, ok := r[name]
	if !ok {
		return nil, false
	}
	if b, isBool := arg.(bool); isBool && !b {
		return nil, false
	}
	return arg, true
}

// Matcher tests a text rendering of a value against a declared format.
type Matcher interface {
	MatchString(s string) bool
}

// Collection reports membership for inclusion/exclusion rules. Declaring a
// Collection bypasses the built-in slice/map/string membership handling.
type Collection interface {
	Contains(value any) bool
}

// Range is an inclusive size interval.
type Range struct {
	Min int
	Max int
}

// Between builds an inclusive Range.
func Between(min, max int) Range {
	return Range{Min: min, Max: max}
}

// Contains reports whether n falls within the range, bounds included.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// AttributeRules pairs an attribute name with its rule mapping.
type AttributeRules struct {
	Name  string
	Rules Rules
}

// Schema is an ordered list of attribute declarations. Attributes are
// validated in declaration order.
type Schema []AttributeRules
