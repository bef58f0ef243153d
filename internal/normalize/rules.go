// Package normalize canonicalizes rule names and attribute keys shared by
// the root package and the declaration loaders.
package normalize

import (
	"strings"
	"unicode"
)

// ruleAliases maps accepted spellings to canonical rule names.
// Canonical names map to themselves.
var ruleAliases = map[string]string{
	"presence":     "presence",
	"required":     "presence",
	"acceptance":   "acceptance",
	"accepted":     "acceptance",
	"format":       "format",
	"coerce":       "coerce",
	"type":         "coerce",
	"inclusion":    "inclusion",
	"in":           "inclusion",
	"exclusion":    "exclusion",
	"not_in":       "exclusion",
	"size":         "size",
	"length":       "size",
	"confirmation": "confirmation",
	"confirmed":    "confirmation",
}

// Rule canonicalizes a rule name. Matching is case-insensitive and accepts
// the aliases required, accepted, type, in, not_in, length, and confirmed.
// Returns false for names outside the closed rule set.
func Rule(name string) (string, bool) {
	canonical, ok := ruleAliases[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// ConfirmationKey synthesizes the record key holding an attribute's
// confirmation value.
// Examples:
//   - "password" → "password_confirmation"
//   - "email" → "email_confirmation"
func ConfirmationKey(attribute string) string {
	return attribute + "_confirmation"
}

// AttributeKey derives an attribute name from a struct field name by
// converting CamelCase to snake_case.
// Examples:
//   - "Age" → "age"
//   - "PasswordConfirmation" → "password_confirmation"
//   - "APIKey" → "api_key"
func AttributeKey(fieldName string) string {
	var b strings.Builder
	runes := []rune(fieldName)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Break before an upper rune that starts a new word: either the
			// previous rune is lower, or the next rune is lower (end of an
			// acronym run such as "API" in "APIKey").
			if i > 0 {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || nextLower {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// EnvKey normalizes an environment variable name to an attribute key.
// Examples:
//   - "PASSWORD" → "password"
//   - "PASSWORD_CONFIRMATION" → "password_confirmation"
func EnvKey(name string) string {
	return strings.ToLower(name)
}
