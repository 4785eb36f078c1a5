package logging

import (
	"strings"
)

const redactedValue = "[REDACTED]"

// Redactor handles secret redaction in log fields.
type Redactor struct {
	sensitiveKeys map[string]bool
}

// NewRedactor creates a new Redactor with the SRP secrets marked sensitive.
func NewRedactor() *Redactor {
	return &Redactor{
		sensitiveKeys: map[string]bool{
			// Credentials
			"password":    true,
			"private_key": true,
			"x":           true,
			"secret":      true,

			// SRP protocol values
			"a":           true, // client ephemeral private
			"b":           true, // server ephemeral private
			"s":           true, // premaster secret
			"key":         true,
			"session_key": true,
			"k_session":   true,
			"m1":          true, // client proof
			"m2":          true, // server proof
			"proof":       true,
			"verifier":    true,
			"salt":        true, // not secret, but redact by default
		},
	}
}

// AddSensitiveKey adds a custom key to the redaction list.
func (r *Redactor) AddSensitiveKey(key string) {
	r.sensitiveKeys[strings.ToLower(key)] = true
}

// RemoveSensitiveKey removes a key from the redaction list.
func (r *Redactor) RemoveSensitiveKey(key string) {
	delete(r.sensitiveKeys, strings.ToLower(key))
}

// RedactFields returns a copy of fields with sensitive values replaced.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	redacted := make(map[string]any, len(fields))

	for k, v := range fields {
		if r.isSensitiveKey(k) {
			redacted[k] = redactedValue
		} else if nested, ok := v.(map[string]any); ok {
			redacted[k] = r.RedactFields(nested)
		} else {
			redacted[k] = v
		}
	}

	return redacted
}

// RedactString redacts the whole string if it looks like it carries a
// sensitive key, e.g. "password=..." or `"m1":`.
func (r *Redactor) RedactString(s string) string {
	lower := strings.ToLower(s)

	for key := range r.sensitiveKeys {
		// single-letter keys would match almost any text
		if len(key) < 2 {
			continue
		}
		for _, pattern := range []string{key + "=", key + ": ", "\"" + key + "\":"} {
			if strings.Contains(lower, pattern) {
				return redactedValue
			}
		}
	}

	return s
}

// isSensitiveKey checks for an exact, case-insensitive key match.
func (r *Redactor) isSensitiveKey(key string) bool {
	return r.sensitiveKeys[strings.ToLower(key)]
}
