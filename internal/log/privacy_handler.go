package log

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// identityKeys contains attribute keys that should always be redacted.
// These keys commonly carry patient identity and never belong in logs.
var identityKeys = map[string]bool{
	// Direct identity
	"patient_id":   true,
	"patientid":    true,
	"patient_name": true,
	"name":         true,
	"full_name":    true,
	"surname":      true,
	"given_name":   true,

	// Contact details
	"email":   true,
	"phone":   true,
	"mobile":  true,
	"address": true,

	// Administrative identifiers
	"national_id":      true,
	"insurance_number": true,
	"record_number":    true,
	"mrn":              true,

	// Dates that identify
	"date_of_birth": true,
	"dob":           true,
	"birth_date":    true,
}

// identityPatterns contains regex patterns that indicate identifying
// values. Values matching these patterns are redacted regardless of the
// key name.
var identityPatterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),

	// Phone numbers (international or local, 7+ digits with separators)
	regexp.MustCompile(`^\+?[0-9][0-9 ().-]{6,}$`),

	// ISO dates, the usual date-of-birth format in measurement files
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
}

// MaskValue is the string used to replace redacted values.
const MaskValue = "***REDACTED***"

// PrivacyHandler wraps an slog.Handler to redact patient-identifying
// information. It intercepts log records and masks attribute values
// that match identity key names or value patterns before passing them
// to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, tint, etc.)
//  3. Callers cannot forget to use it once it is installed at the root
type PrivacyHandler struct {
	// handler is the underlying slog handler that receives redacted records.
	handler slog.Handler
}

// NewPrivacyHandler creates a PrivacyHandler wrapping the given handler.
// If handler is nil, the returned PrivacyHandler uses slog.Default().Handler().
func NewPrivacyHandler(handler slog.Handler) *PrivacyHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &PrivacyHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PrivacyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and passes it to the underlying
// handler.
func (h *PrivacyHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, redacted)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are redacted before being added.
func (h *PrivacyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redactAttr(a)
	}
	return &PrivacyHandler{handler: h.handler.WithAttrs(redacted)}
}

// WithGroup returns a new handler with the given group name.
func (h *PrivacyHandler) WithGroup(name string) slog.Handler {
	return &PrivacyHandler{handler: h.handler.WithGroup(name)}
}

// redactAttr redacts a single attribute, recursively handling groups.
func (h *PrivacyHandler) redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			redacted[i] = h.redactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}

	keyLower := strings.ToLower(a.Key)
	if identityKeys[keyLower] || containsIdentityKeyword(keyLower) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		if isIdentityValue(a.Value.String()) {
			return slog.String(a.Key, MaskValue)
		}
	}

	return a
}

// containsIdentityKeyword checks if the key contains identity keywords.
// Note: We intentionally exclude bare "id" because it causes false
// positives ("valid", "tier_id" of reference data); patient identifiers
// are covered by the explicit key map.
func containsIdentityKeyword(key string) bool {
	keywords := []string{
		"patient_name", "full_name", "birth", "email", "phone",
		"insurance", "address",
	}
	for _, keyword := range keywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// isIdentityValue checks if a value matches identifying patterns.
func isIdentityValue(value string) bool {
	for _, pattern := range identityPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}
