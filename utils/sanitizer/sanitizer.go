package sanitizer

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxNameLength matches the store_name column width.
	MaxNameLength = 255

	// UnknownStoreName is stored when a merchant name sanitizes to nothing.
	UnknownStoreName = "Unknown Store"
)

// Sanitizer cleans free text received from upstream before it is persisted.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer that strips every HTML element.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// SanitizeText strips markup, normalizes to NFKC, drops control characters
// and collapses whitespace.
func (s *Sanitizer) SanitizeText(raw string) string {
	stripped := html.UnescapeString(s.policy.Sanitize(raw))
	normalized := norm.NFKC.String(stripped)

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, normalized)

	return strings.Join(strings.Fields(cleaned), " ")
}

// SanitizeMerchantName returns a display-safe store name of at most
// MaxNameLength runes, or UnknownStoreName.
func (s *Sanitizer) SanitizeMerchantName(raw string) string {
	name := s.SanitizeText(raw)
	if name == "" {
		return UnknownStoreName
	}

	if runes := []rune(name); len(runes) > MaxNameLength {
		name = strings.TrimSpace(string(runes[:MaxNameLength]))
	}
	return name
}
