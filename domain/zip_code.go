package domain

import (
	"fmt"
	"strings"
)

// SanitizeZipCode strips everything but digits and accepts five-digit ZIPs
// and ZIP+4 (the extension is dropped).
func SanitizeZipCode(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch len(digits) {
	case 5:
		return digits, nil
	case 9:
		return digits[:5], nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidZipCode, raw)
	}
}

// ZipCodeOrPlaceholder returns the sanitized ZIP and true, or the placeholder
// and false when raw cannot be sanitized.
func ZipCodeOrPlaceholder(raw string) (string, bool) {
	zip, err := SanitizeZipCode(raw)
	if err != nil {
		return PlaceholderZipCode, false
	}
	return zip, true
}

// IsGroceryMerchant matches a flyer against the configured chain list
// (case-insensitive substring on name or slug) or a grocery category.
func IsGroceryMerchant(src FlyerSource, chains []string) bool {
	for _, category := range src.Categories {
		if strings.Contains(strings.ToLower(category), "grocer") {
			return true
		}
	}

	name := strings.ToLower(src.MerchantName)
	slug := strings.ToLower(src.MerchantSlug)
	for _, chain := range chains {
		chain = strings.ToLower(strings.TrimSpace(chain))
		if chain == "" {
			continue
		}
		if strings.Contains(name, chain) || strings.Contains(slug, strings.ReplaceAll(chain, " ", "-")) {
			return true
		}
	}
	return false
}
