package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_SanitizeMerchantName(t *testing.T) {
	s := NewSanitizer()

	tests := map[string]struct {
		input string
		want  string
	}{
		"plain name":             {input: "ShopRite", want: "ShopRite"},
		"ampersand survives":     {input: "Stop & Shop", want: "Stop & Shop"},
		"entity is decoded":      {input: "Stop &amp; Shop", want: "Stop & Shop"},
		"markup stripped":        {input: "<b>Key</b> Food<script>x()</script>", want: "Key Food"},
		"whitespace collapsed":   {input: "  Whole \t\n Foods  ", want: "Whole Foods"},
		"fullwidth normalized":   {input: "ＡＣＭＥ", want: "ACME"},
		"empty falls back":       {input: "   ", want: UnknownStoreName},
		"markup only falls back": {input: "<br/>", want: UnknownStoreName},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.SanitizeMerchantName(tc.input))
		})
	}
}

func TestSanitizer_TruncatesLongNames(t *testing.T) {
	s := NewSanitizer()

	got := s.SanitizeMerchantName(strings.Repeat("a", 400))

	assert.Len(t, []rune(got), MaxNameLength)
}
