package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeZipCode(t *testing.T) {
	tests := map[string]struct {
		raw     string
		want    string
		wantErr bool
	}{
		"plain":         {raw: "07001", want: "07001"},
		"whitespace":    {raw: " 07001 ", want: "07001"},
		"zip plus four": {raw: "07001-1234", want: "07001"},
		"too short":     {raw: "7001", wantErr: true},
		"letters only":  {raw: "abcde", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := SanitizeZipCode(tc.raw)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidZipCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestZipCodeOrPlaceholder(t *testing.T) {
	zip, ok := ZipCodeOrPlaceholder("N/A")
	assert.False(t, ok)
	assert.Equal(t, PlaceholderZipCode, zip)

	zip, ok = ZipCodeOrPlaceholder("10001")
	assert.True(t, ok)
	assert.Equal(t, "10001", zip)
}

func TestIsGroceryMerchant(t *testing.T) {
	chains := []string{"ShopRite", "Stop & Shop", "Whole Foods"}

	tests := []struct {
		name string
		src  FlyerSource
		want bool
	}{
		{name: "chain by name", src: FlyerSource{MerchantName: "ShopRite of Elizabeth"}, want: true},
		{name: "chain by slug", src: FlyerSource{MerchantSlug: "whole-foods-market"}, want: true},
		{name: "grocery category", src: FlyerSource{MerchantName: "Corner Market", Categories: []string{"Groceries"}}, want: true},
		{name: "electronics", src: FlyerSource{MerchantName: "Best Buy", Categories: []string{"Electronics"}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGroceryMerchant(tt.src, chains))
		})
	}
}
