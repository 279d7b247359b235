package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveValidity(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		from, to string
		wantFrom time.Time
		wantTo   time.Time
	}{
		"valid unix seconds": {
			from:     "1772236800",
			to:       "1772755200",
			wantFrom: time.Unix(1772236800, 0).UTC(),
			wantTo:   time.Unix(1772755200, 0).UTC(),
		},
		"malformed from": {
			from:     "next week",
			to:       "1772755200",
			wantFrom: now,
			wantTo:   now.AddDate(0, 0, DefaultValidityDays),
		},
		"empty values": {
			wantFrom: now,
			wantTo:   now.AddDate(0, 0, DefaultValidityDays),
		},
		"inverted window": {
			from:     "1772755200",
			to:       "1772236800",
			wantFrom: now,
			wantTo:   now.AddDate(0, 0, DefaultValidityDays),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			from, to := ResolveValidity(tc.from, tc.to, now, DefaultValidityDays)
			assert.Equal(t, tc.wantFrom, from)
			assert.Equal(t, tc.wantTo, to)
			assert.False(t, to.Before(from))
		})
	}
}

func TestNewFlyer(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	src := FlyerSource{
		MerchantName: "ShopRite",
		MerchantSlug: "shoprite",
		FlyerRunID:   "run-1",
		FlyerName:    "Weekly Circular",
		FlyerPath:    "flyers/run-1/",
	}

	flyer := NewFlyer(src, "07001", []string{"https://img/1.jpg"}, now)

	assert.NotEmpty(t, flyer.ID)
	assert.Equal(t, "run-1", flyer.FlyerRunID)
	assert.Equal(t, "07001", flyer.ZipCode)
	assert.Equal(t, FlyerStatusPending, flyer.Status)
	assert.Equal(t, now, flyer.ValidFrom)
	assert.Nil(t, flyer.StoreID)
}
