package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestDeal_HasValidPricing(t *testing.T) {
	tests := []struct {
		name string
		deal Deal
		want bool
	}{
		{name: "normal price", deal: Deal{SalePrice: 3.99}, want: true},
		{name: "zero price", deal: Deal{SalePrice: 0}, want: false},
		{name: "above ceiling", deal: Deal{SalePrice: 15000}, want: false},
		{name: "at ceiling", deal: Deal{SalePrice: 10000}, want: true},
		{name: "regular above sale", deal: Deal{SalePrice: 2.5, RegularPrice: floatPtr(3.49)}, want: true},
		{name: "regular below sale", deal: Deal{SalePrice: 3.00, RegularPrice: floatPtr(2.00)}, want: false},
		{name: "regular equals sale", deal: Deal{SalePrice: 3.00, RegularPrice: floatPtr(3.00)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.deal.HasValidPricing())
		})
	}
}

func TestDeal_AttachToFlyer(t *testing.T) {
	flyer := Flyer{
		ID:        uuid.New(),
		StoreName: "ACME Markets",
		ZipCode:   "07001",
		ValidFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:   time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
	}
	deal := Deal{ProductName: "Bananas", SalePrice: 0.59}

	deal.AttachToFlyer(flyer)

	assert.NotEqual(t, uuid.Nil, deal.ID)
	assert.Equal(t, flyer.ID, deal.FlyerID)
	assert.Equal(t, "ACME Markets", deal.StoreName)
	assert.Equal(t, "07001", deal.ZipCode)
	assert.Equal(t, flyer.ValidFrom, deal.ValidFrom)
	assert.Equal(t, flyer.ValidTo, deal.ValidTo)
}

func TestParseDealType(t *testing.T) {
	assert.Equal(t, DealTypeBOGO, ParseDealType("bogo"))
	assert.Equal(t, DealTypeMultiBuy, ParseDealType("multi_buy"))
	assert.Equal(t, DealTypeSale, ParseDealType("flash"))
	assert.Equal(t, DealTypeSale, ParseDealType(""))
}
