package domain

import (
	"time"

	"github.com/google/uuid"
)

// DealType classifies the kind of offer printed on the flyer.
type DealType string

const (
	DealTypeSale      DealType = "sale"
	DealTypeBOGO      DealType = "bogo"
	DealTypeMultiBuy  DealType = "multi_buy"
	DealTypeCoupon    DealType = "coupon"
	DealTypeClearance DealType = "clearance"
)

const (
	// MaxSalePrice is the inclusive upper bound for an accepted sale price.
	MaxSalePrice = 10000.0

	// OCRConfidence is the nominal confidence assigned to model-extracted deals.
	OCRConfidence = 0.9

	// MaxRawTextLength bounds the audit excerpt kept on each deal.
	MaxRawTextLength = 500

	// DefaultDealUnit is used when the model omits the unit.
	DefaultDealUnit = "each"
)

// ParseDealType normalizes a free-form deal type, defaulting to sale.
func ParseDealType(raw string) DealType {
	switch DealType(raw) {
	case DealTypeSale, DealTypeBOGO, DealTypeMultiBuy, DealTypeCoupon, DealTypeClearance:
		return DealType(raw)
	default:
		return DealTypeSale
	}
}

// Deal is one extracted product offer. StoreName, ZipCode and the validity
// window are copies of the parent flyer's values.
type Deal struct {
	ID              uuid.UUID `json:"id"`
	FlyerID         uuid.UUID `json:"flyer_id"`
	StoreName       string    `json:"store_name"`
	ZipCode         string    `json:"zip_code"`
	ProductName     string    `json:"product_name" validate:"required,max=255"`
	ProductBrand    *string   `json:"product_brand,omitempty"`
	ProductCategory *string   `json:"product_category,omitempty"`
	SalePrice       float64   `json:"sale_price" validate:"gt=0,lte=10000"`
	RegularPrice    *float64  `json:"regular_price,omitempty"`
	Unit            string    `json:"unit" validate:"required,max=50"`
	DealType        DealType  `json:"deal_type" validate:"oneof=sale bogo multi_buy coupon clearance"`
	Quantity        *string   `json:"quantity,omitempty"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidTo         time.Time `json:"valid_to"`
	Confidence      float64   `json:"confidence" validate:"gte=0,lte=1"`
	RawText         *string   `json:"raw_text,omitempty"`
	ImageURL        *string   `json:"image_url,omitempty"`
}

// AttachToFlyer copies the denormalized flyer fields onto the deal.
func (d *Deal) AttachToFlyer(f Flyer) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.FlyerID = f.ID
	d.StoreName = f.StoreName
	d.ZipCode = f.ZipCode
	d.ValidFrom = f.ValidFrom
	d.ValidTo = f.ValidTo
}

// HasValidPricing checks the sale price bounds and that a regular price, when
// present, is strictly higher than the sale price.
func (d Deal) HasValidPricing() bool {
	if d.SalePrice <= 0 || d.SalePrice > MaxSalePrice {
		return false
	}
	if d.RegularPrice != nil && *d.RegularPrice <= d.SalePrice {
		return false
	}
	return true
}
