package ocr_gateway

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"flyer-ingest/domain"
	"flyer-ingest/utils/validator"

	"github.com/tidwall/gjson"
)

const (
	maxProductNameLength = 255
	maxUnitLength        = 50
	snippetLength        = 120
)

var (
	// multiBuyPattern matches "2 for $5", "3 For 10.00", "2/$5".
	multiBuyPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:for|/)\s*\$?\s*(\d+(?:\.\d{1,2})?)`)
	// leadingMultiBuyPattern requires the offer at the start of sale_price.
	leadingMultiBuyPattern = regexp.MustCompile(`(?i)^(\d+)\s*(?:for|/)\s*\$?\s*(\d+(?:\.\d{1,2})?)`)
	pricePattern           = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// RejectedDeal records why one model element was dropped.
type RejectedDeal struct {
	Index  int
	Reason string
}

// DealParseResult holds the accepted deals of one page and the dropped elements.
type DealParseResult struct {
	Deals    []domain.Deal
	Rejected []RejectedDeal
}

// DealParser validates free-form model output into deals.
type DealParser struct {
	validator *validator.Validator
}

func NewDealParser(v *validator.Validator) *DealParser {
	return &DealParser{validator: v}
}

// ParseDeals decodes the first "[" through the last "]" of raw. A missing or
// undecodable array is a *domain.DecodeError; individual bad elements are
// rejected without failing the page.
func (p *DealParser) ParseDeals(raw string) (DealParseResult, error) {
	segment, err := extractArray(raw)
	if err != nil {
		return DealParseResult{}, err
	}

	rawText := truncateRunes(raw, domain.MaxRawTextLength)

	var result DealParseResult
	for i, item := range gjson.Parse(segment).Array() {
		deal, reason := p.parseDeal(item)
		if reason != "" {
			result.Rejected = append(result.Rejected, RejectedDeal{Index: i, Reason: reason})
			continue
		}
		deal.RawText = &rawText
		result.Deals = append(result.Deals, deal)
	}
	return result, nil
}

func extractArray(raw string) (string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return "", &domain.DecodeError{Reason: "no JSON array in model output", Snippet: truncateRunes(raw, snippetLength)}
	}

	segment := raw[start : end+1]
	if !gjson.Valid(segment) {
		return "", &domain.DecodeError{Reason: "malformed JSON array", Snippet: truncateRunes(segment, snippetLength)}
	}
	return segment, nil
}

func (p *DealParser) parseDeal(item gjson.Result) (domain.Deal, string) {
	if !item.IsObject() {
		return domain.Deal{}, "element is not an object"
	}

	name := strings.TrimSpace(item.Get("product_name").String())
	if name == "" {
		return domain.Deal{}, "missing product_name"
	}

	dealType := domain.ParseDealType(strings.ToLower(strings.TrimSpace(item.Get("deal_type").String())))
	quantity := optionalString(item.Get("quantity"))

	rawSale := item.Get("sale_price")
	salePrice, ok, present := parsePrice(rawSale)
	if offer, isMultiBuy := saleMultiBuyOffer(rawSale); isMultiBuy {
		salePrice, ok = multiBuyUnitPriceFrom(leadingMultiBuyPattern, offer)
		dealType = domain.DealTypeMultiBuy
		if quantity == nil {
			quantity = &offer
		}
	}
	if !present {
		if quantity == nil {
			return domain.Deal{}, "missing sale_price"
		}
		salePrice, ok = multiBuyUnitPrice(*quantity)
		if !ok {
			return domain.Deal{}, "missing sale_price"
		}
		dealType = domain.DealTypeMultiBuy
	} else if !ok {
		return domain.Deal{}, "non-numeric sale_price"
	}

	if salePrice <= 0 || salePrice > domain.MaxSalePrice {
		return domain.Deal{}, fmt.Sprintf("sale_price %.2f out of range", salePrice)
	}

	var regularPrice *float64
	if v, ok, present := parsePrice(item.Get("regular_price")); present && ok {
		regularPrice = &v
	}

	unit := truncateRunes(strings.TrimSpace(item.Get("unit").String()), maxUnitLength)
	if unit == "" {
		unit = domain.DefaultDealUnit
	}

	deal := domain.Deal{
		ProductName:     truncateRunes(name, maxProductNameLength),
		ProductBrand:    optionalString(item.Get("brand")),
		ProductCategory: optionalString(item.Get("category")),
		SalePrice:       salePrice,
		RegularPrice:    regularPrice,
		Unit:            unit,
		DealType:        dealType,
		Quantity:        quantity,
		Confidence:      domain.OCRConfidence,
	}

	if !deal.HasValidPricing() {
		return domain.Deal{}, "regular_price does not exceed sale_price"
	}

	if err := p.validator.Validate(deal); err != nil {
		return domain.Deal{}, err.Error()
	}
	return deal, ""
}

// saleMultiBuyOffer reports whether a string sale_price is written as an
// "N for $X" offer.
func saleMultiBuyOffer(v gjson.Result) (string, bool) {
	if v.Type != gjson.String {
		return "", false
	}
	s := strings.TrimSpace(v.String())
	return s, leadingMultiBuyPattern.MatchString(s)
}

// parsePrice reports the value rounded to cents, whether it is numeric, and
// whether the field was present at all. Strings like "$3.99" or "1,299.00"
// are accepted.
func parsePrice(v gjson.Result) (float64, bool, bool) {
	switch v.Type {
	case gjson.Null:
		return 0, false, false
	case gjson.Number:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false, true
		}
		return roundCents(f), true, true
	case gjson.String:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return 0, false, false
		}
		match := pricePattern.FindString(strings.ReplaceAll(s, ",", ""))
		if match == "" {
			return 0, false, true
		}
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false, true
		}
		return roundCents(f), true, true
	default:
		return 0, false, true
	}
}

// multiBuyUnitPrice turns "N for $X" into X/N rounded to cents.
func multiBuyUnitPrice(quantity string) (float64, bool) {
	return multiBuyUnitPriceFrom(multiBuyPattern, quantity)
}

func multiBuyUnitPriceFrom(pattern *regexp.Regexp, offer string) (float64, bool) {
	m := pattern.FindStringSubmatch(offer)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	total, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	return roundCents(total / float64(n)), true
}

// roundCents matches the NUMERIC(10,2) price columns.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func optionalString(v gjson.Result) *string {
	if v.Type != gjson.String && v.Type != gjson.Number {
		return nil
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return nil
	}
	return &s
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
