package flyer_source_gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"flyer-ingest/domain"

	"github.com/tidwall/gjson"
)

const maxResponseBytes = 8 << 20

// FlyerSourceGateway reads the upstream flyer listing for a ZIP code.
// The payload shape drifts between API revisions, so fields are read with
// gjson from a list of known paths instead of a fixed struct.
type FlyerSourceGateway struct {
	httpClient *http.Client
	baseURL    string
	locale     string
	logger     *slog.Logger
}

func NewFlyerSourceGateway(httpClient *http.Client, baseURL, locale string, logger *slog.Logger) *FlyerSourceGateway {
	return &FlyerSourceGateway{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		locale:     locale,
		logger:     logger,
	}
}

func (g *FlyerSourceGateway) FetchFlyers(ctx context.Context, zipCode string) ([]domain.FlyerSource, error) {
	query := url.Values{}
	query.Set("postal_code", zipCode)
	query.Set("locale", g.locale)
	endpoint := fmt.Sprintf("%s/flyers?%s", g.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrMetadataUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMetadataUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w: status %d", domain.ErrMetadataUnavailable, domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrMetadataUnavailable, err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: response is not JSON", domain.ErrMetadataUnavailable)
	}

	sources := ParseFlyerListing(body)
	g.logger.InfoContext(ctx, "fetched flyer listing",
		"zip_code", zipCode,
		"flyers", len(sources))
	return sources, nil
}

// ParseFlyerListing accepts either a bare array or an object with a "flyers"
// array. Entries without a run id or a CDN path are dropped.
func ParseFlyerListing(body []byte) []domain.FlyerSource {
	root := gjson.ParseBytes(body)
	list := root
	if !root.IsArray() {
		list = root.Get("flyers")
	}

	var sources []domain.FlyerSource
	list.ForEach(func(_, item gjson.Result) bool {
		src := parseFlyer(item)
		if src.FlyerRunID == "" || src.FlyerPath == "" {
			return true
		}
		sources = append(sources, src)
		return true
	})
	return sources
}

func parseFlyer(item gjson.Result) domain.FlyerSource {
	merchantName := firstString(item, "merchant", "merchant_name", "merchant.name")

	src := domain.FlyerSource{
		MerchantID:   firstString(item, "merchant_id", "merchant.id"),
		MerchantName: merchantName,
		MerchantSlug: firstString(item, "merchant_slug", "merchant.slug"),
		FlyerRunID:   firstString(item, "flyer_run_id", "flyer.run_id"),
		FlyerName:    firstString(item, "name", "flyer_name"),
		FlyerPath:    firstString(item, "path", "flyer_data.path", "flyer.path"),
		Width:        firstInt(item, "width", "flyer_data.width", "flyer.width"),
		Height:       firstInt(item, "height", "flyer_data.height", "flyer.height"),
		ValidFrom:    item.Get("valid_from").String(),
		ValidTo:      item.Get("valid_to").String(),
		Categories:   parseCategories(item),
	}
	if src.MerchantSlug == "" {
		src.MerchantSlug = slugify(merchantName)
	}
	return src
}

func parseCategories(item gjson.Result) []string {
	var categories []string
	if arr := item.Get("categories"); arr.IsArray() {
		for _, c := range arr.Array() {
			if s := strings.TrimSpace(c.String()); s != "" {
				categories = append(categories, s)
			}
		}
		return categories
	}

	for _, c := range strings.Split(item.Get("categories_csv").String(), ",") {
		if s := strings.TrimSpace(c); s != "" {
			categories = append(categories, s)
		}
	}
	return categories
}

func firstString(item gjson.Result, paths ...string) string {
	for _, path := range paths {
		if v := item.Get(path); v.Exists() && v.Type != gjson.JSON {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstInt(item gjson.Result, paths ...string) int {
	for _, path := range paths {
		if v := item.Get(path); v.Exists() {
			if n := int(v.Int()); n > 0 {
				return n
			}
		}
	}
	return 0
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
