package product_image_gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"flyer-ingest/domain"
	"flyer-ingest/metrics"
	"flyer-ingest/utils/rate_limiter"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/gjson"
)

const (
	minQueryLength   = 3
	searchPageSize   = 5
	maxResponseBytes = 2 << 20
)

var (
	priceTokens    = regexp.MustCompile(`(?i)\$\s*\d+(?:\.\d+)?|\d+(?:\.\d+)?\s*(?:¢|c\b)`)
	quantityTokens = regexp.MustCompile(`(?i)\b\d+\s*(?:for|/)\s*\d*|\b\d+(?:\.\d+)?\s*(?:oz|fl oz|lb|lbs|ct|pk|pack|g|kg|ml|l|qt|gal)\b`)
	fillerTokens   = regexp.MustCompile(`(?i)\b(?:sale|bogo|buy|get|free|save|off|deal|special|club|card|coupon|digital|price|reg|regular|only|each|ea|limit|with|select|varieties|assorted)\b`)
	nonWordTokens  = regexp.MustCompile(`[^\p{L}\p{N}'&]+`)

	imageFields = []string{"image_front_url", "image_url", "image_front_small_url", "image_small_url"}
)

// Config describes the product search endpoint.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	CacheSize int
}

// ProductImageGateway attaches product photos to deals. It is best effort:
// any failure leaves the deal untouched.
type ProductImageGateway struct {
	httpClient *http.Client
	config     Config
	limiter    *rate_limiter.HostRateLimiter
	cache      *lru.Cache[string, string]
	logger     *slog.Logger
}

func NewProductImageGateway(httpClient *http.Client, config Config, limiter *rate_limiter.HostRateLimiter, logger *slog.Logger) (*ProductImageGateway, error) {
	cache, err := lru.New[string, string](config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create product image cache: %w", err)
	}

	return &ProductImageGateway{
		httpClient: httpClient,
		config:     config,
		limiter:    limiter,
		cache:      cache,
		logger:     logger,
	}, nil
}

// Enrich sets ImageURL on deals that have none and returns how many were set.
func (g *ProductImageGateway) Enrich(ctx context.Context, deals []domain.Deal) int {
	enriched := 0
	for i := range deals {
		if ctx.Err() != nil {
			break
		}
		if deals[i].ImageURL != nil {
			continue
		}

		brand := ""
		if deals[i].ProductBrand != nil {
			brand = *deals[i].ProductBrand
		}
		query := BuildQuery(brand, deals[i].ProductName)
		if len([]rune(query)) < minQueryLength {
			continue
		}

		imageURL, ok := g.lookup(ctx, query)
		if !ok || imageURL == "" {
			continue
		}
		deals[i].ImageURL = &imageURL
		enriched++
	}

	if enriched > 0 {
		g.logger.InfoContext(ctx, "enriched deals with product images",
			"deals", len(deals),
			"enriched", enriched)
	}
	return enriched
}

// BuildQuery joins brand and product name and strips price, quantity and
// promotional tokens.
func BuildQuery(brand, productName string) string {
	q := strings.TrimSpace(brand + " " + productName)
	q = priceTokens.ReplaceAllString(q, " ")
	q = quantityTokens.ReplaceAllString(q, " ")
	q = fillerTokens.ReplaceAllString(q, " ")
	q = nonWordTokens.ReplaceAllString(q, " ")
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// lookup returns the cached or freshly searched image URL. An empty URL with
// ok=true is a cached miss.
func (g *ProductImageGateway) lookup(ctx context.Context, query string) (string, bool) {
	if cached, ok := g.cache.Get(query); ok {
		metrics.RecordEnrichLookup("cached")
		return cached, true
	}

	if err := g.limiter.WaitForHost(ctx, g.config.BaseURL); err != nil {
		return "", false
	}

	imageURL, err := g.search(ctx, query)
	if err != nil {
		metrics.RecordEnrichLookup("error")
		g.logger.DebugContext(ctx, "product image search failed",
			"query", query,
			"error", err)
		return "", false
	}

	g.cache.Add(query, imageURL)
	if imageURL == "" {
		metrics.RecordEnrichLookup("miss")
	} else {
		metrics.RecordEnrichLookup("hit")
	}
	return imageURL, true
}

func (g *ProductImageGateway) search(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", fmt.Sprint(searchPageSize))
	params.Set("fields", "product_name,"+strings.Join(imageFields, ","))
	endpoint := strings.TrimRight(g.config.BaseURL, "/") + "/cgi/search.pl?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}

	return firstImage(body), nil
}

func firstImage(body []byte) string {
	for _, product := range gjson.GetBytes(body, "products").Array() {
		for _, field := range imageFields {
			if v := strings.TrimSpace(product.Get(field).String()); v != "" {
				return v
			}
		}
	}
	return ""
}
