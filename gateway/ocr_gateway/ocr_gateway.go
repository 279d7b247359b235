package ocr_gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"flyer-ingest/domain"
	"flyer-ingest/metrics"
	"flyer-ingest/utils/rate_limiter"

	"github.com/tidwall/gjson"
)

const (
	extractionTemperature = 0.0
	maxResponseBytes      = 4 << 20
)

const extractionPrompt = `You are reading one page of a grocery store weekly flyer.
List every product offer visible on the page as a JSON array and output nothing else.
Each element must be an object with these fields:
  "product_name": string, required
  "brand": string or null
  "sale_price": number, the advertised price for one unit (omit it if the offer is only "N for $X")
  "regular_price": number or null, the crossed-out or "reg." price
  "unit": string such as "each", "lb", "oz", "pack"; null if not printed
  "deal_type": one of "sale", "bogo", "multi_buy", "coupon"
  "quantity": string exactly as printed for multi-buy offers, for example "2 for $5.00"; otherwise null
  "category": string such as "produce", "meat", "dairy", "bakery", "frozen", "pantry"; null if unsure
If the page has no offers, output [].`

// Config describes the vision model endpoint.
type Config struct {
	Host      string
	APIPath   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

// OCRGateway extracts deals from page images with an OpenAI-compatible
// chat completions endpoint.
type OCRGateway struct {
	httpClient *http.Client
	config     Config
	endpoint   string
	limiter    *rate_limiter.HostRateLimiter
	parser     *DealParser
	logger     *slog.Logger
}

func NewOCRGateway(httpClient *http.Client, config Config, limiter *rate_limiter.HostRateLimiter, parser *DealParser, logger *slog.Logger) *OCRGateway {
	return &OCRGateway{
		httpClient: httpClient,
		config:     config,
		endpoint:   strings.TrimRight(config.Host, "/") + "/" + strings.TrimLeft(config.APIPath, "/"),
		limiter:    limiter,
		parser:     parser,
		logger:     logger,
	}
}

// ExtractDeals sends one page to the model. Model output without a usable
// deal array is returned as a *domain.DecodeError.
func (g *OCRGateway) ExtractDeals(ctx context.Context, pageURL string) ([]domain.Deal, error) {
	if err := g.limiter.WaitForHost(ctx, g.endpoint); err != nil {
		return nil, fmt.Errorf("wait for OCR slot: %w", err)
	}

	start := time.Now()
	content, err := g.complete(ctx, pageURL)
	if err != nil {
		metrics.RecordOCRRequest("error", time.Since(start).Seconds())
		return nil, err
	}
	metrics.RecordOCRRequest("success", time.Since(start).Seconds())

	result, err := g.parser.ParseDeals(content)
	if err != nil {
		metrics.RecordError("ocr_extract", "decode")
		return nil, err
	}

	metrics.RecordDeals(len(result.Deals), len(result.Rejected))
	for _, rejected := range result.Rejected {
		g.logger.DebugContext(ctx, "dropped extracted deal",
			"page_url", pageURL,
			"index", rejected.Index,
			"reason", rejected.Reason)
	}
	g.logger.InfoContext(ctx, "extracted deals from page",
		"page_url", pageURL,
		"accepted", len(result.Deals),
		"rejected", len(result.Rejected))

	return result.Deals, nil
}

func (g *OCRGateway) complete(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	reqBody := chatRequest{
		Model: g.config.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: extractionPrompt},
				{Type: "image_url", ImageURL: &imageRef{URL: pageURL}},
			},
		}},
		MaxTokens:   g.config.MaxTokens,
		Temperature: extractionTemperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrModelUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: status %d", domain.ErrModelOverloaded, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrModelUnavailable, resp.StatusCode, truncateRunes(string(body), snippetLength))
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return "", &domain.DecodeError{Reason: "response has no message content", Snippet: truncateRunes(string(body), snippetLength)}
	}
	return content.String(), nil
}
