package upload_gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"flyer-ingest/domain"
	"flyer-ingest/metrics"
	"flyer-ingest/utils/retry"

	"github.com/tidwall/gjson"
)

// Config describes the image hosting endpoint.
type Config struct {
	Enabled    bool
	Endpoint   string
	APIKey     string
	Preset     string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// UploadGateway pushes flyer pages to image hosting. Hosting outages never
// block the pipeline: the page falls back to its CDN URL.
type UploadGateway struct {
	httpClient *http.Client
	config     Config
	retrier    *retry.Retrier
	logger     *slog.Logger
}

func NewUploadGateway(httpClient *http.Client, config Config, logger *slog.Logger) *UploadGateway {
	return &UploadGateway{
		httpClient: httpClient,
		config:     config,
		retrier:    retry.NewRetrier(retry.LinearConfig(config.MaxRetries, config.RetryDelay), isRetryable, logger),
		logger:     logger,
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("image hosting returned status %d", e.code)
}

func (e *statusError) Unwrap() error {
	return domain.ErrUnexpectedStatus
}

// isRetryable gives up on client errors other than timeouts and throttling.
func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusRequestTimeout || se.code == http.StatusTooManyRequests
	}
	return true
}

func (g *UploadGateway) UploadPage(ctx context.Context, flyerRunID string, page domain.PageUpload) domain.UploadResult {
	fallback := page.FallbackURL
	if fallback == "" {
		fallback = page.SourceURL
	}

	if !g.config.Enabled {
		metrics.RecordUpload("fallback")
		return domain.UploadResult{Index: page.Index, URL: fallback}
	}

	publicID := domain.PagePublicID(flyerRunID, page.Index)
	var secureURL string
	err := g.retrier.Do(ctx, func(ctx context.Context) error {
		url, err := g.upload(ctx, publicID, page)
		if err != nil {
			return err
		}
		secureURL = url
		return nil
	})
	if err != nil {
		metrics.RecordUpload("fallback")
		metrics.RecordError("upload_page", "hosting_unavailable")
		g.logger.WarnContext(ctx, "page upload failed, using CDN fallback",
			"public_id", publicID,
			"fallback_url", fallback,
			"error", err)
		return domain.UploadResult{Index: page.Index, URL: fallback}
	}

	metrics.RecordUpload("hosted")
	return domain.UploadResult{Index: page.Index, URL: secureURL, Hosted: true}
}

func (g *UploadGateway) upload(ctx context.Context, publicID string, page domain.PageUpload) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	body, contentType, err := buildForm(publicID, g.config.Preset, page)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.Endpoint, body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if g.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &statusError{code: resp.StatusCode}
	}

	secureURL := gjson.GetBytes(respBody, "secure_url").String()
	if secureURL == "" {
		return "", fmt.Errorf("%w: response has no secure_url", domain.ErrUploadFailed)
	}
	return secureURL, nil
}

func buildForm(publicID, preset string, page domain.PageUpload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("public_id", publicID); err != nil {
		return nil, "", err
	}
	if preset != "" {
		if err := w.WriteField("upload_preset", preset); err != nil {
			return nil, "", err
		}
	}

	if len(page.Data) > 0 {
		part, err := w.CreateFormFile("file", fmt.Sprintf("page_%d.jpg", page.Index))
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(page.Data); err != nil {
			return nil, "", err
		}
	} else {
		if page.SourceURL == "" {
			return nil, "", fmt.Errorf("%w: page %d has neither data nor source URL", domain.ErrUploadFailed, page.Index)
		}
		if err := w.WriteField("file", page.SourceURL); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
