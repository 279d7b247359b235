package tile_gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"flyer-ingest/domain"
)

// Tiles are small JPEGs; anything larger is not a tile.
const maxTileBytes = 4 << 20

type tileClient struct {
	httpClient *http.Client
	baseURL    string
}

func (c *tileClient) url(flyerPath string, ref domain.TileRef) string {
	return domain.TileURL(c.baseURL, flyerPath, ref)
}

// exists issues a HEAD request bounded by timeout. Any transport error or
// non-200 status counts as a miss.
func (c *tileClient) exists(ctx context.Context, tileURL string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, tileURL, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (c *tileClient) get(ctx context.Context, tileURL string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTileBytes))
	if err != nil {
		return nil, fmt.Errorf("read tile: %w", err)
	}
	return data, nil
}
