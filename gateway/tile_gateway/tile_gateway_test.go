package tile_gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"flyer-ingest/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// cdnServer serves every tile named in available and 404s the rest.
type cdnServer struct {
	mu        sync.Mutex
	available map[string]bool
	heads     int
	gets      int
}

func newCDNServer(t *testing.T, available ...string) (*httptest.Server, *cdnServer) {
	t.Helper()
	cdn := &cdnServer{available: map[string]bool{}}
	for _, name := range available {
		cdn.available[name] = true
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cdn.mu.Lock()
		if r.Method == http.MethodHead {
			cdn.heads++
		} else {
			cdn.gets++
		}
		ok := cdn.available[r.URL.Path]
		cdn.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("tile:" + r.URL.Path))
	}))
	t.Cleanup(server.Close)
	return server, cdn
}

func tilePath(flyerPath string, zoom, col, row int) string {
	return fmt.Sprintf("/%s%d_%d_%d.jpg", flyerPath, zoom, col, row)
}

func TestGridResolver_Resolve_DeclaredDimensions(t *testing.T) {
	server, cdn := newCDNServer(t)
	resolver := NewGridResolver(server.Client(), server.URL, time.Second, testLogger())

	grid, err := resolver.Resolve(context.Background(), "flyers/1/", 2000, 1200)

	require.NoError(t, err)
	assert.Equal(t, domain.TileGrid{Cols: 8, Rows: 5, Zoom: domain.NativeZoom}, grid)
	assert.Zero(t, cdn.heads, "declared dimensions must not hit the network")
}

func TestGridResolver_Resolve_Probing(t *testing.T) {
	path := "flyers/2/"
	server, _ := newCDNServer(t,
		tilePath(path, 0, 0, 0), tilePath(path, 0, 1, 0), tilePath(path, 0, 2, 0),
		tilePath(path, 0, 0, 1), tilePath(path, 0, 0, 2), tilePath(path, 0, 0, 3),
	)
	resolver := NewGridResolver(server.Client(), server.URL, time.Second, testLogger())

	grid, err := resolver.Resolve(context.Background(), path, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 3, grid.Cols)
	assert.Equal(t, 4, grid.Rows)
	assert.Equal(t, domain.OverviewZoom, grid.Zoom)
}

func TestGridResolver_Resolve_NoContent(t *testing.T) {
	server, cdn := newCDNServer(t)
	resolver := NewGridResolver(server.Client(), server.URL, time.Second, testLogger())

	grid, err := resolver.Resolve(context.Background(), "flyers/3/", 0, 0)

	require.NoError(t, err)
	assert.True(t, grid.IsEmpty())
	assert.Equal(t, 1, cdn.heads, "rows are not probed when no column exists")
}

func TestGridResolver_ProbeIsCapped(t *testing.T) {
	path := "flyers/4/"
	var tiles []string
	for i := 0; i < 30; i++ {
		tiles = append(tiles, tilePath(path, 0, i, 0), tilePath(path, 0, 0, i))
	}
	server, cdn := newCDNServer(t, tiles...)
	resolver := NewGridResolver(server.Client(), server.URL, time.Second, testLogger())

	grid, err := resolver.ResolveOverview(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, domain.TileGrid{Cols: domain.MaxProbeColumns, Rows: domain.MaxProbeRows, Zoom: domain.OverviewZoom}, grid)
	assert.Equal(t, domain.MaxProbeColumns+domain.MaxProbeRows, cdn.heads)
}

func TestGridResolver_CancelledContext(t *testing.T) {
	server, _ := newCDNServer(t)
	resolver := NewGridResolver(server.Client(), server.URL, time.Second, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.Resolve(ctx, "flyers/5/", 0, 0)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchFetcher_FetchTiles(t *testing.T) {
	path := "flyers/6/"
	var available []string
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			if col == 1 && row == 1 {
				continue
			}
			available = append(available, tilePath(path, 5, col, row))
		}
	}
	server, cdn := newCDNServer(t, available...)

	fetcher := NewBatchFetcher(server.Client(), BatchFetcherConfig{
		BaseURL:       server.URL,
		FetchTimeout:  time.Second,
		BatchDelayMin: 100 * time.Millisecond,
		BatchDelayMax: 200 * time.Millisecond,
	}, testLogger())

	var delays []time.Duration
	fetcher.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	plan := domain.RenderPlan{Tier: domain.TierFull, Zoom: 5, Cols: 3, Rows: 2, BatchSize: 4}
	report := fetcher.FetchTiles(context.Background(), path, plan)

	assert.Len(t, report.Tiles, 5)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, domain.TileRef{Zoom: 5, Col: 1, Row: 1}, report.Failures[0].Ref)
	assert.ErrorIs(t, report.Failures[0].Err, domain.ErrUnexpectedStatus)
	assert.Equal(t, 6, cdn.gets)

	require.Len(t, delays, 1, "one pause between two batches")
	assert.GreaterOrEqual(t, delays[0], 100*time.Millisecond)
	assert.LessOrEqual(t, delays[0], 200*time.Millisecond)

	for _, tile := range report.Tiles {
		assert.Equal(t, "tile:"+tilePath(path, 5, tile.Ref.Col, tile.Ref.Row), string(tile.Data))
	}
}

func TestBatchFetcher_BoundsInFlightToOneBatch(t *testing.T) {
	var inFlight, peak, started atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started.Add(1)
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(40 * time.Millisecond)
		inFlight.Add(-1)
		_, _ = w.Write([]byte("tile"))
	}))
	t.Cleanup(server.Close)

	fetcher := NewBatchFetcher(server.Client(), BatchFetcherConfig{
		BaseURL:      server.URL,
		FetchTimeout: time.Second,
	}, testLogger())

	type pause struct {
		inFlight int64
		started  int64
	}
	var pauses []pause
	fetcher.sleep = func(ctx context.Context, d time.Duration) error {
		pauses = append(pauses, pause{inFlight: inFlight.Load(), started: started.Load()})
		return nil
	}

	plan := domain.RenderPlan{Tier: domain.TierFull, Zoom: 5, Cols: 5, Rows: 2, BatchSize: 4}
	report := fetcher.FetchTiles(context.Background(), "flyers/9/", plan)

	assert.Len(t, report.Tiles, 10)
	assert.Empty(t, report.Failures)
	assert.LessOrEqual(t, peak.Load(), int64(plan.BatchSize))
	assert.Greater(t, peak.Load(), int64(1), "tiles within a batch are fetched concurrently")

	// Each pause happens after the previous batch drained and before the next starts.
	assert.Equal(t, []pause{{inFlight: 0, started: 4}, {inFlight: 0, started: 8}}, pauses)
}

func TestBatchFetcher_StopsWhenPauseInterrupted(t *testing.T) {
	path := "flyers/7/"
	server, cdn := newCDNServer(t, tilePath(path, 4, 0, 0), tilePath(path, 4, 1, 0))

	fetcher := NewBatchFetcher(server.Client(), BatchFetcherConfig{
		BaseURL:      server.URL,
		FetchTimeout: time.Second,
	}, testLogger())
	fetcher.sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	plan := domain.RenderPlan{Tier: domain.TierMedium, Zoom: 4, Cols: 2, Rows: 1, BatchSize: 1}
	report := fetcher.FetchTiles(context.Background(), path, plan)

	assert.Len(t, report.Tiles, 1)
	assert.Empty(t, report.Failures)
	assert.Equal(t, 1, cdn.gets)
}

func TestBatchFetcher_TileURL(t *testing.T) {
	fetcher := NewBatchFetcher(http.DefaultClient, BatchFetcherConfig{BaseURL: "https://cdn.example.com/"}, testLogger())

	got := fetcher.TileURL("/flyers/8/", domain.TileRef{Zoom: 0, Col: 2, Row: 0})

	assert.Equal(t, "https://cdn.example.com/flyers/8/0_2_0.jpg", got)
}

func TestEnumerate(t *testing.T) {
	refs := enumerate(domain.RenderPlan{Zoom: 4, Cols: 2, Rows: 2})

	assert.Equal(t, []domain.TileRef{
		{Zoom: 4, Col: 0, Row: 0},
		{Zoom: 4, Col: 1, Row: 0},
		{Zoom: 4, Col: 0, Row: 1},
		{Zoom: 4, Col: 1, Row: 1},
	}, refs)
	assert.Empty(t, enumerate(domain.RenderPlan{}))
}
