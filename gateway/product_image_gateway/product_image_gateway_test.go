package product_image_gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"flyer-ingest/domain"
	"flyer-ingest/utils/rate_limiter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, serverURL string) *ProductImageGateway {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway, err := NewProductImageGateway(
		&http.Client{Timeout: time.Second},
		Config{BaseURL: serverURL, Timeout: time.Second, CacheSize: 16},
		rate_limiter.NewHostRateLimiter(time.Millisecond),
		logger,
	)
	require.NoError(t, err)
	return gateway
}

func strPtr(s string) *string { return &s }

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name  string
		brand string
		item  string
		want  string
	}{
		{name: "strips size and multi buy", brand: "Chobani", item: "Greek Yogurt 5.3 oz 2 for $5", want: "chobani greek yogurt"},
		{name: "strips promo words", item: "BOGO Free Cheerios", want: "cheerios"},
		{name: "keeps apostrophes", brand: "Trader Joe's", item: "Peanut Butter", want: "trader joe's peanut butter"},
		{name: "price only", item: "$1.99", want: ""},
		{name: "cents", item: "Bananas 59¢ lb", want: "bananas lb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.brand, tt.item))
		})
	}
}

func TestProductImageGateway_Enrich(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("json"))

		switch r.URL.Query().Get("search_terms") {
		case "barilla spaghetti":
			_, _ = w.Write([]byte(`{"count":2,"products":[
				{"product_name":"Spaghetti"},
				{"product_name":"Spaghetti n.5","image_front_url":"https://images.example.org/spaghetti.jpg"}
			]}`))
		default:
			_, _ = w.Write([]byte(`{"count":0,"products":[]}`))
		}
	}))
	defer server.Close()

	gateway := newTestGateway(t, server.URL)
	deals := []domain.Deal{
		{ProductName: "Spaghetti 16 oz", ProductBrand: strPtr("Barilla")},
		{ProductName: "Mystery Meat"},
		{ProductName: "$2"},
		{ProductName: "Milk", ImageURL: strPtr("https://already.example/milk.jpg")},
		{ProductName: "Spaghetti", ProductBrand: strPtr("Barilla")},
	}

	enriched := gateway.Enrich(context.Background(), deals)

	assert.Equal(t, 2, enriched)
	require.NotNil(t, deals[0].ImageURL)
	assert.Equal(t, "https://images.example.org/spaghetti.jpg", *deals[0].ImageURL)
	assert.Nil(t, deals[1].ImageURL)
	assert.Nil(t, deals[2].ImageURL)
	assert.Equal(t, "https://already.example/milk.jpg", *deals[3].ImageURL)
	require.NotNil(t, deals[4].ImageURL)
	assert.Equal(t, int32(2), calls.Load(), "repeated query is served from cache")

	// A cached miss does not hit the network again.
	gateway.Enrich(context.Background(), []domain.Deal{{ProductName: "Mystery Meat"}})
	assert.Equal(t, int32(2), calls.Load())
}

func TestProductImageGateway_ErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"products":[{"image_small_url":"https://images.example.org/eggs.jpg"}]}`))
	}))
	defer server.Close()

	gateway := newTestGateway(t, server.URL)

	first := []domain.Deal{{ProductName: "Large Eggs"}}
	assert.Equal(t, 0, gateway.Enrich(context.Background(), first))
	assert.Nil(t, first[0].ImageURL)

	second := []domain.Deal{{ProductName: "Large Eggs"}}
	assert.Equal(t, 1, gateway.Enrich(context.Background(), second))
	assert.Equal(t, "https://images.example.org/eggs.jpg", *second[0].ImageURL)
}

func TestNewProductImageGateway_InvalidCacheSize(t *testing.T) {
	_, err := NewProductImageGateway(http.DefaultClient, Config{CacheSize: 0}, rate_limiter.NewHostRateLimiter(time.Millisecond), slog.Default())

	assert.Error(t, err)
}
