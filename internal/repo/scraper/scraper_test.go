package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestScraper() Scraper {
	return New(&config.Config{
		Scraper: config.ScraperConfig{
			Timeout:   2 * time.Second,
			UserAgent: "wishlist-bot-test",
		},
	})
}

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScrape(t *testing.T) {
	ctx := context.Background()

	t.Run("open graph metadata wins", func(t *testing.T) {
		srv := serve(t, `<html><head>
			<meta property="og:title" content="Fancy Keyboard">
			<meta property="product:price:amount" content="129.99">
			<title>ignored</title>
		</head></html>`)

		result := newTestScraper().Scrape(ctx, srv.URL)
		assert.Equal(t, "Fancy Keyboard", result.Title)
		assert.Equal(t, "129.99", result.Price)
	})

	t.Run("falls back to title tag and price span", func(t *testing.T) {
		srv := serve(t, `<html><head><title>Plain Mouse</title></head>
			<body><span class="price"> $25 </span></body></html>`)

		result := newTestScraper().Scrape(ctx, srv.URL)
		assert.Equal(t, "Plain Mouse", result.Title)
		assert.Equal(t, "$25", result.Price)
	})

	t.Run("sale price span is a fallback", func(t *testing.T) {
		srv := serve(t, `<html><body><span class="sale-price">$9</span></body></html>`)

		result := newTestScraper().Scrape(ctx, srv.URL)
		assert.Equal(t, FallbackTitle, result.Title)
		assert.Equal(t, "$9", result.Price)
	})

	t.Run("non-200 degrades to fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		result := newTestScraper().Scrape(ctx, srv.URL)
		assert.Equal(t, Result{Title: FallbackTitle, Price: FallbackPrice}, result)
	})

	t.Run("unreachable host degrades to fallback", func(t *testing.T) {
		result := newTestScraper().Scrape(ctx, "http://127.0.0.1:1")
		assert.Equal(t, Result{Title: FallbackTitle, Price: FallbackPrice}, result)
	})
}
