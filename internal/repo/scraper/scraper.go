// Package scraper fetches best-effort product metadata from a URL.
package scraper

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/go-resty/resty/v2"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/config"
	"github.com/nguyentranbao-ct/wishlist-bot/pkg/util"
)

const (
	FallbackTitle = "Unknown Product"
	FallbackPrice = "N/A"
)

// Result is always usable: any internal failure maps to the fallback values.
type Result struct {
	Title string
	Price string
}

type Scraper interface {
	Scrape(ctx context.Context, url string) Result
}

type scraper struct {
	client    *resty.Client
	userAgent string
}

func New(conf *config.Config) Scraper {
	client := util.NewRestyClient().
		SetTimeout(conf.Scraper.Timeout)

	return &scraper{
		client:    client,
		userAgent: conf.Scraper.UserAgent,
	}
}

func (s *scraper) Scrape(ctx context.Context, url string) Result {
	fallback := Result{Title: FallbackTitle, Price: FallbackPrice}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", s.userAgent).
		Get(url)
	if err != nil {
		log.Warnw(ctx, "scrape request failed", "url", url, "error", err)
		return fallback
	}
	if resp.StatusCode() != http.StatusOK {
		log.Warnw(ctx, "scrape got non-200 response", "url", url, "status", resp.StatusCode())
		return fallback
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		log.Warnw(ctx, "scrape parse failed", "url", url, "error", err)
		return fallback
	}

	return Result{
		Title: extractTitle(doc),
		Price: extractPrice(doc),
	}
}

func extractTitle(doc *goquery.Document) string {
	if title, ok := doc.Find("meta[property='og:title']").Attr("content"); ok && title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return FallbackTitle
}

func extractPrice(doc *goquery.Document) string {
	if price, ok := doc.Find("meta[property='product:price:amount']").Attr("content"); ok && price != "" {
		return price
	}
	for _, selector := range []string{"span.price", "span.sale-price"} {
		if price := strings.TrimSpace(doc.Find(selector).First().Text()); price != "" {
			return price
		}
	}
	return FallbackPrice
}
