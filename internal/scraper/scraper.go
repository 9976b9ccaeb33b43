package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/pauljones0/deal-link-bot/internal/httpclient"
	"github.com/pauljones0/deal-link-bot/internal/models"
	"github.com/pauljones0/deal-link-bot/internal/platform"
)

const (
	DefaultAttemptTimeout = 20 * time.Second
	DefaultAttemptPause   = 1 * time.Second
	// Pages at or below this size are treated as anti-bot interstitials.
	minBodyBytes = 1000
	maxBodyBytes = 8 << 20
)

var errThinPage = errors.New("response body too small")

// Client fetches a product page and extracts whatever attributes it can.
type Client struct {
	httpClient *http.Client
	selectors  SelectorConfig
	profiles   []httpclient.Profile
	timeout    time.Duration
	pause      time.Duration
}

type Option func(*Client)

func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAttemptPause sets the wait between two fetch attempts.
func WithAttemptPause(d time.Duration) Option {
	return func(c *Client) { c.pause = d }
}

func New(httpClient *http.Client, selectors SelectorConfig, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		selectors:  selectors,
		profiles:   []httpclient.Profile{httpclient.Desktop, httpclient.Mobile},
		timeout:    DefaultAttemptTimeout,
		pause:      DefaultAttemptPause,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scrape makes one attempt per client profile and stops at the first page that yields a
// title or a price. It never fails: when nothing is found, the returned info carries the
// reason in Err.
func (c *Client) Scrape(ctx context.Context, url string, p platform.Platform) models.ScrapedInfo {
	info := models.ScrapedInfo{Platform: p}
	sel := c.selectors.For(p)

	var lastErr error
	for i, profile := range c.profiles {
		if i > 0 && !c.wait(ctx) {
			lastErr = ctx.Err()
			break
		}

		slog.Info("Scraping attempt", "attempt", i+1, "platform", p, "profile", profile.Name, "url", url)
		doc, html, err := c.fetch(ctx, url, profile)
		if err != nil {
			slog.Warn("Scraping attempt failed", "attempt", i+1, "url", url, "error", err)
			lastErr = err
			continue
		}

		mergeMissing(&info, extractProduct(doc, html, p, sel))
		if info.Found() {
			slog.Info("Successfully extracted product data", "attempt", i+1, "url", url)
			return info
		}
		lastErr = fmt.Errorf("no title or price on page")
	}

	if lastErr == nil {
		lastErr = errors.New("no fetch attempts made")
	}
	info.Err = lastErr.Error()
	return info
}

func (c *Client) wait(ctx context.Context) bool {
	if c.pause <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(c.pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// fetch returns the parsed document and its decoded markup.
func (c *Client) fetch(ctx context.Context, url string, profile httpclient.Profile) (*goquery.Document, string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request for URL %s: %w", url, err)
	}
	profile.Apply(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch URL %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch URL %s: status code %d", url, res.StatusCode)
	}

	reader, err := charset.NewReader(io.LimitReader(res.Body, maxBodyBytes), res.Header.Get("Content-Type"))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode body of %s: %w", url, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read body of %s: %w", url, err)
	}
	if len(body) <= minBodyBytes {
		return nil, "", fmt.Errorf("%w: %d bytes from %s", errThinPage, len(body), url)
	}

	html := string(body)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse HTML of %s: %w", url, err)
	}
	return doc, html, nil
}

// mergeMissing fills empty fields of dst from src.
func mergeMissing(dst *models.ScrapedInfo, src models.ScrapedInfo) {
	fill := func(d *string, s string) {
		if *d == "" {
			*d = s
		}
	}
	fill(&dst.Title, src.Title)
	fill(&dst.Price, src.Price)
	fill(&dst.Brand, src.Brand)
	fill(&dst.Gender, src.Gender)
	fill(&dst.Quantity, src.Quantity)
	fill(&dst.Pin, src.Pin)
	if len(dst.Sizes) == 0 {
		dst.Sizes = src.Sizes
	}
}
