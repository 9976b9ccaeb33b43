package processor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pauljones0/deal-link-bot/internal/extractor"
	"github.com/pauljones0/deal-link-bot/internal/formatter"
	"github.com/pauljones0/deal-link-bot/internal/links"
	"github.com/pauljones0/deal-link-bot/internal/memo"
	"github.com/pauljones0/deal-link-bot/internal/models"
)

const (
	// DefaultLinkDelay is the pause between finishing one link and starting the next.
	DefaultLinkDelay = time.Second

	minTextLen = 5
)

type Processor interface {
	HandleMessage(ctx context.Context, msg models.Message) ([]string, error)
}

// DealProcessor turns one chat message into zero or more deal messages. Messages are
// handled one at a time.
type DealProcessor struct {
	mu        sync.Mutex
	memo      *memo.Memo
	resolver  LinkResolver
	scraper   ProductScraper
	formatter *formatter.Formatter
	validator RecordValidator
	linkDelay time.Duration
}

type Option func(*DealProcessor)

// WithLinkDelay sets the pause between links. Zero or less disables it.
func WithLinkDelay(d time.Duration) Option {
	return func(p *DealProcessor) {
		if d < 0 {
			d = 0
		}
		p.linkDelay = d
	}
}

// WithValidator checks every merged record before formatting. Failures are logged only.
func WithValidator(v RecordValidator) Option {
	return func(p *DealProcessor) {
		p.validator = v
	}
}

// WithMemo replaces the default duplicate memo.
func WithMemo(m *memo.Memo) Option {
	return func(p *DealProcessor) {
		p.memo = m
	}
}

func New(r LinkResolver, s ProductScraper, f *formatter.Formatter, opts ...Option) *DealProcessor {
	p := &DealProcessor{
		memo:      memo.New(memo.DefaultCapacity),
		resolver:  r,
		scraper:   s,
		formatter: f,
		linkDelay: DefaultLinkDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HandleMessage returns one formatted deal per link found in msg, in discovery order.
// Repeated message ids, near-empty text and text without links yield nothing. A link
// that fails is replaced by a placeholder; an error is only returned when the message
// as a whole could not be handled.
func (p *DealProcessor) HandleMessage(ctx context.Context, msg models.Message) (out []string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic while handling message", "id", msg.ID, "panic", r, "stack", string(debug.Stack()))
			out, err = nil, fmt.Errorf("handling message %s: panic: %v", msg.ID, r)
		}
	}()

	if p.memo.Seen(msg.ID) {
		slog.Debug("Skipping duplicate message", "id", msg.ID)
		return nil, nil
	}

	text := msg.Text
	if len([]rune(strings.TrimSpace(text))) < minTextLen {
		return nil, nil
	}

	found := links.Discover(text)
	if len(found) == 0 {
		slog.Info("No links found", "id", msg.ID)
		return nil, nil
	}
	slog.Info("Processing message", "id", msg.ID, "links", len(found))

	for i, rawURL := range found {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("before link %d of %d: %w", i+1, len(found), err)
		}
		out = append(out, p.processLink(ctx, text, rawURL))

		if i < len(found)-1 && p.linkDelay > 0 {
			select {
			case <-ctx.Done():
				return out, fmt.Errorf("pausing after link %d of %d: %w", i+1, len(found), ctx.Err())
			case <-time.After(p.linkDelay):
			}
		}
	}
	return out, nil
}

// processLink never fails; any error or panic becomes the placeholder for rawURL.
func (p *DealProcessor) processLink(ctx context.Context, text, rawURL string) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic while processing link", "url", rawURL, "panic", r)
			msg = p.formatter.Placeholder(rawURL)
		}
	}()

	target := rawURL
	if links.IsShortened(rawURL) {
		resolved := p.resolver.Resolve(ctx, rawURL)
		if resolved.Changed() {
			slog.Info("Resolved shortened link", "from", rawURL, "to", resolved.Resolved)
		}
		target = resolved.Resolved
	}

	canonical := links.Canonicalize(target)
	slog.Debug("Canonicalized link", "url", canonical.URL, "platform", canonical.Platform)

	var (
		manual  models.ManualInfo
		scraped models.ScrapedInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverInto(&err)
		manual = extractor.Extract(text)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverInto(&err)
		scraped = p.scraper.Scrape(gctx, canonical.URL, canonical.Platform)
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("Failed to gather product details", "url", canonical.URL, "error", err)
		return p.formatter.Placeholder(rawURL)
	}
	if scraped.Err != "" {
		slog.Warn("Scrape found nothing usable", "url", canonical.URL, "error", scraped.Err)
	}

	rec := Merge(manual, scraped, canonical.Platform)
	if p.validator != nil {
		if err := p.validator.ValidateStruct(rec); err != nil {
			slog.Warn("Product record failed validation", "url", canonical.URL, "error", err)
		}
	}

	return formatter.Truncate(p.formatter.Format(rec, canonical.URL, canonical.Platform))
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}
