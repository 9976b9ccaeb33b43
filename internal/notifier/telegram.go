package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/pauljones0/deal-link-bot/internal/formatter"
	"github.com/pauljones0/deal-link-bot/internal/models"
)

const (
	DefaultSendInterval = 500 * time.Millisecond
	defaultSendAttempts = 3
	pollTimeoutSeconds  = 30
	maxRetryAfter       = 30 * time.Second
)

// BotAPI is the part of tgbotapi.BotAPI the transport uses.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	StopReceivingUpdates()
}

// MessageHandler turns an incoming chat message into replies.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg models.Message) ([]string, error)
}

// Telegram receives updates by long polling and replies in the originating chat.
type Telegram struct {
	bot          BotAPI
	handler      MessageHandler
	formatter    *formatter.Formatter
	limiter      *rate.Limiter
	sendAttempts int
	wg           sync.WaitGroup
}

type Option func(*Telegram)

// WithSendInterval sets the pause between outgoing messages. Zero or less disables it.
func WithSendInterval(d time.Duration) Option {
	return func(t *Telegram) {
		if d <= 0 {
			t.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		t.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithSendAttempts bounds how often a rate-limited send is retried.
func WithSendAttempts(n int) Option {
	return func(t *Telegram) {
		if n > 0 {
			t.sendAttempts = n
		}
	}
}

func NewTelegram(bot BotAPI, h MessageHandler, f *formatter.Formatter, opts ...Option) *Telegram {
	t := &Telegram{
		bot:          bot,
		handler:      h,
		formatter:    f,
		limiter:      rate.NewLimiter(rate.Every(DefaultSendInterval), 1),
		sendAttempts: defaultSendAttempts,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run consumes updates until ctx is cancelled or the update channel closes, then
// waits for in-flight updates to finish.
func (t *Telegram) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	cfg.AllowedUpdates = []string{"message", "channel_post"}
	updates := t.bot.GetUpdatesChan(cfg)

	defer t.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.wg.Add(1)
			go func() {
				defer t.wg.Done()
				t.handleUpdate(ctx, update)
			}()
		}
	}
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		msg = update.ChannelPost
	}
	if msg == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic while handling update", "chat", chatID, "panic", r)
			t.reply(ctx, chatID, t.formatter.Apology())
		}
	}()

	if msg.IsCommand() && msg.Command() == "start" {
		t.reply(ctx, chatID, t.formatter.Welcome())
		return
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" {
		return
	}

	id := fmt.Sprintf("%d_%d", chatID, msg.MessageID)
	replies, err := t.handler.HandleMessage(ctx, models.Message{ID: id, Text: text})
	for _, r := range replies {
		if !t.reply(ctx, chatID, r) && ctx.Err() != nil {
			return
		}
	}
	if err != nil {
		if ctx.Err() != nil {
			slog.Info("Message handling interrupted by shutdown", "id", id)
			return
		}
		slog.Error("Failed to handle message", "id", id, "error", err)
		t.reply(ctx, chatID, t.formatter.Apology())
	}
}

// reply sends text and falls back to a short failure notice when delivery fails.
// It reports whether text was delivered.
func (t *Telegram) reply(ctx context.Context, chatID int64, text string) bool {
	err := t.send(ctx, chatID, text)
	if err == nil {
		return true
	}
	slog.Error("Failed to send message", "chat", chatID, "error", err)
	if ctx.Err() != nil {
		return false
	}
	if ferr := t.send(ctx, chatID, t.formatter.SendFailure()); ferr != nil {
		slog.Error("Failed to send fallback message", "chat", chatID, "error", ferr)
	}
	return false
}

func (t *Telegram) send(ctx context.Context, chatID int64, text string) error {
	cfg := tgbotapi.NewMessage(chatID, formatter.Truncate(text))
	cfg.DisableWebPagePreview = true

	var lastErr error
	for attempt := 0; attempt < t.sendAttempts; attempt++ {
		if err := t.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting to send: %w", err)
		}
		_, err := t.bot.Send(cfg)
		if err == nil {
			return nil
		}
		lastErr = err

		wait, ok := retryAfter(err)
		if !ok {
			return err
		}
		slog.Warn("Rate limited by Telegram, retrying", "chat", chatID, "retry_after", wait, "attempt", attempt+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("send failed after %d attempts: %w", t.sendAttempts, lastErr)
}

// retryAfter extracts the server-requested pause from a flood-control error.
func retryAfter(err error) (time.Duration, bool) {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) || apiErr.RetryAfter <= 0 {
		return 0, false
	}
	wait := time.Duration(apiErr.RetryAfter) * time.Second
	if wait > maxRetryAfter {
		wait = maxRetryAfter
	}
	return wait, true
}
