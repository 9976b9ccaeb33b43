package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/pauljones0/deal-link-bot/internal/config"
	"github.com/pauljones0/deal-link-bot/internal/formatter"
	"github.com/pauljones0/deal-link-bot/internal/httpclient"
	"github.com/pauljones0/deal-link-bot/internal/links"
	"github.com/pauljones0/deal-link-bot/internal/memo"
	"github.com/pauljones0/deal-link-bot/internal/notifier"
	"github.com/pauljones0/deal-link-bot/internal/processor"
	"github.com/pauljones0/deal-link-bot/internal/scraper"
	"github.com/pauljones0/deal-link-bot/internal/util"
	"github.com/pauljones0/deal-link-bot/internal/validator"
)

const (
	botConnectAttempts = 5
	botConnectBackoff  = 2 * time.Second
	shutdownTimeout    = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	slog.Info("Starting deal link bot...", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Bot stopped.")
}

func run(ctx context.Context, cfg *config.Config) error {
	pool := httpclient.NewPool(httpclient.Options{})
	defer pool.Close()

	resolver := links.NewResolver(pool.Client(), links.WithAttempts(cfg.ResolveAttempts))
	s := scraper.New(pool.Client(), scraper.LoadConfig(cfg.SelectorsConfigPath), scraper.WithAttemptTimeout(cfg.ScrapeTimeout))
	f := formatter.New(cfg.ChannelTag, cfg.DefaultPin)
	p := processor.New(resolver, s, f,
		processor.WithMemo(memo.New(cfg.MemoCapacity)),
		processor.WithLinkDelay(cfg.LinkDelay),
		processor.WithValidator(validator.New()),
	)

	var bot *tgbotapi.BotAPI
	err := util.Retry(ctx, botConnectAttempts, botConnectBackoff, func(int) error {
		b, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			return err
		}
		bot = b
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	slog.Info("Authorized on Telegram", "username", bot.Self.UserName)

	tg := notifier.NewTelegram(bot, p, f, notifier.WithSendInterval(cfg.SendDelay))
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newMux(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := tg.Run(gctx); err != nil {
			return err
		}
		if gctx.Err() == nil {
			return errors.New("telegram update stream closed")
		}
		return nil
	})
	g.Go(func() error {
		slog.Info("Listening on port", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `{"status":"ok"}`)
	})
	return mux
}
