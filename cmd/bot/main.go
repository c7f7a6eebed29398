// Fish shop bot - Telegram storefront over the Elasticpath commerce API.
// Conversation state lives in Redis so dialogs survive restarts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"fishshop-bot/internal/bot"
	"fishshop-bot/internal/config"
	"fishshop-bot/internal/moltin"
	"fishshop-bot/internal/statestore"
	"fishshop-bot/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := initLogger()

	// Load configuration
	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.String("redis_addr", cfg.Bot.RedisAddr),
	)

	// Connect the state store (ping verifies the address)
	store, err := statestore.NewRedis(ctx, cfg.Bot.RedisAddr, cfg.Bot.RedisPassword, cfg.Bot.RedisDB)
	if err != nil {
		return fmt.Errorf("creating state store: %w", err)
	}
	defer store.Close()

	// Create the commerce client and fail fast on bad credentials
	shop, err := moltin.New(moltin.Config{
		BaseURL:      cfg.Bot.MoltinBaseURL,
		ClientID:     cfg.Bot.MoltinClientID,
		ClientSecret: cfg.Bot.MoltinClientSecret,
	})
	if err != nil {
		return fmt.Errorf("creating commerce client: %w", err)
	}
	if _, err := shop.Authenticator().Token(ctx); err != nil {
		return fmt.Errorf("verifying commerce credentials: %w", err)
	}

	// Connect the chat transport
	chat, err := telegram.NewBot(cfg.Bot.TelegramToken)
	if err != nil {
		return fmt.Errorf("creating telegram bot: %w", err)
	}

	engine := bot.NewEngine(store, shop, chat, logger)

	// Channel for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	updates := chat.Updates()
	logger.Info("bot started", slog.String("username", chat.Username()))

	// One goroutine per update; the engine serializes per chat.
	var wg sync.WaitGroup
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range updates {
			event, ok := telegram.EventFromUpdate(update)
			if !ok {
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				engine.ProcessEvent(ctx, event)
			}()
		}
	}()

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		chat.Stop()
		<-done
	case <-done:
		// Update channel closed without a signal: transport gave up.
	}

	// Let in-flight events finish before closing the store
	wg.Wait()

	logger.Info("bot stopped")
	return nil
}

// initLogger creates a structured logger configured for the environment.
// Production uses JSON format for GCP Cloud Logging compatibility.
// Development uses text format for readability.
func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		// Add source location in debug mode
		AddSource: level == slog.LevelDebug,
	}

	// JSON for production (Cloud Logging compatible), text for development
	if os.Getenv("ENVIRONMENT") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
