package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/hadith-bot/internal/client/hadithapi"
	"github.com/aliskhannn/hadith-bot/internal/config"
	"github.com/aliskhannn/hadith-bot/internal/delivery/telegram"
	"github.com/aliskhannn/hadith-bot/internal/logger"
	"github.com/aliskhannn/hadith-bot/internal/storage"
	"github.com/aliskhannn/hadith-bot/internal/ui/addhadith"
	"github.com/aliskhannn/hadith-bot/internal/ui/hadithlist"
	"github.com/aliskhannn/hadith-bot/internal/ui/quiz"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Bot.Debug

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := hadithapi.New(cfg.API.BaseURL, cfg.API.Timeout, lg.Named("hadithapi"))

	sessions := storage.NewSessionStorage(func(chatID int64) *storage.Session {
		viewLogger := lg.With(zap.Int64("chat_id", chatID))
		return storage.NewSession(chatID,
			hadithlist.New(api, viewLogger),
			addhadith.New(api, viewLogger),
			quiz.New(api, viewLogger),
		)
	})

	handler := telegram.NewHandler(bot, lg.Named("telegram"), sessions, telegram.Options{
		UpdateTimeout:        cfg.Bot.UpdateTimeout,
		MaxConcurrentUpdates: cfg.Bot.MaxConcurrentUpdates,
		RequestTimeout:       cfg.API.Timeout,
	})
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
