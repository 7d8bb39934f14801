package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Options tunes update polling and handling.
type Options struct {
	UpdateTimeout        int           // long polling timeout in seconds
	MaxConcurrentUpdates int           // updates handled in parallel
	RequestTimeout       time.Duration // deadline of a single update
}

type Handler struct {
	bot      Bot
	logger   *zap.Logger
	sessions SessionStorage
	opts     Options
	sem      *semaphore.Weighted
	wg       sync.WaitGroup
}

func NewHandler(bot Bot, logger *zap.Logger, sessions SessionStorage, opts Options) *Handler {
	if opts.MaxConcurrentUpdates < 1 {
		opts.MaxConcurrentUpdates = 1
	}
	if opts.UpdateTimeout < 1 {
		opts.UpdateTimeout = 60
	}

	return &Handler{
		bot:      bot,
		logger:   logger,
		sessions: sessions,
		opts:     opts,
		sem:      semaphore.NewWeighted(int64(opts.MaxConcurrentUpdates)),
	}
}

// Run polls updates until ctx is cancelled. Every update is handled in its
// own goroutine; at most MaxConcurrentUpdates run at once.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.opts.UpdateTimeout

	updates := h.bot.GetUpdatesChan(u)
	defer h.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			if err := h.sem.Acquire(ctx, 1); err != nil {
				h.bot.StopReceivingUpdates()
				return err
			}

			h.wg.Add(1)
			go func() {
				defer h.wg.Done()
				defer h.sem.Release(1)
				h.handleUpdate(ctx, update)
			}()
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer h.recoverPanic(update.UpdateID)

	if h.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.RequestTimeout)
		defer cancel()
	}

	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	h.handleMessage(ctx, update.Message)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	_, err := h.sendMessage(c)
	return err
}

// sendMessage sends c and returns the id of the resulting message.
func (h *Handler) sendMessage(c tgbotapi.Chattable) (int, error) {
	msg, err := h.bot.Send(c)
	if err != nil {
		if isNotModified(err) {
			h.logger.Debug("message not modified")
			return 0, nil
		}
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return 0, err
	}
	return msg.MessageID, nil
}

// answerCallback removes the loading indicator, optionally showing text.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Warn("callback answer error", zap.String("callback_id", cb.ID), zap.Error(err))
	}
}

func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
