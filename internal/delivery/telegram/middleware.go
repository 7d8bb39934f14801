package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}

// recoverPanic keeps a panicking update handler from taking the bot down.
func (h *Handler) recoverPanic(updateID int) {
	if r := recover(); r != nil {
		h.logger.Error("panic in update handler",
			zap.Int("update_id", updateID),
			zap.String("panic", fmt.Sprint(r)),
			zap.Stack("stack"),
		)
	}
}
