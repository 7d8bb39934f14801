package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/hadith-bot/internal/config"
)

// New builds a zap logger matching the application environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
