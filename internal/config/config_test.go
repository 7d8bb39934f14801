package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.Set("env", "local")
	v.Set("api.base_url", "http://localhost:8080/api")
	v.Set("api.timeout", "5s")
	v.Set("bot.update_timeout", 60)
	v.Set("bot.max_concurrent_updates", 4)
	return v
}

func TestFromViper(t *testing.T) {
	v := newTestViper()
	v.Set("telegram_api_token", "token")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramAPIToken)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 4, cfg.Bot.MaxConcurrentUpdates)
}

func TestFromViperMissingToken(t *testing.T) {
	_, err := fromViper(newTestViper())
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestFromViperInvalidBaseURL(t *testing.T) {
	v := newTestViper()
	v.Set("telegram_api_token", "token")
	v.Set("api.base_url", "not a url")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViperRejectsZeroConcurrency(t *testing.T) {
	v := newTestViper()
	v.Set("telegram_api_token", "token")
	v.Set("bot.max_concurrent_updates", 0)

	_, err := fromViper(v)
	assert.Error(t, err)
}
