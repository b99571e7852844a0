package config

import (
	"strings"

	"github.com/furluv/furluv/internal/backend"

	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// NewBackendClient points the feed at BACKEND_URL, or at this process's own
// API when it is unset.
func NewBackendClient(config *koanf.Koanf, log *zap.Logger) *backend.Client {
	baseURL := config.String("BACKEND_URL")
	if baseURL == "" {
		addr := config.String("GO_SERVER")
		if strings.HasPrefix(addr, ":") {
			addr = "127.0.0.1" + addr
		}
		baseURL = "http://" + addr + "/api"
	}

	log.Info("feed backend configured", zap.String("baseURL", baseURL))

	return backend.NewClient(backend.ClientConfig{
		BaseURL: baseURL,
		Timeout: config.Duration("BACKEND_TIMEOUT"),
	})
}
