package http

import (
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/metrics"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	// authLimiter throttles the register, login and token endpoints per
	// client IP.
	authLimiter *IPRateLimiter

	cfg config.Server

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. m may be nil, in which case requests
// are not measured and /metrics is not served.
func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		metrics:     m,
		authLimiter: NewAuthRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst),
		cfg:         cfg,
		logger:      logger,
	}
}
