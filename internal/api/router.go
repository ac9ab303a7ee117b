package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/secondbank/mobile-api/internal/api/handler"
	"github.com/secondbank/mobile-api/internal/api/middleware"
	"github.com/secondbank/mobile-api/internal/bank"
	"github.com/secondbank/mobile-api/internal/config"
	"github.com/secondbank/mobile-api/internal/notification"
	"github.com/secondbank/mobile-api/internal/transfer"
	"github.com/secondbank/mobile-api/internal/validation"
)

type Router struct {
	cfg       *config.Config
	logger    *zap.Logger
	flow      *transfer.Flow
	validator *validation.Service
	feed      *notification.Feed
	auth      bank.Authenticator
}

func NewRouter(cfg *config.Config, logger *zap.Logger, flow *transfer.Flow, validator *validation.Service, feed *notification.Feed, auth bank.Authenticator) *Router {
	return &Router{
		cfg:       cfg,
		logger:    logger,
		flow:      flow,
		validator: validator,
		feed:      feed,
		auth:      auth,
	}
}

func (api *Router) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Use(middleware.LoggingMiddleware(api.logger))
	r.Use(middleware.RecoverMiddleware(api.logger))
	r.Use(middleware.MetricsMiddleware)

	authHandler := handler.NewAuthHandler(api.auth, api.cfg.JWTTTL)
	banksHandler := handler.NewBanksHandler()
	transferHandler := handler.NewTransferHandler(api.flow, api.validator)
	notificationsHandler := handler.NewNotificationsHandler(api.feed)
	settingsHandler := handler.NewSettingsHandler(api.flow)
	healthHandler := handler.NewHealthHandler()

	// Public Routes
	r.Get("/healthz", healthHandler.Live)
	r.Handle("/metrics", promhttp.Handler())
	r.With(middleware.PublicRateLimiter(api.cfg.PublicRateLimitRPS)).
		Post("/v1/auth/login", authHandler.Login)

	// Protected Routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)
		r.Use(middleware.AuthRateLimiter(api.cfg.AuthRateLimitRPS))

		r.Get("/v1/banks", banksHandler.List)

		r.Get("/v1/transfer", transferHandler.GetFlow)
		r.Put("/v1/transfer/recipient", transferHandler.SetRecipient)
		r.Get("/v1/transfer/recipient", transferHandler.GetRecipient)
		r.Post("/v1/transfer/continue", transferHandler.Continue)
		r.Post("/v1/transfer/confirm", transferHandler.Confirm)
		r.Post("/v1/transfer/cancel", transferHandler.Cancel)
		r.Post("/v1/transfer/new", transferHandler.NewTransfer)

		r.Get("/v1/notifications", notificationsHandler.List)
		r.Post("/v1/notifications/{id}/read", notificationsHandler.MarkRead)

		r.Get("/v1/settings", settingsHandler.Get)
		r.Put("/v1/settings", settingsHandler.Update)
	})

	return r
}
