package http

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"calc-hub/reference"
	"calc-hub/repository"
	"calc-hub/service"
)

// Services are the dependencies the handlers call into.
type Services struct {
	Runner   *service.Runner
	Loans    *service.LoanService
	Terms    *service.TermRecommendationService
	Debts    *service.DebtPayoffService
	Savings  *service.SavingsService
	Tax      *service.TaxService
	Health   *service.HealthService
	DateTime *service.DateTimeService
	Math     *service.MathService
	Auth     *service.AuthService
	History  repository.CalculationRepository
	Tables   *reference.Tables
}

type RouterConfig struct {
	Version     string
	CORSOrigins []string
	// TrustedProxies may set the client address through forwarding
	// headers. Nil keys clients on the connection address.
	TrustedProxies []string
	// Limiter is optional; nil disables rate limiting.
	Limiter *RateLimiter
	// Checks run on /healthz, keyed by dependency name.
	Checks map[string]func(context.Context) error
}

type Handler struct {
	svc    Services
	cfg    RouterConfig
	logger *slog.Logger
}

func NewRouter(svc Services, cfg RouterConfig, logger *slog.Logger) *gin.Engine {
	h := &Handler{svc: svc, cfg: cfg, logger: logger}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(RequestID(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(LimitBody())

	r.GET("/health", h.health)
	r.GET("/healthz", h.ready)

	api := r.Group("/api/v1")
	if cfg.Limiter != nil {
		api.Use(RateLimit(cfg.Limiter))
	}

	h.registerCalculators(api.Group("/calculators", Authenticate(svc.Auth, logger, false)))
	h.registerReference(api.Group("/reference"))
	h.registerAuth(api.Group("/auth"))
	h.registerHistory(api.Group("/history", Authenticate(svc.Auth, logger, true)))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader, "X-Cache"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": "up", "version": h.cfg.Version})
}

// ready reports every dependency check and fails when any of them does.
func (h *Handler) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.cfg.Checks))
	for name, check := range h.cfg.Checks {
		if err := check(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	c.JSON(status, gin.H{"ok": status == http.StatusOK, "checks": checks})
}
