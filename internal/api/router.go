package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/hardik88t/projman/internal/app"
	iauth "github.com/hardik88t/projman/internal/auth"
	"github.com/hardik88t/projman/internal/cache"
	"github.com/hardik88t/projman/internal/handlers"
	"github.com/hardik88t/projman/internal/middleware"
	"github.com/hardik88t/projman/internal/services"
)

// Services bundles the wired service layer handed to the router.
type Services struct {
	Auth         *services.AuthService
	Verification *services.EmailVerificationService
	Resets       *services.PasswordResetService
	Projects     *services.ProjectService
	Items        *services.ProjectItemService
}

// NewRouter builds the Gin engine, wires the middleware chain and registers
// all routes. The request gate runs globally so route protection lives in one
// place instead of per-group auth middleware.
func NewRouter(db *gorm.DB, tokens *iauth.TokenService, cfg *app.Config, svcs Services, rateStore cache.Store) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if svcs.Auth == nil || svcs.Projects == nil || svcs.Items == nil {
		return nil, fmt.Errorf("service layer must be fully wired")
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	if cfg.Server.RateLimit.Enabled {
		r.Use(middleware.RateLimit(rateStore, cfg.Server.RateLimit.Max, cfg.Server.RateLimit.Window))
	}
	r.Use(middleware.Gate(tokens, cfg.Auth.RouteClassifier(), cfg.Auth.GateConfig()))

	r.GET("/health", handlers.Health(db))

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	cookies := handlers.CookieSettings{
		Secure: cfg.Server.IsProduction(),
		Domain: cfg.Server.CookieDomain,
	}

	registerAuthRoutes(r, handlers.NewAuthHandler(svcs.Auth, svcs.Verification, svcs.Resets, cookies))
	registerProjectRoutes(r, handlers.NewProjectHandler(svcs.Projects), handlers.NewProjectItemHandler(svcs.Items))

	return r, nil
}
