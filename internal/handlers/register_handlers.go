package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/livro_caixa/cmd/docs"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/SscSPs/livro_caixa/internal/metrics"
	"github.com/SscSPs/livro_caixa/internal/middleware"
	"github.com/SscSPs/livro_caixa/internal/platform/config"
	"github.com/SscSPs/livro_caixa/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options carries the optional observability hooks of the router.
type Options struct {
	Metrics *metrics.Metrics
	Posthog *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// It must be called before any other route is added to r.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts Options,
) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return err
		}
	}

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	ipLimiter, err := middleware.NewLimiter(cfg.AuthRateLimit)
	if err != nil {
		return fmt.Errorf("failed to build auth rate limiter: %w", err)
	}
	authMW := middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services, ipLimiter, authMW)

	setupAPIV1Routes(r, services, authMW, opts)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer, authMW gin.HandlerFunc, opts Options) {
	v1 := r.Group("/api/v1", authMW)
	if opts.Posthog != nil {
		v1.Use(middleware.PosthogMiddleware(opts.Posthog))
	}

	registerUserRoutes(v1, services.User)
	registerDrawerRoutes(v1, services.Drawer, services.Closure)
	registerSaleRoutes(v1, services.Sale)
	registerWithdrawalRoutes(v1, services.Withdrawal)
	registerClosureRoutes(v1, services.Closure, services.Drawer, services.Report)
	registerReportRoutes(v1, services.Report)
	registerSettingsRoutes(v1, services.Settings)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
