package handlers

import (
	"github.com/SscSPs/posting_engine/cmd/docs"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/middleware"
	"github.com/SscSPs/posting_engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// every v1 route needs an actor for the audit trail
	v1 := r.Group("/api/v1", middleware.ActorMiddleware(cfg.JWTSecret))

	registerPostingRoutes(v1, service.Poster, service.Reversal, service.Currency)
	registerPostingRuleRoutes(v1, service.PostingRule)
	registerCurrencyRoutes(v1, service.Currency)
	registerExchangeRateRoutes(v1, service.Currency)
	registerAuditRoutes(v1, service.Auditor, service.AuditLogs, cfg.Policy.AuditChunkDays)
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
