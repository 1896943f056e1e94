package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/edugrade-api/internal/handler"
	"github.com/noah-isme/edugrade-api/internal/middleware"
	"github.com/noah-isme/edugrade-api/internal/service"
	"github.com/noah-isme/edugrade-api/pkg/config"
	"github.com/noah-isme/edugrade-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/edugrade-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/edugrade-api/pkg/middleware/requestid"
)

type routerDeps struct {
	gradebook *handler.GradebookHandler
	metrics   *handler.MetricsHandler
	registry  *service.MetricsService
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.registry))

	r.GET("/health", deps.metrics.Health)
	r.GET("/ready", deps.metrics.Ready)
	r.GET("/metrics", deps.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := "/" + strings.Trim(cfg.APIPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}
	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())

	gradebook := api.Group("/gradebook")
	gradebook.GET("/defaults", deps.gradebook.Defaults)
	gradebook.GET("/percentage", deps.gradebook.Percentage)
	gradebook.POST("/normalize", deps.gradebook.Normalize)
	gradebook.POST("/classify", deps.gradebook.Classify)
	gradebook.POST("/students/:studentId/report", deps.gradebook.StudentReport)
	gradebook.POST("/classes/:classId/report", deps.gradebook.ClassReport)
	gradebook.POST("/classes/:classId/export", deps.gradebook.ExportClass)

	return r
}
