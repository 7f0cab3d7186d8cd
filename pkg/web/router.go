package web

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/scienceol/piwarmer/docs" // swagger document
	"github.com/scienceol/piwarmer/internal/config"
	"github.com/scienceol/piwarmer/pkg/middleware/logger"
	"github.com/scienceol/piwarmer/pkg/repo/backend"
	"github.com/scienceol/piwarmer/pkg/web/views/health"
	programView "github.com/scienceol/piwarmer/pkg/web/views/program"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(g *gin.Engine) {
	installMiddleware(g)
	installURL(g, programView.NewProgramHandle(), backend.New())
}

func installMiddleware(g *gin.Engine) {
	g.ContextWithFallback = true
	server := config.Global().Server
	g.Use(cors.Default())
	g.Use(otelgin.Middleware(fmt.Sprintf("%s-%s", server.Platform, server.Service)))
	g.Use(logger.LogWithWriter())
}

func installURL(g *gin.Engine, pHandle *programView.Handle, probe health.Pinger) {
	// Pages
	{
		page := g.Group("/program")
		page.GET("/detail", pHandle.Page)
		page.POST("/detail/delete", pHandle.DeleteForm)
	}

	api := g.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/health/live", health.Live)
	api.GET("/health/ready", health.Ready(probe))
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	{
		v1 := api.Group("/v1")
		programRouter := v1.Group("/program")
		programRouter.GET("/detail", pHandle.Detail)
		programRouter.GET("/timeline", pHandle.Timeline)
		programRouter.DELETE("/:id", pHandle.Delete)
	}
}
