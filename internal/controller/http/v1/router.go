// Package v1 implements routing paths. Each services in own file.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// Swagger docs.
	_ "mediarelay/docs"

	"mediarelay/internal/usecase"
	"mediarelay/pkg/logger"
	"mediarelay/pkg/rtcengine/pion"
)

// NewRouter -.
// Swagger spec:
// @title       Media Relay API
// @description SFU control plane: rooms, participants, signaling
// @version     1.0
// @host        localhost:8080
// @BasePath    /v1
func NewRouter(handler *gin.Engine, l logger.Interface, rooms usecase.Rooms, engine *pion.Engine, sig SignalingConfig) {
	// Options
	handler.Use(gin.Logger())
	handler.Use(gin.Recovery())

	// Swagger
	swaggerHandler := ginSwagger.DisablingWrapHandler(swaggerFiles.Handler, "DISABLE_SWAGGER_HTTP_HANDLER")
	handler.GET("/swagger/*any", swaggerHandler)

	// for K8s probe
	handler.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	// for Prometheus metrics
	handler.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Routers:
	h := handler.Group("/v1")
	{
		newRoomRoutes(h, rooms, l)
		newSignalingRoutes(h, rooms, engine, sig, l)
	}
}
