// Package handlers содержит HTTP-обработчики REST API сервиса.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwtcode/grblService/internal/config"
	"github.com/iwtcode/grblService/internal/interfaces"
	"github.com/iwtcode/grblService/internal/middleware/logging"
	"github.com/iwtcode/grblService/internal/middleware/swagger"
)

// Handler агрегирует зависимости HTTP-обработчиков.
type Handler struct {
	usecase interfaces.GrblUsecase
	logger  *logging.Logger
}

func NewHandler(usecase interfaces.GrblUsecase, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger.WithPrefix("Handler"),
	}
}

// ProvideRouter собирает маршрутизатор со всеми эндпоинтами сервиса.
func ProvideRouter(h *Handler, cfg *config.AppConfig, swaggerCfg *swagger.Config, logger *logging.Logger) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggingMiddleware(logger.WithPrefix("HTTP")))

	swagger.Setup(router, swaggerCfg)

	router.GET("/ports", h.ListPorts)

	router.POST("/connect", h.CreateConnection)
	router.GET("/connections", h.GetConnections)
	router.DELETE("/connections/:session_id", h.DeleteConnection)

	router.GET("/status/:session_id", h.GetStatus)

	router.POST("/command", h.SendCommand)
	router.POST("/command/batch", h.EnqueueBatch)
	router.GET("/command/progress/:session_id", h.GetProgress)

	router.POST("/jog", h.Jog)
	router.POST("/laser", h.SetLaserPower)
	router.POST("/feed", h.SetFeedRate)
	router.POST("/origin", h.SetOrigin)
	router.POST("/reset", h.SoftReset)

	router.GET("/macros", h.ListMacros)
	router.POST("/macros/run", h.RunMacro)

	router.POST("/raster/convert", h.ConvertRaster)
	router.POST("/raster/preview", h.PreviewProgram)

	router.GET("/jobs", h.GetJobs)

	return router
}
