package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwtcode/grblService/internal/domain/models"
)

// ListPorts godoc
// @Summary Список последовательных портов
// @Description Возвращает пути портов, на которых может находиться контроллер
// @Tags connections
// @Produce json
// @Success 200 {object} models.PortsResponse
// @Router /ports [get]
func (h *Handler) ListPorts(c *gin.Context) {
	ports := h.usecase.ListPorts()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"ports":  ports,
	})
}

// CreateConnection godoc
// @Summary Подключиться к контроллеру
// @Description Открывает порт, ждет приветственный баннер GRBL и регистрирует сессию
// @Tags connections
// @Accept json
// @Produce json
// @Param request body models.ConnectionRequest true "Параметры подключения"
// @Success 200 {object} models.CreateConnectionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /connect [post]
func (h *Handler) CreateConnection(c *gin.Context) {
	var req models.ConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	info, err := h.usecase.CreateConnection(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"connection_info": info,
	})
}

// GetConnections godoc
// @Summary Список активных сессий
// @Tags connections
// @Produce json
// @Success 200 {object} models.GetConnectionsResponse
// @Router /connections [get]
func (h *Handler) GetConnections(c *gin.Context) {
	connections := h.usecase.GetAllConnections()
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"pool_size":   len(connections),
		"connections": connections,
	})
}

// DeleteConnection godoc
// @Summary Закрыть сессию
// @Description Останавливает передачу, освобождает порт и удаляет сессию из пула
// @Tags connections
// @Produce json
// @Param session_id path string true "Идентификатор сессии"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /connections/{session_id} [delete]
func (h *Handler) DeleteConnection(c *gin.Context) {
	if err := h.usecase.DeleteConnection(c.Param("session_id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Connection closed")
}

// GetStatus godoc
// @Summary Статус станка
// @Description Возвращает последнее разобранное состояние и хвост консоли
// @Tags status
// @Produce json
// @Param session_id path string true "Идентификатор сессии"
// @Success 200 {object} models.StatusInfo
// @Failure 404 {object} models.ErrorResponse
// @Router /status/{session_id} [get]
func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.usecase.GetStatus(c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
