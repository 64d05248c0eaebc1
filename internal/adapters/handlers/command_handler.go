package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwtcode/grblService/internal/domain/models"
)

// SendCommand godoc
// @Summary Отправить одиночную команду
// @Description Команда уходит немедленно, в обход очереди передачи программы
// @Tags commands
// @Accept json
// @Produce json
// @Param request body models.CommandRequest true "Команда"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /command [post]
func (h *Handler) SendCommand(c *gin.Context) {
	var req models.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.usecase.SendCommand(req.SessionID, req.Command); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Command sent successfully")
}

// EnqueueBatch godoc
// @Summary Поставить программу в очередь передачи
// @Description Строки уходят по одной, следующая после подтверждения "ok" предыдущей
// @Tags commands
// @Accept json
// @Produce json
// @Param request body models.BatchRequest true "Программа"
// @Success 200 {object} models.EnqueueResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /command/batch [post]
func (h *Handler) EnqueueBatch(c *gin.Context) {
	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.usecase.EnqueueBatch(req.SessionID, req.Lines, req.Source)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"job_id":      result.JobID,
		"total_lines": result.TotalLines,
	})
}

// GetProgress godoc
// @Summary Прогресс передачи программы
// @Tags commands
// @Produce json
// @Param session_id path string true "Идентификатор сессии"
// @Success 200 {object} models.ProgressInfo
// @Failure 404 {object} models.ErrorResponse
// @Router /command/progress/{session_id} [get]
func (h *Handler) GetProgress(c *gin.Context) {
	progress, err := h.usecase.GetProgress(c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Jog godoc
// @Summary Относительное перемещение
// @Description Допускается только в состояниях Idle и Jog
// @Tags control
// @Accept json
// @Produce json
// @Param request body models.JogRequest true "Смещения по осям"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /jog [post]
func (h *Handler) Jog(c *gin.Context) {
	var req models.JogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.usecase.Jog(req.SessionID, req.DX, req.DY, req.DZ); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Jog command sent")
}

// SetLaserPower godoc
// @Summary Установить мощность лазера
// @Description Нулевая мощность выключает лазер
// @Tags control
// @Accept json
// @Produce json
// @Param request body models.LaserRequest true "Мощность 0..1000"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /laser [post]
func (h *Handler) SetLaserPower(c *gin.Context) {
	var req models.LaserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.usecase.SetLaserPower(req.SessionID, *req.Power); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Laser power updated")
}

// SetFeedRate godoc
// @Summary Установить скорость подачи
// @Tags control
// @Accept json
// @Produce json
// @Param request body models.FeedRequest true "Скорость 100..5000 мм/мин"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /feed [post]
func (h *Handler) SetFeedRate(c *gin.Context) {
	var req models.FeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.usecase.SetFeedRate(req.SessionID, req.Rate); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Feed rate updated")
}

// SetOrigin godoc
// @Summary Установить ноль рабочих координат
// @Description Текущая позиция становится началом рабочей системы координат
// @Tags control
// @Accept json
// @Produce json
// @Param request body models.SessionRequest true "Сессия"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /origin [post]
func (h *Handler) SetOrigin(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.usecase.SetOrigin(req.SessionID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Origin set")
}

// SoftReset godoc
// @Summary Мягкий сброс контроллера
// @Description Немедленно прерывает выполнение и очищает очередь передачи
// @Tags control
// @Accept json
// @Produce json
// @Param request body models.SessionRequest true "Сессия"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reset [post]
func (h *Handler) SoftReset(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.usecase.SoftReset(req.SessionID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Soft reset sent")
}
