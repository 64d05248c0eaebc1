package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwtcode/grblService/internal/domain/models"
)

// ListMacros godoc
// @Summary Список быстрых команд
// @Tags macros
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /macros [get]
func (h *Handler) ListMacros(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"macros": h.usecase.ListMacros(),
	})
}

// RunMacro godoc
// @Summary Выполнить быструю команду
// @Description Строки макроса уходят через очередь передачи программы
// @Tags macros
// @Accept json
// @Produce json
// @Param request body models.MacroRunRequest true "Имя макроса"
// @Success 200 {object} models.EnqueueResult
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /macros/run [post]
func (h *Handler) RunMacro(c *gin.Context) {
	var req models.MacroRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.usecase.RunMacro(req.SessionID, req.Name)
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
