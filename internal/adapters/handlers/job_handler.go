package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetJobs godoc
// @Summary История передач программ
// @Description Возвращает все задания либо задания одной сессии
// @Tags jobs
// @Produce json
// @Param session_id query string false "Идентификатор сессии"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} models.ErrorResponse
// @Router /jobs [get]
func (h *Handler) GetJobs(c *gin.Context) {
	jobs, err := h.usecase.GetJobs(c.Query("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"count":  len(jobs),
		"jobs":   jobs,
	})
}
