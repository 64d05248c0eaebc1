package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/iwtcode/grblService/pkg/errors"
)

// statusForError переводит протокольные ошибки в HTTP статус-коды.
func statusForError(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	switch {
	case errors.Is(err, apperrors.ErrSessionNotFound), errors.Is(err, apperrors.ErrDataNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDetectionFailed):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrJogRateExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, apperrors.ErrNotConnected),
		errors.Is(err, apperrors.ErrJogNotAllowed),
		errors.Is(err, apperrors.ErrTransferActive):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrEmptyCommand),
		errors.Is(err, apperrors.ErrEmptyProgram),
		errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := statusForError(err)
	c.JSON(code, gin.H{
		"status": "error",
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status": "error",
		"error": gin.H{
			"code":    http.StatusBadRequest,
			"message": err.Error(),
		},
	})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": message,
	})
}
