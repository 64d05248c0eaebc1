package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwtcode/grblService/internal/domain/models"
)

// Изображения больше этого размера отклоняются до декодирования.
const maxImageBytes = 32 << 20

// ConvertRaster godoc
// @Summary Скомпилировать изображение в программу гравировки
// @Description Принимает multipart-форму с файлом изображения и параметрами задания
// @Tags raster
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Изображение (PNG, JPEG, GIF, BMP)"
// @Param width_mm formData number true "Ширина, мм"
// @Param height_mm formData number true "Высота, мм"
// @Param pixels_per_mm formData integer false "Разрешение, пикс/мм (по умолчанию 5)"
// @Param threshold formData integer false "Порог интенсивности (по умолчанию 128)"
// @Param feed_rate formData integer false "Скорость подачи (по умолчанию 1000)"
// @Success 200 {object} models.ProgramResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /raster/convert [post]
func (h *Handler) ConvertRaster(c *gin.Context) {
	var params models.RasterParams
	if err := c.ShouldBind(&params); err != nil {
		respondBadRequest(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondBadRequest(c, fmt.Errorf("файл изображения не передан: %w", err))
		return
	}
	if fileHeader.Size > maxImageBytes {
		respondBadRequest(c, fmt.Errorf("изображение слишком велико: %d байт", fileHeader.Size))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	lines, err := h.usecase.ConvertRaster(data, &params)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"total_lines": len(lines),
		"lines":       lines,
	})
}

// PreviewProgram godoc
// @Summary Построить предпросмотр программы
// @Description Проецирует строки программы в отрезки траектории без обращения к станку
// @Tags raster
// @Accept json
// @Produce json
// @Param request body models.PreviewRequest true "Программа"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /raster/preview [post]
func (h *Handler) PreviewProgram(c *gin.Context) {
	var req models.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	segments := h.usecase.PreviewProgram(req.Lines)
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"segments": segments,
	})
}
