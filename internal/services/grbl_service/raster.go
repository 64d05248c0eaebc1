package grbl_service

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	"time"

	// Поддерживаемые форматы входных изображений.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	gocache "github.com/patrickmn/go-cache"

	"github.com/iwtcode/grblService/internal/domain/models"
	"github.com/iwtcode/grblService/internal/middleware/logging"
	"github.com/iwtcode/grblService/pkg/engrave"
)

const (
	rasterCacheTTL     = 15 * time.Minute
	rasterCacheCleanup = 5 * time.Minute
)

// rasterCompiler компилирует изображения в программы гравировки. Компиляция
// детерминирована, поэтому результат кэшируется по хэшу файла и параметрам.
type rasterCompiler struct {
	cache  *gocache.Cache
	logger *logging.Logger
}

func newRasterCompiler(logger *logging.Logger) *rasterCompiler {
	return &rasterCompiler{
		cache:  gocache.New(rasterCacheTTL, rasterCacheCleanup),
		logger: logger.WithPrefix("Raster"),
	}
}

// Convert декодирует изображение и строит программу по параметрам задания.
func (r *rasterCompiler) Convert(data []byte, params *models.RasterParams) ([]string, error) {
	key := r.cacheKey(data, params)
	if cached, found := r.cache.Get(key); found {
		lines := cached.([]string)
		r.logger.Debug("Raster program served from cache", "total_lines", len(lines))
		return lines, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("не удалось декодировать изображение: %w", err)
	}

	job := engrave.RasterJob{
		Source:      img,
		WidthMM:     params.WidthMM,
		HeightMM:    params.HeightMM,
		PixelsPerMM: params.PixelsPerMM,
		Threshold:   params.Threshold,
	}

	started := time.Now()
	lines, err := engrave.CompileRaster(job, params.FeedRate)
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, lines, gocache.DefaultExpiration)
	r.logger.Info("Raster program compiled",
		"format", format,
		"total_lines", len(lines),
		"took", time.Since(started).String())
	return lines, nil
}

func (r *rasterCompiler) cacheKey(data []byte, params *models.RasterParams) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x|%.3f|%.3f|%d|%d|%d",
		sum, params.WidthMM, params.HeightMM, params.PixelsPerMM, params.Threshold, params.FeedRate)
}

// Convert на уровне сервиса просто делегирует компилятору.
func (s *Service) Convert(data []byte, params *models.RasterParams) ([]string, error) {
	return s.raster.Convert(data, params)
}

// Preview проецирует программу в отрезки траектории.
func (s *Service) Preview(lines []string) []engrave.Segment {
	return engrave.Project(lines)
}
