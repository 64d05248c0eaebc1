// Package engrave содержит чистые функции подготовки программ лазерной
// гравировки: компиляцию растрового изображения в команды движения,
// проекцию программы в отрезки предпросмотра и оценку времени выполнения.
package engrave

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Физические пределы параметров задания.
const (
	MaxDimensionMM = 1000.0
	MinPixelsPerMM = 1
	MaxPixelsPerMM = 50
	MaxThreshold   = 255
	MaxLaserPower  = 1000
)

// RasterJob - неизменяемые входные данные компиляции растрового задания.
type RasterJob struct {
	Source      image.Image // исходное изображение, важна только интенсивность
	WidthMM     float64     // целевая ширина, мм
	HeightMM    float64     // целевая высота, мм
	PixelsPerMM int         // разрешение сканирования
	Threshold   int         // порог интенсивности включения лазера, 0-255
}

// Validate проверяет параметры задания до любого обращения к изображению.
func (j RasterJob) Validate() error {
	if j.Source == nil {
		return fmt.Errorf("изображение не задано")
	}
	if j.WidthMM <= 0 || j.HeightMM <= 0 {
		return fmt.Errorf("размеры должны быть положительными, получено %.3fx%.3f мм", j.WidthMM, j.HeightMM)
	}
	if j.WidthMM > MaxDimensionMM || j.HeightMM > MaxDimensionMM {
		return fmt.Errorf("размеры слишком велики (максимум %.0f мм)", MaxDimensionMM)
	}
	if j.PixelsPerMM < MinPixelsPerMM || j.PixelsPerMM > MaxPixelsPerMM {
		return fmt.Errorf("разрешение должно быть от %d до %d пикс/мм, получено %d", MinPixelsPerMM, MaxPixelsPerMM, j.PixelsPerMM)
	}
	if j.Threshold < 0 || j.Threshold > MaxThreshold {
		return fmt.Errorf("порог должен быть от 0 до %d, получено %d", MaxThreshold, j.Threshold)
	}
	return nil
}

// CompileRaster преобразует растровое задание в последовательность команд.
// Результат детерминирован: одинаковые задания дают побайтно одинаковые программы.
//
// Изображение пересэмплируется до round(w*ppm) x round(h*ppm) отсчетов без
// сохранения пропорций: выход всегда точно заполняет целевые размеры. Строки
// сканируются сверху вниз, колонки зигзагом (четные слева направо, нечетные
// справа налево) - это вдвое сокращает холостой ход.
func CompileRaster(job RasterJob, feedRate int) ([]string, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	widthPx := int(math.Round(job.WidthMM * float64(job.PixelsPerMM)))
	heightPx := int(math.Round(job.HeightMM * float64(job.PixelsPerMM)))

	commands := []string{
		"G21", // миллиметры
		"G90", // абсолютное позиционирование
		"G17", // плоскость XY
		fmt.Sprintf("F%d", feedRate),
		"M5 S0", // лазер выключен и мощность обнулена до старта
	}

	if widthPx > 0 && heightPx > 0 {
		gray := resample(job.Source, widthPx, heightPx)
		ppm := float64(job.PixelsPerMM)

		for yPx := 0; yPx < heightPx; yPx++ {
			yMM := float64(yPx) / ppm

			if yPx%2 == 0 {
				for xPx := 0; xPx < widthPx; xPx++ {
					commands = append(commands, sampleCommand(gray, xPx, yPx, float64(xPx)/ppm, yMM, job.Threshold))
				}
			} else {
				for xPx := widthPx - 1; xPx >= 0; xPx-- {
					commands = append(commands, sampleCommand(gray, xPx, yPx, float64(xPx)/ppm, yMM, job.Threshold))
				}
			}

			// Гасим лазер на развороте строки, даже если строка закончилась темным отсчетом.
			commands = append(commands, "M5 S0")
		}
	}

	commands = append(commands, "G0 X0 Y0")
	commands = append(commands, "M5 S0")

	return commands, nil
}

func sampleCommand(gray *image.Gray, xPx, yPx int, xMM, yMM float64, threshold int) string {
	intensity := gray.GrayAt(xPx, yPx).Y
	if int(intensity) < threshold {
		return fmt.Sprintf("M3 S%d G1 X%.3f Y%.3f", LaserPower(intensity), xMM, yMM)
	}
	// Слишком светлый отсчет: холостое перемещение без прожига.
	return fmt.Sprintf("M5 S0 G0 X%.3f Y%.3f", xMM, yMM)
}

// LaserPower отображает интенсивность 0-255 в мощность 1-1000 линейно и
// инверсно: чем темнее отсчет, тем выше мощность. Ноль не возвращается
// никогда, выключение лазера выражается отдельной командой M5.
func LaserPower(intensity uint8) int {
	power := int(math.Round(float64(MaxLaserPower) * (1 - float64(intensity)/255.0)))
	if power < 1 {
		power = 1
	}
	if power > MaxLaserPower {
		power = MaxLaserPower
	}
	return power
}

func resample(src image.Image, widthPx, heightPx int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, widthPx, heightPx))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
