package engrave

import (
	"strings"

	"github.com/256dpi/gcode"
)

// Segment - один отрезок траектории предпросмотра в рабочих координатах.
type Segment struct {
	X0        float64 `json:"x0"`
	Y0        float64 `json:"y0"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	Energized bool    `json:"energized"` // лазер включен на этом отрезке
}

// Project проецирует программу в отрезки траектории без обращения к станку.
// Курсор стартует в (0,0); строка без слова оси оставляет эту ось на месте.
// Отрезок считается прожигающим, если в той же строке есть M3 и слово S.
// Строки без перемещения (F, M5, диагностика, комментарии) отрезков не дают.
func Project(lines []string) []Segment {
	segments := make([]Segment, 0, len(lines))
	curX, curY := 0.0, 0.0

	for _, line := range lines {
		codes, ok := parseCodes(line)
		if !ok {
			continue
		}

		nextX, nextY := curX, curY
		hasMotion := false
		hasM3 := false
		hasPower := false

		for _, code := range codes {
			switch code.Letter {
			case "X":
				nextX = code.Value
				hasMotion = true
			case "Y":
				nextY = code.Value
				hasMotion = true
			case "M":
				if int(code.Value) == 3 {
					hasM3 = true
				}
			case "S":
				hasPower = true
			}
		}

		if !hasMotion {
			continue
		}

		segments = append(segments, Segment{
			X0:        curX,
			Y0:        curY,
			X1:        nextX,
			Y1:        nextY,
			Energized: hasM3 && hasPower,
		})
		curX, curY = nextX, nextY
	}

	return segments
}

// parseCodes разбирает одну строку программы. Нераспознаваемые строки
// (системные команды "$", мусор) молча пропускаются: предпросмотр
// строится по тому, что удалось понять.
func parseCodes(line string) ([]gcode.GCode, bool) {
	trimmed := strings.ToUpper(strings.TrimSpace(line))
	if trimmed == "" || strings.HasPrefix(trimmed, "$") || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "(") {
		return nil, false
	}

	parsed, err := gcode.ParseLine(trimmed)
	if err != nil {
		return nil, false
	}
	return parsed.Codes, true
}
