package grbl_service

import (
	"strconv"
	"strings"

	"github.com/iwtcode/grblService/internal/domain/models"
)

// knownModes - режимы, которые контроллер сообщает первым полем телеграммы.
var knownModes = map[string]models.RunMode{
	"Idle":  models.ModeIdle,
	"Run":   models.ModeRun,
	"Hold":  models.ModeHold,
	"Jog":   models.ModeJog,
	"Alarm": models.ModeAlarm,
	"Check": models.ModeCheck,
	"Door":  models.ModeDoor,
	"Home":  models.ModeHome,
	"Sleep": models.ModeSleep,
}

// ParseStatus разбирает телеграмму статуса вида
//
//	<Idle|WPos:1.000,2.000,0.000|FS:0,0>
//
// и накладывает разобранные поля на prev. Поля, отсутствующие в телеграмме,
// сохраняют прежние значения: контроллер не повторяет неизменившиеся данные.
// Возвращает ok=false, если строка не похожа на телеграмму.
func ParseStatus(line string, prev models.MachineStatus) (models.MachineStatus, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 || trimmed[0] != '<' || trimmed[len(trimmed)-1] != '>' {
		return prev, false
	}

	next := prev
	fields := strings.Split(trimmed[1:len(trimmed)-1], "|")

	// Первое поле - режим, возможно с подсостоянием ("Hold:0", "Door:1").
	// Нераспознанный токен оставляет прежний режим, как и отсутствующие поля.
	if len(fields) > 0 && fields[0] != "" {
		name := fields[0]
		if colon := strings.IndexByte(name, ':'); colon >= 0 {
			name = name[:colon]
		}
		if mode, known := knownModes[name]; known {
			next.Mode = mode
		}
	}

	for _, field := range fields[1:] {
		if pos, ok := parseWPos(field); ok {
			next.WPos = pos
		}
	}

	return next, true
}

func parseWPos(field string) (models.Position, bool) {
	value, found := strings.CutPrefix(field, "WPos:")
	if !found {
		return models.Position{}, false
	}
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return models.Position{}, false
	}

	coords := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return models.Position{}, false
		}
		coords[i] = v
	}
	return models.Position{X: coords[0], Y: coords[1], Z: coords[2]}, true
}
