package engrave

import (
	"fmt"
	"time"
)

// EstimateTotal оценивает полное время передачи программы линейной
// экстраполяцией: прошедшее время плюс остаток в темпе уже отправленных
// строк. Возвращает ok=false, пока не подтверждена ни одна строка.
func EstimateTotal(elapsed time.Duration, sent, remaining int) (time.Duration, bool) {
	if sent <= 0 {
		return 0, false
	}
	if remaining < 0 {
		remaining = 0
	}
	perLine := float64(elapsed) / float64(sent)
	return elapsed + time.Duration(perLine*float64(remaining)), true
}

// FormatDuration форматирует длительность как HH:MM:SS с округлением
// вниз до секунды. Отрицательные значения приводятся к нулю.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
