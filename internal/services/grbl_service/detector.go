package grbl_service

import "strings"

const firmwareSignature = "Grbl"

// UnknownVersion подставляется, когда баннер узнан, но номер версии
// из него извлечь не удалось.
const UnknownVersion = "N/A"

// ContainsSignature сообщает, является ли строка приветственным баннером
// контроллера, например "Grbl 1.1h ['$' for help]".
func ContainsSignature(line string) bool {
	return strings.Contains(line, firmwareSignature)
}

// ExtractVersion достает номер версии из баннера: первое слово после
// сигнатуры. Регулярные выражения здесь не нужны, баннер односложен.
func ExtractVersion(line string) string {
	idx := strings.Index(line, firmwareSignature)
	if idx < 0 {
		return UnknownVersion
	}
	rest := strings.TrimSpace(line[idx+len(firmwareSignature):])
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return UnknownVersion
	}
	return fields[0]
}
