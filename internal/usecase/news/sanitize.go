package news

import (
	"regexp"
	"strings"
)

// Проходы выполняются строго по порядку: сначала убираем эмодзи и прочие
// символы, сохраняя скобки и маркеры упоминаний для следующих проходов,
// затем вырезаем обрамлённые вставки и токены, и только после этого
// схлопываем пробелы.
var cleanPasses = []*regexp.Regexp{
	// всё, что не буква/цифра/пробел/базовая пунктуация; разделители
	// [](){}@#_ оставляем живыми до следующих проходов
	regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?:;"'\-\[\](){}@#]`),
	// вставки [подпись], (ремарка), _выделение_ — нежадно, в одну строку
	regexp.MustCompile(`\[[^\[\]\n]*?\]|\([^()\n]*?\)|_[^_\n]*?_`),
	// упоминания и хештеги
	regexp.MustCompile(`[@#][\p{L}\p{N}_]+`),
	// осиротевшие разделители, оставшиеся без пары
	regexp.MustCompile(`[\[\](){}@#]`),
}

var spaceRuns = regexp.MustCompile(`\s+`)

// Clean готовит сырой текст сообщения к озвучке: каждое удаление заменяется
// одним пробелом, чтобы слова по краям вырезанного куска не склеивались.
// Для пустого входа возвращает пустую строку; повторный Clean ничего не меняет.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	cleaned := text
	for _, pass := range cleanPasses {
		cleaned = pass.ReplaceAllString(cleaned, " ")
	}
	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
