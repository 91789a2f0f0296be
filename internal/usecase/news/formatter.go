package news

import (
	"fmt"
	"sort"
	"strings"

	"max-news-skill/internal/domain"
)

// NoNewsText произносится, когда за сегодня не нашлось ни одной новости.
const NoNewsText = "Сегодня новостей пока нет."

const truncationMark = "..."

// FormatForSpeech сводит собранные новости в одну озвучиваемую строку:
// свежие каналы первыми, не больше maxEntries записей, текст каждой записи
// укорачивается до maxEntryLen по границам слов.
func FormatForSpeech(items []domain.NewsItem, maxEntryLen, maxEntries int) string {
	if len(items) == 0 {
		return NoNewsText
	}

	sorted := append([]domain.NewsItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp > sorted[j].Timestamp })

	if maxEntries > 0 && len(sorted) > maxEntries {
		sorted = sorted[:maxEntries]
	}

	entries := make([]string, 0, len(sorted))
	for _, item := range sorted {
		text := item.NewsText
		if maxEntryLen > 0 && len([]rune(text)) > maxEntryLen {
			text = shortenToWords(text, maxEntryLen) + truncationMark
		}
		entries = append(entries, fmt.Sprintf("В канале %s пишут %s", item.ChannelName, text))
	}

	return strings.Join(entries, ". ")
}

// shortenToWords набирает целые слова, пока суммарная длина вместе с
// разделяющим пробелом не превысит limit. Слова никогда не режутся; если
// даже первое слово не помещается, возвращается пустой префикс.
func shortenToWords(text string, limit int) string {
	words := strings.Fields(text)
	kept := make([]string, 0, len(words))
	total := 0
	for _, word := range words {
		length := len([]rune(word))
		if total+length+1 > limit {
			break
		}
		kept = append(kept, word)
		total += length + 1
	}
	return strings.Join(kept, " ")
}
