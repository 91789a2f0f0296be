package skill

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"max-news-skill/internal/adapters/newsapi"
	"max-news-skill/internal/infra/metrics"
)

// Intent — распознанное намерение пользователя.
type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentNews     Intent = "news"
	IntentFarewell Intent = "farewell"
	IntentUnknown  Intent = "unknown"
)

// Ответы навыка. Навык обязан что-то сказать на любой исход, поэтому все
// сбои агрегатора превращаются в извиняющиеся реплики, а не в ошибки.
const (
	greetingText  = "Привет! Я расскажу тебе последние новости из MAX каналов. Просто скажи: 'Свежие новости' или 'Последние новости'."
	farewellText  = "До свидания! Возвращайтесь за свежими новостями!"
	fallbackText  = "Извините, я вас не поняла. Скажите 'Свежие новости', чтобы узнать последние новости."
	newsPrefix    = "Вот последние новости: "
	timeoutText   = "Извините, сервис новостей не отвечает. Попробуйте позже."
	uplinkText    = "Извините, сервис новостей временно недоступен."
	malformedText = "Извините, произошла ошибка при обработке новостей."
	emptyText     = "Извините, новости временно недоступны."
	genericText   = "Извините, произошла ошибка при получении новостей."
)

var newsKeywords = []string{"новости", "что нового", "свежие новости", "последние новости"}
var farewellKeywords = []string{"пока", "выход", "до свидания"}

// NewsFetcher отдаёт готовый текст новостей.
type NewsFetcher interface {
	TodayNewsText(ctx context.Context) (string, error)
}

// Service превращает реплику пользователя в ответ навыка.
type Service struct {
	news NewsFetcher
	log  zerolog.Logger
}

// NewService создаёт сервис навыка.
func NewService(news NewsFetcher, log zerolog.Logger) *Service {
	return &Service{news: news, log: log}
}

// DetectIntent сопоставляет реплику с фиксированным набором ключевых фраз.
// Порядок проверок повторяет диалоговую логику: приветствие, новости, прощание.
func DetectIntent(utterance string) Intent {
	command := strings.ToLower(strings.TrimSpace(utterance))
	switch {
	case command == "" || command == "что ты умеешь":
		return IntentGreeting
	case containsAny(command, newsKeywords):
		return IntentNews
	case containsAny(command, farewellKeywords):
		return IntentFarewell
	default:
		return IntentUnknown
	}
}

// Respond возвращает текст ответа и флаг завершения сессии.
func (s *Service) Respond(ctx context.Context, utterance string) (string, bool) {
	intent := DetectIntent(utterance)
	metrics.IncSkillIntent(string(intent))
	s.log.Info().Str("intent", string(intent)).Str("utterance", utterance).Msg("skill: запрос пользователя")

	switch intent {
	case IntentGreeting:
		return greetingText, false
	case IntentFarewell:
		return farewellText, true
	case IntentNews:
		return s.todayNews(ctx), false
	default:
		return fallbackText, false
	}
}

func (s *Service) todayNews(ctx context.Context) string {
	text, err := s.news.TodayNewsText(ctx)
	if err == nil {
		return newsPrefix + text
	}

	s.log.Error().Err(err).Msg("skill: не удалось получить новости")
	switch {
	case errors.Is(err, newsapi.ErrTimeout):
		return timeoutText
	case errors.Is(err, newsapi.ErrMalformed):
		return malformedText
	case errors.Is(err, newsapi.ErrEmptyNews):
		return emptyText
	case errors.Is(err, newsapi.ErrUnavailable):
		return uplinkText
	default:
		return genericText
	}
}

func containsAny(command string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(command, keyword) {
			return true
		}
	}
	return false
}
