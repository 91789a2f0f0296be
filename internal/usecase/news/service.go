package news

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"max-news-skill/internal/domain"
	"max-news-skill/internal/infra/metrics"
)

// Service — фасад над сессией мессенджера: каждая операция открывает свою
// сессию и безусловно закрывает её на любом пути выхода.
type Service struct {
	messenger   domain.Messenger
	collector   *Collector
	log         zerolog.Logger
	maxEntryLen int
	maxEntries  int
}

var _ domain.NewsProvider = (*Service)(nil)

// NewService создаёт фасад агрегатора.
func NewService(messenger domain.Messenger, collector *Collector, log zerolog.Logger, maxEntryLen, maxEntries int) *Service {
	return &Service{messenger: messenger, collector: collector, log: log, maxEntryLen: maxEntryLen, maxEntries: maxEntries}
}

// TodaysNews собирает сегодняшние новости и сразу формирует озвучиваемый
// текст. Ошибки отдельных каналов съедаются сборщиком; ошибкой вызова
// считается только невозможность открыть сессию или получить список каналов.
func (s *Service) TodaysNews(ctx context.Context) (domain.NewsDigest, error) {
	s.log.Info().Msg("maxnews: получение сегодняшних новостей")
	start := time.Now()
	defer func() { metrics.CollectSeconds.Observe(time.Since(start).Seconds()) }()

	sess, err := s.messenger.Dial(ctx)
	if err != nil {
		return domain.NewsDigest{}, fmt.Errorf("открытие сессии: %w", err)
	}
	defer s.closeSession(sess)

	items, err := s.collector.Collect(ctx, sess)
	if err != nil {
		return domain.NewsDigest{}, fmt.Errorf("сбор новостей: %w", err)
	}
	return domain.NewsDigest{
		Items:     items,
		Formatted: FormatForSpeech(items, s.maxEntryLen, s.maxEntries),
	}, nil
}

// Channels возвращает свежую проекцию подписок, отсортированную по названию.
// Список не кэшируется: каждое обращение заново спрашивает платформу.
func (s *Service) Channels(ctx context.Context) ([]domain.ChannelSummary, error) {
	s.log.Info().Msg("maxnews: получение списка каналов")
	sess, err := s.messenger.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("открытие сессии: %w", err)
	}
	defer s.closeSession(sess)

	channels, err := sess.Channels(ctx)
	if err != nil {
		return nil, fmt.Errorf("список каналов: %w", err)
	}

	summaries := make([]domain.ChannelSummary, 0, len(channels))
	for _, ch := range channels {
		summary := domain.ChannelSummary{
			ChannelName:      ch.Title,
			SubscribersCount: ch.ParticipantsCount,
			ChannelID:        ch.ID,
			ChannelLink:      ch.Link,
		}
		details, err := sess.ChannelDetails(ctx, ch)
		if err != nil {
			// описание не критично для списка
			s.log.Warn().Err(err).Str("channel", ch.Title).Msg("maxnews: описание канала недоступно")
		} else {
			summary.ChannelDescription = details.Description
			if details.ParticipantsCount > 0 {
				summary.SubscribersCount = details.ParticipantsCount
			}
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ChannelName < summaries[j].ChannelName })
	s.log.Info().Int("count", len(summaries)).Msg("maxnews: найдено каналов")
	return summaries, nil
}

// Profile пересчитывает снимок профиля на каждый вызов.
func (s *Service) Profile(ctx context.Context) (domain.ProfileSummary, error) {
	s.log.Info().Msg("maxnews: получение информации о профиле")
	sess, err := s.messenger.Dial(ctx)
	if err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("открытие сессии: %w", err)
	}
	defer s.closeSession(sess)

	account, err := sess.Me(ctx)
	if err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("профиль: %w", err)
	}
	channels, err := sess.Channels(ctx)
	if err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("список каналов: %w", err)
	}

	name := account.Name
	if name == "" {
		name = "Неизвестно"
	}
	status := "активен"
	if !account.Authorized {
		status = "не авторизован"
	}
	return domain.ProfileSummary{
		Name:            name,
		PhoneNumber:     account.Phone,
		ChannelsCount:   len(channels),
		IsAuthenticated: account.Authorized,
		LastSync:        time.Now().Format(time.RFC3339),
		Status:          status,
	}, nil
}

func (s *Service) closeSession(sess domain.Session) {
	if err := sess.Close(); err != nil {
		s.log.Error().Err(err).Msg("maxnews: закрытие сессии")
	}
}
