package news

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"max-news-skill/internal/domain"
	"max-news-skill/internal/infra/metrics"
)

// historyDepth — сколько сообщений назад запрашивается у каждого канала.
const historyDepth = 50

// Collector обходит подписанные каналы и выбирает из каждого самое свежее
// сегодняшнее сообщение с непустым текстом.
type Collector struct {
	log         zerolog.Logger
	concurrency int
	now         func() time.Time
}

// NewCollector создаёт сборщик. concurrency ограничивает число одновременных
// запросов истории; значения меньше единицы означают последовательный обход.
func NewCollector(log zerolog.Logger, concurrency int) *Collector {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Collector{log: log, concurrency: concurrency, now: time.Now}
}

// Collect выполняет один проход агрегации. Порог "сегодня" вычисляется один
// раз на весь проход, чтобы все каналы сравнивались с одной и той же
// полуночью. Ошибка одного канала пропускает только его.
func (c *Collector) Collect(ctx context.Context, sess domain.Session) ([]domain.NewsItem, error) {
	channels, err := sess.Channels(ctx)
	if err != nil {
		return nil, err
	}

	now := c.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UnixMilli()
	anchor := now.UnixMilli()

	picked := make([]*domain.NewsItem, len(channels))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.concurrency)
	for i, ch := range channels {
		group.Go(func() error {
			item, err := c.collectChannel(groupCtx, sess, ch, anchor, todayStart)
			if err != nil {
				metrics.CollectorErrors.Inc()
				c.log.Error().Err(err).Str("channel", ch.Title).Msg("maxnews: канал пропущен")
				return nil
			}
			picked[i] = item
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	items := make([]domain.NewsItem, 0, len(channels))
	for _, item := range picked {
		if item == nil {
			continue
		}
		items = append(items, *item)
	}
	c.log.Info().Int("count", len(items)).Msg("maxnews: найдено новостей за сегодня")
	return items, nil
}

// collectChannel возвращает nil без ошибки, если в канале нет подходящего
// сообщения или его текст вычищается до пустоты.
func (c *Collector) collectChannel(ctx context.Context, sess domain.Session, ch domain.Channel, anchor, todayStart int64) (*domain.NewsItem, error) {
	messages, err := sess.History(ctx, ch, anchor, historyDepth, 0)
	if err != nil {
		return nil, err
	}

	var latest *domain.Message
	for i, msg := range messages {
		if msg.Time < todayStart || msg.Text == "" {
			continue
		}
		// при равных временах побеждает последнее сообщение в порядке выдачи
		if latest == nil || msg.Time >= latest.Time {
			latest = &messages[i]
		}
	}
	if latest == nil {
		return nil, nil
	}

	text := Clean(latest.Text)
	if text == "" {
		return nil, nil
	}

	c.log.Info().Str("channel", ch.Title).Msg("maxnews: добавляем новость из канала")
	return &domain.NewsItem{
		ChannelName:   Clean(ch.Title),
		NewsText:      text,
		Timestamp:     latest.Time,
		TimeFormatted: time.UnixMilli(latest.Time).Format("15:04"),
	}, nil
}
