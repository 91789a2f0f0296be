package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"max-news-skill/internal/infra/metrics"
)

// Классы сбоев агрегатора; навык подбирает по ним ответ пользователю.
var (
	ErrTimeout     = errors.New("сервис новостей не ответил вовремя")
	ErrUnavailable = errors.New("сервис новостей недоступен")
	ErrMalformed   = errors.New("некорректный ответ сервиса новостей")
	ErrEmptyNews   = errors.New("в ответе сервиса новостей нет текста")
)

// Client ходит в агрегатор новостей по HTTP. Таймаут фиксированный: запрос,
// не уложившийся в него, считается сбоем, а не ожидается дальше.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient создаёт клиента агрегатора.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// TodayNewsText возвращает готовый озвучиваемый текст из /today_news.
func (c *Client) TodayNewsText(ctx context.Context) (string, error) {
	start := time.Now()
	body, err := c.get(ctx, "/today_news")
	metrics.ObserveNetworkRequest("newsapi", "today_news", start, err)
	if err != nil {
		return "", err
	}

	var payload struct {
		FormattedText string `json:"formatted_text"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if payload.FormattedText == "" {
		return "", ErrEmptyNews
	}
	c.log.Info().Int("len", len(payload.FormattedText)).Msg("skill: получены новости из MAX сервиса")
	return payload.FormattedText, nil
}

// Health проверяет /health агрегатора; дедлайн задаёт вызывающая сторона
// через контекст.
func (c *Client) Health(ctx context.Context) error {
	start := time.Now()
	_, err := c.get(ctx, "/health")
	metrics.ObserveNetworkRequest("newsapi", "health", start, err)
	return err
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: статус %d", ErrUnavailable, resp.StatusCode)
	}

	const limit = 1 << 20
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return body, nil
}
