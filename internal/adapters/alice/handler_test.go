package alice

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"max-news-skill/internal/adapters/newsapi"
	"max-news-skill/internal/usecase/skill"
)

type fakeFetcher struct {
	text string
	err  error
}

func (f *fakeFetcher) TodayNewsText(ctx context.Context) (string, error) {
	return f.text, f.err
}

type fakeProber struct {
	err error
}

func (p *fakeProber) Health(ctx context.Context) error { return p.err }

func newTestHandler(fetcher skill.NewsFetcher, prober HealthProber) http.Handler {
	r := chi.NewRouter()
	service := skill.NewService(fetcher, zerolog.Nop())
	NewHandler(service, prober, "alice-news", "1.0.0", zerolog.Nop()).Mount(r)
	return r
}

func postWebhook(t *testing.T, handler http.Handler, utterance string) Response {
	t.Helper()
	payload := map[string]any{
		"request": map[string]any{"original_utterance": utterance},
		"session": map[string]any{"session_id": "abc", "message_id": 1},
		"version": "1.0",
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("не удалось собрать запрос: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alice-webhook", bytes.NewReader(raw))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("навык должен отвечать 200, получили %d", rec.Code)
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("ответ должен быть корректным JSON: %v", err)
	}
	return resp
}

func TestWebhookNewsFlow(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{text: "В канале Тест пишут привет"}, &fakeProber{})

	resp := postWebhook(t, handler, "свежие новости")
	if !strings.Contains(resp.Response.Text, "В канале Тест") {
		t.Fatalf("в ответе должны быть новости: %q", resp.Response.Text)
	}
	if resp.Response.TTS != resp.Response.Text {
		t.Fatal("tts должен совпадать с текстом")
	}
	if resp.Response.EndSession {
		t.Fatal("новости не должны завершать сессию")
	}
	if resp.Version != "1.0" {
		t.Fatalf("ожидали версию 1.0, получили %q", resp.Version)
	}
	if len(resp.Response.Buttons) != 2 {
		t.Fatalf("ожидали 2 кнопки, получили %d", len(resp.Response.Buttons))
	}
}

func TestWebhookEchoesSession(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{}, &fakeProber{})

	resp := postWebhook(t, handler, "")
	var session map[string]any
	if err := json.Unmarshal(resp.Session, &session); err != nil {
		t.Fatalf("session должен вернуться как есть: %v", err)
	}
	if session["session_id"] != "abc" {
		t.Fatalf("session искажён: %v", session)
	}
}

func TestWebhookFarewell(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{}, &fakeProber{})

	resp := postWebhook(t, handler, "до свидания")
	if !resp.Response.EndSession {
		t.Fatal("прощание должно завершать сессию")
	}
}

func TestWebhookAnswersWhenAggregatorUnreachable(t *testing.T) {
	// реальный клиент и заведомо закрытый порт: отказ соединения не должен
	// превращаться в 5xx для пользователя
	client := newsapi.NewClient("http://127.0.0.1:1", time.Second, zerolog.Nop())
	handler := newTestHandler(client, client)

	resp := postWebhook(t, handler, "последние новости")
	if resp.Response.TTS == "" {
		t.Fatal("tts не должен быть пустым даже при недоступном агрегаторе")
	}
	if !strings.Contains(resp.Response.Text, "Извините") {
		t.Fatalf("ожидали извиняющийся ответ: %q", resp.Response.Text)
	}
}

func TestWebhookBadBody(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{}, &fakeProber{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alice-webhook", strings.NewReader("не json"))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("ожидали 400, получили %d", rec.Code)
	}
}

func TestHealthReportsAggregatorState(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer upstream.Close()

	client := newsapi.NewClient(upstream.URL, time.Second, zerolog.Nop())
	handler := newTestHandler(&fakeFetcher{}, client)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидали 200, получили %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("ответ должен быть корректным JSON: %v", err)
	}
	if body["max_service"] != "healthy" {
		t.Fatalf("ожидали healthy, получили %v", body["max_service"])
	}
	if body["service_uptime"] == "" || body["version"] != "1.0.0" {
		t.Fatalf("неожиданный ответ health: %v", body)
	}
}

func TestHealthUnhealthyAggregator(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{}, &fakeProber{err: context.DeadlineExceeded})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("ответ должен быть корректным JSON: %v", err)
	}
	if body["max_service"] != "unhealthy" {
		t.Fatalf("ожидали unhealthy, получили %v", body["max_service"])
	}
}
