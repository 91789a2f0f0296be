package newsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

func TestTodayNewsTextSuccess(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/today_news" {
			t.Errorf("неожиданный путь: %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("запрос должен нести X-Request-ID")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"news":[],"total_count":0,"formatted_text":"Сегодня новостей пока нет.","timestamp":"2025-03-14T12:00:00Z"}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, zerolog.Nop())
	text, err := client.TodayNewsText(context.Background())
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if text != "Сегодня новостей пока нет." {
		t.Fatalf("неожиданный текст: %q", text)
	}
}

func TestTodayNewsTextNon200(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"платформа недоступна","timestamp":"2025-03-14T12:00:00Z"}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, zerolog.Nop())
	_, err := client.TodayNewsText(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("ожидали ErrUnavailable, получили %v", err)
	}
}

func TestTodayNewsTextMalformedJSON(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>это не json</html>"))
	})
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, zerolog.Nop())
	_, err := client.TodayNewsText(context.Background())
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("ожидали ErrMalformed, получили %v", err)
	}
}

func TestTodayNewsTextMissingField(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"news":[],"total_count":0}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, zerolog.Nop())
	_, err := client.TodayNewsText(context.Background())
	if !errors.Is(err, ErrEmptyNews) {
		t.Fatalf("ожидали ErrEmptyNews, получили %v", err)
	}
}

func TestTodayNewsTextTimeout(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})
	defer srv.Close()

	client := NewClient(srv.URL, 50*time.Millisecond, zerolog.Nop())
	_, err := client.TodayNewsText(context.Background())
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("ожидали ErrTimeout, получили %v", err)
	}
}

func TestTodayNewsTextConnectionRefused(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, zerolog.Nop())
	_, err := client.TodayNewsText(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("ожидали ErrUnavailable, получили %v", err)
	}
}

func TestHealthProbe(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("неожиданный путь: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, zerolog.Nop())
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
}
