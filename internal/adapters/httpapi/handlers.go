package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"max-news-skill/internal/domain"
)

// Handler отдаёт REST API агрегатора новостей.
type Handler struct {
	provider domain.NewsProvider
	service  string
	log      zerolog.Logger
}

// NewHandler создаёт обработчики агрегатора.
func NewHandler(provider domain.NewsProvider, serviceName string, log zerolog.Logger) *Handler {
	return &Handler{provider: provider, service: serviceName, log: log}
}

// Mount регистрирует маршруты агрегатора.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/today_news", h.todayNews)
	r.Get("/channels", h.channels)
	r.Get("/profile", h.profile)
	r.Get("/health", h.health)
}

func (h *Handler) todayNews(w http.ResponseWriter, r *http.Request) {
	digest, err := h.provider.TodaysNews(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("maxnews: ошибка в today_news")
		writeError(w, err)
		return
	}
	items := digest.Items
	if items == nil {
		items = []domain.NewsItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"news":           items,
		"total_count":    len(items),
		"formatted_text": digest.Formatted,
		"timestamp":      time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) channels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.provider.Channels(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("maxnews: ошибка в channels")
		writeError(w, err)
		return
	}
	if channels == nil {
		channels = []domain.ChannelSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"channels":    channels,
		"total_count": len(channels),
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.provider.Profile(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("maxnews: ошибка в profile")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile":   profile,
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   h.service,
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   h.service,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Ошибки уходят наружу кодом 502: для потребителя агрегатора сбой платформы —
// это сбой вышестоящего сервиса, тело всегда корректный JSON.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadGateway, map[string]any{
		"error":     err.Error(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
