package alice

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"max-news-skill/internal/usecase/skill"
)

const healthProbeTimeout = 5 * time.Second

// Request — входящий запрос платформы Алисы. Session прокидывается обратно
// без разбора.
type Request struct {
	Request Payload         `json:"request"`
	Session json.RawMessage `json:"session"`
	Version string          `json:"version"`
}

// Payload — интересующая навык часть запроса.
type Payload struct {
	OriginalUtterance string `json:"original_utterance"`
}

// Button — подсказка под полем ввода.
type Button struct {
	Title string `json:"title"`
	Hide  bool   `json:"hide"`
}

// ResponsePayload — озвучиваемая часть ответа.
type ResponsePayload struct {
	Text       string   `json:"text"`
	TTS        string   `json:"tts"`
	EndSession bool     `json:"end_session"`
	Buttons    []Button `json:"buttons"`
}

// Response — конверт ответа навыка.
type Response struct {
	Response ResponsePayload `json:"response"`
	Session  json.RawMessage `json:"session"`
	Version  string          `json:"version"`
}

// HealthProber проверяет доступность агрегатора.
type HealthProber interface {
	Health(ctx context.Context) error
}

// Handler принимает вебхуки Алисы.
type Handler struct {
	skill     *skill.Service
	prober    HealthProber
	service   string
	version   string
	startTime time.Time
	log       zerolog.Logger
}

// NewHandler создаёт обработчики вебхука.
func NewHandler(skillService *skill.Service, prober HealthProber, serviceName, version string, log zerolog.Logger) *Handler {
	return &Handler{
		skill:     skillService,
		prober:    prober,
		service:   serviceName,
		version:   version,
		startTime: time.Now(),
		log:       log,
	}
}

// Mount регистрирует маршруты навыка.
func (h *Handler) Mount(r chi.Router) {
	r.Post("/alice-webhook", h.webhook)
	r.Get("/health", h.health)
}

// webhook отвечает HTTP 200 с озвучиваемым текстом на любой исход диалога:
// разговорный ход не должен остаться без ответа.
func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("skill: не удалось разобрать запрос Алисы")
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "некорректное тело запроса"})
		return
	}

	text, endSession := h.skill.Respond(r.Context(), req.Request.OriginalUtterance)
	h.log.Info().Str("response", text).Msg("skill: ответ пользователю")

	writeJSON(w, http.StatusOK, Response{
		Response: ResponsePayload{
			Text:       text,
			TTS:        text,
			EndSession: endSession,
			Buttons: []Button{
				{Title: "Еще новости", Hide: true},
				{Title: "Помощь", Hide: true},
			},
		},
		Session: req.Session,
		Version: "1.0",
	})
}

// health отвечает состоянием самого навыка и живой пробой агрегатора.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	probeCtx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()

	maxService := "healthy"
	if err := h.prober.Health(probeCtx); err != nil {
		h.log.Warn().Err(err).Msg("skill: агрегатор недоступен")
		maxService = "unhealthy"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"timestamp":      time.Now().Format(time.RFC3339),
		"service_uptime": time.Since(h.startTime).String(),
		"service":        h.service,
		"version":        h.version,
		"max_service":    maxService,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
