package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	CollectorErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "news_collector_errors_total",
		Help: "Ошибки при обработке каналов",
	})
	CollectSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "news_collect_seconds",
		Help:    "Время одного прохода агрегации",
		Buckets: prometheus.DefBuckets,
	})
	NewsItemsCollected = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "news_items_collected",
		Help:    "Сколько новостей нашлось за проход",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})
	SkillRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_requests_total",
		Help: "Запросы к навыку по распознанным намерениям",
	}, []string{"intent"})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: prometheus.DefBuckets,
	}, []string{"component", "operation", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "status"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		CollectorErrors,
		CollectSeconds,
		NewsItemsCollected,
		SkillRequestsTotal,
		NetworkRequestDuration,
		NetworkRequestTotal,
	)
}

// StartServer запускает HTTP сервер с эндпоинтом /metrics.
func StartServer(ctx context.Context, logger zerolog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownTimeout); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: graceful shutdown failed")
		}
	}()

	go func() {
		logger.Info().Str("addr", addr).Msg("metrics: server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: server stopped")
		}
	}()
}

// ObserveNetworkRequest записывает длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, status).Inc()
}

// IncSkillIntent увеличивает счётчик распознанных намерений навыка.
func IncSkillIntent(intent string) {
	if intent == "" {
		intent = "unknown"
	}
	SkillRequestsTotal.WithLabelValues(intent).Inc()
}
