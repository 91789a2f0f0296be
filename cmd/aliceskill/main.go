package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"max-news-skill/internal/adapters/alice"
	"max-news-skill/internal/adapters/newsapi"
	"max-news-skill/internal/infra/config"
	httpinfra "max-news-skill/internal/infra/http"
	applog "max-news-skill/internal/infra/log"
	"max-news-skill/internal/infra/metrics"
	skillusecase "max-news-skill/internal/usecase/skill"
)

// newsTimeout — фиксированный лимит исходящего запроса к агрегатору.
const newsTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv, cfg.Max.LogDir)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), fmt.Sprintf(":%d", cfg.Skill.MetricsPort))

	newsClient := newsapi.NewClient(cfg.Skill.NewsURL, newsTimeout, logger.With().Str("component", "newsapi").Logger())
	skillService := skillusecase.NewService(newsClient, logger.With().Str("component", "skill").Logger())

	server := httpinfra.NewServer(logger)
	alice.NewHandler(skillService, newsClient, cfg.ServiceName, cfg.ServiceVersion, logger).Mount(server.Router)

	addr := fmt.Sprintf("%s:%d", cfg.Skill.Host, cfg.Skill.Port)
	logger.Info().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("addr", addr).
		Str("news_url", cfg.Skill.NewsURL).
		Msg("skill: запуск сервиса")

	go func() {
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("skill: сервер остановлен")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("skill: остановка")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}
