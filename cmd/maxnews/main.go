package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gotd/td/session"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"max-news-skill/internal/adapters/httpapi"
	"max-news-skill/internal/adapters/mtproto"
	"max-news-skill/internal/infra/config"
	httpinfra "max-news-skill/internal/infra/http"
	applog "max-news-skill/internal/infra/log"
	"max-news-skill/internal/infra/metrics"
	newsusecase "max-news-skill/internal/usecase/news"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv, cfg.Max.LogDir)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), fmt.Sprintf(":%d", cfg.News.MetricsPort))

	if cfg.Max.Phone == "" {
		logger.Fatal().Msg("maxnews: не указан номер телефона (PHONE_NUMBER)")
	}
	if cfg.Max.APIID == 0 || cfg.Max.APIHash == "" {
		logger.Fatal().Msg("maxnews: не указаны ключи приложения (MAX_API_ID, MAX_API_HASH)")
	}

	storage, err := sessionStorage(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("maxnews: не удалось подготовить хранилище сессии")
	}

	messenger := mtproto.NewMessenger(cfg.Max.APIID, cfg.Max.APIHash, cfg.Max.Phone, storage, logger.With().Str("component", "mtproto").Logger())
	collector := newsusecase.NewCollector(logger.With().Str("component", "collector").Logger(), cfg.News.CollectConcurrency)
	provider := newsusecase.NewService(messenger, collector, logger, cfg.News.MaxMsgLen, cfg.News.MaxChannelCount)

	server := httpinfra.NewServer(logger)
	httpapi.NewHandler(provider, cfg.ServiceName, logger).Mount(server.Router)

	addr := fmt.Sprintf("%s:%d", cfg.News.Host, cfg.News.Port)
	logger.Info().
		Str("service", cfg.ServiceName).
		Str("addr", addr).
		Msg("maxnews: запуск сервиса")
	logger.Info().Msg("maxnews: GET /today_news — свежие новости")
	logger.Info().Msg("maxnews: GET /channels — список каналов")
	logger.Info().Msg("maxnews: GET /profile — информация профиля")
	logger.Info().Msg("maxnews: GET /health — проверка здоровья")

	go func() {
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("maxnews: сервер остановлен")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("maxnews: остановка")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}

// sessionStorage выбирает бэкенд хранения авторизации: Redis при заданном
// адресе, иначе файл в рабочем каталоге.
func sessionStorage(cfg config.AppConfig) (session.Storage, error) {
	if cfg.RedisAddr != "" {
		return mtproto.NewRedisStorage(cfg.RedisAddr, "maxnews:session:"+cfg.Max.Phone), nil
	}
	return mtproto.NewFileStorage(cfg.Max.WorkDir)
}
