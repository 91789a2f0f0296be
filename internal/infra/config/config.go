package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию обоих сервисов.
type AppConfig struct {
	AppEnv         string `envconfig:"APP_ENV" default:"dev"`
	TZ             string `envconfig:"TZ" default:"Europe/Moscow"`
	ServiceName    string `envconfig:"SERVICE_NAME" default:"maxnews"`
	ServiceVersion string `envconfig:"SERVICE_VER" default:"1.0.0"`

	News struct {
		Host               string `envconfig:"NEWS_HOST" default:"0.0.0.0"`
		Port               int    `envconfig:"NEWS_PORT" default:"8081"`
		MetricsPort        int    `envconfig:"NEWS_METRICS_PORT" default:"9090"`
		MaxChannelCount    int    `envconfig:"MAX_CHANNEL_COUNT" default:"5"`
		MaxMsgLen          int    `envconfig:"MAX_MSG_LEN" default:"250"`
		CollectConcurrency int    `envconfig:"COLLECT_CONCURRENCY" default:"4"`
	} `envconfig:""`

	Skill struct {
		Host        string `envconfig:"SKILL_HOST" default:"0.0.0.0"`
		Port        int    `envconfig:"SKILL_PORT" default:"8080"`
		MetricsPort int    `envconfig:"SKILL_METRICS_PORT" default:"9091"`
		NewsURL     string `envconfig:"MAX_SERVICE_URL" default:"http://127.0.0.1:8081"`
	} `envconfig:""`

	Max struct {
		Phone   string `envconfig:"PHONE_NUMBER"`
		APIID   int    `envconfig:"MAX_API_ID"`
		APIHash string `envconfig:"MAX_API_HASH"`
		WorkDir string `envconfig:"WORK_DIR" default:"./work"`
		LogDir  string `envconfig:"LOG_DIR"`
	} `envconfig:""`

	RedisAddr string `envconfig:"REDIS_ADDR"`
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}
