package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8082"`

	// Base URL of the dashboard backend serving order detail, present
	// drivers and airports.
	UpstreamBaseURL string        `env:"UPSTREAM_BASE_URL" envDefault:"http://localhost:8080"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"5s"`

	// PackagingWeightPerBox is the assumed packaging weight (kg) added
	// per box when synthesizing gross weight. Product owners have not
	// confirmed 0.5 holds for every goods type; keep it configurable.
	PackagingWeightPerBox float64 `env:"PACKAGING_WEIGHT_PER_BOX" envDefault:"0.5"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SessionShards int           `env:"SESSION_SHARDS" envDefault:"1"`

	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"workflow-stage-events"`
	KafkaGroupID string `env:"KAFKA_GROUP_ID" envDefault:"assignment-svc"`
	KafkaDLQ     string `env:"KAFKA_DLQ" envDefault:"workflow-stage-events-dlq"`

	DatabaseURL     string `env:"DATABASE_URL" envDefault:""`
	PostgresHost    string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort    string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser    string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass    string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB      string `env:"POSTGRES_DB" envDefault:"opsdash"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	return c, nil
}

func (c Config) KafkaBrokersSlice() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) PgDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPass,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}
