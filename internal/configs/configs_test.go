package configs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"opsdash/internal/configs"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := configs.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, ":8082", cfg.HTTPAddr)
	require.Equal(t, 0.5, cfg.PackagingWeightPerBox)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, "workflow-stage-events", cfg.KafkaTopic)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PACKAGING_WEIGHT_PER_BOX", "0.75")

	cfg, err := configs.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, 0.75, cfg.PackagingWeightPerBox)
}

func TestKafkaBrokersSlice(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092 ,,b3:9092")

	cfg, err := configs.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"b1:9092", "b2:9092", "b3:9092"}, cfg.KafkaBrokersSlice())
}

func TestPgDSN_DatabaseURLWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/opsdash?sslmode=disable")

	cfg, err := configs.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@db:5432/opsdash?sslmode=disable", cfg.PgDSN())
}
