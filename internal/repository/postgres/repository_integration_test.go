package postgres_test

import (
	"testing"
	"time"

	gorm "github.com/jinzhu/gorm"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"

	"opsdash/internal/models"
	repo "opsdash/internal/repository"
	pg "opsdash/internal/repository/postgres"
)

type pgEnv struct {
	pool     *dockertest.Pool
	resource *dockertest.Resource
	DB       *gorm.DB
	R        *repo.Repository
}

func upPostgres(t *testing.T) *pgEnv {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_DB=assignments",
		"POSTGRES_USER=app",
		"POSTGRES_PASSWORD=app",
	})
	require.NoError(t, err)

	env := &pgEnv{pool: pool, resource: resource}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	require.NoError(t, pool.Retry(func() error {
		hostPort := resource.GetPort("5432/tcp")
		db, err := pg.ConnectDB(pg.Config{
			Host:     "localhost",
			Port:     hostPort,
			Username: "app",
			Password: "app",
			DbName:   "assignments",
			SslMode:  "disable",
		})
		if err != nil {
			return err
		}
		env.DB = db

		if err := db.AutoMigrate(&models.OrderAssignment{}).Error; err != nil {
			return err
		}

		env.R = repo.NewRepository(db, time.Hour, 1)
		return nil
	}))

	return env
}

func seedUpstreamStages(t *testing.T, env *pgEnv, oid string) {
	t.Helper()
	rec := models.OrderAssignment{
		Oid:               oid,
		CurrentStage:      "delivery",
		Stage1SummaryData: `{"driver_groups":[]}`,
		Stage2SummaryData: `{"product_assignments":[]}`,
		UpdatedAt:         time.Now().UTC(),
	}
	require.NoError(t, env.DB.Create(&rec).Error)
}

func Test_Postgres_SaveStage3_CreateBranch(t *testing.T) {
	env := upPostgres(t)

	require.NoError(t, env.R.SaveStage3("ORD1", `{"products":[]}`, "pricing"))

	got, err := env.R.Get("ORD1")
	require.NoError(t, err)
	require.Equal(t, "ORD1", got.Oid)
	require.Equal(t, "pricing", got.CurrentStage)
	require.Equal(t, `{"products":[]}`, got.Stage3Data)
	require.Empty(t, got.Stage1SummaryData)
}

func Test_Postgres_SaveStage3_UpdateBranch_KeepsEarlierStages(t *testing.T) {
	env := upPostgres(t)

	seedUpstreamStages(t, env, "ORD2")

	require.NoError(t, env.R.SaveStage3("ORD2", `{"products":[{"id":"OI1#0"}]}`, "pricing"))

	got, err := env.R.Get("ORD2")
	require.NoError(t, err)
	require.Equal(t, "pricing", got.CurrentStage)
	require.Equal(t, `{"products":[{"id":"OI1#0"}]}`, got.Stage3Data)
	require.Equal(t, `{"driver_groups":[]}`, got.Stage1SummaryData)
	require.Equal(t, `{"product_assignments":[]}`, got.Stage2SummaryData)
}

func Test_Postgres_SaveStage3_Resubmit_Overwrites(t *testing.T) {
	env := upPostgres(t)

	require.NoError(t, env.R.SaveStage3("ORD3", `{"v":1}`, "pricing"))
	require.NoError(t, env.R.SaveStage3("ORD3", `{"v":2}`, "pricing"))

	got, err := env.R.Get("ORD3")
	require.NoError(t, err)
	require.Equal(t, `{"v":2}`, got.Stage3Data)

	var count int
	require.NoError(t, env.DB.Model(&models.OrderAssignment{}).Where("oid = ?", "ORD3").Count(&count).Error)
	require.Equal(t, 1, count)
}

func Test_Postgres_Get_NotFound(t *testing.T) {
	env := upPostgres(t)

	_, err := env.R.Get("missing")
	require.Error(t, err)
	require.True(t, gorm.IsRecordNotFoundError(err))
}

func Test_Postgres_SaveStage3_DroppedTable_Error(t *testing.T) {
	env := upPostgres(t)

	require.NoError(t, env.DB.DropTable(&models.OrderAssignment{}).Error)

	err := env.R.SaveStage3("ORD4", `{}`, "pricing")
	require.Error(t, err, "expected error writing to missing order_assignments table")
}
