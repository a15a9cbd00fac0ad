package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"metrology/internal/adapters/out/postgres"
	"metrology/internal/core/domain/model/order"
	"metrology/internal/core/ports"
)

// StoreIntegrationTestSuite verifies whole-state persistence behavior
// against a real PostgreSQL instance.
type StoreIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	store     *postgres.Store
}

func (suite *StoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	store, err := postgres.NewStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	suite.Require().NoError(err)
	suite.store = store
}

func (suite *StoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE operator_roster").Error)
}

func (suite *StoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StoreIntegrationTestSuite) TestLoad_EmptyDatabase_ReturnsEmptyState() {
	state, err := suite.store.Load(context.Background())

	suite.Require().NoError(err)
	suite.Empty(state.Active)
	suite.Empty(state.Archived)
	suite.Empty(state.Operators)
}

func (suite *StoreIntegrationTestSuite) TestSaveLoad_RoundTripsPartitionsInOrder() {
	ctx := context.Background()
	saved := suite.sampleState()

	suite.Require().NoError(suite.store.Save(ctx, saved))
	loaded, err := suite.store.Load(ctx)

	suite.Require().NoError(err)
	suite.Equal(saved.Active, loaded.Active)
	suite.Equal(saved.Archived, loaded.Archived)
	suite.Equal(saved.Operators, loaded.Operators)
}

func (suite *StoreIntegrationTestSuite) TestSave_IsIdempotent() {
	ctx := context.Background()
	state := suite.sampleState()

	suite.Require().NoError(suite.store.Save(ctx, state))
	suite.Require().NoError(suite.store.Save(ctx, state))

	loaded, err := suite.store.Load(ctx)
	suite.Require().NoError(err)
	suite.Len(loaded.Active, len(state.Active))
	suite.Len(loaded.Archived, len(state.Archived))
}

func (suite *StoreIntegrationTestSuite) TestSave_PrunesVanishedOrders() {
	ctx := context.Background()
	state := suite.sampleState()
	suite.Require().NoError(suite.store.Save(ctx, state))

	// The first active order disappears from the next state.
	state.Active = state.Active[1:]
	suite.Require().NoError(suite.store.Save(ctx, state))

	loaded, err := suite.store.Load(ctx)
	suite.Require().NoError(err)
	suite.Len(loaded.Active, 1)
	suite.Equal("active-2", loaded.Active[0].ID)
}

func (suite *StoreIntegrationTestSuite) TestSave_MovesOrderBetweenPartitions() {
	ctx := context.Background()
	state := suite.sampleState()
	suite.Require().NoError(suite.store.Save(ctx, state))

	completedAt := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	moved := state.Active[0]
	moved.Status = order.StatusOK
	moved.SerialNumber = "M-DRW-100-002"
	moved.Controller = "Weber"
	moved.CompletedAt = &completedAt
	state.Active = state.Active[1:]
	state.Archived = append(state.Archived, moved)

	suite.Require().NoError(suite.store.Save(ctx, state))

	loaded, err := suite.store.Load(ctx)
	suite.Require().NoError(err)
	suite.Len(loaded.Active, 1)
	suite.Len(loaded.Archived, 2)
	suite.Equal(moved.ID, loaded.Archived[1].ID)
	suite.Equal(order.StatusOK, loaded.Archived[1].Status)
}

func (suite *StoreIntegrationTestSuite) TestSave_EmptyState_ClearsAllRows() {
	ctx := context.Background()
	suite.Require().NoError(suite.store.Save(ctx, suite.sampleState()))

	suite.Require().NoError(suite.store.Save(ctx, ports.StoreState{Operators: []string{"Admin"}}))

	loaded, err := suite.store.Load(ctx)
	suite.Require().NoError(err)
	suite.Empty(loaded.Active)
	suite.Empty(loaded.Archived)
	suite.Equal([]string{"Admin"}, loaded.Operators)
}

func (suite *StoreIntegrationTestSuite) TestCountArchivedByDrawing() {
	ctx := context.Background()
	suite.Require().NoError(suite.store.Save(ctx, suite.sampleState()))

	count, err := suite.store.CountArchivedByDrawing(ctx, "DRW-100")
	suite.Require().NoError(err)
	suite.Equal(1, count)

	// The active order with the same drawing number must not count.
	count, err = suite.store.CountArchivedByDrawing(ctx, "DRW-205")
	suite.Require().NoError(err)
	suite.Equal(0, count)
}

// sampleState builds a state with both partitions populated and drawing
// numbers shared across partitions.
func (suite *StoreIntegrationTestSuite) sampleState() ports.StoreState {
	completedAt := time.Date(2024, 3, 1, 7, 42, 0, 0, time.UTC)

	return ports.StoreState{
		Active: []order.Doc{
			{
				ID:            "active-1",
				ArticleNumber: "4711-B",
				DrawingNumber: "DRW-100",
				Status:        order.Active,
				CreatedAt:     time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
			},
			{
				ID:            "active-2",
				ArticleNumber: "5220-A",
				DrawingNumber: "DRW-205",
				Status:        order.Active,
				CreatedAt:     time.Date(2024, 3, 1, 8, 5, 0, 0, time.UTC),
			},
		},
		Archived: []order.Doc{
			{
				ID:            "archived-1",
				ArticleNumber: "4711-B",
				DrawingNumber: "DRW-100",
				Status:        order.StatusOK,
				Results: []order.Measurement{
					{Feature: "Length 12H7", Nominal: 12, Actual: 12.01, Status: order.StatusOK},
				},
				SerialNumber: "M-DRW-100-001",
				Controller:   "Weber",
				CreatedAt:    time.Date(2024, 3, 1, 7, 10, 0, 0, time.UTC),
				CompletedAt:  &completedAt,
			},
		},
		Operators: []string{"Weber", "Huber"},
	}
}

func TestStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StoreIntegrationTestSuite))
}
