package cmd

import (
	"fmt"
	"log/slog"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpadapter "metrology/internal/adapters/in/http"
	"metrology/internal/adapters/in/ws"
	"metrology/internal/adapters/out/postgres"
	"metrology/internal/adapters/out/snapshotfile"
	"metrology/internal/adapters/out/sqlite"
	"metrology/internal/broadcast"
	"metrology/internal/core/application/lifecycle"
	"metrology/internal/core/application/usecases/commands"
	"metrology/internal/core/application/usecases/queries"
	"metrology/internal/core/ports"
	"metrology/internal/jobs"
)

// CompositionRoot owns the object graph: the storage backend chosen by
// configuration, the broadcast hub, the lifecycle engine, and factories for
// every transport-facing handler.
type CompositionRoot struct {
	config Config
	store  ports.OrderStore
	hub    *broadcast.Hub
	engine *lifecycle.Engine
	logger *slog.Logger
}

func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	store, err := createStore(config, logger)
	if err != nil {
		return nil, err
	}

	hub := broadcast.NewHub(logger)
	engine := lifecycle.NewEngine(store, hub, logger)
	// The hub serves the engine's snapshot to every new subscriber; the
	// engine is built over the hub, so the source is bound afterwards.
	hub.BindSource(engine)

	return &CompositionRoot{
		config: config,
		store:  store,
		hub:    hub,
		engine: engine,
		logger: logger,
	}, nil
}

func createStore(config Config, logger *slog.Logger) (ports.OrderStore, error) {
	switch config.StorageBackend {
	case BackendFile:
		return snapshotfile.NewStore(config.DataFile, logger), nil

	case BackendSQLite:
		return sqlite.Open(config.SQLitePath, logger)

	case BackendPostgres:
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode,
		)
		db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return postgres.NewStore(db, logger)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.StorageBackend)
	}
}

// Hub returns the broadcast hub; the caller owns its Run loop.
func (c *CompositionRoot) Hub() *broadcast.Hub {
	return c.hub
}

// Engine returns the lifecycle engine; the caller drives Start during boot.
func (c *CompositionRoot) Engine() *lifecycle.Engine {
	return c.engine
}

// Close releases the storage backend.
func (c *CompositionRoot) Close() error {
	return c.store.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateSubmitMeasurementCommandHandler() commands.SubmitMeasurementCommandHandler {
	return commands.NewSubmitMeasurementCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateUpdateOperatorsCommandHandler() commands.UpdateOperatorsCommandHandler {
	return commands.NewUpdateOperatorsCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateResetCommandHandler() commands.ResetCommandHandler {
	return commands.NewResetCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateGetBoardQueryHandler() queries.GetBoardQueryHandler {
	return queries.NewGetBoardQueryHandler(c.engine)
}

func (c *CompositionRoot) CreateGetArchiveQueryHandler() queries.GetArchiveQueryHandler {
	return queries.NewGetArchiveQueryHandler(c.engine)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateSubmitMeasurementCommandHandler(),
		c.CreateUpdateOperatorsCommandHandler(),
		c.CreateResetCommandHandler(),
		c.CreateGetBoardQueryHandler(),
		c.CreateGetArchiveQueryHandler(),
		c.config.ResetToken,
		c.logger,
	)
}

func (c *CompositionRoot) CreateWSHandler() *ws.Handler {
	return ws.NewHandler(
		c.hub,
		c.CreateCreateOrderCommandHandler(),
		c.CreateSubmitMeasurementCommandHandler(),
		c.CreateUpdateOperatorsCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	resyncJob := jobs.NewResyncJob(c.engine, c.hub, c.config.ResyncIntervalSeconds, c.logger)

	// Only the file backend has a snapshot file worth copying; database
	// backends bring their own backup tooling.
	var backupJob *jobs.BackupJob
	if c.config.StorageBackend == BackendFile && c.config.BackupDir != "" {
		backupJob = jobs.NewBackupJob(c.config.DataFile, c.config.BackupDir, c.logger)
	}

	return jobs.NewJobManager(resyncJob, backupJob)
}
