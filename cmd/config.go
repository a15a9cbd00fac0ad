package cmd

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPPort       string
	StorageBackend string

	// File backend
	DataFile  string
	BackupDir string

	// SQLite backend
	SQLitePath string

	// PostgreSQL backend
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Empty disables the reset token check.
	ResetToken string

	ResyncIntervalSeconds int
}
