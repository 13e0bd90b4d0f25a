package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/venturely/venturely/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseType string

const (
	DatabaseTypePostgreSQL DatabaseType = "postgres"
	DatabaseTypeSQLite     DatabaseType = "sqlite"
)

// DetectDatabaseType picks the driver from the DSN. Anything that is not a
// postgres URL is treated as a SQLite path.
func DetectDatabaseType(dsn string) DatabaseType {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DatabaseTypePostgreSQL
	}
	return DatabaseTypeSQLite
}

// Options tunes the connection. Log may be nil, in which case SQL logging is
// silenced.
type Options struct {
	Log          *logrus.Logger
	Debug        bool
	MaxOpenConns int
}

func ConnectDatabase(dsn string, opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch DetectDatabaseType(dsn) {
	case DatabaseTypePostgreSQL:
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(sqliteDSN(dsn))
	}

	conn, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(opts)})

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := conn.DB()

	if err != nil {
		return nil, fmt.Errorf("failed to access database pool: %w", err)
	}

	if DetectDatabaseType(dsn) == DatabaseTypeSQLite {
		// single writer
		sqlDB.SetMaxOpenConns(1)
	} else if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// sqliteDSN turns on foreign keys, which SQLite leaves off by default.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func newGormLogger(opts Options) logger.Interface {
	if opts.Log == nil {
		return logger.Default.LogMode(logger.Silent)
	}

	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}

	return logger.New(opts.Log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

func MigrateDatabase(conn *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.FounderProfile{},
		&models.InvestorProfile{},
		&models.Startup{},
		&models.Pitch{},
		&models.SavedPitch{},
		&models.FileRecord{},
		&models.Notification{},
	}

	for _, model := range tables {
		if err := conn.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

func Close(conn *gorm.DB) error {
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
