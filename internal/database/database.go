package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/logger"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

type Database struct {
	DB     *gorm.DB
	Driver string
}

type Info struct {
	Driver       string `json:"driver"`
	OpenConns    int    `json:"open_connections"`
	InUse        int    `json:"in_use"`
	Idle         int    `json:"idle"`
	MaxOpenConns int    `json:"max_open_connections"`
}

// Init opens the database, runs migrations and returns the handle.
func Init(driver, dsn string, logSQL bool) (*Database, error) {
	level := gormlogger.Warn
	if logSQL {
		level = gormlogger.Info
	}
	config := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "mysql":
		db, err = initMySQL(dsn, config)
	case "postgres":
		db, err = initPostgres(dsn, config)
	case "sqlite":
		db, err = initSQLite(dsn, config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Like{}); err != nil {
		return nil, fmt.Errorf("%s migration failed: %w", driver, err)
	}
	logger.Info("database migrated", map[string]any{"driver": driver})

	return &Database{
		DB:     db,
		Driver: driver,
	}, nil
}

// InitWithFallback tries the primary connection first, then the fallback,
// and finally an in-memory SQLite database so the server can always start.
func InitWithFallback(primaryDriver, primaryDSN, fallbackDriver, fallbackDSN string, logSQL bool) *Database {
	if primaryDriver != "" {
		db, err := Init(primaryDriver, primaryDSN, logSQL)
		if err == nil {
			return db
		}
		logger.Error("primary database unavailable", map[string]any{
			"driver": primaryDriver,
			"error":  err.Error(),
		})
	}

	if fallbackDriver != "" {
		db, err := Init(fallbackDriver, fallbackDSN, logSQL)
		if err == nil {
			logger.Warn("running on fallback database", map[string]any{"driver": fallbackDriver})
			return db
		}
		logger.Error("fallback database unavailable", map[string]any{
			"driver": fallbackDriver,
			"error":  err.Error(),
		})
	}

	logger.Warn("running in emergency mode on in-memory sqlite", nil)
	db, err := Init("sqlite", ":memory:", logSQL)
	if err != nil {
		logger.Fatal("in-memory sqlite failed", map[string]any{"error": err.Error()})
	}
	return db
}

func initMySQL(dsn string, config *gorm.Config) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("mysql dsn is not configured")
	}

	db, err := gorm.Open(mysql.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("mysql connect failed: %w", err)
	}

	logger.Info("mysql connected", nil)
	return db, nil
}

func initPostgres(dsn string, config *gorm.Config) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is not configured")
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("postgres connect failed: %w", err)
	}

	logger.Info("postgres connected", nil)
	return db, nil
}

func initSQLite(dsn string, config *gorm.Config) (*gorm.DB, error) {
	memory := strings.HasPrefix(dsn, ":memory:")
	if !memory {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("sqlite directory create failed: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(withForeignKeys(dsn)), config)
	if err != nil {
		return nil, fmt.Errorf("sqlite connect failed: %w", err)
	}

	// every new connection to :memory: is a fresh, empty database
	if memory {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Info("sqlite connected", map[string]any{"dsn": dsn})
	return db, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func (d *Database) GetInfo() Info {
	info := Info{Driver: d.Driver}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return info
	}
	stats := sqlDB.Stats()
	info.OpenConns = stats.OpenConnections
	info.InUse = stats.InUse
	info.Idle = stats.Idle
	info.MaxOpenConns = stats.MaxOpenConnections
	return info
}

func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
