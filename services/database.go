package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/services/repositories"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const (
	DATABASE_SVC = "database_svc"

	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

type databaseConfig struct {
	Driver      string `envconfig:"DB_DRIVER" default:"sqlite"`
	Database    string `envconfig:"DB_DATABASE" default:"growth.db"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	MaxRetries  int    `envconfig:"DB_MAX_RETRIES" default:"10"`
}

// DatabaseService archives funnel events and decisions. The in-memory logs keep working
// when it is disabled.
type DatabaseService struct {
	context.DefaultService

	cfg databaseConfig
	db  *gorm.DB

	funnelRepo   *repositories.FunnelRepository
	analyticRepo *repositories.AnalyticRepository
}

func (ds DatabaseService) Id() string {
	return DATABASE_SVC
}

func (ds *DatabaseService) Db() *gorm.DB {
	return ds.db
}

func (ds *DatabaseService) Configure(ctx *context.Context) error {
	if err := envconfig.Process("", &ds.cfg); err != nil {
		return err
	}
	if ds.cfg.Driver == DriverPostgres && ds.cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
	}
	return ds.DefaultService.Configure(ctx)
}

func (ds *DatabaseService) Start() (err error) {
	switch ds.cfg.Driver {
	case DriverNone:
		log.Info("Database disabled, decisions and funnel events stay in memory")
		return nil
	case DriverSqlite:
		ds.db, err = gorm.Open(sqlite.Open(ds.cfg.Database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
	case DriverPostgres:
		ds.db, err = ds.connectPostgres()
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", ds.cfg.Driver)
	}
	if err != nil {
		return err
	}

	return ds.Open(ds.db)
}

// Open migrates db and builds the repositories. Start calls it; tests pass an in-memory db.
func (ds *DatabaseService) Open(db *gorm.DB) error {
	ds.db = db
	if err := db.AutoMigrate(&model.FunnelEventRecord{}, &model.DecisionRecord{}); err != nil {
		log.WithError(err).Error("Failed to migrate database")
		return err
	}

	ds.funnelRepo = repositories.NewFunnelRepository(db)
	ds.analyticRepo = repositories.NewAnalyticRepository(db)

	log.WithField("driver", ds.cfg.Driver).Info("Database connected and migrated successfully")
	return nil
}

func (ds *DatabaseService) connectPostgres() (db *gorm.DB, err error) {
	retryDelay := time.Second

	for attempt := 1; attempt <= ds.cfg.MaxRetries; attempt++ {
		log.WithFields(log.Fields{"attempt": attempt, "max": ds.cfg.MaxRetries}).Info("Connecting to database")

		db, err = gorm.Open(postgres.Open(ds.cfg.DatabaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					return db, nil
				}
			} else {
				err = dbErr
			}
		}

		if attempt == ds.cfg.MaxRetries {
			break
		}

		log.WithError(err).WithField("retry_in", retryDelay).Warn("Database connection failed")
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", ds.cfg.MaxRetries, err)
}

func (ds *DatabaseService) Shutdown() {
	if ds.db == nil {
		return
	}
	if sqlDB, err := ds.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (ds *DatabaseService) Enabled() bool {
	return ds != nil && ds.db != nil
}

func (ds *DatabaseService) FunnelRepository() *repositories.FunnelRepository {
	return ds.funnelRepo
}

func (ds *DatabaseService) AnalyticRepository() *repositories.AnalyticRepository {
	return ds.analyticRepo
}

// HandleError maps a gorm error to an AppError with a matching status code.
func (ds *DatabaseService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	case strings.Contains(err.Error(), "connection refused"):
		statusCode = http.StatusServiceUnavailable
		errorType = "DATABASE_CONNECTION_ERROR"
	default:
		statusCode = http.StatusInternalServerError
		errorType = "INTERNAL_ERROR"
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})
	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return shared.NewAppError(statusCode, err, errorType)
}
