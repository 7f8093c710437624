package infra

import (
	"errors"
	"time"

	inventoryrepo "github.com/amirasaad/storefront/infra/repository/inventory"
	productrepo "github.com/amirasaad/storefront/infra/repository/product"
	userrepo "github.com/amirasaad/storefront/infra/repository/user"
	"github.com/amirasaad/storefront/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrMissingDatabaseURL is returned when DATABASE_URL is empty.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

// NewDBConnection opens the Postgres pool. Query logging is verbose only in
// development.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, ErrMissingDatabaseURL
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	connection, err := gorm.Open(postgres.Open(cnf.Url), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// Migrate creates or updates the relational tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.User{},
		&productrepo.Product{},
		&inventoryrepo.Inventory{},
	)
}
