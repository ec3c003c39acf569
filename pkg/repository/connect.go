package repository

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"droscher.com/Taproom/configs"
	"droscher.com/Taproom/pkg/model"
)

// Repository is the entity store for bars, beers, orders, their line items and users. Every
// operation runs against DB; Now supplies the current time for date validation.
type Repository struct {
	DB     *gorm.DB
	Logger *zap.Logger
	Now    func() time.Time
}

const (
	maxIdleTime = 5 * time.Minute
	maxLifetime = time.Hour
)

func Open(conf *configs.Config, logger *zap.Logger) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		conf.DB.Host, conf.DB.User, conf.DB.Password, conf.DB.Database, conf.DB.Port, conf.DB.SSLMode)

	gormLogger := zapgorm2.New(logger)
	gormLogger.SetAsDefault()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(conf.DB.MaxIdleConnections)
	sqlDB.SetMaxOpenConns(conf.DB.MaxOpenConnections)
	sqlDB.SetConnMaxIdleTime(maxIdleTime)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	return &Repository{DB: db, Logger: logger, Now: time.Now}, nil
}

// Migrate creates or updates the schema, including the foreign keys between users, bars,
// beers, orders and order lines.
func (r *Repository) Migrate() error {
	return r.DB.AutoMigrate(
		&model.User{},
		&model.Bar{},
		&model.Beer{},
		&model.Order{},
		&model.BeerOrderLine{},
	)
}

func (r *Repository) Close() {
	sqlDB, err := r.DB.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func (r *Repository) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}

	return r.Now()
}
