package repository_test

import (
	"database/sql"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"droscher.com/Taproom/pkg/repository"
)

var today = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

type RepositorySuite struct {
	suite.Suite
	DB           *gorm.DB
	mock         sqlmock.Sqlmock
	observedLogs *observer.ObservedLogs
	repository   repository.Repository
}

func (suite *RepositorySuite) SetupTest() {
	var (
		db              *sql.DB
		err             error
		observedZapCore zapcore.Core
	)

	observedZapCore, suite.observedLogs = observer.New(zap.InfoLevel)
	observedLogger := zap.New(observedZapCore)

	db, suite.mock, err = sqlmock.New()
	suite.Require().NoError(err)

	gormLogger := zapgorm2.New(observedLogger)
	gormLogger.SetAsDefault()

	suite.DB, err = gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{Logger: gormLogger})
	suite.NoError(err)

	suite.repository = repository.Repository{
		DB:     suite.DB,
		Logger: observedLogger,
		Now:    func() time.Time { return today.Add(15 * time.Hour) },
	}
}

func (suite *RepositorySuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *RepositorySuite) expectCount(table string, id any, count int) {
	suite.mock.ExpectQuery(`SELECT count\(\*\) FROM "` + table + `" WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func (suite *RepositorySuite) expectLockedOrder(id any, status string) {
	suite.mock.ExpectQuery(`SELECT \* FROM "orders" WHERE "orders"\."id" = \$1 ORDER BY "orders"\."id" LIMIT \$2 FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "bar_id", "date", "status"}).
			AddRow(id, "Order-A", 5.0, 1, today, status))
}
