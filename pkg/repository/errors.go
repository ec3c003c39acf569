package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"droscher.com/Taproom/pkg/model"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrStoreFailure = errors.New("store failure")

	ErrValidation     = model.ErrValidation
	ErrOrderCompleted = model.ErrOrderCompleted
)

// SQLSTATE codes returned by PostgreSQL for constraint violations.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	notNullViolation    = "23502"
)

// classify maps an error from the database onto the error kinds callers distinguish: a
// missing record becomes ErrNotFound, a constraint violation becomes ErrValidation (or
// ErrNotFound for a dangling reference) and anything else is an ErrStoreFailure.
func classify(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrValidation),
		errors.Is(err, ErrOrderCompleted), errors.Is(err, ErrStoreFailure):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists", ErrValidation, entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %s references a missing record", ErrNotFound, entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s already exists (%s)", ErrValidation, entity, pgErr.ConstraintName)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s references a missing record (%s)", ErrNotFound, entity, pgErr.ConstraintName)
		case checkViolation, notNullViolation:
			return fmt.Errorf("%w: %s: %s", ErrValidation, entity, pgErr.Message)
		}
	}

	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}

// fail classifies err and logs it when it is an unexpected store failure.
func (r *Repository) fail(message string, err error, entity string, fields ...zap.Field) error {
	classified := classify(err, entity)
	if errors.Is(classified, ErrStoreFailure) {
		r.Logger.Error(message, append(fields, zap.Error(err))...)
	}

	return classified
}

func exists(tx *gorm.DB, entity any, id uint, name string) error {
	var count int64

	if result := tx.Model(entity).Where("id = ?", id).Count(&count); result.Error != nil {
		return result.Error
	}

	if count == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, name, id)
	}

	return nil
}
