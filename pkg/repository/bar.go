package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/query"
)

type BarRepository interface {
	AddBar(ctx context.Context, bar model.Bar) (*model.Bar, error)
	GetBarByID(ctx context.Context, barID uint) (*model.Bar, error)
	ListBars(ctx context.Context, filter query.BarFilter) ([]*model.Bar, error)
	UpdateBar(ctx context.Context, barID uint, patch model.BarPatch) (*model.Bar, error)
	DeleteBar(ctx context.Context, barID uint) error
}

func (r *Repository) AddBar(ctx context.Context, bar model.Bar) (*model.Bar, error) {
	if err := bar.Validate(); err != nil {
		return nil, err
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if bar.UserID != nil {
			if err := exists(tx, &model.User{}, *bar.UserID, "user"); err != nil {
				return err
			}
		}

		return tx.Create(&bar).Error
	})
	if err != nil {
		return nil, r.fail("error adding bar", err, "bar", zap.String("name", bar.Name))
	}

	return &bar, nil
}

func (r *Repository) GetBarByID(ctx context.Context, barID uint) (*model.Bar, error) {
	var bar model.Bar

	if result := r.DB.WithContext(ctx).First(&bar, barID); result.Error != nil {
		return nil, r.fail("error getting bar", result.Error, fmt.Sprintf("bar %d", barID))
	}

	return &bar, nil
}

func (r *Repository) ListBars(ctx context.Context, filter query.BarFilter) ([]*model.Bar, error) {
	bars := []*model.Bar{}

	if result := query.Bars(filter).Apply(r.DB.WithContext(ctx)).Find(&bars); result.Error != nil {
		return nil, r.fail("error listing bars", result.Error, "bar")
	}

	return bars, nil
}

// UpdateBar merges the patch into the locked bar row and saves it when the merged bar is
// valid.
func (r *Repository) UpdateBar(ctx context.Context, barID uint, patch model.BarPatch) (*model.Bar, error) {
	var bar model.Bar

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findForUpdate(tx, &bar, barID, "bar"); err != nil {
			return err
		}

		patch.Apply(&bar)

		if err := bar.Validate(); err != nil {
			return err
		}

		return tx.Save(&bar).Error
	})
	if err != nil {
		return nil, r.fail("error updating bar", err, fmt.Sprintf("bar %d", barID), zap.Uint("bar_id", barID))
	}

	return &bar, nil
}

// DeleteBar removes the bar together with its beers, its orders and every line referencing
// either, in a single transaction.
func (r *Repository) DeleteBar(ctx context.Context, barID uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.Bar{}, barID, "bar"); err != nil {
			return err
		}

		return cascade{tx: tx}.deleteBar(barID)
	})
	if err != nil {
		return r.fail("error deleting bar", err, fmt.Sprintf("bar %d", barID), zap.Uint("bar_id", barID))
	}

	r.Logger.Info("bar deleted", zap.Uint("bar_id", barID))

	return nil
}

func findForUpdate(tx *gorm.DB, dest any, id uint, name string) error {
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s %d", ErrNotFound, name, id)
		}

		return result.Error
	}

	return nil
}
