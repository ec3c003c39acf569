package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/query"
)

type BeerRepository interface {
	AddBeer(ctx context.Context, beer model.Beer) (*model.Beer, error)
	GetBeerByID(ctx context.Context, beerID uint) (*model.Beer, error)
	ListBeers(ctx context.Context, filter query.BeerFilter) ([]*model.Beer, error)
	UpdateBeer(ctx context.Context, beerID uint, patch model.BeerPatch) (*model.Beer, error)
	DeleteBeer(ctx context.Context, beerID uint) error
	AverageDegree(ctx context.Context, barID uint) (*float64, error)
}

func (r *Repository) AddBeer(ctx context.Context, beer model.Beer) (*model.Beer, error) {
	if err := beer.Validate(); err != nil {
		return nil, err
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.Bar{}, beer.BarID, "bar"); err != nil {
			return err
		}

		return tx.Create(&beer).Error
	})
	if err != nil {
		return nil, r.fail("error adding beer", err, "beer", zap.String("name", beer.Name), zap.Uint("bar_id", beer.BarID))
	}

	return &beer, nil
}

func (r *Repository) GetBeerByID(ctx context.Context, beerID uint) (*model.Beer, error) {
	var beer model.Beer

	if result := r.DB.WithContext(ctx).First(&beer, beerID); result.Error != nil {
		return nil, r.fail("error getting beer", result.Error, fmt.Sprintf("beer %d", beerID))
	}

	return &beer, nil
}

// ListBeers returns the beers matching the filter. When the filter is scoped to a bar, that
// bar must exist; an existing bar without beers yields an empty list.
func (r *Repository) ListBeers(ctx context.Context, filter query.BeerFilter) ([]*model.Beer, error) {
	beers := []*model.Beer{}
	db := r.DB.WithContext(ctx)

	if filter.BarID != nil {
		if err := exists(db, &model.Bar{}, *filter.BarID, "bar"); err != nil {
			return nil, r.fail("error checking bar", err, "bar")
		}
	}

	if result := query.Beers(filter).Apply(db.Model(&model.Beer{})).Find(&beers); result.Error != nil {
		return nil, r.fail("error listing beers", result.Error, "beer")
	}

	return beers, nil
}

func (r *Repository) UpdateBeer(ctx context.Context, beerID uint, patch model.BeerPatch) (*model.Beer, error) {
	var beer model.Beer

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findForUpdate(tx, &beer, beerID, "beer"); err != nil {
			return err
		}

		patch.Apply(&beer)

		if err := beer.Validate(); err != nil {
			return err
		}

		if patch.BarID != nil {
			if err := exists(tx, &model.Bar{}, beer.BarID, "bar"); err != nil {
				return err
			}
		}

		return tx.Save(&beer).Error
	})
	if err != nil {
		return nil, r.fail("error updating beer", err, fmt.Sprintf("beer %d", beerID), zap.Uint("beer_id", beerID))
	}

	return &beer, nil
}

// DeleteBeer removes the beer and every order line that references it.
func (r *Repository) DeleteBeer(ctx context.Context, beerID uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.Beer{}, beerID, "beer"); err != nil {
			return err
		}

		return cascade{tx: tx}.deleteBeer(beerID)
	})
	if err != nil {
		return r.fail("error deleting beer", err, fmt.Sprintf("beer %d", beerID), zap.Uint("beer_id", beerID))
	}

	return nil
}

// AverageDegree returns the mean alcohol degree of the bar's beers, or nil when the bar has no
// beers.
func (r *Repository) AverageDegree(ctx context.Context, barID uint) (*float64, error) {
	var average sql.NullFloat64

	db := r.DB.WithContext(ctx)

	if err := exists(db, &model.Bar{}, barID, "bar"); err != nil {
		return nil, r.fail("error checking bar", err, "bar")
	}

	row := db.Model(&model.Beer{}).Select("AVG(degree)").Where("bar_id = ?", barID).Row()
	if err := row.Scan(&average); err != nil {
		return nil, r.fail("error averaging beer degree", err, "beer", zap.Uint("bar_id", barID))
	}

	if !average.Valid {
		return nil, nil //nolint:nilnil // a bar without beers has no average
	}

	return &average.Float64, nil
}
