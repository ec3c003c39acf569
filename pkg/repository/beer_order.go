package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"droscher.com/Taproom/pkg/model"
)

const defaultQuantity = 1

// AddBeerToOrder records the beer as part of the order. Adding a beer that is already on the
// order replaces its quantity; a zero quantity means one.
func (r *Repository) AddBeerToOrder(ctx context.Context, orderID uint, beerID uint, quantity int) (*model.BeerOrderLine, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	if quantity == 0 {
		quantity = defaultQuantity
	}

	line := model.BeerOrderLine{BeerID: beerID, OrderID: orderID, Quantity: quantity}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order

		if err := findForUpdate(tx, &order, orderID, "order"); err != nil {
			return err
		}

		if err := order.CheckMutable(); err != nil {
			return err
		}

		if err := exists(tx, &model.Beer{}, beerID, "beer"); err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "beer_id"}, {Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).Create(&line).Error
	})
	if err != nil {
		return nil, r.fail("error adding beer to order", err, "order line",
			zap.Uint("order_id", orderID), zap.Uint("beer_id", beerID))
	}

	return &line, nil
}

// RemoveBeerFromOrder deletes the line linking the beer to the order. Removing a line that
// does not exist is reported as ErrNotFound.
func (r *Repository) RemoveBeerFromOrder(ctx context.Context, orderID uint, beerID uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order

		if err := findForUpdate(tx, &order, orderID, "order"); err != nil {
			return err
		}

		if err := order.CheckMutable(); err != nil {
			return err
		}

		result := tx.Where("order_id = ? AND beer_id = ?", orderID, beerID).Delete(&model.BeerOrderLine{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: beer %d is not part of order %d", ErrNotFound, beerID, orderID)
		}

		return nil
	})
	if err != nil {
		return r.fail("error removing beer from order", err, "order line",
			zap.Uint("order_id", orderID), zap.Uint("beer_id", beerID))
	}

	return nil
}

// ListBeersForOrder returns the beers of an existing order ordered by name, each with the
// quantity recorded on its line.
func (r *Repository) ListBeersForOrder(ctx context.Context, orderID uint) ([]*model.OrderedBeer, error) {
	beers := []*model.OrderedBeer{}
	db := r.DB.WithContext(ctx)

	if err := exists(db, &model.Order{}, orderID, "order"); err != nil {
		return nil, r.fail("error checking order", err, "order")
	}

	result := db.Model(&model.Beer{}).
		Select("beers.*, beer_order_lines.quantity").
		Joins("INNER JOIN beer_order_lines ON beer_order_lines.beer_id = beers.id").
		Where("beer_order_lines.order_id = ?", orderID).
		Order("beers.name ASC").
		Scan(&beers)
	if result.Error != nil {
		return nil, r.fail("error listing beers for order", result.Error, "order line", zap.Uint("order_id", orderID))
	}

	return beers, nil
}
