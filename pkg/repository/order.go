package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/query"
)

type OrderRepository interface {
	AddOrder(ctx context.Context, order model.Order) (*model.Order, error)
	GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error)
	ListOrders(ctx context.Context, filter query.OrderFilter) ([]*model.Order, error)
	UpdateOrder(ctx context.Context, orderID uint, patch model.OrderPatch) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID uint) error
	AddBeerToOrder(ctx context.Context, orderID uint, beerID uint, quantity int) (*model.BeerOrderLine, error)
	RemoveBeerFromOrder(ctx context.Context, orderID uint, beerID uint) error
	ListBeersForOrder(ctx context.Context, orderID uint) ([]*model.OrderedBeer, error)
}

// AddOrder stores a new order. The status is required like every other field.
func (r *Repository) AddOrder(ctx context.Context, order model.Order) (*model.Order, error) {
	order.Date = model.CalendarDay(order.Date)

	if err := order.Validate(r.now()); err != nil {
		return nil, err
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.Bar{}, order.BarID, "bar"); err != nil {
			return err
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, r.fail("error adding order", err, "order", zap.String("name", order.Name), zap.Uint("bar_id", order.BarID))
	}

	return &order, nil
}

func (r *Repository) GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order

	if result := r.DB.WithContext(ctx).First(&order, orderID); result.Error != nil {
		return nil, r.fail("error getting order", result.Error, fmt.Sprintf("order %d", orderID))
	}

	return &order, nil
}

func (r *Repository) ListOrders(ctx context.Context, filter query.OrderFilter) ([]*model.Order, error) {
	orders := []*model.Order{}
	db := r.DB.WithContext(ctx)

	if filter.BarID != nil {
		if err := exists(db, &model.Bar{}, *filter.BarID, "bar"); err != nil {
			return nil, r.fail("error checking bar", err, "bar")
		}
	}

	if result := query.Orders(filter).Apply(db.Model(&model.Order{})).Find(&orders); result.Error != nil {
		return nil, r.fail("error listing orders", result.Error, "order")
	}

	return orders, nil
}

// UpdateOrder applies the patch to an order that is not yet completed. The status guard is
// evaluated against the stored order, so a completed order refuses every change including
// one that would reopen it.
func (r *Repository) UpdateOrder(ctx context.Context, orderID uint, patch model.OrderPatch) (*model.Order, error) {
	var order model.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findForUpdate(tx, &order, orderID, "order"); err != nil {
			return err
		}

		if err := order.CheckMutable(); err != nil {
			return err
		}

		patch.Apply(&order)

		if err := order.Validate(r.now()); err != nil {
			return err
		}

		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, r.fail("error updating order", err, fmt.Sprintf("order %d", orderID), zap.Uint("order_id", orderID))
	}

	return &order, nil
}

// DeleteOrder removes the order and its lines. Completed orders may still be deleted.
func (r *Repository) DeleteOrder(ctx context.Context, orderID uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.Order{}, orderID, "order"); err != nil {
			return err
		}

		return cascade{tx: tx}.deleteOrder(orderID)
	})
	if err != nil {
		return r.fail("error deleting order", err, fmt.Sprintf("order %d", orderID), zap.Uint("order_id", orderID))
	}

	return nil
}
