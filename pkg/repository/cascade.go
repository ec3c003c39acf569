package repository

import (
	"fmt"

	"gorm.io/gorm"

	"droscher.com/Taproom/pkg/model"
)

type cascadeStep struct {
	target    string
	statement string
}

// Deleting a bar removes dependents before parents so no foreign key is left dangling at
// any point of the transaction.
var barCascade = []cascadeStep{
	{target: "beer lines", statement: "DELETE FROM beer_order_lines WHERE beer_id IN (SELECT id FROM beers WHERE bar_id = ?)"},
	{target: "beers", statement: "DELETE FROM beers WHERE bar_id = ?"},
	{target: "order lines", statement: "DELETE FROM beer_order_lines WHERE order_id IN (SELECT id FROM orders WHERE bar_id = ?)"},
	{target: "orders", statement: "DELETE FROM orders WHERE bar_id = ?"},
	{target: "bar", statement: "DELETE FROM bars WHERE id = ?"},
}

var beerCascade = []cascadeStep{
	{target: "beer lines", statement: "DELETE FROM beer_order_lines WHERE beer_id = ?"},
	{target: "beer", statement: "DELETE FROM beers WHERE id = ?"},
}

var orderCascade = []cascadeStep{
	{target: "order lines", statement: "DELETE FROM beer_order_lines WHERE order_id = ?"},
	{target: "order", statement: "DELETE FROM orders WHERE id = ?"},
}

// cascade runs the dependent deletions of an entity inside an already open transaction.
// Any failing step aborts the cascade with ErrStoreFailure, leaving the rollback to the
// caller's transaction.
type cascade struct {
	tx *gorm.DB
}

func (c cascade) run(id uint, steps []cascadeStep) error {
	for _, step := range steps {
		if result := c.tx.Exec(step.statement, id); result.Error != nil {
			return fmt.Errorf("%w: deleting %s: %w", ErrStoreFailure, step.target, result.Error)
		}
	}

	return nil
}

func (c cascade) deleteBar(barID uint) error {
	return c.run(barID, barCascade)
}

func (c cascade) deleteBeer(beerID uint) error {
	return c.run(beerID, beerCascade)
}

func (c cascade) deleteOrder(orderID uint) error {
	return c.run(orderID, orderCascade)
}

// deleteUser cascades through every bar the user owns before removing the user.
func (c cascade) deleteUser(userID uint) error {
	var barIDs []uint

	if result := c.tx.Model(&model.Bar{}).Where("user_id = ?", userID).Order("id").Pluck("id", &barIDs); result.Error != nil {
		return fmt.Errorf("%w: listing bars of user: %w", ErrStoreFailure, result.Error)
	}

	for _, barID := range barIDs {
		if err := c.deleteBar(barID); err != nil {
			return err
		}
	}

	if result := c.tx.Exec("DELETE FROM users WHERE id = ?", userID); result.Error != nil {
		return fmt.Errorf("%w: deleting user: %w", ErrStoreFailure, result.Error)
	}

	return nil
}
