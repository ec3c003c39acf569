package model

import (
	"errors"
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "draft"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusCompleted  OrderStatus = "completed"
)

var ErrOrderCompleted = errors.New("a completed order cannot be modified")

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusInProgress, OrderStatusCompleted:
		return true
	default:
		return false
	}
}

func ParseOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, value)
	}

	return status, nil
}

type Order struct {
	ID        uint        `gorm:"primaryKey"`
	Name      string      `gorm:"not null"                 validate:"required"`
	Price     float64     `gorm:"not null"                 validate:"gte=0"`
	BarID     uint        `gorm:"not null;index"           validate:"required"`
	Date      time.Time   `gorm:"type:date;not null"       validate:"required"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" validate:"required,order_status"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the order fields, including that its date is not later than the calendar day
// of now.
func (o *Order) Validate(now time.Time) error {
	if err := Validate(o); err != nil {
		return err
	}

	if CalendarDay(o.Date).After(CalendarDay(now)) {
		return fmt.Errorf("%w: Order.Date: %s is in the future", ErrValidation, o.Date.Format(time.DateOnly))
	}

	return nil
}

// CheckMutable refuses any change to an order once it has been completed. Draft and
// in-progress orders may move to any status.
func (o *Order) CheckMutable() error {
	if o.Status == OrderStatusCompleted {
		return fmt.Errorf("%w: order %d", ErrOrderCompleted, o.ID)
	}

	return nil
}

type OrderPatch struct {
	Name   *string
	Price  *float64
	Date   *time.Time
	Status *OrderStatus
}

func (p OrderPatch) Apply(order *Order) {
	if p.Name != nil {
		order.Name = *p.Name
	}

	if p.Price != nil {
		order.Price = *p.Price
	}

	if p.Date != nil {
		order.Date = CalendarDay(*p.Date)
	}

	if p.Status != nil {
		order.Status = *p.Status
	}
}

// CalendarDay truncates a timestamp to midnight UTC of the same date.
func CalendarDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
