package model

import "time"

type Bar struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"uniqueIndex;not null" validate:"required"`
	Address     string  `gorm:"not null"             validate:"required"`
	Phone       *string
	Email       string  `gorm:"uniqueIndex;not null" validate:"required,email"`
	Description *string
	UserID      *uint `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Beers  []Beer  `validate:"-"`
	Orders []Order `validate:"-"`
}

func (b *Bar) Validate() error {
	return Validate(b)
}

// BarPatch holds the fields of a partial bar update; nil fields are left unchanged.
type BarPatch struct {
	Name        *string
	Address     *string
	Phone       *string
	Email       *string
	Description *string
}

func (p BarPatch) Apply(bar *Bar) {
	if p.Name != nil {
		bar.Name = *p.Name
	}

	if p.Address != nil {
		bar.Address = *p.Address
	}

	if p.Phone != nil {
		bar.Phone = p.Phone
	}

	if p.Email != nil {
		bar.Email = *p.Email
	}

	if p.Description != nil {
		bar.Description = p.Description
	}
}
