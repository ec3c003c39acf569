package model

import "time"

type Beer struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"not null" validate:"required"`
	Description *string
	Degree      float64 `gorm:"not null" validate:"gte=0"`
	Price       float64 `gorm:"not null" validate:"gte=0"`
	BarID       uint    `gorm:"not null;index" validate:"required"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *Beer) Validate() error {
	return Validate(b)
}

type BeerPatch struct {
	Name        *string
	Description *string
	Degree      *float64
	Price       *float64
	BarID       *uint
}

func (p BeerPatch) Apply(beer *Beer) {
	if p.Name != nil {
		beer.Name = *p.Name
	}

	if p.Description != nil {
		beer.Description = p.Description
	}

	if p.Degree != nil {
		beer.Degree = *p.Degree
	}

	if p.Price != nil {
		beer.Price = *p.Price
	}

	if p.BarID != nil {
		beer.BarID = *p.BarID
	}
}

// BeerOrderLine records that Quantity units of a beer are part of an order.
type BeerOrderLine struct {
	BeerID    uint `gorm:"primaryKey;autoIncrement:false"`
	OrderID   uint `gorm:"primaryKey;autoIncrement:false;index"`
	Quantity  int  `gorm:"not null" validate:"gte=1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Beer  *Beer  `validate:"-"`
	Order *Order `validate:"-"`
}

// OrderedBeer is a beer as listed in an order, annotated with its line quantity.
type OrderedBeer struct {
	Beer
	Quantity int
}

// BeerSuggestion is a catalog entry found through an external integration, used to pre-fill
// a bar's beer.
type BeerSuggestion struct {
	Name           string
	Description    string
	Degree         *float64
	Style          string
	Brewery        string
	ExternalID     *uint64
	ExternalSource string
	ExternalRating *float64
}
