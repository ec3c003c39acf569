package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name      string    `gorm:"not null"             validate:"required"`
	Email     string    `gorm:"uniqueIndex;not null" validate:"required,email"`
	Password  string    `gorm:"not null"             validate:"required"`
	Token     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Bars []Bar `validate:"-"`
}

func (u *User) Validate() error {
	return Validate(u)
}
