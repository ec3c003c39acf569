package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"droscher.com/Taproom/pkg/model"
)

type UserRepository interface {
	AddUser(ctx context.Context, user model.User) (*model.User, error)
	GetUserByUUID(ctx context.Context, uuid uuid.UUID) (*model.User, error)
	GetUserFromEmail(ctx context.Context, email string) (*model.User, error)
	SetUserToken(ctx context.Context, userID uint, token string) error
	DeleteUser(ctx context.Context, userID uint) error
}

// AddUser stores a user whose password has already been hashed.
func (r *Repository) AddUser(ctx context.Context, user model.User) (*model.User, error) {
	if user.UUID == uuid.Nil {
		user.UUID = uuid.New()
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if result := r.DB.WithContext(ctx).Create(&user); result.Error != nil {
		return nil, r.fail("error adding user", result.Error, "user", zap.String("email", user.Email))
	}

	return &user, nil
}

func (r *Repository) GetUserByUUID(ctx context.Context, uuid uuid.UUID) (*model.User, error) {
	var user model.User

	if result := r.DB.WithContext(ctx).Where("uuid = ?", uuid).First(&user); result.Error != nil {
		return nil, r.fail("error getting user", result.Error, "user")
	}

	return &user, nil
}

func (r *Repository) GetUserFromEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	if result := r.DB.WithContext(ctx).Where("email = ?", email).First(&user); result.Error != nil {
		return nil, r.fail("error getting user", result.Error, "user")
	}

	return &user, nil
}

// SetUserToken records the last token issued to the user.
func (r *Repository) SetUserToken(ctx context.Context, userID uint, token string) error {
	result := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("token", token)
	if result.Error != nil {
		return r.fail("error setting user token", result.Error, "user", zap.Uint("user_id", userID))
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	return nil
}

// DeleteUser removes the user and cascades through every bar they own.
func (r *Repository) DeleteUser(ctx context.Context, userID uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.User{}, userID, "user"); err != nil {
			return err
		}

		return cascade{tx: tx}.deleteUser(userID)
	})
	if err != nil {
		return r.fail("error deleting user", err, fmt.Sprintf("user %d", userID), zap.Uint("user_id", userID))
	}

	r.Logger.Info("user deleted", zap.Uint("user_id", userID))

	return nil
}
