package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/iliaalekseevofb/Twitter-clone/internal/db"
)

// UserRepository provides data access methods for the User model.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// GetByID returns the user with the given id, or gorm.ErrRecordNotFound.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a user with the given id is present.
func (r *UserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// CountTweets returns how many tweets the given user has authored.
func (r *UserRepository) CountTweets(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Tweet{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
