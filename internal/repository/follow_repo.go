package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iliaalekseevofb/Twitter-clone/internal/db"
)

// FollowRepository provides data access methods for follow edges.
type FollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new repository bound to the given DB connection.
func NewFollowRepository(database *gorm.DB) *FollowRepository {
	return &FollowRepository{db: database}
}

// Toggle flips the follower -> followee edge and reports the new state.
// Race handling matches LikeRepository.Toggle: a duplicate insert or a
// zero-row delete means the edge is already in the requested state.
func (r *FollowRepository) Toggle(ctx context.Context, followerID, followeeID string) (bool, error) {
	var existing db.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		edge := db.Follow{FollowerID: followerID, FolloweeID: followeeID}
		if err := r.db.WithContext(ctx).Create(&edge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return true, nil // lost race, already following
			}
			return false, err
		}
		return true, nil

	case err != nil:
		return false, err

	default:
		res := r.db.WithContext(ctx).
			Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&db.Follow{})
		if res.Error != nil {
			return false, res.Error
		}
		return false, nil
	}
}

// IsFollowing reports whether follower -> followee edge exists.
func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// CountFollowers returns how many users follow the given user.
func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountFollows returns how many users the given user follows.
func (r *FollowRepository) CountFollows(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
