package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iliaalekseevofb/Twitter-clone/internal/db"
)

// LikeRepository provides data access methods for the Like model.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// Toggle flips the like of (userID, tweetID) and reports the new state.
//
// Behavior:
//   - No row → insert one, return added=true.
//   - Row present → delete it, return added=false.
//   - The probe and the write are not atomic. A concurrent toggle losing the
//     race hits the composite-PK constraint on insert, or deletes zero rows;
//     both outcomes mean the pair is already in the requested state and are
//     reported as such instead of failing.
//
// Example:
//
//	added, err := repo.Toggle(ctx, userID, tweetID)
func (r *LikeRepository) Toggle(ctx context.Context, userID, tweetID string) (bool, error) {
	var existing db.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := db.Like{UserID: userID, TweetID: tweetID}
		if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return true, nil // lost race, already liked
			}
			return false, err
		}
		return true, nil

	case err != nil:
		return false, err

	default:
		res := r.db.WithContext(ctx).
			Where("user_id = ? AND tweet_id = ?", userID, tweetID).
			Delete(&db.Like{})
		if res.Error != nil {
			return false, res.Error
		}
		// RowsAffected == 0 means another request removed it first;
		// either way the like is gone now.
		return false, nil
	}
}

// CountForTweet returns the number of likes referencing a tweet.
func (r *LikeRepository) CountForTweet(ctx context.Context, tweetID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error
	return count, err
}
