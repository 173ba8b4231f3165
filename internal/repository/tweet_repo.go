package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iliaalekseevofb/Twitter-clone/internal/db"
	"github.com/iliaalekseevofb/Twitter-clone/internal/utils/pagination"
)

// FeedFilter selects which tweets a feed query returns.
// It is a closed set of variants rather than an ad-hoc nullable where-clause:
// All, ByUser(id), or Following(callerID).
type FeedFilter struct {
	kind   filterKind
	userID string
}

type filterKind int

const (
	filterAll filterKind = iota
	filterByUser
	filterFollowing
)

// FilterAll selects every tweet (the public feed).
func FilterAll() FeedFilter { return FeedFilter{kind: filterAll} }

// FilterByUser selects tweets authored by a single user (a profile feed).
func FilterByUser(userID string) FeedFilter {
	return FeedFilter{kind: filterByUser, userID: userID}
}

// FilterFollowing selects tweets authored by users the caller follows
// (the home feed).
func FilterFollowing(callerID string) FeedFilter {
	return FeedFilter{kind: filterFollowing, userID: callerID}
}

// FeedTweet is a feed row enriched with its author and like-derived fields.
type FeedTweet struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	LikeCount int64     `json:"likeCount"`
	LikedByMe bool      `json:"likedByMe"`
	UserID    string    `json:"-"`
	UserName  string    `json:"-"`
	UserImage string    `json:"-"`
}

// TweetRepository provides data access methods for the Tweet model.
type TweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new repository bound to the given DB connection.
func NewTweetRepository(database *gorm.DB) *TweetRepository {
	return &TweetRepository{db: database}
}

// GetFeedPage returns one page of the feed selected by filter.
//
// Behavior:
//   - Rows are ordered by (created_at DESC, id DESC); the unique id breaks
//     timestamp ties so the order is total.
//   - limit+1 rows are requested; if the extra row comes back it is cut from
//     the page and its position becomes the next pagination token. The token
//     therefore names the first row of the following page, and the cursor
//     predicate is inclusive on that row.
//   - Each row carries like_count and liked_by_me for viewerID. An empty
//     viewerID (anonymous) matches no likes, so liked_by_me is false.
//
// Example:
//
//	repo.GetFeedPage(ctx, FilterAll(), "", nil, 10) // first public page
func (r *TweetRepository) GetFeedPage(
	ctx context.Context,
	filter FeedFilter,
	viewerID string,
	paginationToken *string,
	limit int,
) ([]FeedTweet, *string, error) {
	var tweets []FeedTweet

	// decode cursor if provided
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Table("tweets t").
		Select(`t.id, t.content, t.created_at, t.user_id,
			u.name AS user_name, u.image AS user_image,
			(SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.id) AS like_count,
			EXISTS (SELECT 1 FROM likes lm WHERE lm.tweet_id = t.id AND lm.user_id = ?) AS liked_by_me`,
			viewerID).
		Joins("JOIN users u ON u.id = t.user_id").
		Order("t.created_at DESC, t.id DESC").
		Limit(limit + 1)

	switch filter.kind {
	case filterByUser:
		query = query.Where("t.user_id = ?", filter.userID)
	case filterFollowing:
		query = query.Where(
			"t.user_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)",
			filter.userID,
		)
	}

	// apply cursor
	if !cursor.IsZero() {
		ts := time.UnixMilli(cursor.CreatedUnix).UTC()
		query = query.Where(
			"(t.created_at < ? OR (t.created_at = ? AND t.id <= ?))",
			ts, ts, cursor.TweetID,
		)
	}

	if err := query.Find(&tweets).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(tweets) > limit {
		next := tweets[limit]
		token, _ := pagination.Encode(pagination.Cursor{
			TweetID:     next.ID,
			CreatedUnix: next.CreatedAt.UnixMilli(),
		})
		nextToken = &token
		tweets = tweets[:limit]
	}

	return tweets, nextToken, nil
}

// CreateTweet inserts a new tweet authored by userID and returns it.
func (r *TweetRepository) CreateTweet(ctx context.Context, userID, content string) (*db.Tweet, error) {
	tweet := db.Tweet{
		ID:      uuid.NewString(),
		UserID:  userID,
		Content: content,
	}
	if err := r.db.WithContext(ctx).Create(&tweet).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// Exists reports whether a tweet with the given id is present.
func (r *TweetRepository) Exists(ctx context.Context, tweetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Tweet{}).
		Where("id = ?", tweetID).
		Count(&count).Error
	return count > 0, err
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
