package db

import (
	"time"
)

// User table
type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Name         string    `gorm:"size:64;not null"`
	Image        string    `gorm:"size:255"`
	Email        string    `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Tweet is an immutable message authored by a user.
//
// Feed ordering key is (created_at DESC, id DESC); ties on created_at are
// broken by the unique id so pagination never skips or repeats rows.
//
// Indexes:
//   - idx_tweets_created_id(created_at DESC, id) serves the global feed scan.
//   - idx_tweets_user_created(user_id, created_at DESC, id) serves profile
//     feeds and the follow-join home feed.
type Tweet struct {
	ID        string    `gorm:"primaryKey;size:36;index:idx_tweets_created_id,priority:2"`
	UserID    string    `gorm:"size:36;not null;index:idx_tweets_user_created,priority:1"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_tweets_created_id,priority:1,sort:desc;index:idx_tweets_user_created,priority:2,sort:desc"`
}

// Like marks that a user liked a tweet.
//
// Composite PK (UserID, TweetID) makes the pair unique; a racing duplicate
// insert surfaces as a key violation instead of a second row.
//
// idx_likes_tweet(tweet_id, user_id) covers both like counting and the
// "liked by me" probe.
type Like struct {
	UserID    string    `gorm:"primaryKey;size:36;index:idx_likes_tweet,priority:2"`
	TweetID   string    `gorm:"primaryKey;size:36;index:idx_likes_tweet,priority:1"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Follow is a directed follower -> followee edge.
//
// Composite PK (FollowerID, FolloweeID) gives at most one edge per ordered
// pair. idx_follows_followee(followee_id) serves follower counts;
// the PK prefix serves the home-feed join on follower_id.
type Follow struct {
	FollowerID string    `gorm:"primaryKey;size:36"`
	FolloweeID string    `gorm:"primaryKey;size:36;index:idx_follows_followee"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
