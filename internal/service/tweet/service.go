package tweet

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliaalekseevofb/Twitter-clone/internal/app"
	svcErr "github.com/iliaalekseevofb/Twitter-clone/internal/errors"
	"github.com/iliaalekseevofb/Twitter-clone/internal/repository"
	"github.com/iliaalekseevofb/Twitter-clone/internal/utils/pagination"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Service implements the feed query and tweet mutation API.
// It contains the business logic on top of repository and cache layers.
type Service struct {
	appCtx    *app.AppContext
	tweetRepo *repository.TweetRepository
	likeRepo  *repository.LikeRepository
}

// NewTweetService creates a new tweet service with dependencies from AppContext.
func NewTweetService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		tweetRepo: repository.NewTweetRepository(appCtx.DB),
		likeRepo:  repository.NewLikeRepository(appCtx.DB),
	}
}

// TweetAuthor is the author summary embedded in every feed item.
type TweetAuthor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// FeedItem is one tweet as the feed presents it.
type FeedItem struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	LikeCount int64       `json:"likeCount"`
	LikedByMe bool        `json:"likedByMe"`
	User      TweetAuthor `json:"user"`
}

// FeedPage is one page of feed items plus the token for the next page.
// NextCursor is absent on the last page.
type FeedPage struct {
	Tweets     []FeedItem `json:"tweets"`
	NextCursor *string    `json:"nextCursor,omitempty"`
}

// Tweet is the mutation result for Create.
type Tweet struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
}

// InfiniteFeed returns one page of the public or home feed.
//
// Behavior:
//   - onlyFollowing restricts the feed to authors the viewer follows.
//     Anonymous viewers fall back to the public feed.
//   - viewerID may be empty (anonymous); likedByMe is then always false.
//   - limit is clamped to [1, 100]; nonpositive means the default of 10.
//
// Example:
//
//	svc.InfiniteFeed(ctx, userID, true, 10, nil)
func (s *Service) InfiniteFeed(
	ctx context.Context,
	viewerID string,
	onlyFollowing bool,
	limit int,
	cursor *string,
) (*FeedPage, error) {
	s.appCtx.Logger.Debug("InfiniteFeed called",
		"viewer", viewerID, "only_following", onlyFollowing, "limit", limit)

	filter := repository.FilterAll()
	if onlyFollowing && viewerID != "" {
		filter = repository.FilterFollowing(viewerID)
	}

	return s.fetchPage(ctx, filter, viewerID, limit, cursor)
}

// InfiniteProfileFeed returns one page of tweets authored by userID.
func (s *Service) InfiniteProfileFeed(
	ctx context.Context,
	viewerID string,
	userID string,
	limit int,
	cursor *string,
) (*FeedPage, error) {
	s.appCtx.Logger.Debug("InfiniteProfileFeed called",
		"viewer", viewerID, "user", userID, "limit", limit)

	if userID == "" {
		return nil, svcErr.InvalidArgument("userId must not be empty")
	}

	return s.fetchPage(ctx, repository.FilterByUser(userID), viewerID, limit, cursor)
}

func (s *Service) fetchPage(
	ctx context.Context,
	filter repository.FeedFilter,
	viewerID string,
	limit int,
	cursor *string,
) (*FeedPage, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	rows, nextToken, err := s.tweetRepo.GetFeedPage(ctx, filter, viewerID, cursor, limit)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidToken) {
			return nil, svcErr.InvalidArgument("invalid pagination token")
		}
		s.appCtx.Logger.Error("GetFeedPage failed", "err", err)
		return nil, svcErr.Map(err)
	}

	page := &FeedPage{Tweets: make([]FeedItem, 0, len(rows)), NextCursor: nextToken}
	for _, row := range rows {
		page.Tweets = append(page.Tweets, FeedItem{
			ID:        row.ID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			LikeCount: row.LikeCount,
			LikedByMe: row.LikedByMe,
			User: TweetAuthor{
				ID:    row.UserID,
				Name:  row.UserName,
				Image: row.UserImage,
			},
		})
	}

	s.appCtx.Logger.Debug("fetchPage result",
		"tweet_count", len(page.Tweets), "has_next", nextToken != nil)

	return page, nil
}

// LikeCount returns the number of likes on a tweet.
// Cache-first strategy:
//  1. Attempts to read the Redis counter (likes:count:tweetID).
//  2. On miss, falls back to the DB and refills the counter with a TTL.
func (s *Service) LikeCount(ctx context.Context, tweetID string) (int64, error) {
	key := s.appCtx.RedisCache.KeyForTweetLikeCount(tweetID)

	// try cache first
	if n, ok, _ := s.appCtx.RedisCache.GetCount(ctx, key); ok {
		return n, nil
	}

	exists, err := s.tweetRepo.Exists(ctx, tweetID)
	if err != nil {
		return 0, svcErr.Map(err)
	}
	if !exists {
		return 0, svcErr.NotFound("tweet not found")
	}

	// fallback: DB
	count, err := s.likeRepo.CountForTweet(ctx, tweetID)
	if err != nil {
		return 0, svcErr.Map(err)
	}

	_ = s.appCtx.RedisCache.SetCount(ctx, key, count)

	return count, nil
}

// Create inserts a new tweet authored by callerID.
//
// Behavior:
//   - Requires an authenticated caller.
//   - Content is trimmed; empty or whitespace-only content is rejected.
func (s *Service) Create(ctx context.Context, callerID, content string) (*Tweet, error) {
	s.appCtx.Logger.Debug("Create called", "caller", callerID)

	if callerID == "" {
		return nil, svcErr.NotAuthenticated("authentication required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, svcErr.InvalidArgument("content must not be empty")
	}

	created, err := s.tweetRepo.CreateTweet(ctx, callerID, content)
	if err != nil {
		s.appCtx.Logger.Error("CreateTweet failed", "err", err)
		return nil, svcErr.Map(err)
	}

	return &Tweet{
		ID:        created.ID,
		Content:   created.Content,
		CreatedAt: created.CreatedAt,
		UserID:    created.UserID,
	}, nil
}

// ToggleLike flips the caller's like on a tweet and reports the new state.
//
// Behavior:
//   - Requires an authenticated caller; 404 when the tweet does not exist.
//   - A concurrent duplicate insert or zero-row delete is reported as the
//     already-reached state, not an error.
//   - On success the cached like counter is adjusted by ±1 with a TTL
//     refresh; the DB stays authoritative on the next cache miss.
func (s *Service) ToggleLike(ctx context.Context, callerID, tweetID string) (bool, error) {
	s.appCtx.Logger.Debug("ToggleLike called", "caller", callerID, "tweet", tweetID)

	if callerID == "" {
		return false, svcErr.NotAuthenticated("authentication required")
	}

	exists, err := s.tweetRepo.Exists(ctx, tweetID)
	if err != nil {
		return false, svcErr.Map(err)
	}
	if !exists {
		return false, svcErr.NotFound("tweet not found")
	}

	added, err := s.likeRepo.Toggle(ctx, callerID, tweetID)
	if err != nil {
		s.appCtx.Logger.Error("like toggle failed", "err", err)
		return false, svcErr.Map(err)
	}

	// update cached counter
	key := s.appCtx.RedisCache.KeyForTweetLikeCount(tweetID)
	s.appCtx.RedisCache.ApplyDelta(ctx, key, added)

	return added, nil
}
