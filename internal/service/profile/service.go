package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iliaalekseevofb/Twitter-clone/internal/app"
	svcErr "github.com/iliaalekseevofb/Twitter-clone/internal/errors"
	"github.com/iliaalekseevofb/Twitter-clone/internal/repository"
)

// Service implements the profile API: profile lookup with aggregate counts
// and the follow toggle.
type Service struct {
	appCtx     *app.AppContext
	userRepo   *repository.UserRepository
	followRepo *repository.FollowRepository
}

// NewProfileService creates a new profile service with dependencies from AppContext.
func NewProfileService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:     appCtx,
		userRepo:   repository.NewUserRepository(appCtx.DB),
		followRepo: repository.NewFollowRepository(appCtx.DB),
	}
}

// Profile is the response shape of GetByID.
type Profile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Image          string `json:"image"`
	TweetsCount    int64  `json:"tweetsCount"`
	FollowersCount int64  `json:"followersCount"`
	FollowsCount   int64  `json:"followsCount"`
	IsFollowing    bool   `json:"isFollowing"`
}

// GetByID returns a user's profile with tweet/follower/follow counts and
// whether the viewer follows them.
//
// Behavior:
//   - Misses return 404.
//   - The follower count is cache-first (followers:count:userID in Redis);
//     on miss the DB count is read back into the cache with a TTL.
//   - IsFollowing is always false for anonymous viewers.
func (s *Service) GetByID(ctx context.Context, viewerID, userID string) (*Profile, error) {
	s.appCtx.Logger.Debug("GetByID called", "viewer", viewerID, "user", userID)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.NotFound("profile not found")
		}
		return nil, svcErr.Map(err)
	}

	tweets, err := s.userRepo.CountTweets(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	followers, err := s.followerCount(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	follows, err := s.followRepo.CountFollows(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	isFollowing := false
	if viewerID != "" && viewerID != userID {
		isFollowing, err = s.followRepo.IsFollowing(ctx, viewerID, userID)
		if err != nil {
			return nil, svcErr.Map(err)
		}
	}

	return &Profile{
		ID:             user.ID,
		Name:           user.Name,
		Image:          user.Image,
		TweetsCount:    tweets,
		FollowersCount: followers,
		FollowsCount:   follows,
		IsFollowing:    isFollowing,
	}, nil
}

// ToggleFollow flips the caller's follow edge to targetID.
//
// Behavior:
//   - Requires an authenticated caller.
//   - Self-follow is rejected here, not just hidden by the UI.
//   - 404 when the target user does not exist.
//   - Race handling as in the like toggle: a lost race reports the state
//     the pair already reached.
//   - On success the target's cached follower counter is adjusted ±1.
func (s *Service) ToggleFollow(ctx context.Context, callerID, targetID string) (bool, error) {
	s.appCtx.Logger.Debug("ToggleFollow called", "caller", callerID, "target", targetID)

	if callerID == "" {
		return false, svcErr.NotAuthenticated("authentication required")
	}
	if callerID == targetID {
		return false, svcErr.InvalidArgument("cannot follow yourself")
	}

	exists, err := s.userRepo.Exists(ctx, targetID)
	if err != nil {
		return false, svcErr.Map(err)
	}
	if !exists {
		return false, svcErr.NotFound("profile not found")
	}

	added, err := s.followRepo.Toggle(ctx, callerID, targetID)
	if err != nil {
		s.appCtx.Logger.Error("follow toggle failed", "err", err)
		return false, svcErr.Map(err)
	}

	// update cached counter
	key := s.appCtx.RedisCache.KeyForFollowerCount(targetID)
	s.appCtx.RedisCache.ApplyDelta(ctx, key, added)

	return added, nil
}

// followerCount reads the follower counter cache-first with DB fallback.
func (s *Service) followerCount(ctx context.Context, userID string) (int64, error) {
	key := s.appCtx.RedisCache.KeyForFollowerCount(userID)

	if n, ok, _ := s.appCtx.RedisCache.GetCount(ctx, key); ok {
		return n, nil
	}

	count, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, err
	}

	_ = s.appCtx.RedisCache.SetCount(ctx, key, count)
	return count, nil
}
