package profile_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/iliaalekseevofb/Twitter-clone/internal/app"
	"github.com/iliaalekseevofb/Twitter-clone/internal/cache"
	"github.com/iliaalekseevofb/Twitter-clone/internal/config"
	"github.com/iliaalekseevofb/Twitter-clone/internal/db"
	"github.com/iliaalekseevofb/Twitter-clone/internal/service/profile"
)

//
// Test helpers
//

const (
	alice = "user-alice"
	bob   = "user-bob"
	carol = "user-carol"
)

// seedProfileData wipes the DB and inserts a deterministic dataset.
//
// Dataset:
//   - Users: alice, bob, carol
//   - Tweets: 2 by alice
//   - Follows: bob -> alice, carol -> alice, alice -> bob
func seedProfileData(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	require.NoError(t, gdb.Exec("DELETE FROM likes").Error)
	require.NoError(t, gdb.Exec("DELETE FROM follows").Error)
	require.NoError(t, gdb.Exec("DELETE FROM tweets").Error)
	require.NoError(t, gdb.Exec("DELETE FROM users").Error)

	users := []db.User{
		{ID: alice, Name: "alice", Image: "alice.png", Email: "alice@test.com", PasswordHash: "x"},
		{ID: bob, Name: "bob", Email: "bob@test.com", PasswordHash: "x"},
		{ID: carol, Name: "carol", Email: "carol@test.com", PasswordHash: "x"},
	}
	require.NoError(t, gdb.Create(&users).Error)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tweets := []db.Tweet{
		{ID: "tweet-1", UserID: alice, Content: "one", CreatedAt: base},
		{ID: "tweet-2", UserID: alice, Content: "two", CreatedAt: base.Add(-time.Minute)},
	}
	require.NoError(t, gdb.Create(&tweets).Error)

	follows := []db.Follow{
		{FollowerID: bob, FolloweeID: alice},
		{FollowerID: carol, FolloweeID: alice},
		{FollowerID: alice, FolloweeID: bob},
	}
	require.NoError(t, gdb.Create(&follows).Error)
}

func setupService(t *testing.T) (*profile.Service, *app.AppContext) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(&db.User{}, &db.Tweet{}, &db.Like{}, &db.Follow{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests

	appCtx := app.New(cfg, gdb, redisCache, logger)
	return profile.NewProfileService(appCtx), appCtx
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

//
// Tests
//

func TestGetByIDCounts(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedProfileData(t, appCtx.DB)

	p, err := svc.GetByID(ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Name)
	assert.Equal(t, "alice.png", p.Image)
	assert.Equal(t, int64(2), p.TweetsCount)
	assert.Equal(t, int64(2), p.FollowersCount)
	assert.Equal(t, int64(1), p.FollowsCount)
	assert.True(t, p.IsFollowing)
}

func TestGetByIDAnonymous(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedProfileData(t, appCtx.DB)

	p, err := svc.GetByID(ctx, "", alice)
	require.NoError(t, err)
	assert.False(t, p.IsFollowing)
	assert.Equal(t, int64(2), p.FollowersCount)
}

func TestGetByIDMissing(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedProfileData(t, appCtx.DB)

	_, err := svc.GetByID(ctx, "", "no-such-user")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestToggleFollowAlternates(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedProfileData(t, appCtx.DB)

	added, err := svc.ToggleFollow(ctx, carol, bob)
	require.NoError(t, err)
	assert.True(t, added)

	p, err := svc.GetByID(ctx, carol, bob)
	require.NoError(t, err)
	assert.True(t, p.IsFollowing)
	assert.Equal(t, int64(1), p.FollowersCount)

	added, err = svc.ToggleFollow(ctx, carol, bob)
	require.NoError(t, err)
	assert.False(t, added)

	p, err = svc.GetByID(ctx, carol, bob)
	require.NoError(t, err)
	assert.False(t, p.IsFollowing)
	assert.Equal(t, int64(0), p.FollowersCount)
}

func TestToggleFollowUpdatesCachedCounter(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedProfileData(t, appCtx.DB)

	// prime the follower counter cache
	p, err := svc.GetByID(ctx, "", alice)
	require.NoError(t, err)
	require.Equal(t, int64(2), p.FollowersCount)

	// a new follow bumps the cached counter without a DB re-read
	_, err = svc.ToggleFollow(ctx, carol, bob)
	require.NoError(t, err)

	added, err := svc.ToggleFollow(ctx, bob, alice)
	require.NoError(t, err)
	assert.False(t, added) // bob already followed alice; this unfollows

	p, err = svc.GetByID(ctx, "", alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.FollowersCount)
}

func TestToggleFollowSelf(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedProfileData(t, appCtx.DB)

	_, err := svc.ToggleFollow(ctx, alice, alice)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestToggleFollowRequiresIdentity(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedProfileData(t, appCtx.DB)

	_, err := svc.ToggleFollow(ctx, "", alice)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
}

func TestToggleFollowMissingTarget(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedProfileData(t, appCtx.DB)

	_, err := svc.ToggleFollow(ctx, alice, "no-such-user")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}
