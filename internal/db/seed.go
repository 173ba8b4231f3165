package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedTestData resets the database and populates it with demo users,
// tweets, likes and follow edges.
//
// Behavior:
//  1. Clears existing rows in `likes`, `follows`, `tweets` and `users`.
//  2. Creates 10 users with hashed passwords.
//  3. Creates ~15 tweets per user with staggered creation times, so feed
//     pagination has several pages to walk.
//  4. Each user follows ~4 others and likes ~25 random tweets.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"likes", "follows", "tweets", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	// --- Seed Users ---
	var userIDs []string
	for i := 1; i <= 10; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := User{
			ID:           uuid.NewString(),
			Name:         fmt.Sprintf("user%d", i),
			Image:        fmt.Sprintf("https://i.pravatar.cc/150?u=user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		userIDs = append(userIDs, user.ID)
	}
	log.Println("Seeded 10 users.")

	// --- Seed Tweets ---
	// Creation times step backwards one minute per tweet so every feed page
	// has a deterministic order.
	var tweetIDs []string
	base := time.Now().UTC().Truncate(time.Minute)
	n := 0
	for _, uid := range userIDs {
		for j := 0; j < 15; j++ {
			tweet := Tweet{
				ID:        uuid.NewString(),
				UserID:    uid,
				Content:   fmt.Sprintf("tweet #%d", n),
				CreatedAt: base.Add(-time.Duration(n) * time.Minute),
			}
			if err := db.Create(&tweet).Error; err != nil {
				return fmt.Errorf("failed to seed tweet: %w", err)
			}
			tweetIDs = append(tweetIDs, tweet.ID)
			n++
		}
	}
	log.Printf("Seeded %d tweets.", n)

	// --- Seed Follows ---
	for i, uid := range userIDs {
		for j := 1; j <= 4; j++ {
			target := userIDs[(i+j)%len(userIDs)]
			if target == uid {
				continue
			}
			edge := Follow{FollowerID: uid, FolloweeID: target}
			if err := db.Create(&edge).Error; err != nil {
				return fmt.Errorf("failed to seed follow: %w", err)
			}
		}
	}

	// --- Seed Likes ---
	for _, uid := range userIDs {
		seen := map[string]bool{}
		for j := 0; j < 25; j++ {
			tid := tweetIDs[r.Intn(len(tweetIDs))]
			if seen[tid] {
				continue
			}
			seen[tid] = true
			like := Like{UserID: uid, TweetID: tid}
			if err := db.Create(&like).Error; err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}
		}
	}

	return nil
}
