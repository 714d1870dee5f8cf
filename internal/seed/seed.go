// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var (
	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
		"William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
		"Thomas", "Sarah", "Charles", "Karen", "Daniel", "Lisa", "Matthew", "Betty",
		"Anthony", "Margaret", "Mark", "Sandra", "Steven", "Kimberly", "Paul", "Emily",
		"Andrew", "Donna", "Joshua", "Michelle", "Kevin", "Carol", "Brian", "Amanda",
	}

	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
		"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
		"Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young",
	}

	captions = []string{
		"golden hour again",
		"weekend mood",
		"can't beat this view",
		"coffee first, always",
		"throwback to summer",
		"new spot, who's coming",
		"small things, good days",
		"finally tried this place",
		"no filter needed",
		"",
	}
)

// Run populates the database with randomized users, posts, likes, comments
// and follows. Idempotent enough for repeated development use: users are
// keyed by a deterministic external ID so reruns update rather than pile up.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = opts.NumUsers * 3
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	users, err := seedUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	posts, err := seedPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	if err := seedFollows(db, users); err != nil {
		return fmt.Errorf("seed follows: %w", err)
	}
	if err := seedLikes(db, users, posts); err != nil {
		return fmt.Errorf("seed likes: %w", err)
	}
	if err := seedComments(db, users, posts); err != nil {
		return fmt.Errorf("seed comments: %w", err)
	}

	log.Printf("seeded %d users, %d posts", len(users), len(posts))
	return nil
}

// Clean removes all seeded rows. Deletes in dependency order; likes,
// comments and follows cascade with their posts and users.
func Clean(db *gorm.DB) error {
	for _, table := range []string{"likes", "comments", "follows", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}
	return nil
}

func seedUsers(db *gorm.DB, n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %s",
			firstNames[rand.Intn(len(firstNames))],
			lastNames[rand.Intn(len(lastNames))],
		)
		user := models.User{
			ExternalID: fmt.Sprintf("seed|%04d", i),
			Name:       name,
		}
		err := db.Where("external_id = ?", user.ExternalID).
			Assign(models.User{Name: name}).
			FirstOrCreate(&user).Error
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func seedPosts(db *gorm.DB, users []models.User, n int) ([]models.Post, error) {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			UserID:   author.ID,
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/glimpse-%d/1080/1080", i),
			Caption:  captions[rand.Intn(len(captions))],
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func seedFollows(db *gorm.DB, users []models.User) error {
	for _, pair := range DistinctPairs(len(users), len(users)*3) {
		follow := models.Follow{
			FollowerID:  users[pair[0]].ID,
			FollowingID: users[pair[1]].ID,
		}
		err := db.Create(&follow).Error
		if err != nil && !isDuplicate(err) {
			return err
		}
	}
	return nil
}

func seedLikes(db *gorm.DB, users []models.User, posts []models.Post) error {
	for _, post := range posts {
		for i := 0; i < rand.Intn(len(users)); i++ {
			like := models.Like{
				PostID: post.ID,
				UserID: users[rand.Intn(len(users))].ID,
			}
			err := db.Create(&like).Error
			if err != nil && !isDuplicate(err) {
				return err
			}
		}
	}
	return nil
}

func seedComments(db *gorm.DB, users []models.User, posts []models.Post) error {
	lines := []string{
		"love this", "so good", "where is this?", "incredible shot",
		"need to go here", "this made my day", "wow", "saving this",
	}
	for _, post := range posts {
		for i := 0; i < rand.Intn(5); i++ {
			comment := models.Comment{
				PostID:  post.ID,
				UserID:  users[rand.Intn(len(users))].ID,
				Content: lines[rand.Intn(len(lines))],
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// DistinctPairs returns up to count random (a, b) index pairs with a != b
// and no duplicates, drawn from [0, n).
func DistinctPairs(n, count int) [][2]int {
	if n < 2 {
		return nil
	}
	seen := make(map[[2]int]bool)
	pairs := make([][2]int, 0, count)
	// Random draws with a bounded number of attempts; dense graphs on small
	// n would otherwise loop forever.
	for attempts := 0; len(pairs) < count && attempts < count*10; attempts++ {
		a := rand.Intn(n)
		b := rand.Intn(n)
		if a == b {
			continue
		}
		pair := [2]int{a, b}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		pairs = append(pairs, pair)
	}
	return pairs
}

func isDuplicate(err error) bool {
	return err == gorm.ErrDuplicatedKey ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "23505")
}
