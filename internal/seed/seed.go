// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder populates the database with generated users, friendships, posts,
// comments, and stories.
type Seeder struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Seeder{
		db:  db,
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// ClearAll deletes all seeded rows. Order does not matter: there are no
// foreign keys between the tables.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"stories", "friendships", "comments", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the given number of users and posts, plus a friendship mesh,
// comments, and a handful of stories.
func (s *Seeder) Run(numUsers, numPosts int) error {
	users, err := s.seedUsers(numUsers)
	if err != nil {
		return err
	}
	if err := s.seedFriendships(users); err != nil {
		return err
	}
	posts, err := s.seedPosts(users, numPosts)
	if err != nil {
		return err
	}
	if err := s.seedComments(users, posts); err != nil {
		return err
	}
	return s.seedStories(users)
}

func (s *Seeder) seedUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, models.User{
			ExternalID: fmt.Sprintf("auth0|%s", gofakeit.UUID()),
			Name:       gofakeit.Name(),
		})
	}
	if err := s.db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("seeded %d users", len(users))
	return users, nil
}

// seedFriendships gives each user a few outgoing edges, most accepted,
// some left pending.
func (s *Seeder) seedFriendships(users []models.User) error {
	if len(users) < 2 {
		return nil
	}
	var friendships []models.Friendship
	seen := map[[2]uint]bool{}
	for _, u := range users {
		edges := 1 + s.rnd.Intn(4)
		for i := 0; i < edges; i++ {
			target := users[s.rnd.Intn(len(users))]
			if target.ID == u.ID || seen[[2]uint{u.ID, target.ID}] {
				continue
			}
			seen[[2]uint{u.ID, target.ID}] = true
			status := models.FriendshipStatusAccepted
			if s.rnd.Intn(4) == 0 {
				status = models.FriendshipStatusPending
			}
			friendships = append(friendships, models.Friendship{
				UserID:   u.ID,
				FriendID: target.ID,
				Status:   status,
			})
		}
	}
	if len(friendships) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(&friendships, 100).Error; err != nil {
		return fmt.Errorf("seeding friendships: %w", err)
	}
	log.Printf("seeded %d friendships", len(friendships))
	return nil
}

func (s *Seeder) seedPosts(users []models.User, n int) ([]models.Post, error) {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rnd.Intn(len(users))]
		post := models.Post{
			UserID:    owner.ID,
			Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
			CreatedAt: s.pastTime(30 * 24 * time.Hour),
		}
		if s.rnd.Intn(2) == 0 {
			url := fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
			kind := models.MediaTypeImage
			if s.rnd.Intn(5) == 0 {
				kind = models.MediaTypeVideo
			}
			post.MediaURL = &url
			post.MediaType = &kind
		}
		posts = append(posts, post)
	}
	if err := s.db.CreateInBatches(&posts, 100).Error; err != nil {
		return nil, fmt.Errorf("seeding posts: %w", err)
	}
	log.Printf("seeded %d posts", len(posts))
	return posts, nil
}

// seedComments adds top-level comments to roughly half the posts, with the
// occasional reply.
func (s *Seeder) seedComments(users []models.User, posts []models.Post) error {
	var comments []models.Comment
	for _, p := range posts {
		if s.rnd.Intn(2) == 0 {
			continue
		}
		top := models.Comment{
			PostID:  p.ID,
			UserID:  users[s.rnd.Intn(len(users))].ID,
			Content: gofakeit.Sentence(8),
		}
		if err := s.db.Create(&top).Error; err != nil {
			return fmt.Errorf("seeding comments: %w", err)
		}
		if s.rnd.Intn(3) == 0 {
			comments = append(comments, models.Comment{
				PostID:          p.ID,
				UserID:          users[s.rnd.Intn(len(users))].ID,
				ParentCommentID: &top.ID,
				Content:         gofakeit.Sentence(6),
			})
		}
	}
	if len(comments) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(&comments, 100).Error; err != nil {
		return fmt.Errorf("seeding replies: %w", err)
	}
	log.Printf("seeded %d replies", len(comments))
	return nil
}

// seedStories gives a third of the users a fresh story; a few get an
// already-expired one so the read-side filter has something to hide.
func (s *Seeder) seedStories(users []models.User) error {
	var stories []models.Story
	for _, u := range users {
		if s.rnd.Intn(3) != 0 {
			continue
		}
		story := models.Story{
			UserID:    u.ID,
			MediaURL:  fmt.Sprintf("https://picsum.photos/seed/story-%s/1080/1920", gofakeit.UUID()),
			MediaType: models.MediaTypeImage,
		}
		if s.rnd.Intn(4) == 0 {
			story.CreatedAt = time.Now().Add(-36 * time.Hour)
			story.ExpiresAt = story.CreatedAt.Add(models.StoryTTL)
		}
		stories = append(stories, story)
	}
	if len(stories) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(&stories, 100).Error; err != nil {
		return fmt.Errorf("seeding stories: %w", err)
	}
	log.Printf("seeded %d stories", len(stories))
	return nil
}

func (s *Seeder) pastTime(window time.Duration) time.Time {
	return time.Now().Add(-time.Duration(s.rnd.Int63n(int64(window))))
}
