// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"heartbeat/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumFeelings int
	ShouldClean bool
	// SkipBcrypt stores a plain-text password to speed up large seeds.
	// Seeded accounts cannot log in when this is set.
	SkipBcrypt bool
}

// defaultStamps is the starter mood catalogue installed on first seed.
var defaultStamps = []models.Stamp{
	{Name: "happy", Score: 2},
	{Name: "excited", Score: 3},
	{Name: "calm", Score: 1},
	{Name: "neutral", Score: 0},
	{Name: "tired", Score: -1},
	{Name: "sad", Score: -2},
	{Name: "anxious", Score: -2},
	{Name: "angry", Score: -3},
}

// Seeder populates the database with demo data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Feelings go first so the FK constraints
// never block the parent deletes.
func (s *Seeder) ClearAll() error {
	log.Println("🧹 Clearing existing data...")
	if err := s.db.Where("1 = 1").Delete(&models.Feeling{}).Error; err != nil {
		return fmt.Errorf("failed to clear feelings: %w", err)
	}
	if err := s.db.Where("1 = 1").Delete(&models.Stamp{}).Error; err != nil {
		return fmt.Errorf("failed to clear stamps: %w", err)
	}
	if err := s.db.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}

// Seed populates the database with demo users, the stamp catalogue, and
// randomized feeling entries.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d feelings...", opts.NumUsers, opts.NumFeelings)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	stamps, err := s.ensureStamps()
	if err != nil {
		return fmt.Errorf("failed to create stamps: %w", err)
	}
	log.Printf("✓ %d stamps available", len(stamps))

	users, err := s.createUsers(opts)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d demo users created", len(users))

	created, err := s.createFeelings(users, stamps, opts.NumFeelings)
	if err != nil {
		return fmt.Errorf("failed to create feelings: %w", err)
	}
	log.Printf("✓ %d feelings recorded", created)

	log.Println("🌱 Seeding complete")
	return nil
}

// ensureStamps installs the default catalogue, skipping names that already
// exist so reseeding without -clean stays idempotent.
func (s *Seeder) ensureStamps() ([]models.Stamp, error) {
	for i := range defaultStamps {
		stamp := defaultStamps[i]
		var count int64
		if err := s.db.Model(&models.Stamp{}).Where("name = ?", stamp.Name).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&stamp).Error; err != nil {
			return nil, err
		}
	}

	var stamps []models.Stamp
	if err := s.db.Order("score DESC").Find(&stamps).Error; err != nil {
		return nil, err
	}
	return stamps, nil
}

func (s *Seeder) createUsers(opts Options) ([]models.User, error) {
	password := "Password123!"
	stored := password
	if !opts.SkipBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		stored = string(hashed)
	}

	users := make([]models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Nickname: "anon_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12],
			Password: stored,
			IsActive: true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			// Collisions on generated usernames are rare, skip and move on.
			log.Printf("⚠️  skipping user %s: %v", user.Username, err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// clampRunes cuts s to at most max characters without splitting a rune.
func clampRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func (s *Seeder) createFeelings(users []models.User, stamps []models.Stamp, count int) (int, error) {
	if len(users) == 0 || len(stamps) == 0 {
		return 0, nil
	}

	created := 0
	for i := 0; i < count; i++ {
		user := users[s.rand.Intn(len(users))]
		stamp := stamps[s.rand.Intn(len(stamps))]

		comment := ""
		// Roughly a third of entries carry no comment, matching real usage.
		if s.rand.Intn(3) != 0 {
			comment = clampRunes(gofakeit.Sentence(s.rand.Intn(12)+3), 500)
		}

		feeling := models.Feeling{
			StampID:     stamp.ID,
			Comment:     comment,
			CreatedByID: user.ID,
			// realistic created_at spread over the last 90 days
			CreatedAt: time.Now().Add(-time.Duration(s.rand.Intn(90*24)) * time.Hour),
		}
		if err := s.db.Create(&feeling).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
