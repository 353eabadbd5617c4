// Package main provides staff management utilities for Heartbeat.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"heartbeat/internal/config"
	"heartbeat/internal/database"
	"heartbeat/internal/models"
	"heartbeat/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go create-superuser <username> <password>  - Create a superuser account")
		fmt.Println("  go run ./cmd/admin/main.go promote <user_id>                        - Grant staff status")
		fmt.Println("  go run ./cmd/admin/main.go demote <user_id>                         - Revoke staff status")
		fmt.Println("  go run ./cmd/admin/main.go list-staff                               - List all staff users")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "create-superuser":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/admin/main.go create-superuser <username> <password>")
			os.Exit(1)
		}
		createSuperuser(db, os.Args[2], os.Args[3])

	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go promote <user_id>")
			os.Exit(1)
		}
		setStaff(db, os.Args[2], true)

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go demote <user_id>")
			os.Exit(1)
		}
		setStaff(db, os.Args[2], false)

	case "list-staff":
		listStaff(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func createSuperuser(db *gorm.DB, username, password string) {
	if err := validation.ValidateUsername(username); err != nil {
		log.Fatalf("Invalid username: %v", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		log.Fatalf("Invalid password: %v", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if count > 0 {
		fmt.Printf("User %s already exists\n", username)
		os.Exit(1)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Username:    username,
		Nickname:    "anon_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12],
		Password:    string(hashed),
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}

	fmt.Printf("✅ Superuser %s created (ID: %s)\n", user.Username, user.ID)
}

func setStaff(db *gorm.DB, rawID string, staff bool) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		log.Fatalf("Invalid user ID %q: %v", rawID, err)
	}

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", id)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsStaff == staff {
		state := "not staff"
		if staff {
			state = "already staff"
		}
		fmt.Printf("User %s (ID: %s) is %s\n", user.Username, user.ID, state)
		return
	}

	user.IsStaff = staff
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if staff {
		fmt.Printf("✅ Successfully granted staff status to %s (ID: %s)\n", user.Username, user.ID)
	} else {
		fmt.Printf("✅ Successfully revoked staff status from %s (ID: %s)\n", user.Username, user.ID)
	}
}

func listStaff(db *gorm.DB) {
	var staff []models.User
	if err := db.Where("is_staff = ?", true).Find(&staff).Error; err != nil {
		log.Fatalf("Failed to fetch staff users: %v", err)
	}

	if len(staff) == 0 {
		fmt.Println("No staff users found in the system")
		return
	}

	fmt.Println("\n📋 Current Staff:")
	fmt.Println("─────────────────────────────────────")
	for _, u := range staff {
		fmt.Printf("ID: %s | Username: %s | Superuser: %t\n", u.ID, u.Username, u.IsSuperuser)
	}
	fmt.Println("─────────────────────────────────────")
}
