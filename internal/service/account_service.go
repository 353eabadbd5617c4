// Package service contains the business logic for accounts, stamps, and feelings.
package service

import (
	"context"
	"fmt"
	"strings"

	"heartbeat/internal/models"
	"heartbeat/internal/observability"
	"heartbeat/internal/repository"
	"heartbeat/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// loginFailedMessage is returned for every failed login so the response does
// not reveal whether the username exists.
const loginFailedMessage = "Login failed. Username or password is incorrect."

// AccountService orchestrates registration, login, profile updates, and
// password changes.
type AccountService struct {
	users repository.UserRepository
}

// NewAccountService returns a new AccountService.
func NewAccountService(users repository.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// RegisterInput carries the raw registration fields.
type RegisterInput struct {
	Username  string
	Password  string
	Password2 string
}

// Register creates a new active, non-staff account. Checks run in a fixed
// order and stop at the first violation: username uniqueness, username
// format, password confirmation, then the password complexity chain.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	taken, err := s.users.UsernameTaken(ctx, in.Username, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError(fmt.Sprintf("The username %q is already taken", in.Username))
	}

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if in.Password != in.Password2 {
		return nil, models.NewValidationError("Passwords do not match")
	}

	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	nickname, err := s.generateNickname(ctx)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: in.Username,
		Nickname: nickname,
		Password: string(hashed),
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration may have won the race after the advisory
		// pre-check; the unique index is the source of truth.
		return nil, err
	}

	observability.RegistrationsTotal.Inc()
	return user, nil
}

// generateNickname produces a pseudo-anonymous default nickname. Collisions
// are improbable but retried anyway since nicknames are globally unique.
func (s *AccountService) generateNickname(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		candidate := "anon_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
		taken, err := s.users.NicknameTaken(ctx, candidate, uuid.Nil)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", models.NewInternalError(fmt.Errorf("could not generate a unique nickname"))
}

// Login verifies credentials and returns the matching user. Both fields are
// required; every failure mode yields the same generic authorization error.
func (s *AccountService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.NewUnauthorizedError("Both username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		observability.LoginFailures.Inc()
		return nil, models.NewUnauthorizedError(loginFailedMessage)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		observability.LoginFailures.Inc()
		return nil, models.NewUnauthorizedError(loginFailedMessage)
	}

	return user, nil
}

// UpdateProfileInput carries the raw profile-update fields.
type UpdateProfileInput struct {
	UserID   uuid.UUID
	Username string
	Nickname string
}

// UpdateProfile overwrites the user's username and nickname. Both fields are
// required; partial updates are rejected. Uniqueness checks exclude the
// user's own row so resubmitting current values succeeds.
func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.Username == "" || in.Nickname == "" {
		return nil, models.NewValidationError("Please fill in every field")
	}

	taken, err := s.users.UsernameTaken(ctx, in.Username, in.UserID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError(fmt.Sprintf("The username %q is already taken", in.Username))
	}

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := validation.ValidateNickname(in.Nickname); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	taken, err = s.users.NicknameTaken(ctx, in.Nickname, in.UserID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError(fmt.Sprintf("The nickname %q is already taken", in.Nickname))
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Nickname = in.Nickname
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePasswordInput carries the raw password-change fields.
type ChangePasswordInput struct {
	UserID       uuid.UUID
	OldPassword  string
	NewPassword  string
	NewPassword2 string
}

// ChangePassword replaces the stored hash after verifying the old password,
// the confirmation match, and the complexity chain, in that order.
func (s *AccountService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)); err != nil {
		return models.NewValidationError("Current password is incorrect")
	}

	if in.NewPassword != in.NewPassword2 {
		return models.NewValidationError("New passwords do not match")
	}

	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hashed)
	return s.users.Update(ctx, user)
}

// GetUserByID returns the user with the given ID.
func (s *AccountService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers returns users ordered by join date, newest first.
func (s *AccountService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.users.List(ctx, limit, offset)
}
