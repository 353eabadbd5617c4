package service

import (
	"context"
	"strings"
	"testing"

	"heartbeat/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uuid.UUID) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	usernameTakenFn func(context.Context, string, uuid.UUID) (bool, error)
	nicknameTakenFn func(context.Context, string, uuid.UUID) (bool, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uuid.UUID) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	return s.usernameTakenFn(ctx, username, excludeID)
}
func (s *userRepoStub) NicknameTaken(ctx context.Context, nickname string, excludeID uuid.UUID) (bool, error) {
	return s.nicknameTakenFn(ctx, nickname, excludeID)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uuid.UUID) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		usernameTakenFn: func(context.Context, string, uuid.UUID) (bool, error) { return false, nil },
		nicknameTakenFn: func(context.Context, string, uuid.UUID) (bool, error) { return false, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uuid.UUID) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

func assertValidationError(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, appErr.Message, message)
}

func TestAccountService_Register_Success(t *testing.T) {
	repo := noopUserRepo()
	var created *models.User
	repo.createFn = func(_ context.Context, u *models.User) error {
		created = u
		return nil
	}

	svc := NewAccountService(repo)
	user, err := svc.Register(context.Background(), RegisterInput{
		Username:  "alice",
		Password:  "Password123!",
		Password2: "Password123!",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)

	// The stored password must be a bcrypt hash, never the plain text.
	assert.NotEqual(t, "Password123!", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Password123!")))

	// Default nickname: anon_ followed by 12 hex characters.
	assert.True(t, strings.HasPrefix(user.Nickname, "anon_"), "nickname %q", user.Nickname)
	assert.Len(t, user.Nickname, len("anon_")+12)
}

func TestAccountService_Register_ChecksRunInOrder(t *testing.T) {
	// A username that is simultaneously taken and malformed must fail on
	// uniqueness first.
	repo := noopUserRepo()
	repo.usernameTakenFn = func(context.Context, string, uuid.UUID) (bool, error) { return true, nil }

	svc := NewAccountService(repo)
	_, err := svc.Register(context.Background(), RegisterInput{
		Username:  "bad name!",
		Password:  "weak",
		Password2: "weak",
	})
	assertValidationError(t, err, "already taken")
}

func TestAccountService_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		wantMsg string
	}{
		{
			name:    "missing fields",
			input:   RegisterInput{},
			wantMsg: "required",
		},
		{
			name: "invalid username format",
			input: RegisterInput{
				Username:  "has spaces",
				Password:  "Password123!",
				Password2: "Password123!",
			},
			wantMsg: "letters, digits",
		},
		{
			name: "password mismatch",
			input: RegisterInput{
				Username:  "alice",
				Password:  "Password123!",
				Password2: "Password456!",
			},
			wantMsg: "do not match",
		},
		{
			name: "weak password",
			input: RegisterInput{
				Username:  "alice",
				Password:  "short",
				Password2: "short",
			},
			wantMsg: "at least 8 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAccountService(noopUserRepo())
			_, err := svc.Register(context.Background(), tt.input)
			assertValidationError(t, err, tt.wantMsg)
		})
	}
}

func TestAccountService_Register_MismatchBeforeComplexity(t *testing.T) {
	// Confirmation mismatch is reported before the complexity chain even when
	// both passwords are weak.
	svc := NewAccountService(noopUserRepo())
	_, err := svc.Register(context.Background(), RegisterInput{
		Username:  "alice",
		Password:  "weak",
		Password2: "weaker",
	})
	assertValidationError(t, err, "do not match")
}

func TestAccountService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	active := &models.User{
		ID:       uuid.New(),
		Username: "alice",
		Password: string(hashed),
		IsActive: true,
	}

	tests := []struct {
		name     string
		username string
		password string
		stored   *models.User
		wantErr  string
	}{
		{
			name:     "success",
			username: "alice",
			password: "Password123!",
			stored:   active,
		},
		{
			name:     "missing fields",
			username: "",
			password: "",
			wantErr:  "Both username and password are required",
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "Password123!",
			stored:   nil,
			wantErr:  "Login failed",
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "WrongPass123!",
			stored:   active,
			wantErr:  "Login failed",
		},
		{
			name:     "inactive user",
			username: "alice",
			password: "Password123!",
			stored: &models.User{
				ID:       uuid.New(),
				Username: "alice",
				Password: string(hashed),
				IsActive: false,
			},
			wantErr: "Login failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := noopUserRepo()
			repo.getByUsernameFn = func(context.Context, string) (*models.User, error) {
				return tt.stored, nil
			}

			svc := NewAccountService(repo)
			user, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.stored.ID, user.ID)
				return
			}

			require.Error(t, err)
			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
			assert.Contains(t, appErr.Message, tt.wantErr)
		})
	}
}

func TestAccountService_Login_GenericFailureMessage(t *testing.T) {
	// Unknown username and wrong password must be indistinguishable.
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)

	unknownRepo := noopUserRepo()
	svc := NewAccountService(unknownRepo)
	_, errUnknown := svc.Login(context.Background(), "nobody", "Password123!")

	wrongRepo := noopUserRepo()
	wrongRepo.getByUsernameFn = func(context.Context, string) (*models.User, error) {
		return &models.User{Username: "alice", Password: string(hashed), IsActive: true}, nil
	}
	svc = NewAccountService(wrongRepo)
	_, errWrong := svc.Login(context.Background(), "alice", "WrongPass123!")

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAccountService_UpdateProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("both fields required", func(t *testing.T) {
		svc := NewAccountService(noopUserRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   userID,
			Username: "alice",
		})
		assertValidationError(t, err, "Please fill in every field")
	})

	t.Run("success overwrites both fields", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = func(context.Context, uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Username: "old", Nickname: "oldnick"}, nil
		}
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}

		svc := NewAccountService(repo)
		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   userID,
			Username: "alice",
			Nickname: "wonder",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "wonder", user.Nickname)
	})

	t.Run("resubmitting current values succeeds", func(t *testing.T) {
		// The uniqueness checks exclude the user's own row, so the repo stub
		// verifies the exclusion ID is passed through.
		repo := noopUserRepo()
		repo.usernameTakenFn = func(_ context.Context, _ string, excludeID uuid.UUID) (bool, error) {
			assert.Equal(t, userID, excludeID)
			return false, nil
		}
		repo.nicknameTakenFn = func(_ context.Context, _ string, excludeID uuid.UUID) (bool, error) {
			assert.Equal(t, userID, excludeID)
			return false, nil
		}
		repo.getByIDFn = func(context.Context, uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Username: "alice", Nickname: "wonder"}, nil
		}

		svc := NewAccountService(repo)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   userID,
			Username: "alice",
			Nickname: "wonder",
		})
		assert.NoError(t, err)
	})

	t.Run("username taken by someone else", func(t *testing.T) {
		repo := noopUserRepo()
		repo.usernameTakenFn = func(context.Context, string, uuid.UUID) (bool, error) { return true, nil }

		svc := NewAccountService(repo)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   userID,
			Username: "bob",
			Nickname: "wonder",
		})
		assertValidationError(t, err, "already taken")
	})

	t.Run("nickname too long", func(t *testing.T) {
		svc := NewAccountService(noopUserRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   userID,
			Username: "alice",
			Nickname: strings.Repeat("n", 31),
		})
		assertValidationError(t, err, "30")
	})
}

func TestAccountService_ChangePassword(t *testing.T) {
	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("OldPass123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	newRepo := func() *userRepoStub {
		repo := noopUserRepo()
		repo.getByIDFn = func(context.Context, uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Password: string(hashed)}, nil
		}
		return repo
	}

	t.Run("success", func(t *testing.T) {
		repo := newRepo()
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}

		svc := NewAccountService(repo)
		err := svc.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:       userID,
			OldPassword:  "OldPass123!",
			NewPassword:  "NewPass456!",
			NewPassword2: "NewPass456!",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("NewPass456!")))
	})

	t.Run("wrong old password", func(t *testing.T) {
		svc := NewAccountService(newRepo())
		err := svc.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:       userID,
			OldPassword:  "WrongOld123!",
			NewPassword:  "NewPass456!",
			NewPassword2: "NewPass456!",
		})
		assertValidationError(t, err, "Current password is incorrect")
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		svc := NewAccountService(newRepo())
		err := svc.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:       userID,
			OldPassword:  "OldPass123!",
			NewPassword:  "NewPass456!",
			NewPassword2: "Different789!",
		})
		assertValidationError(t, err, "do not match")
	})

	t.Run("weak new password", func(t *testing.T) {
		svc := NewAccountService(newRepo())
		err := svc.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:       userID,
			OldPassword:  "OldPass123!",
			NewPassword:  "alllowercase1!",
			NewPassword2: "alllowercase1!",
		})
		assertValidationError(t, err, "uppercase")
	})
}
