package server

import (
	"net/http"
	"testing"
	"time"

	"heartbeat/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGetMyProfile(t *testing.T) {
	userID := uuid.New()
	joined := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByID", mock.Anything, userID).Return(&models.User{
		ID:         userID,
		Username:   "alice",
		Nickname:   "wonder",
		DateJoined: joined,
	}, nil)

	s := newTestServer(mockRepo, new(MockStampRepository), new(MockFeelingRepository))
	app := fiber.New()
	app.Get("/me", authAs(userID), s.GetMyProfile)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/me", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "wonder", user["nickname"])
	assert.Equal(t, "2026-03-14 09:26:53", user["date_joined"])
}

func TestUpdateMyProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UsernameTaken", mock.Anything, "alice2", userID).Return(false, nil)
		mockRepo.On("NicknameTaken", mock.Anything, "wonder2", userID).Return(false, nil)
		mockRepo.On("GetByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Username: "alice", Nickname: "wonder"}, nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		s := newTestServer(mockRepo, new(MockStampRepository), new(MockFeelingRepository))
		app := fiber.New()
		app.Put("/me", authAs(userID), s.UpdateMyProfile)

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/me", map[string]string{
			"username": "alice2",
			"nickname": "wonder2",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		user := body["user"].(map[string]any)
		assert.Equal(t, "alice2", user["username"])
		assert.Equal(t, "wonder2", user["nickname"])
	})

	t.Run("Partial update is rejected", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockStampRepository), new(MockFeelingRepository))
		app := fiber.New()
		app.Put("/me", authAs(userID), s.UpdateMyProfile)

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/me", map[string]string{
			"username": "alice2",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Contains(t, body["error"], "fill in every field")
	})

	t.Run("Username taken by another user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UsernameTaken", mock.Anything, "bob", userID).Return(true, nil)

		s := newTestServer(mockRepo, new(MockStampRepository), new(MockFeelingRepository))
		app := fiber.New()
		app.Put("/me", authAs(userID), s.UpdateMyProfile)

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/me", map[string]string{
			"username": "bob",
			"nickname": "wonder",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestChangePasswordHandler(t *testing.T) {
	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("OldPass123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	newApp := func(mockRepo *MockUserRepository) *fiber.App {
		s := newTestServer(mockRepo, new(MockStampRepository), new(MockFeelingRepository))
		app := fiber.New()
		app.Post("/me/password", authAs(userID), s.ChangePassword)
		return app
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Password: string(hashed)}, nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		resp, err := newApp(mockRepo).Test(jsonRequest(t, http.MethodPost, "/me/password", map[string]string{
			"old_password":  "OldPass123!",
			"new_password":  "NewPass456!",
			"new_password2": "NewPass456!",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Wrong current password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Password: string(hashed)}, nil)

		resp, err := newApp(mockRepo).Test(jsonRequest(t, http.MethodPost, "/me/password", map[string]string{
			"old_password":  "WrongOld123!",
			"new_password":  "NewPass456!",
			"new_password2": "NewPass456!",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Contains(t, body["error"], "Current password is incorrect")
	})
}

func TestListUsers(t *testing.T) {
	userID := uuid.New()

	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything, 20, 0).Return([]models.User{
		{ID: uuid.New(), Username: "alice"},
		{ID: uuid.New(), Username: "bob"},
	}, nil)

	s := newTestServer(mockRepo, new(MockStampRepository), new(MockFeelingRepository))
	app := fiber.New()
	app.Get("/users", authAs(userID), s.ListUsers)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/users", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 2, body["count"])
}
