package server

import (
	"heartbeat/internal/middleware"
	"heartbeat/internal/models"
	"heartbeat/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type updateProfileRequest struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

type changePasswordRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

// GetMyProfile returns the authenticated user's profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	user, err := s.accountService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": user.Public()})
}

// GetUserProfile returns another user's public profile
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	user, err := s.accountService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": user.Public()})
}

// UpdateMyProfile overwrites the authenticated user's username and nickname
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Nickname: req.Nickname,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "profile updated",
		"user_id", userID.String())

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    user.Public(),
	})
}

// ChangePassword replaces the authenticated user's password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.accountService.ChangePassword(c.UserContext(), service.ChangePasswordInput{
		UserID:       userID,
		OldPassword:  req.OldPassword,
		NewPassword:  req.NewPassword,
		NewPassword2: req.NewPassword2,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "password changed",
		"user_id", userID.String())

	return c.JSON(fiber.Map{"message": "Password changed"})
}

// ListUsers returns all users, newest first. Staff only.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	users, err := s.accountService.ListUsers(c.UserContext(), limit, offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	return c.JSON(fiber.Map{
		"users": public,
		"count": len(public),
	})
}
