package server

import (
	"time"

	"heartbeat/internal/middleware"
	"heartbeat/internal/models"
	"heartbeat/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles user registration
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.Register(c.UserContext(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "registration rejected",
			"username", req.Username, "error", err.Error())
		return mapServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		"user_id", user.ID.String(), "username", user.Username)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration complete",
		"user":    user.Public(),
	})
}

// Login handles authentication and returns a signed JWT
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "login failed",
			"username", req.Username)
		return mapServiceError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in",
		"user_id", user.ID.String())

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// generateToken creates a signed JWT carrying the user ID as subject.
func (s *Server) generateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iss": "heartbeat-api",
		"aud": "heartbeat-client",
		"iat": now.Unix(),
		"exp": now.Add(7 * 24 * time.Hour).Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
