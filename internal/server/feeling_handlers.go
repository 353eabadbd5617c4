package server

import (
	"heartbeat/internal/middleware"
	"heartbeat/internal/models"
	"heartbeat/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type recordFeelingRequest struct {
	StampID uuid.UUID `json:"stamp_id"`
	Comment string    `json:"comment"`
}

// RecordFeeling creates a feeling entry for the authenticated user
func (s *Server) RecordFeeling(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var req recordFeelingRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	feeling, err := s.feelingService.Record(c.UserContext(), service.RecordInput{
		CreatedBy: userID,
		StampID:   req.StampID,
		Comment:   req.Comment,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "feeling recorded",
		"feeling_id", feeling.ID.String(), "stamp_id", feeling.StampID.String())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"feeling": feeling})
}

// ListFeelings returns feelings across all users, newest first
func (s *Server) ListFeelings(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	feelings, err := s.feelingService.List(c.UserContext(), limit, offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"feelings": feelings,
		"count":    len(feelings),
	})
}

// ListMyFeelings returns the authenticated user's feelings, newest first
func (s *Server) ListMyFeelings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	limit, offset := parsePagination(c)

	feelings, err := s.feelingService.ListByUser(c.UserContext(), userID, limit, offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"feelings": feelings,
		"count":    len(feelings),
	})
}

// DeleteFeeling removes a feeling entry. Authors may delete their own
// entries; staff may delete any.
func (s *Server) DeleteFeeling(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := s.feelingService.Delete(c.UserContext(), userID, id); err != nil {
		return mapServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "feeling deleted",
		"feeling_id", id.String(), "actor_id", userID.String())

	return c.JSON(fiber.Map{"message": "Feeling deleted"})
}
