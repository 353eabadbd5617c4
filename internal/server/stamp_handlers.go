package server

import (
	"heartbeat/internal/middleware"
	"heartbeat/internal/models"
	"heartbeat/internal/service"

	"github.com/gofiber/fiber/v2"
)

type stampRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ListStamps returns the curated stamp catalogue
func (s *Server) ListStamps(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	stamps, err := s.stampService.ListStamps(c.UserContext(), limit, offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"stamps": stamps,
		"count":  len(stamps),
	})
}

// GetStamp returns a single stamp by ID
func (s *Server) GetStamp(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	stamp, err := s.stampService.GetStamp(c.UserContext(), id)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"stamp": stamp})
}

// CreateStamp adds a new stamp to the catalogue. Staff only.
func (s *Server) CreateStamp(c *fiber.Ctx) error {
	var req stampRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	stamp, err := s.stampService.CreateStamp(c.UserContext(), service.StampInput{
		Name:  req.Name,
		Score: req.Score,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "stamp created",
		"stamp_id", stamp.ID.String(), "name", stamp.Name)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"stamp": stamp})
}

// UpdateStamp overwrites a stamp's name and score. Staff only.
func (s *Server) UpdateStamp(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req stampRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	stamp, err := s.stampService.UpdateStamp(c.UserContext(), id, service.StampInput{
		Name:  req.Name,
		Score: req.Score,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"stamp": stamp})
}

// DeleteStamp removes a stamp and its dependent feelings. Staff only.
func (s *Server) DeleteStamp(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := s.stampService.DeleteStamp(c.UserContext(), id); err != nil {
		return mapServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "stamp deleted",
		"stamp_id", id.String())

	return c.JSON(fiber.Map{"message": "Stamp deleted"})
}
