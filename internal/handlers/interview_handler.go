package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"careersync/backend/internal/models"
	"careersync/backend/internal/repositories"
	"careersync/backend/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

// HandleStart handles POST /interview/start
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.UserEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_email is required",
		})
	}

	if req.JobRole == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_role is required",
		})
	}

	session, message, err := h.interviewService.Start(c.Context(), req.UserEmail, req.JobRole, req.Difficulty)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start interview: " + err.Error(),
		})
	}

	return c.JSON(models.StartInterviewResponse{
		SessionID: session.ID,
		Message:   message,
	})
}

// HandleChat handles POST /interview/chat
func (h *InterviewHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	message, err := h.interviewService.Advance(c.Context(), req.SessionID, req.UserAnswer)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to continue interview",
		})
	}

	return c.JSON(models.ChatResponse{Message: message})
}

// HandleHistory handles GET /interview/history/:session_id
func (h *InterviewHandler) HandleHistory(c *fiber.Ctx) error {
	sessionID, err := strconv.ParseUint(c.Params("session_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	transcript, err := h.interviewService.History(c.Context(), uint(sessionID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load interview history",
		})
	}

	return c.JSON(transcript)
}
