package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"careersync/backend/internal/models"
	"careersync/backend/internal/repositories"
	"careersync/backend/internal/services"
)

type ResumeHandler struct {
	analyzer   services.ResumeAnalyzerService
	resumeRepo repositories.ResumeRepository
	dispatcher services.EmailDispatcher
}

func NewResumeHandler(
	analyzer services.ResumeAnalyzerService,
	resumeRepo repositories.ResumeRepository,
	dispatcher services.EmailDispatcher,
) *ResumeHandler {
	return &ResumeHandler{
		analyzer:   analyzer,
		resumeRepo: resumeRepo,
		dispatcher: dispatcher,
	}
}

// HandleAnalyze handles POST /resume/analyze. The email report is queued
// after the response payload is ready, never awaited.
func (h *ResumeHandler) HandleAnalyze(c *fiber.Ctx) error {
	email := c.FormValue("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	jobRole := c.FormValue("job_role")
	if jobRole == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_role is required",
		})
	}

	content, err := readPDFUpload(c)
	if err != nil {
		return err
	}

	resume, err := h.analyzer.Analyze(c.Context(), content, email, jobRole)
	if err != nil {
		if errors.Is(err, services.ErrNoText) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Could not extract text from this PDF. It might be an image-only PDF.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Resume analysis failed: " + err.Error(),
		})
	}

	h.dispatcher.Enqueue(services.EmailJob{
		To:      resume.Email,
		JobRole: resume.JobRole,
		Report:  resume.AnalysisJSON,
	})

	return c.JSON(models.AnalyzeResponse{
		ID:           resume.ID,
		ATSScore:     resume.ATSScore,
		AnalysisJSON: resume.AnalysisJSON,
		Message:      "Analysis complete.",
	})
}

// HandleSendEmail handles POST /resume/send-email/:resume_id
func (h *ResumeHandler) HandleSendEmail(c *fiber.Ctx) error {
	resumeID, err := strconv.ParseUint(c.Params("resume_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	resume, err := h.resumeRepo.FindByID(uint(resumeID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load resume",
		})
	}

	h.dispatcher.Enqueue(services.EmailJob{
		To:      resume.Email,
		JobRole: resume.JobRole,
		Report:  resume.AnalysisJSON,
	})

	return c.JSON(models.MessageResponse{Message: "Email is being sent!"})
}
