package handlers

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"careersync/backend/internal/models"
	"careersync/backend/internal/repositories"
	"careersync/backend/internal/services"
)

type JobsHandler struct {
	searchService services.JobSearchService
	analyzer      services.ResumeAnalyzerService
	pdfParser     services.PDFParserService
	jobRepo       repositories.JobRepository
}

func NewJobsHandler(
	searchService services.JobSearchService,
	analyzer services.ResumeAnalyzerService,
	pdfParser services.PDFParserService,
	jobRepo repositories.JobRepository,
) *JobsHandler {
	return &JobsHandler{
		searchService: searchService,
		analyzer:      analyzer,
		pdfParser:     pdfParser,
		jobRepo:       jobRepo,
	}
}

// HandleManualSearch handles GET /jobs/manual-search
func (h *JobsHandler) HandleManualSearch(c *fiber.Ctx) error {
	role := c.Query("role")
	if role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role is required",
		})
	}

	location := c.Query("location", "Remote")
	timeRange := c.Query("time_range")
	platforms := c.Query("platforms")

	query := role
	if experience := c.Query("experience"); experience != "" {
		query += " " + experience
	}

	results := h.searchService.Search(c.Context(), query, location, timeRange, platforms)
	return c.JSON(results)
}

// HandleSearchByResume handles POST /jobs/search-by-resume. The resume is
// scanned for search parameters only; nothing is persisted.
func (h *JobsHandler) HandleSearchByResume(c *fiber.Ctx) error {
	content, err := readPDFUpload(c)
	if err != nil {
		return err
	}

	text, err := h.pdfParser.ExtractText(content)
	if err != nil {
		if errors.Is(err, services.ErrNoText) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Could not extract text from this PDF. It might be an image-only PDF.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "PDF extraction failed",
		})
	}

	params := h.analyzer.ExtractSearchParams(c.Context(), text)

	query := params.Role
	if len(params.Skills) > 0 {
		skills := params.Skills
		if len(skills) > 2 {
			skills = skills[:2]
		}
		query += " " + strings.Join(skills, " ")
	}
	if params.ExperienceLevel != "" {
		query += " " + params.ExperienceLevel
	}

	location := c.Query("location", "Remote")
	timeRange := c.Query("time_range")

	results := h.searchService.Search(c.Context(), strings.TrimSpace(query), location, timeRange, "")
	return c.JSON(results)
}

// HandleSaveJob handles POST /jobs/save
func (h *JobsHandler) HandleSaveJob(c *fiber.Ctx) error {
	var req models.JobSaveRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.UserEmail == "" || req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_email and title are required",
		})
	}

	job := &models.SavedJob{
		UserEmail:   req.UserEmail,
		Title:       req.Title,
		CompanyName: req.CompanyName,
		Location:    req.Location,
		ApplyLink:   req.ApplyLink,
		Platform:    req.Platform,
	}

	created, err := h.jobRepo.Save(job)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save job",
		})
	}

	if !created {
		return c.JSON(models.MessageResponse{Message: "Job already saved"})
	}
	return c.JSON(models.MessageResponse{Message: "Job saved successfully"})
}

// HandleGetSavedJobs handles GET /jobs/saved/:user_email
func (h *JobsHandler) HandleGetSavedJobs(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindByEmail(c.Params("user_email"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load saved jobs",
		})
	}

	if jobs == nil {
		jobs = []models.SavedJob{}
	}
	return c.JSON(jobs)
}

// HandleDeleteSavedJob handles DELETE /jobs/saved/:job_id
func (h *JobsHandler) HandleDeleteSavedJob(c *fiber.Ctx) error {
	jobID, err := strconv.ParseUint(c.Params("job_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if err := h.jobRepo.DeleteByID(uint(jobID)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove job",
		})
	}

	return c.JSON(models.MessageResponse{Message: "Job removed successfully"})
}

// readPDFUpload pulls the multipart "file" field and enforces the PDF-only
// rule shared by search-by-resume and resume analysis. Returned errors are
// fiber errors shaped by the app error handler.
func readPDFUpload(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Only PDF files allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to read uploaded file")
	}

	return content, nil
}
