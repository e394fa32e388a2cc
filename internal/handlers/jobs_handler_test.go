package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"careersync/backend/internal/models"
	"careersync/backend/internal/repositories"
)

type stubSearch struct {
	lastQuery    string
	lastLocation string
	results      []models.JobResult
}

func (s *stubSearch) Search(ctx context.Context, query, location, timeRange, platforms string) []models.JobResult {
	s.lastQuery = query
	s.lastLocation = location
	return s.results
}

func newJobsApp(t *testing.T, search *stubSearch) *fiber.App {
	t.Helper()

	jobRepo := repositories.NewJobRepository(newTestDB(t))
	handler := NewJobsHandler(search, nil, nil, jobRepo)

	app := fiber.New()
	jobs := app.Group("/api/v1/jobs")
	jobs.Get("/manual-search", handler.HandleManualSearch)
	jobs.Post("/save", handler.HandleSaveJob)
	jobs.Get("/saved/:user_email", handler.HandleGetSavedJobs)
	jobs.Delete("/saved/:job_id", handler.HandleDeleteSavedJob)
	return app
}

func TestManualSearchRequiresRole(t *testing.T) {
	app := newJobsApp(t, &stubSearch{})

	resp := getJSON(t, app, "/api/v1/jobs/manual-search")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestManualSearchBuildsQuery(t *testing.T) {
	search := &stubSearch{results: []models.JobResult{{Title: "Backend Engineer", CompanyName: "Acme"}}}
	app := newJobsApp(t, search)

	resp := getJSON(t, app, "/api/v1/jobs/manual-search?role=Backend+Engineer&experience=Senior")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search returned status %d", resp.StatusCode)
	}

	var results []models.JobResult
	decodeBody(t, resp, &results)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if search.lastQuery != "Backend Engineer Senior" {
		t.Fatalf("unexpected query %q", search.lastQuery)
	}
	if search.lastLocation != "Remote" {
		t.Fatalf("expected default location Remote, got %q", search.lastLocation)
	}
}

func TestSaveListDeleteFlow(t *testing.T) {
	app := newJobsApp(t, &stubSearch{})

	save := models.JobSaveRequest{
		UserEmail:   "a@b.com",
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Platform:    "LinkedIn",
	}

	resp := postJSON(t, app, "/api/v1/jobs/save", save)
	var msg models.MessageResponse
	decodeBody(t, resp, &msg)
	if msg.Message != "Job saved successfully" {
		t.Fatalf("unexpected save message %q", msg.Message)
	}

	resp = postJSON(t, app, "/api/v1/jobs/save", save)
	decodeBody(t, resp, &msg)
	if msg.Message != "Job already saved" {
		t.Fatalf("expected duplicate save acknowledgment, got %q", msg.Message)
	}

	resp = getJSON(t, app, "/api/v1/jobs/saved/a@b.com")
	var jobs []models.SavedJob
	decodeBody(t, resp, &jobs)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 saved job, got %d", len(jobs))
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/saved/1", nil)
	delResp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	decodeBody(t, delResp, &msg)
	if msg.Message != "Job removed successfully" {
		t.Fatalf("unexpected delete message %q", msg.Message)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/saved/1", nil)
	delResp, err = app.Test(req, 5000)
	if err != nil {
		t.Fatalf("second delete request failed: %v", err)
	}
	if delResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for repeated delete, got %d", delResp.StatusCode)
	}
}

func TestSaveRejectsMissingFields(t *testing.T) {
	app := newJobsApp(t, &stubSearch{})

	resp := postJSON(t, app, "/api/v1/jobs/save", models.JobSaveRequest{Title: "Backend Engineer"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetSavedJobsReturnsEmptyArray(t *testing.T) {
	app := newJobsApp(t, &stubSearch{})

	resp := getJSON(t, app, "/api/v1/jobs/saved/nobody@b.com")
	var jobs []models.SavedJob
	decodeBody(t, resp, &jobs)
	if jobs == nil || len(jobs) != 0 {
		t.Fatalf("expected empty array, got %v", jobs)
	}
}
