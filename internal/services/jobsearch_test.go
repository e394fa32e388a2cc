package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"careersync/backend/internal/config"
	"careersync/backend/internal/models"
)

func newTestSearchService(baseURL string) JobSearchService {
	return NewJobSearchService(config.SearchConfig{
		APIKey:        "test-key",
		BaseURL:       baseURL,
		DefaultRegion: "India",
		Country:       "in",
		MaxPages:      4,
		Timeout:       5 * time.Second,
	})
}

func jobJSON(title, company, platform, thumbnail string) string {
	return fmt.Sprintf(`{
		"job_id": "id-%s",
		"title": %q,
		"company_name": %q,
		"location": "Bangalore",
		"description": "A role",
		"thumbnail": %q,
		"apply_options": [{"title": %q, "link": "https://example.com/apply"}]
	}`, title, title, company, thumbnail, platform)
}

func TestSearchFollowsPageTokensAndNormalizes(t *testing.T) {
	var requests []url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Query())
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("next_page_token") == "" {
			fmt.Fprintf(w, `{
				"jobs_results": [%s, %s],
				"serpapi_pagination": {"next_page_token": "page2"}
			}`, jobJSON("Backend Dev", "Acme", "LinkedIn", "https://img.example/a.png"),
				jobJSON("Data Engineer", "Globex", "Indeed", ""))
			return
		}
		fmt.Fprintf(w, `{"jobs_results": [%s]}`, jobJSON("SRE", "Initech", "Naukri.com", ""))
	}))
	defer server.Close()

	svc := newTestSearchService(server.URL)
	results := svc.Search(context.Background(), "backend developer", "Remote", "week", "")

	if len(requests) != 2 {
		t.Fatalf("expected 2 upstream requests, got %d", len(requests))
	}
	if got := requests[0].Get("location"); got != "India" {
		t.Fatalf("expected Remote substituted with India, got %q", got)
	}
	if got := requests[0].Get("chips"); got != "date_posted:week" {
		t.Fatalf("expected date_posted chip, got %q", got)
	}
	if got := requests[1].Get("next_page_token"); got != "page2" {
		t.Fatalf("expected page token forwarded, got %q", got)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 normalized results, got %d", len(results))
	}
	first := results[0]
	if !first.IsVerified {
		t.Fatalf("result with thumbnail should be verified")
	}
	if results[1].IsVerified {
		t.Fatalf("result without thumbnail should not be verified")
	}
	if first.Salary != "Salary Not Disclosed" {
		t.Fatalf("expected salary fallback, got %q", first.Salary)
	}
	if first.JobType != "Not Specified" {
		t.Fatalf("expected job type fallback, got %q", first.JobType)
	}
	if first.Platform != "LinkedIn" {
		t.Fatalf("expected platform from apply options, got %q", first.Platform)
	}
}

func TestSearchStopsAtPageCap(t *testing.T) {
	var requestCount int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"jobs_results": [%s],
			"serpapi_pagination": {"next_page_token": "more"}
		}`, jobJSON("Dev", "Acme", "LinkedIn", ""))
	}))
	defer server.Close()

	svc := newTestSearchService(server.URL)
	results := svc.Search(context.Background(), "dev", "Pune", "", "")

	if requestCount != 4 {
		t.Fatalf("expected exactly 4 pages fetched, got %d", requestCount)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
}

func TestSearchSkipsResultsWithoutCompany(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jobs_results": [%s, {"title": "Ghost Role"}]}`,
			jobJSON("Dev", "Acme", "LinkedIn", ""))
	}))
	defer server.Close()

	svc := newTestSearchService(server.URL)
	results := svc.Search(context.Background(), "dev", "Pune", "", "")

	if len(results) != 1 {
		t.Fatalf("expected result without company skipped, got %d results", len(results))
	}
}

func TestSearchUpstreamFailureReturnsErrorItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestSearchService(server.URL)
	results := svc.Search(context.Background(), "dev", "Pune", "", "")

	if len(results) != 1 {
		t.Fatalf("expected single synthetic error item, got %d", len(results))
	}
	if results[0].Platform != "Error" || results[0].Title != "Search Error" {
		t.Fatalf("unexpected synthetic item %+v", results[0])
	}
}

func TestFilterByPlatformsFallsBackToUnfiltered(t *testing.T) {
	jobs := make([]models.JobResult, 25)
	for i := range jobs {
		jobs[i] = models.JobResult{Title: fmt.Sprintf("Job %d", i), Platform: "Naukri.com"}
	}

	filtered := filterByPlatforms(jobs, "LinkedIn,Indeed")

	if len(filtered) != 20 {
		t.Fatalf("expected top 20 unfiltered fallback, got %d", len(filtered))
	}
}

func TestFilterByPlatformsSkipsWhenNearlyUnrestrictive(t *testing.T) {
	jobs := []models.JobResult{
		{Platform: "Naukri.com"},
		{Platform: "Monster"},
	}

	filtered := filterByPlatforms(jobs, "LinkedIn,Indeed,Glassdoor,Monster,Naukri")

	if len(filtered) != len(jobs) {
		t.Fatalf("expected full set with 5+ platforms, got %d", len(filtered))
	}
}

func TestFilterByPlatformsMatchesSubstringCaseInsensitive(t *testing.T) {
	jobs := []models.JobResult{
		{Title: "A", Platform: "LinkedIn Jobs"},
		{Title: "B", Platform: "Indeed"},
		{Title: "C", Platform: "Naukri.com"},
	}

	filtered := filterByPlatforms(jobs, "linkedin")

	if len(filtered) != 1 || filtered[0].Title != "A" {
		t.Fatalf("expected only the LinkedIn result, got %+v", filtered)
	}
}
