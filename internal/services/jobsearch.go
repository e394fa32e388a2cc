package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"careersync/backend/internal/config"
	"careersync/backend/internal/models"
)

// JobSearchService queries the SerpAPI google_jobs engine and normalizes
// results. Search never returns an error: upstream failures become a single
// synthetic error item so callers always get a renderable list.
type JobSearchService interface {
	Search(ctx context.Context, query, location, timeRange, platforms string) []models.JobResult
}

type jobSearchService struct {
	cfg        config.SearchConfig
	httpClient *http.Client
}

func NewJobSearchService(cfg config.SearchConfig) JobSearchService {
	return &jobSearchService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type serpJob struct {
	JobID              string `json:"job_id"`
	Title              string `json:"title"`
	CompanyName        string `json:"company_name"`
	Location           string `json:"location"`
	Description        string `json:"description"`
	Thumbnail          string `json:"thumbnail"`
	SalaryInfo         string `json:"salary_info"`
	DetectedExtensions struct {
		Salary   string `json:"salary"`
		JobType  string `json:"job_type"`
		PostedAt string `json:"posted_at"`
	} `json:"detected_extensions"`
	ApplyOptions []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"apply_options"`
}

type serpResponse struct {
	Error       string    `json:"error"`
	JobsResults []serpJob `json:"jobs_results"`
	Pagination  struct {
		NextPageToken string `json:"next_page_token"`
	} `json:"serpapi_pagination"`
}

// Search implements JobSearchService.
func (s *jobSearchService) Search(ctx context.Context, query, location, timeRange, platforms string) []models.JobResult {
	// The upstream API rejects "Remote" as a location value.
	if strings.EqualFold(location, "remote") || location == "" {
		location = s.cfg.DefaultRegion
	}

	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", query)
	params.Set("location", location)
	params.Set("hl", "en")
	params.Set("gl", s.cfg.Country)
	params.Set("api_key", s.cfg.APIKey)
	if timeRange != "" {
		params.Set("chips", "date_posted:"+timeRange)
	}

	var allJobs []models.JobResult
	nextPageToken := ""

	for page := 0; page < s.cfg.MaxPages; page++ {
		pageParams := url.Values{}
		for key, values := range params {
			pageParams[key] = values
		}
		if nextPageToken != "" {
			pageParams.Set("next_page_token", nextPageToken)
		}

		result, err := s.fetchPage(ctx, pageParams)
		if err != nil {
			log.Printf("❌ Job search failed on page %d: %v\n", page+1, err)
			if len(allJobs) == 0 {
				return []models.JobResult{errorResult(err)}
			}
			break
		}

		if result.Error != "" {
			log.Printf("❌ Upstream error on page %d: %s\n", page+1, result.Error)
			break
		}

		if len(result.JobsResults) == 0 {
			break
		}

		for _, job := range result.JobsResults {
			if job.CompanyName == "" {
				continue
			}
			allJobs = append(allJobs, normalizeJob(job))
		}

		nextPageToken = result.Pagination.NextPageToken
		if nextPageToken == "" {
			break
		}
	}

	if allJobs == nil {
		allJobs = []models.JobResult{}
	}

	return filterByPlatforms(allJobs, platforms)
}

func (s *jobSearchService) fetchPage(ctx context.Context, params url.Values) (*serpResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var result serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &result, nil
}

func normalizeJob(job serpJob) models.JobResult {
	applyLink := "#"
	platform := "Google Jobs"
	if len(job.ApplyOptions) > 0 {
		if job.ApplyOptions[0].Link != "" {
			applyLink = job.ApplyOptions[0].Link
		}
		if job.ApplyOptions[0].Title != "" {
			platform = job.ApplyOptions[0].Title
		}
	}

	salary := "Salary Not Disclosed"
	if job.SalaryInfo != "" {
		salary = job.SalaryInfo
	} else if job.DetectedExtensions.Salary != "" {
		salary = job.DetectedExtensions.Salary
	}

	jobType := job.DetectedExtensions.JobType
	if jobType == "" {
		jobType = "Not Specified"
	}

	postedAt := job.DetectedExtensions.PostedAt
	if postedAt == "" {
		postedAt = "Recently"
	}

	location := job.Location
	if location == "" {
		location = "Remote"
	}

	description := job.Description
	if description == "" {
		description = "No description available."
	}

	return models.JobResult{
		JobID:       job.JobID,
		Title:       job.Title,
		CompanyName: job.CompanyName,
		Location:    location,
		Description: description,
		Salary:      salary,
		JobType:     jobType,
		Thumbnail:   job.Thumbnail,
		PostedAt:    postedAt,
		ApplyLink:   applyLink,
		Platform:    platform,
		IsVerified:  job.Thumbnail != "",
	}
}

// filterByPlatforms keeps results whose platform name contains any of the
// requested substrings. Near-unrestrictive requests (5 or more platforms)
// skip filtering; a filter that matches nothing falls back to the first 20
// unfiltered results instead of returning an empty list.
func filterByPlatforms(jobs []models.JobResult, platforms string) []models.JobResult {
	if platforms == "" {
		return jobs
	}

	var requested []string
	for _, name := range strings.Split(platforms, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			requested = append(requested, name)
		}
	}

	if len(requested) == 0 || len(requested) >= 5 {
		return jobs
	}

	var filtered []models.JobResult
	for _, job := range jobs {
		platform := strings.ToLower(job.Platform)
		for _, name := range requested {
			if strings.Contains(platform, name) {
				filtered = append(filtered, job)
				break
			}
		}
	}

	if len(filtered) == 0 && len(jobs) > 0 {
		if len(jobs) > 20 {
			return jobs[:20]
		}
		return jobs
	}

	return filtered
}

func errorResult(err error) models.JobResult {
	return models.JobResult{
		Title:       "Search Error",
		CompanyName: "System",
		Location:    "N/A",
		Description: fmt.Sprintf("Error fetching jobs: %v", err),
		Salary:      "Salary Not Disclosed",
		JobType:     "Not Specified",
		PostedAt:    "Now",
		ApplyLink:   "#",
		Platform:    "Error",
		IsVerified:  false,
	}
}
