package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"careersync/backend/internal/models"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 0; background-color: #0f172a; font-family: Georgia, serif; color: #e2e8f0;">
  <div style="max-width: 600px; margin: 0 auto; padding: 40px 30px;">
    <h1 style="color: #c5a059; font-size: 24px; margin-bottom: 4px;">Resume Analysis Report</h1>
    <p style="color: #94a3b8; margin-top: 0;">Target role: {{.JobRole}}</p>

    <div style="background-color: #1e293b; border-radius: 8px; padding: 24px; margin: 20px 0; text-align: center;">
      <span style="font-size: 42px; color: #c5a059;">{{.Report.ATSScore}}</span>
      <span style="color: #94a3b8;">/ 100 ATS score</span>
    </div>

    <p style="line-height: 1.6;">{{.Report.Summary}}</p>

    <h2 style="color: #c5a059; font-size: 18px;">Strengths</h2>
    <ul style="list-style: none; padding: 0;">
      {{range .Report.DetailedStrengths}}<li style="margin-bottom: 10px; padding-left: 15px; border-left: 2px solid #c5a059;">{{.}}</li>{{else}}<li>No specific strengths identified.</li>{{end}}
    </ul>

    <h2 style="color: #c5a059; font-size: 18px;">Areas To Improve</h2>
    <ul style="list-style: none; padding: 0;">
      {{range .Report.DetailedImprovements}}<li style="margin-bottom: 10px; padding-left: 15px; border-left: 2px solid #64748b;">{{.}}</li>{{else}}<li>No specific improvements identified.</li>{{end}}
    </ul>

    <h2 style="color: #c5a059; font-size: 18px;">Improvement Plan</h2>
    <ul style="list-style: none; padding: 0;">
      {{range .Report.ImprovementPlan}}<li style="margin-bottom: 10px; padding-left: 15px; border-left: 2px solid #c5a059;">{{.}}</li>{{else}}<li>Continue refining your application.</li>{{end}}
    </ul>

    <blockquote style="border-left: 3px solid #c5a059; margin: 24px 0; padding-left: 16px; color: #94a3b8; font-style: italic;">
      {{if .Report.MotivationalQuote}}{{.Report.MotivationalQuote}}{{else}}Your potential is limitless.{{end}}
    </blockquote>

    <p style="color: #475569; font-size: 12px; text-align: center;">CareerSync &middot; {{.Year}}</p>
  </div>
</body>
</html>`))

// RenderAnalysisReport renders the fixed HTML email report for one resume
// analysis.
func RenderAnalysisReport(report models.AnalysisReport, jobRole string) (string, error) {
	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, struct {
		Report  models.AnalysisReport
		JobRole string
		Year    int
	}{
		Report:  report,
		JobRole: jobRole,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}
