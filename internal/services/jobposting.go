package services

import (
	"context"
	"strings"

	"interview-engine-backend/internal/llm"

	"go.uber.org/zap"
)

// JobPostingService extracts structured fields from a pasted job posting.
// It is a standalone helper: the interview engine never depends on its
// output being correct, and Parse always returns something usable.
type JobPostingService struct {
	provider llm.Provider
	logger   *zap.Logger
}

func NewJobPostingService(provider llm.Provider, logger *zap.Logger) *JobPostingService {
	return &JobPostingService{provider: provider, logger: logger}
}

type JobData struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Seniority        string   `json:"seniority"`
	Skills           []string `json:"skills"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	SalaryHint       string   `json:"salary_hint"`
}

const jobPostingSystemPrompt = `Extract structured data from the job posting the user pastes. Respond with ONLY a valid JSON object (no markdown, no code fences):

{
  "title": "...",
  "company": "...",
  "seniority": "junior|mid|senior|staff|unknown",
  "skills": ["..."],
  "requirements": ["..."],
  "responsibilities": ["..."],
  "salary_hint": "verbatim salary text or empty string"
}`

// Parse never fails: an unusable model response degrades to the templated
// heuristic extraction.
func (s *JobPostingService) Parse(ctx context.Context, posting string) *JobData {
	content, err := s.provider.Complete(ctx, jobPostingSystemPrompt, posting)
	if err == nil {
		var data JobData
		if perr := decodeModelJSON(content, &data); perr == nil && data.Title != "" {
			return &data
		}
	} else {
		s.logger.Warn("job posting extraction failed, using template", zap.Error(err))
	}
	return s.template(posting)
}

// template is the deterministic fallback: a best-effort line scan with
// generic defaults for anything it cannot find.
func (s *JobPostingService) template(posting string) *JobData {
	data := &JobData{
		Title:     "Software Engineer",
		Seniority: "unknown",
	}

	lines := strings.Split(posting, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if data.Title == "Software Engineer" && i < 5 && len(line) < 80 {
			data.Title = line
		}
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "requirement") || strings.Contains(lower, "must have"):
			data.Requirements = append(data.Requirements, line)
		case strings.Contains(lower, "responsib"):
			data.Responsibilities = append(data.Responsibilities, line)
		case strings.Contains(lower, "salary") || strings.Contains(lower, "compensation"):
			data.SalaryHint = line
		}
	}

	lower := strings.ToLower(posting)
	switch {
	case strings.Contains(lower, "senior"):
		data.Seniority = "senior"
	case strings.Contains(lower, "junior"):
		data.Seniority = "junior"
	case strings.Contains(lower, "staff"):
		data.Seniority = "staff"
	}

	if len(data.Requirements) == 0 {
		data.Requirements = []string{"Relevant professional experience", "Strong communication skills"}
	}
	if len(data.Skills) == 0 {
		data.Skills = []string{"problem solving", "teamwork"}
	}

	return data
}
