package services

import (
	"context"
	"errors"
	"testing"

	"interview-engine-backend/internal/llm"

	"go.uber.org/zap"
)

const samplePosting = `Senior Backend Engineer
Acme Corp

Responsibilities: design and operate payment services.
Requirements: 5+ years of Go, PostgreSQL experience.
Salary: $150k-$180k plus equity.`

func TestJobPostingParseStructured(t *testing.T) {
	svc := NewJobPostingService(llm.NewMockProvider(llm.MockResponse{
		Content: `{"title": "Senior Backend Engineer", "company": "Acme Corp", "seniority": "senior", "skills": ["Go", "PostgreSQL"], "requirements": ["5+ years of Go"], "responsibilities": ["payment services"], "salary_hint": "$150k-$180k"}`,
	}), zap.NewNop())

	data := svc.Parse(context.Background(), samplePosting)
	if data.Title != "Senior Backend Engineer" {
		t.Errorf("unexpected title %q", data.Title)
	}
	if data.Seniority != "senior" {
		t.Errorf("unexpected seniority %q", data.Seniority)
	}
}

func TestJobPostingParseAlwaysSucceeds(t *testing.T) {
	svc := NewJobPostingService(llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")}), zap.NewNop())

	data := svc.Parse(context.Background(), samplePosting)
	if data == nil {
		t.Fatal("parse must always return data")
	}
	if data.Title == "" {
		t.Error("templated fallback still carries a title")
	}
	if data.Seniority != "senior" {
		t.Errorf("heuristic seniority expected, got %q", data.Seniority)
	}
	if len(data.Requirements) == 0 {
		t.Error("templated fallback still carries requirements")
	}
}

func TestJobPostingParseGarbageDegrades(t *testing.T) {
	svc := NewJobPostingService(llm.NewMockProvider(llm.MockResponse{Content: "not json"}), zap.NewNop())

	data := svc.Parse(context.Background(), "some posting text")
	if data == nil || data.Title == "" {
		t.Fatal("garbage output must degrade to the template")
	}
}
