package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"interview-engine-backend/internal/models"

	"gorm.io/gorm"
)

// ArchiveService persists completed interviews. The live engine never reads
// from it; it exists so finished reports survive a restart and can be listed.
type ArchiveService struct {
	db *gorm.DB
}

func NewArchiveService(db *gorm.DB) *ArchiveService {
	return &ArchiveService{db: db}
}

type archivePayload struct {
	Session      *models.Session     `json:"session"`
	OverallScore models.OverallScore `json:"overall_score"`
	Summary      models.Report       `json:"summary"`
	Evaluations  []models.Evaluation `json:"evaluations"`
}

func (s *ArchiveService) Save(session *models.Session, overall models.OverallScore, summary models.Report, evaluations []models.Evaluation) error {
	payload, err := json.Marshal(archivePayload{
		Session:      session,
		OverallScore: overall,
		Summary:      summary,
		Evaluations:  evaluations,
	})
	if err != nil {
		return fmt.Errorf("marshal archive payload: %w", err)
	}

	record := models.SessionArchive{
		SessionID:  session.ID,
		Type:       session.Type,
		Position:   session.Position,
		Industry:   session.Industry,
		Difficulty: session.Difficulty,
		Percentage: overall.Percentage,
		Grade:      overall.Grade,
		Payload:    string(payload),
	}
	return s.db.Create(&record).Error
}

func (s *ArchiveService) List(limit int) ([]models.SessionArchive, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var records []models.SessionArchive
	err := s.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

func (s *ArchiveService) Get(sessionID string) (*models.SessionArchive, *models.InterviewResults, error) {
	var record models.SessionArchive
	if err := s.db.Where("session_id = ?", sessionID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &NotFoundError{Resource: "archive", ID: sessionID}
		}
		return nil, nil, err
	}

	var payload archivePayload
	if err := json.Unmarshal([]byte(record.Payload), &payload); err != nil {
		return nil, nil, fmt.Errorf("decode archive payload: %w", err)
	}

	return &record, &models.InterviewResults{
		Session:      payload.Session,
		OverallScore: payload.OverallScore,
		Summary:      payload.Summary,
		Evaluations:  payload.Evaluations,
	}, nil
}
