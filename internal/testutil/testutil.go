// Package testutil opens throwaway databases and builds fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"survey_backend/internal/config"
	"survey_backend/internal/model"
	"survey_backend/pkg/database"

	"gorm.io/gorm"
)

// SetupTestDB opens a migrated sqlite database in a temp dir; it is closed
// when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	}
	db, err := database.InitDB(cfg)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		database.Close(db)
	})
	return db
}

// SurveyOpts tweaks the survey fixture.
type SurveyOpts struct {
	Status       model.SurveyStatus
	Kind         model.SurveyKind
	ExpiresAt    *time.Time
	MaxResponses *int
	IsAnonymous  bool
	CreatorID    uint
}

// CreateSurvey inserts a bare survey row.
func CreateSurvey(t *testing.T, db *gorm.DB, opts SurveyOpts) *model.Survey {
	t.Helper()

	s := &model.Survey{
		Title:        "fixture survey",
		Kind:         opts.Kind,
		Status:       opts.Status,
		ExpiresAt:    opts.ExpiresAt,
		MaxResponses: opts.MaxResponses,
		IsAnonymous:  opts.IsAnonymous,
		CreatorID:    opts.CreatorID,
	}
	if s.Kind == "" {
		s.Kind = model.SurveySimple
	}
	if s.Status == "" {
		s.Status = model.SurveyPublished
	}
	if s.CreatorID == 0 {
		s.CreatorID = 1
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("create survey: %v", err)
	}
	return s
}

// CreateChoiceQuestion inserts a SINGLE_CHOICE question with one option per
// score.
func CreateChoiceQuestion(t *testing.T, db *gorm.DB, surveyID uint, scores ...float64) *model.Question {
	t.Helper()

	q := &model.Question{SurveyID: surveyID, Content: "pick one", Type: model.QuestionSingleChoice, Weight: 1}
	for i, s := range scores {
		q.Options = append(q.Options, model.QuestionOption{Content: "option", Score: s, Weight: 1, Order: i})
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q
}

// Count returns the number of rows of model m matching survey_id.
func Count(t *testing.T, db *gorm.DB, m interface{}, surveyID uint) int64 {
	t.Helper()

	var n int64
	if err := db.Model(m).Where("survey_id = ?", surveyID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func IntPtr(i int) *int {
	return &i
}

func UintPtr(u uint) *uint {
	return &u
}
