package model

import (
	"strings"
	"time"
)

type SurveyStatus string

const (
	SurveyDraft     SurveyStatus = "DRAFT"
	SurveyPublished SurveyStatus = "PUBLISHED"
	SurveyClosed    SurveyStatus = "CLOSED"

	// SurveyActiveLegacy is the historical spelling of SurveyPublished still
	// present in migrated rows.
	SurveyActiveLegacy SurveyStatus = "active"
)

// OpenStatuses lists every stored value meaning "accepting responses".
var OpenStatuses = []SurveyStatus{SurveyPublished, SurveyActiveLegacy}

// ParseSurveyStatus normalises user input; "active" maps to PUBLISHED.
func ParseSurveyStatus(s string) (SurveyStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DRAFT":
		return SurveyDraft, true
	case "PUBLISHED", "ACTIVE":
		return SurveyPublished, true
	case "CLOSED":
		return SurveyClosed, true
	}
	return "", false
}

// Canonical folds the legacy alias into PUBLISHED.
func (s SurveyStatus) Canonical() SurveyStatus {
	if s == SurveyActiveLegacy {
		return SurveyPublished
	}
	return s
}

func (s SurveyStatus) IsOpen() bool {
	return s.Canonical() == SurveyPublished
}

type SurveyKind string

const (
	SurveySimple   SurveyKind = "simple"
	SurveyWeighted SurveyKind = "weighted"
)

// swagger:model Survey
type Survey struct {
	BaseModel
	Title         string       `gorm:"size:255;not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	Kind          SurveyKind   `gorm:"size:20;not null;default:'simple'" json:"kind"`
	Status        SurveyStatus `gorm:"size:20;not null;default:'DRAFT';index" json:"status"`
	ExpiresAt     *time.Time   `json:"expiresAt"`
	IsAnonymous   bool         `gorm:"default:false" json:"isAnonymous"`
	IsPublic      bool         `gorm:"default:false" json:"isPublic"`
	MaxResponses  *int         `json:"maxResponses"`
	ResponseCount int          `gorm:"not null;default:0" json:"responseCount"`
	CreatorID     uint         `gorm:"index;not null" json:"creatorId"`
}

func (Survey) TableName() string {
	return "surveys"
}

// Expired reports whether the survey's deadline is at or before now.
func (s *Survey) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}
