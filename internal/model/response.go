package model

import "time"

// Submission is one respondent session. UserID is nil for anonymous surveys,
// so the unique index only constrains identified respondents.
//
// swagger:model Submission
type Submission struct {
	UUIDBase
	SurveyID    uint      `gorm:"not null;uniqueIndex:idx_submission_survey_user" json:"surveyId"`
	UserID      *uint     `gorm:"uniqueIndex:idx_submission_survey_user" json:"userId"`
	SubmittedAt time.Time `gorm:"not null" json:"submittedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

// swagger:model Response
type Response struct {
	BaseModel
	SurveyID     uint      `gorm:"index;not null" json:"surveyId"`
	QuestionID   uint      `gorm:"index;not null" json:"questionId"`
	SubmissionID string    `gorm:"index;type:varchar(36);not null" json:"submissionId"`
	UserID       *uint     `gorm:"index" json:"userId"`
	OptionID     *uint     `gorm:"index" json:"optionId"`
	Score        *float64  `json:"score"`
	TextAnswer   *string   `gorm:"type:text" json:"textAnswer"`
	SubmittedAt  time.Time `gorm:"index;not null" json:"submittedAt"`
}

func (Response) TableName() string {
	return "responses"
}

// AllModels is the AutoMigrate set, parents before children.
func AllModels() []interface{} {
	return []interface{}{
		&Survey{},
		&Question{},
		&QuestionOption{},
		&Submission{},
		&Response{},
	}
}
