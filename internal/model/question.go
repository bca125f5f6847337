package model

type QuestionType string

const (
	QuestionRating       QuestionType = "RATING"
	QuestionSingleChoice QuestionType = "SINGLE_CHOICE"
	QuestionText         QuestionType = "TEXT"
	QuestionProject      QuestionType = "PROJECT"
	QuestionDimension    QuestionType = "DIMENSION"
)

// IsFlat reports whether the type belongs to simple (non-weighted) surveys.
func (t QuestionType) IsFlat() bool {
	switch t {
	case QuestionRating, QuestionSingleChoice, QuestionText:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type own QuestionOptions.
func (t QuestionType) HasOptions() bool {
	return t == QuestionSingleChoice || t == QuestionDimension
}

// Question is the storage row for every question variant. Projects and
// dimensions form a two-level tree through ParentID; the tree is rebuilt on
// read and never held as pointers between rows.
//
// swagger:model Question
type Question struct {
	BaseModel
	SurveyID uint             `gorm:"index;not null" json:"surveyId"`
	ParentID *uint            `gorm:"index" json:"parentId"`
	Content  string           `gorm:"type:text;not null" json:"content"`
	Type     QuestionType     `gorm:"size:20;not null" json:"type"`
	Weight   float64          `gorm:"not null" json:"weight"`
	Order    int              `gorm:"not null;default:0" json:"order"`
	ImageURL *string          `gorm:"size:512" json:"imageUrl"`
	Options  []QuestionOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model QuestionOption
type QuestionOption struct {
	BaseModel
	QuestionID uint    `gorm:"not null;uniqueIndex:idx_option_question_order" json:"questionId"`
	Content    string  `gorm:"type:text;not null" json:"content"`
	Score      float64 `gorm:"not null;default:0" json:"score"`
	Weight     float64 `gorm:"not null" json:"weight"` // reserved
	Order      int     `gorm:"not null;default:0;uniqueIndex:idx_option_question_order" json:"order"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
