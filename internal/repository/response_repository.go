package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"survey_backend/internal/model"
	"survey_backend/internal/util"

	"gorm.io/gorm"
)

// ResponseRepository 答卷与回答记录的数据访问
type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// AdmissionGate 说明问卷在 now 时刻拒绝提交的原因
type AdmissionGate func(s *model.Survey, now time.Time) error

func openStatuses() []string {
	out := make([]string, len(model.OpenStatuses))
	for i, s := range model.OpenStatuses {
		out[i] = string(s)
	}
	return out
}

// SaveSubmission 原子地接收并保存一次答卷
//
// 第一条语句仅在问卷已发布、未过期且未达上限时递增回答计数，
// 并发提交在该行上串行，因此不会超过上限；未更新任何行时由 gate 判定拒绝原因
// 答卷行和所有回答行在同一事务中写入
func (r *ResponseRepository) SaveSubmission(ctx context.Context, now time.Time, sub *model.Submission, responses []model.Response, gate AdmissionGate) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Survey{}).
			Where("id = ?", sub.SurveyID).
			Where("status IN ?", openStatuses()).
			Where("expires_at IS NULL OR expires_at > ?", now).
			Where("max_responses IS NULL OR response_count < max_responses").
			UpdateColumn("response_count", gorm.Expr("response_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var s model.Survey
			if err := tx.First(&s, sub.SurveyID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return util.ErrSurveyNotFound
				}
				return err
			}
			if err := gate(&s, now); err != nil {
				return err
			}
			return util.Internal(fmt.Errorf("survey %d refused admission without a reason", s.ID))
		}

		if sub.UserID != nil {
			var n int64
			if err := tx.Model(&model.Submission{}).
				Where("survey_id = ? AND user_id = ?", sub.SurveyID, *sub.UserID).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return util.ErrDuplicateSubmission
			}
		}

		sub.SubmittedAt = now
		if err := tx.Create(sub).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrDuplicateSubmission
			}
			return err
		}

		for i := range responses {
			responses[i].SubmissionID = sub.ID
			responses[i].SurveyID = sub.SurveyID
			responses[i].UserID = sub.UserID
			responses[i].SubmittedAt = now
		}
		return tx.Create(&responses).Error
	})
}

// HasSubmitted 判断用户是否已提交过该问卷
func (r *ResponseRepository) HasSubmitted(ctx context.Context, surveyID, userID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Submission{}).
		Where("survey_id = ? AND user_id = ?", surveyID, userID).
		Count(&n).Error
	return n > 0, err
}

// CountSubmissions 统计问卷的答卷数
func (r *ResponseRepository) CountSubmissions(ctx context.Context, surveyID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Submission{}).Where("survey_id = ?", surveyID).Count(&n).Error
	return n, err
}

// ListBySurvey 获取问卷的全部回答记录
func (r *ResponseRepository) ListBySurvey(ctx context.Context, surveyID uint) ([]model.Response, error) {
	var rs []model.Response
	err := r.DB.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Order("submitted_at desc, id desc").
		Find(&rs).Error
	return rs, err
}

// WeightedResponseRow 回答记录，关联题目、父项目和所选选项
type WeightedResponseRow struct {
	ID              uint      `gorm:"column:id"`
	SubmissionID    string    `gorm:"column:submission_id"`
	UserID          *uint     `gorm:"column:user_id"`
	QuestionID      uint      `gorm:"column:question_id"`
	OptionID        *uint     `gorm:"column:option_id"`
	SubmittedAt     time.Time `gorm:"column:submitted_at"`
	OptionScore     *float64  `gorm:"column:option_score"`
	QuestionContent string    `gorm:"column:question_content"`
	QuestionType    string    `gorm:"column:question_type"`
	QuestionWeight  float64   `gorm:"column:question_weight"`
	ParentID        *uint     `gorm:"column:parent_id"`
	ParentContent   *string   `gorm:"column:parent_content"`
}

// ListWeighted 获取扁平化答卷明细，按时间倒序
func (r *ResponseRepository) ListWeighted(ctx context.Context, surveyID uint) ([]WeightedResponseRow, error) {
	var rows []WeightedResponseRow
	err := r.DB.WithContext(ctx).Table("responses r").
		Select("r.id, r.submission_id, r.user_id, r.question_id, r.option_id, r.submitted_at, " +
			"o.score AS option_score, q.content AS question_content, q.type AS question_type, " +
			"q.weight AS question_weight, p.id AS parent_id, p.content AS parent_content").
		Joins("JOIN questions q ON q.id = r.question_id").
		Joins("LEFT JOIN questions p ON p.id = q.parent_id").
		Joins("LEFT JOIN question_options o ON o.id = r.option_id").
		Where("r.survey_id = ?", surveyID).
		Order("r.submitted_at desc, r.id desc").
		Scan(&rows).Error
	return rows, err
}
