package repository

import (
	"context"
	"errors"
	"time"

	"survey_backend/internal/model"
	"survey_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SurveyRepository 问卷及题目的数据访问
type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

// byOrder 按 order 列排序，order 是保留字，需通过 clause 转义
var byOrder = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "order"}},
	{Column: clause.Column{Name: "id"}},
}}

// ProjectRows 项目及其维度，每个维度带有选项
type ProjectRows struct {
	Project    model.Question
	Dimensions []model.Question
}

func createOptions(tx *gorm.DB, q *model.Question) error {
	if len(q.Options) == 0 {
		return nil
	}
	for i := range q.Options {
		q.Options[i].QuestionID = q.ID
	}
	return tx.Create(&q.Options).Error
}

// CreateSimple 在一个事务中保存问卷及其题目
func (r *SurveyRepository) CreateSimple(ctx context.Context, survey *model.Survey, questions []model.Question) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(survey).Error; err != nil {
			return err
		}
		for i := range questions {
			q := &questions[i]
			q.SurveyID = survey.ID
			if err := tx.Omit("Options").Create(q).Error; err != nil {
				return err
			}
			if err := createOptions(tx, q); err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateWeighted 整体保存问卷、项目、维度和选项，任一失败则全部回滚
func (r *SurveyRepository) CreateWeighted(ctx context.Context, survey *model.Survey, projects []ProjectRows) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(survey).Error; err != nil {
			return err
		}
		for i := range projects {
			p := &projects[i]
			p.Project.SurveyID = survey.ID
			if err := tx.Omit("Options").Create(&p.Project).Error; err != nil {
				return err
			}
			for j := range p.Dimensions {
				d := &p.Dimensions[j]
				d.SurveyID = survey.ID
				parentID := p.Project.ID
				d.ParentID = &parentID
				if err := tx.Omit("Options").Create(d).Error; err != nil {
					return err
				}
				if err := createOptions(tx, d); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// FindByID 根据ID获取问卷
func (r *SurveyRepository) FindByID(ctx context.Context, id uint) (*model.Survey, error) {
	var s model.Survey
	err := r.DB.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSurveyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindOwned 仅当 creatorID 是创建者时返回问卷，否则视为不存在
func (r *SurveyRepository) FindOwned(ctx context.Context, id, creatorID uint) (*model.Survey, error) {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.CreatorID != creatorID {
		return nil, util.ErrSurveyNotFound
	}
	return s, nil
}

// ListByCreator 获取创建者的问卷列表
func (r *SurveyRepository) ListByCreator(ctx context.Context, creatorID uint) ([]model.Survey, error) {
	var ss []model.Survey
	err := r.DB.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at desc, id desc").
		Find(&ss).Error
	return ss, err
}

// ListPublic 获取在 now 时刻仍未过期的已发布公开问卷
func (r *SurveyRepository) ListPublic(ctx context.Context, now time.Time) ([]model.Survey, error) {
	var ss []model.Survey
	err := r.DB.WithContext(ctx).
		Where("is_public = ?", true).
		Where("status IN ?", openStatuses()).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at desc, id desc").
		Find(&ss).Error
	return ss, err
}

// UpdateStatus 更新问卷状态
func (r *SurveyRepository) UpdateStatus(ctx context.Context, id uint, status model.SurveyStatus) error {
	res := r.DB.WithContext(ctx).Model(&model.Survey{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrSurveyNotFound
	}
	return nil
}

// ListQuestions 获取问卷全部题目及选项，同级按显示顺序排列
func (r *SurveyRepository) ListQuestions(ctx context.Context, surveyID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Clauses(byOrder)
		}).
		Where("survey_id = ?", surveyID).
		Clauses(byOrder).
		Find(&qs).Error
	return qs, err
}

// Delete 删除问卷及其所有下属数据，先删子节点再删父节点
func (r *SurveyRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", id).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.Submission{}).Error; err != nil {
			return err
		}
		questionIDs := tx.Model(&model.Question{}).Select("id").Where("survey_id = ?", id)
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		// 先删维度，再删项目和普通题目
		if err := tx.Where("survey_id = ? AND parent_id IS NOT NULL", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Survey{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrSurveyNotFound
		}
		return nil
	})
}
