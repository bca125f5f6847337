package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"

	"go.uber.org/zap"
)

// SurveyService 处理普通问卷的业务逻辑
type SurveyService struct {
	Surveys   *repository.SurveyRepository
	Responses *repository.ResponseRepository
	Cache     DetailCache
	Now       func() time.Time
}

func NewSurveyService(surveys *repository.SurveyRepository, responses *repository.ResponseRepository, cache DetailCache) *SurveyService {
	return &SurveyService{Surveys: surveys, Responses: responses, Cache: orDisabled(cache), Now: time.Now}
}

// SurveyDetail 问卷及其题目树，加权问卷填充 Projects，普通问卷填充 Questions
type SurveyDetail struct {
	Survey    *model.Survey   `json:"survey"`
	Projects  []Project       `json:"projects,omitempty"`
	Questions []PlainQuestion `json:"questions,omitempty"`
}

type OptionReq struct {
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type QuestionReq struct {
	Content  string      `json:"content"`
	Type     string      `json:"type"`
	ImageURL *string     `json:"imageUrl"`
	Options  []OptionReq `json:"options"`
}

type SurveyReq struct {
	Title        string        `json:"title" binding:"required"`
	Description  string        `json:"description"`
	ExpiresAt    *time.Time    `json:"expiresAt"`
	IsAnonymous  bool          `json:"isAnonymous"`
	IsPublic     bool          `json:"isPublic"`
	MaxResponses *int          `json:"maxResponses"`
	Questions    []QuestionReq `json:"questions"`
}

type StatusReq struct {
	Status string `json:"status" binding:"required"`
}

// validateSurveyFields 校验两类问卷共有的设置
func validateSurveyFields(title string, expiresAt *time.Time, maxResponses *int, now time.Time) error {
	if strings.TrimSpace(title) == "" {
		return util.Validation("title is required")
	}
	if expiresAt != nil && !expiresAt.After(now) {
		return util.Validation("expiresAt must be in the future")
	}
	if maxResponses != nil && *maxResponses <= 0 {
		return util.Validation("maxResponses must be positive")
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func buildOptions(label string, reqs []OptionReq) ([]model.QuestionOption, error) {
	opts := make([]model.QuestionOption, len(reqs))
	for i, o := range reqs {
		if strings.TrimSpace(o.Content) == "" {
			return nil, util.Validation("%s: option %d content is required", label, i+1)
		}
		opts[i] = model.QuestionOption{Content: o.Content, Score: o.Score, Weight: 1, Order: i}
	}
	return opts, nil
}

// Create 创建普通问卷（评分、单选、文本题）
func (s *SurveyService) Create(ctx context.Context, creatorID uint, req SurveyReq) (*SurveyDetail, error) {
	if err := validateSurveyFields(req.Title, req.ExpiresAt, req.MaxResponses, s.Now()); err != nil {
		return nil, err
	}
	if len(req.Questions) == 0 {
		return nil, util.Validation("at least one question is required")
	}

	questions := make([]model.Question, len(req.Questions))
	for i, qr := range req.Questions {
		label := fmt.Sprintf("question %d", i+1)
		if strings.TrimSpace(qr.Content) == "" {
			return nil, util.Validation("%s: content is required", label)
		}
		qt := model.QuestionType(strings.ToUpper(qr.Type))
		if !qt.IsFlat() {
			return nil, util.Validation("%s: type must be RATING, SINGLE_CHOICE or TEXT", label)
		}
		if qt.HasOptions() && len(qr.Options) == 0 {
			return nil, util.Validation("%s: single choice question needs options", label)
		}
		if !qt.HasOptions() && len(qr.Options) > 0 {
			return nil, util.Validation("%s: %s question cannot have options", label, qt)
		}
		opts, err := buildOptions(label, qr.Options)
		if err != nil {
			return nil, err
		}
		questions[i] = model.Question{
			Content:  qr.Content,
			Type:     qt,
			Weight:   1,
			Order:    i,
			ImageURL: qr.ImageURL,
			Options:  opts,
		}
	}

	survey := &model.Survey{
		Title:        req.Title,
		Description:  req.Description,
		Kind:         model.SurveySimple,
		Status:       model.SurveyDraft,
		ExpiresAt:    utcPtr(req.ExpiresAt),
		IsAnonymous:  req.IsAnonymous,
		IsPublic:     req.IsPublic,
		MaxResponses: req.MaxResponses,
		CreatorID:    creatorID,
	}
	if err := s.Surveys.CreateSimple(ctx, survey, questions); err != nil {
		return nil, err
	}

	logger.Log.Info("survey created",
		zap.Uint("surveyId", survey.ID),
		zap.Uint("creatorId", creatorID),
		zap.Int("questions", len(questions)),
	)

	tree, err := BuildSurveyTree(questions)
	if err != nil {
		return nil, err
	}
	return &SurveyDetail{Survey: survey, Questions: tree.Questions}, nil
}

func (s *SurveyService) loadDetail(ctx context.Context, survey *model.Survey) (*SurveyDetail, error) {
	rows, err := s.Surveys.ListQuestions(ctx, survey.ID)
	if err != nil {
		return nil, err
	}
	tree, err := BuildSurveyTree(rows)
	if err != nil {
		return nil, err
	}
	return &SurveyDetail{Survey: survey, Projects: tree.Projects, Questions: tree.Questions}, nil
}

// Get 获取问卷详情
// 创建者始终可见，其他人仅在已发布且未过期时可见
func (s *SurveyService) Get(ctx context.Context, id uint, viewerID *uint) (*SurveyDetail, error) {
	survey, err := s.Surveys.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	isOwner := viewerID != nil && *viewerID == survey.CreatorID
	if !isOwner {
		if !survey.Status.IsOpen() {
			return nil, util.ErrSurveyNotFound
		}
		if survey.Expired(s.Now()) {
			return nil, util.ErrSurveyExpired
		}
	}
	return s.loadDetail(ctx, survey)
}

// List 获取创建者的问卷列表
func (s *SurveyService) List(ctx context.Context, creatorID uint) ([]model.Survey, error) {
	return s.Surveys.ListByCreator(ctx, creatorID)
}

// ListPublic 获取已发布、公开且未过期的问卷
func (s *SurveyService) ListPublic(ctx context.Context) ([]model.Survey, error) {
	return s.Surveys.ListPublic(ctx, s.Now().UTC())
}

// UpdateStatus 更新问卷状态，仅创建者可操作
func (s *SurveyService) UpdateStatus(ctx context.Context, id, creatorID uint, req StatusReq) (*model.Survey, error) {
	status, ok := model.ParseSurveyStatus(req.Status)
	if !ok {
		return nil, util.Validation("unknown status %q", req.Status)
	}
	survey, err := s.Surveys.FindOwned(ctx, id, creatorID)
	if err != nil {
		return nil, err
	}
	if err := s.Surveys.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	logger.Log.Info("survey status changed",
		zap.Uint("surveyId", id),
		zap.String("from", string(survey.Status)),
		zap.String("to", string(status)),
	)
	survey.Status = status
	return survey, nil
}

// Delete 删除问卷
func (s *SurveyService) Delete(ctx context.Context, id, creatorID uint) error {
	if _, err := s.Surveys.FindOwned(ctx, id, creatorID); err != nil {
		return err
	}
	if err := s.Surveys.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, id)
	logger.Log.Info("survey deleted", zap.Uint("surveyId", id), zap.Uint("creatorId", creatorID))
	return nil
}

type OptionCount struct {
	OptionID uint    `json:"optionId"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
	Count    int     `json:"count"`
}

type QuestionResult struct {
	QuestionID  uint               `json:"questionId"`
	Content     string             `json:"content"`
	Type        model.QuestionType `json:"type"`
	Responses   int                `json:"responses"`
	Average     *float64           `json:"average,omitempty"`
	Options     []OptionCount      `json:"options,omitempty"`
	TextAnswers []string           `json:"textAnswers,omitempty"`
}

type SurveyResults struct {
	SurveyID    uint             `json:"surveyId"`
	Submissions int64            `json:"submissions"`
	Questions   []QuestionResult `json:"questions"`
}

// Results 统计问卷结果：评分平均值、选项计数和文本答案
func (s *SurveyService) Results(ctx context.Context, id, creatorID uint) (*SurveyResults, error) {
	if _, err := s.Surveys.FindOwned(ctx, id, creatorID); err != nil {
		return nil, err
	}
	rows, err := s.Surveys.ListQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	responses, err := s.Responses.ListBySurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	submissions, err := s.Responses.CountSubmissions(ctx, id)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[uint][]model.Response)
	for _, r := range responses {
		byQuestion[r.QuestionID] = append(byQuestion[r.QuestionID], r)
	}

	tree, err := BuildSurveyTree(rows)
	if err != nil {
		return nil, err
	}

	result := &SurveyResults{SurveyID: id, Submissions: submissions}
	for _, q := range tree.Questions {
		result.Questions = append(result.Questions, tally(q.ID, q.Content, q.Type, q.Options, byQuestion[q.ID]))
	}
	for _, p := range tree.Projects {
		for _, d := range p.Dimensions {
			result.Questions = append(result.Questions, tally(d.ID, p.Content+" / "+d.Content, model.QuestionDimension, d.Options, byQuestion[d.ID]))
		}
	}
	return result, nil
}

func tally(id uint, content string, qt model.QuestionType, options []OptionView, rs []model.Response) QuestionResult {
	qr := QuestionResult{QuestionID: id, Content: content, Type: qt, Responses: len(rs)}
	switch qt {
	case model.QuestionRating:
		if len(rs) > 0 {
			sum, n := 0.0, 0
			for _, r := range rs {
				if r.Score != nil {
					sum += *r.Score
					n++
				}
			}
			if n > 0 {
				avg := sum / float64(n)
				qr.Average = &avg
			}
		}
	case model.QuestionSingleChoice, model.QuestionDimension:
		counts := make(map[uint]int)
		for _, r := range rs {
			if r.OptionID != nil {
				counts[*r.OptionID]++
			}
		}
		for _, o := range options {
			qr.Options = append(qr.Options, OptionCount{OptionID: o.ID, Content: o.Content, Score: o.Score, Count: counts[o.ID]})
		}
	case model.QuestionText:
		for _, r := range rs {
			if r.TextAnswer != nil {
				qr.TextAnswers = append(qr.TextAnswers, *r.TextAnswer)
			}
		}
	}
	return qr
}
