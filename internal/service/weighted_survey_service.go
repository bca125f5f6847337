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
	"survey_backend/pkg/monitoring"
	"survey_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// WeightedSurveyService 处理加权评分问卷的业务逻辑
type WeightedSurveyService struct {
	Surveys   *repository.SurveyRepository
	Responses *repository.ResponseRepository
	Cache     DetailCache
	Now       func() time.Time
}

func NewWeightedSurveyService(surveys *repository.SurveyRepository, responses *repository.ResponseRepository, cache DetailCache) *WeightedSurveyService {
	return &WeightedSurveyService{Surveys: surveys, Responses: responses, Cache: orDisabled(cache), Now: time.Now}
}

type DimensionReq struct {
	Content string      `json:"content"`
	Weight  float64     `json:"weight"`
	Options []OptionReq `json:"options"`
}

type ProjectReq struct {
	Content    string         `json:"content"`
	ImageURL   *string        `json:"imageUrl"`
	Dimensions []DimensionReq `json:"dimensions"`
}

type WeightedSurveyReq struct {
	Title        string       `json:"title" binding:"required"`
	Description  string       `json:"description"`
	ExpiresAt    *time.Time   `json:"expiresAt"`
	IsAnonymous  bool         `json:"isAnonymous"`
	IsPublic     bool         `json:"isPublic"`
	MaxResponses *int         `json:"maxResponses"`
	Publish      bool         `json:"publish"`
	Projects     []ProjectReq `json:"projects"`
}

// projectLabel 错误信息中的项目名称，内容为空时使用序号
func projectLabel(i int, p ProjectReq) string {
	if c := strings.TrimSpace(p.Content); c != "" {
		return c
	}
	return fmt.Sprintf("#%d", i+1)
}

func buildProject(i int, pr ProjectReq) (repository.ProjectRows, error) {
	label := projectLabel(i, pr)
	if strings.TrimSpace(pr.Content) == "" {
		return repository.ProjectRows{}, util.Validation("project %s: content is required", label)
	}

	weights := make([]float64, len(pr.Dimensions))
	for j, d := range pr.Dimensions {
		weights[j] = d.Weight
	}
	if err := ValidateProjectWeights(label, weights); err != nil {
		return repository.ProjectRows{}, err
	}

	rows := repository.ProjectRows{
		Project: model.Question{
			Content:  pr.Content,
			Type:     model.QuestionProject,
			Weight:   1,
			Order:    i,
			ImageURL: pr.ImageURL,
		},
		Dimensions: make([]model.Question, len(pr.Dimensions)),
	}
	for j, d := range pr.Dimensions {
		if strings.TrimSpace(d.Content) == "" {
			return repository.ProjectRows{}, util.Validation("project %q: dimension %d content is required", label, j+1)
		}
		if len(d.Options) == 0 {
			return repository.ProjectRows{}, util.Validation("project %q: dimension %q needs at least one option", label, d.Content)
		}
		opts, err := buildOptions(fmt.Sprintf("project %q dimension %q", label, d.Content), d.Options)
		if err != nil {
			return repository.ProjectRows{}, err
		}
		rows.Dimensions[j] = model.Question{
			Content: d.Content,
			Type:    model.QuestionDimension,
			Weight:  d.Weight,
			Order:   j,
			Options: opts,
		}
	}
	return rows, nil
}

// Create 创建加权问卷
// 先逐个校验项目，再在一个事务中写入整棵题目树
func (s *WeightedSurveyService) Create(ctx context.Context, creatorID uint, req WeightedSurveyReq) (*SurveyDetail, error) {
	ctx, span := tracing.Tracer.Start(ctx, "WeightedSurveyService.Create")
	defer span.End()

	if err := validateSurveyFields(req.Title, req.ExpiresAt, req.MaxResponses, s.Now()); err != nil {
		return nil, err
	}
	if len(req.Projects) == 0 {
		return nil, util.Validation("at least one project is required")
	}

	projects := make([]repository.ProjectRows, len(req.Projects))
	for i, pr := range req.Projects {
		rows, err := buildProject(i, pr)
		if err != nil {
			monitoring.WeightValidationFailures.Inc()
			logger.Log.Info("weighted survey rejected",
				zap.Uint("creatorId", creatorID),
				zap.String("project", projectLabel(i, pr)),
				zap.Error(err),
			)
			return nil, err
		}
		projects[i] = rows
	}

	status := model.SurveyDraft
	if req.Publish {
		status = model.SurveyPublished
	}
	survey := &model.Survey{
		Title:        req.Title,
		Description:  req.Description,
		Kind:         model.SurveyWeighted,
		Status:       status,
		ExpiresAt:    utcPtr(req.ExpiresAt),
		IsAnonymous:  req.IsAnonymous,
		IsPublic:     req.IsPublic,
		MaxResponses: req.MaxResponses,
		CreatorID:    creatorID,
	}
	if err := s.Surveys.CreateWeighted(ctx, survey, projects); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("survey.id", int(survey.ID)), attribute.Int("survey.projects", len(projects)))

	logger.Log.Info("survey created",
		zap.Uint("surveyId", survey.ID),
		zap.Uint("creatorId", creatorID),
		zap.String("kind", string(survey.Kind)),
		zap.Int("projects", len(projects)),
	)

	var flat []model.Question
	for _, p := range projects {
		flat = append(flat, p.Project)
		flat = append(flat, p.Dimensions...)
	}
	tree, err := BuildSurveyTree(flat)
	if err != nil {
		return nil, err
	}
	return &SurveyDetail{Survey: survey, Projects: tree.Projects}, nil
}

// GetDetail 获取加权问卷详情
// 状态与过期时间始终取自数据库中的最新记录，缓存只提供题目树
func (s *WeightedSurveyService) GetDetail(ctx context.Context, id uint, viewerID *uint) (*SurveyDetail, error) {
	ctx, span := tracing.Tracer.Start(ctx, "WeightedSurveyService.GetDetail")
	defer span.End()

	survey, err := s.Surveys.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey.Kind != model.SurveyWeighted {
		return nil, util.ErrSurveyNotFound
	}
	isOwner := viewerID != nil && *viewerID == survey.CreatorID
	if !isOwner && !survey.Status.IsOpen() {
		return nil, util.ErrSurveyNotFound
	}
	if survey.Expired(s.Now()) {
		return nil, util.ErrSurveyExpired
	}

	projects, hit := s.Cache.GetProjects(ctx, id)
	span.SetAttributes(attribute.Bool("cache.hit", hit))
	if !hit {
		rows, err := s.Surveys.ListQuestions(ctx, id)
		if err != nil {
			return nil, err
		}
		tree, err := BuildSurveyTree(rows)
		if err != nil {
			return nil, err
		}
		projects = tree.Projects
		s.Cache.SetProjects(ctx, id, projects)
	}
	return &SurveyDetail{Survey: survey, Projects: projects}, nil
}

type ParentView struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

type QuestionView struct {
	Content string      `json:"content"`
	Type    string      `json:"type"`
	Weight  float64     `json:"weight"`
	Parent  *ParentView `json:"parent"`
}

type OptionScoreView struct {
	Score float64 `json:"score"`
}

// WeightedResponseView 扁平化答卷明细中的一行
type WeightedResponseView struct {
	ID           uint             `json:"id"`
	SubmissionID string           `json:"submissionId"`
	UserID       *uint            `json:"userId"`
	QuestionID   uint             `json:"questionId"`
	OptionID     *uint            `json:"optionId"`
	SubmittedAt  time.Time        `json:"submittedAt"`
	Option       *OptionScoreView `json:"option"`
	Question     QuestionView     `json:"question"`
}

func (s *WeightedSurveyService) ownedWeighted(ctx context.Context, id, creatorID uint) (*model.Survey, error) {
	survey, err := s.Surveys.FindOwned(ctx, id, creatorID)
	if err != nil {
		return nil, err
	}
	if survey.Kind != model.SurveyWeighted {
		return nil, util.ErrSurveyNotFound
	}
	return survey, nil
}

// GetResponses 获取创建者的答卷明细，按时间倒序
func (s *WeightedSurveyService) GetResponses(ctx context.Context, id, creatorID uint) ([]WeightedResponseView, error) {
	if _, err := s.ownedWeighted(ctx, id, creatorID); err != nil {
		return nil, err
	}
	rows, err := s.Responses.ListWeighted(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]WeightedResponseView, len(rows))
	for i, r := range rows {
		v := WeightedResponseView{
			ID:           r.ID,
			SubmissionID: r.SubmissionID,
			UserID:       r.UserID,
			QuestionID:   r.QuestionID,
			OptionID:     r.OptionID,
			SubmittedAt:  r.SubmittedAt,
			Question: QuestionView{
				Content: r.QuestionContent,
				Type:    r.QuestionType,
				Weight:  r.QuestionWeight,
			},
		}
		if r.OptionScore != nil {
			v.Option = &OptionScoreView{Score: *r.OptionScore}
		}
		if r.ParentID != nil {
			parent := ParentView{ID: *r.ParentID}
			if r.ParentContent != nil {
				parent.Content = *r.ParentContent
			}
			v.Question.Parent = &parent
		}
		out[i] = v
	}
	return out, nil
}

// GetScores 按当前题目树为每份答卷计分
func (s *WeightedSurveyService) GetScores(ctx context.Context, id, creatorID uint) (*WeightedScores, error) {
	ctx, span := tracing.Tracer.Start(ctx, "WeightedSurveyService.GetScores")
	defer span.End()

	if _, err := s.ownedWeighted(ctx, id, creatorID); err != nil {
		return nil, err
	}
	questions, err := s.Surveys.ListQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	tree, err := BuildSurveyTree(questions)
	if err != nil {
		return nil, err
	}
	rows, err := s.Responses.ListWeighted(ctx, id)
	if err != nil {
		return nil, err
	}

	scores := ScoreSubmissions(id, tree.Projects, rows)
	span.SetAttributes(attribute.Int("survey.submissions", len(scores.Submissions)))
	return scores, nil
}
