package service

import (
	"context"
	"errors"
	"math"
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

// ResponseService 处理答卷提交的业务逻辑
type ResponseService struct {
	Surveys   *repository.SurveyRepository
	Responses *repository.ResponseRepository
	Now       func() time.Time
}

func NewResponseService(surveys *repository.SurveyRepository, responses *repository.ResponseRepository) *ResponseService {
	return &ResponseService{Surveys: surveys, Responses: responses, Now: time.Now}
}

type AnswerReq struct {
	QuestionID uint     `json:"questionId" binding:"required"`
	OptionID   *uint    `json:"optionId"`
	Score      *float64 `json:"score"`
	TextAnswer *string  `json:"textAnswer"`
}

type SubmitReq struct {
	Answers []AnswerReq `json:"answers"`
}

type SubmitResult struct {
	SubmissionID  string `json:"submissionId"`
	ResponseCount int    `json:"responseCount"`
}

// answerable 可作答题目及其选项ID集合
type answerable struct {
	question model.Question
	options  map[uint]bool
}

func indexAnswerable(questions []model.Question) map[uint]answerable {
	idx := make(map[uint]answerable, len(questions))
	for _, q := range questions {
		a := answerable{question: q, options: make(map[uint]bool, len(q.Options))}
		for _, o := range q.Options {
			a.options[o.ID] = true
		}
		idx[q.ID] = a
	}
	return idx
}

func toResponse(a answerable, ans AnswerReq) (model.Response, error) {
	q := a.question
	r := model.Response{QuestionID: q.ID}
	switch q.Type {
	case model.QuestionSingleChoice, model.QuestionDimension:
		if ans.OptionID == nil {
			return r, util.Validation("question %d: optionId is required", q.ID)
		}
		if !a.options[*ans.OptionID] {
			return r, util.ErrOptionNotFound
		}
		id := *ans.OptionID
		r.OptionID = &id
	case model.QuestionRating:
		if ans.Score == nil || math.IsNaN(*ans.Score) || math.IsInf(*ans.Score, 0) || *ans.Score < 0 {
			return r, util.Validation("question %d: score must be a non-negative number", q.ID)
		}
		score := *ans.Score
		r.Score = &score
	case model.QuestionText:
		if ans.TextAnswer == nil || strings.TrimSpace(*ans.TextAnswer) == "" {
			return r, util.Validation("question %d: textAnswer is required", q.ID)
		}
		text := *ans.TextAnswer
		r.TextAnswer = &text
	default:
		return r, util.Validation("question %d: %s questions cannot be answered", q.ID, q.Type)
	}
	return r, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, util.ErrSurveyNotPublished):
		return "not_published"
	case errors.Is(err, util.ErrSurveyExpired):
		return "expired"
	case errors.Is(err, util.ErrResponseLimitReached):
		return "limit_reached"
	case errors.Is(err, util.ErrDuplicateSubmission):
		return "duplicate"
	}
	return ""
}

func (s *ResponseService) reject(surveyID uint, userID *uint, err error) error {
	if reason := rejectReason(err); reason != "" {
		monitoring.SubmissionsRejected.WithLabelValues(reason).Inc()
		fields := []zap.Field{zap.Uint("surveyId", surveyID), zap.String("reason", reason)}
		if userID != nil {
			fields = append(fields, zap.Uint("userId", *userID))
		}
		logger.Log.Info("submission rejected", fields...)
	}
	return err
}

// Submit 提交一次答卷
// 先检查问卷状态，再逐题校验答案，最后在同一事务中原子地重新检查状态并写入
func (s *ResponseService) Submit(ctx context.Context, surveyID uint, userID *uint, req SubmitReq) (*SubmitResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ResponseService.Submit")
	defer span.End()
	span.SetAttributes(attribute.Int("survey.id", int(surveyID)))

	now := s.Now().UTC()
	survey, err := s.Surveys.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := CheckSurveyOpen(survey, now); err != nil {
		return nil, s.reject(surveyID, userID, err)
	}

	if len(req.Answers) == 0 {
		return nil, util.Validation("at least one answer is required")
	}
	questions, err := s.Surveys.ListQuestions(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	idx := indexAnswerable(questions)

	seen := make(map[uint]bool, len(req.Answers))
	responses := make([]model.Response, 0, len(req.Answers))
	for _, ans := range req.Answers {
		a, ok := idx[ans.QuestionID]
		if !ok {
			return nil, util.ErrQuestionNotFound
		}
		if seen[ans.QuestionID] {
			return nil, util.Validation("question %d answered more than once", ans.QuestionID)
		}
		seen[ans.QuestionID] = true
		r, err := toResponse(a, ans)
		if err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}

	var respondent *uint
	if !survey.IsAnonymous {
		if userID == nil {
			return nil, util.ErrAuthRequired
		}
		done, err := s.Responses.HasSubmitted(ctx, surveyID, *userID)
		if err != nil {
			return nil, err
		}
		if done {
			return nil, s.reject(surveyID, userID, util.ErrDuplicateSubmission)
		}
		id := *userID
		respondent = &id
	}

	sub := &model.Submission{SurveyID: surveyID, UserID: respondent}
	if err := s.Responses.SaveSubmission(ctx, now, sub, responses, CheckSurveyOpen); err != nil {
		return nil, s.reject(surveyID, userID, err)
	}

	count, err := s.Responses.CountSubmissions(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	monitoring.SubmissionsAccepted.Inc()
	logger.Log.Info("responses submitted",
		zap.Uint("surveyId", surveyID),
		zap.String("submissionId", sub.ID),
		zap.Int("answers", len(responses)),
	)
	return &SubmitResult{SubmissionID: sub.ID, ResponseCount: int(count)}, nil
}
