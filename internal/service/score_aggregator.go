package service

import (
	"sort"
	"time"

	"survey_backend/internal/repository"
)

// Selections 维度ID到所选选项ID的映射
type Selections map[uint]uint

// ProjectScore 计算项目得分：Σ 所选选项分值 × 维度权重
// 未作答的维度或选项不属于该维度时记 0 分
func ProjectScore(p Project, sel Selections) float64 {
	total := 0.0
	for _, d := range p.Dimensions {
		optionID, ok := sel[d.ID]
		if !ok {
			continue
		}
		opt, ok := d.option(optionID)
		if !ok {
			continue
		}
		total += opt.Score * d.Weight
	}
	return total
}

type ProjectScoreEntry struct {
	ProjectID uint    `json:"projectId"`
	Content   string  `json:"content"`
	Score     float64 `json:"score"`
	Answered  int     `json:"answeredDimensions"`
}

type SubmissionScore struct {
	SubmissionID string              `json:"submissionId"`
	UserID       *uint               `json:"userId"`
	SubmittedAt  time.Time           `json:"submittedAt"`
	Projects     []ProjectScoreEntry `json:"projects"`
}

type ProjectSummary struct {
	ProjectID    uint    `json:"projectId"`
	Content      string  `json:"content"`
	AverageScore float64 `json:"averageScore"`
	Respondents  int     `json:"respondents"`
}

// WeightedScores 加权问卷得分汇总
type WeightedScores struct {
	SurveyID    uint              `json:"surveyId"`
	Projects    []ProjectSummary  `json:"projects"`
	Submissions []SubmissionScore `json:"submissions"`
}

func answeredDimensions(p Project, sel Selections) int {
	n := 0
	for _, d := range p.Dimensions {
		if _, ok := sel[d.ID]; ok {
			n++
		}
	}
	return n
}

// ScoreSubmissions 按答卷分组并为每个项目计分
// 项目平均分只统计至少回答了该项目一个维度的答卷
func ScoreSubmissions(surveyID uint, projects []Project, rows []repository.WeightedResponseRow) *WeightedScores {
	type session struct {
		userID      *uint
		submittedAt time.Time
		sel         Selections
	}
	sessions := make(map[string]*session)
	var order []string
	for _, row := range rows {
		s, ok := sessions[row.SubmissionID]
		if !ok {
			s = &session{userID: row.UserID, submittedAt: row.SubmittedAt, sel: Selections{}}
			sessions[row.SubmissionID] = s
			order = append(order, row.SubmissionID)
		}
		if row.OptionID != nil {
			s.sel[row.QuestionID] = *row.OptionID
		}
	}

	// 行按时间倒序到达，保持该顺序，相同时按ID排序
	sort.SliceStable(order, func(i, j int) bool {
		a, b := sessions[order[i]], sessions[order[j]]
		if !a.submittedAt.Equal(b.submittedAt) {
			return a.submittedAt.After(b.submittedAt)
		}
		return order[i] < order[j]
	})

	result := &WeightedScores{
		SurveyID:    surveyID,
		Projects:    make([]ProjectSummary, len(projects)),
		Submissions: make([]SubmissionScore, 0, len(order)),
	}
	sums := make([]float64, len(projects))
	for i, p := range projects {
		result.Projects[i] = ProjectSummary{ProjectID: p.ID, Content: p.Content}
	}

	for _, id := range order {
		s := sessions[id]
		entry := SubmissionScore{
			SubmissionID: id,
			UserID:       s.userID,
			SubmittedAt:  s.submittedAt,
			Projects:     make([]ProjectScoreEntry, len(projects)),
		}
		for i, p := range projects {
			answered := answeredDimensions(p, s.sel)
			score := ProjectScore(p, s.sel)
			entry.Projects[i] = ProjectScoreEntry{ProjectID: p.ID, Content: p.Content, Score: score, Answered: answered}
			if answered > 0 {
				sums[i] += score
				result.Projects[i].Respondents++
			}
		}
		result.Submissions = append(result.Submissions, entry)
	}

	for i := range result.Projects {
		if n := result.Projects[i].Respondents; n > 0 {
			result.Projects[i].AverageScore = sums[i] / float64(n)
		}
	}
	return result
}
