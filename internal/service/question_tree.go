package service

import (
	"fmt"
	"sort"

	"survey_backend/internal/model"
	"survey_backend/internal/util"
)

type OptionView struct {
	ID      uint    `json:"id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
	Order   int     `json:"order"`
}

// Dimension 评价维度，隶属于唯一的项目
type Dimension struct {
	ID      uint         `json:"id"`
	Content string       `json:"content"`
	Weight  float64      `json:"weight"`
	Order   int          `json:"order"`
	Options []OptionView `json:"options"`
}

func (d Dimension) option(id uint) (OptionView, bool) {
	for _, o := range d.Options {
		if o.ID == id {
			return o, true
		}
	}
	return OptionView{}, false
}

// Project 加权问卷中的评价项目
type Project struct {
	ID         uint        `json:"id"`
	Content    string      `json:"content"`
	ImageURL   *string     `json:"imageUrl,omitempty"`
	Order      int         `json:"order"`
	Dimensions []Dimension `json:"dimensions"`
}

// PlainQuestion 评分、单选或文本题
type PlainQuestion struct {
	ID       uint               `json:"id"`
	Content  string             `json:"content"`
	Type     model.QuestionType `json:"type"`
	Order    int                `json:"order"`
	ImageURL *string            `json:"imageUrl,omitempty"`
	Options  []OptionView       `json:"options,omitempty"`
}

type SurveyTree struct {
	Projects  []Project
	Questions []PlainQuestion
}

func optionViews(opts []model.QuestionOption) []OptionView {
	sorted := append([]model.QuestionOption(nil), opts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID < sorted[j].ID
	})
	out := make([]OptionView, len(sorted))
	for i, o := range sorted {
		out[i] = OptionView{ID: o.ID, Content: o.Content, Score: o.Score, Order: o.Order}
	}
	return out
}

func corrupt(q model.Question, format string, args ...interface{}) error {
	return util.Internal(fmt.Errorf("question %d: %s", q.ID, fmt.Sprintf(format, args...)))
}

// BuildSurveyTree 将问卷的扁平题目行组装为项目-维度树和普通题目列表
// 子节点通过父ID索引查找；带父节点的项目、孤立维度、挂在非项目下的维度
// 均视为数据损坏，按内部错误返回
func BuildSurveyTree(rows []model.Question) (*SurveyTree, error) {
	sorted := append([]model.Question(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID < sorted[j].ID
	})

	byID := make(map[uint]model.Question, len(sorted))
	for _, q := range sorted {
		byID[q.ID] = q
	}

	children := make(map[uint][]model.Question)
	tree := &SurveyTree{}
	var projects []model.Question

	for _, q := range sorted {
		switch {
		case q.Type == model.QuestionProject:
			if q.ParentID != nil {
				return nil, corrupt(q, "project must not have a parent")
			}
			projects = append(projects, q)
		case q.Type == model.QuestionDimension:
			if q.ParentID == nil {
				return nil, corrupt(q, "dimension without project")
			}
			parent, ok := byID[*q.ParentID]
			if !ok || parent.Type != model.QuestionProject {
				return nil, corrupt(q, "dimension parent %d is not a project", *q.ParentID)
			}
			children[parent.ID] = append(children[parent.ID], q)
		case q.Type.IsFlat():
			if q.ParentID != nil {
				return nil, corrupt(q, "%s question must not have a parent", q.Type)
			}
			tree.Questions = append(tree.Questions, PlainQuestion{
				ID:       q.ID,
				Content:  q.Content,
				Type:     q.Type,
				Order:    q.Order,
				ImageURL: q.ImageURL,
				Options:  optionViews(q.Options),
			})
		default:
			return nil, corrupt(q, "unknown type %q", q.Type)
		}
	}

	for _, p := range projects {
		dims := children[p.ID]
		project := Project{
			ID:         p.ID,
			Content:    p.Content,
			ImageURL:   p.ImageURL,
			Order:      p.Order,
			Dimensions: make([]Dimension, len(dims)),
		}
		for i, d := range dims {
			project.Dimensions[i] = Dimension{
				ID:      d.ID,
				Content: d.Content,
				Weight:  d.Weight,
				Order:   d.Order,
				Options: optionViews(d.Options),
			}
		}
		tree.Projects = append(tree.Projects, project)
	}
	return tree, nil
}
