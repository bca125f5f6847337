package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"survey_backend/internal/model"
	"survey_backend/internal/testutil"
	"survey_backend/internal/util"
)

func TestWeightedCreateAndDetail(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	created, err := ts.weighted.Create(ctx, 1, twoProjectReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Survey.Status != model.SurveyPublished || created.Survey.Kind != model.SurveyWeighted {
		t.Fatalf("survey = %+v", created.Survey)
	}

	detail, err := ts.weighted.GetDetail(ctx, created.Survey.ID, nil)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if len(detail.Projects) != 2 {
		t.Fatalf("projects = %d", len(detail.Projects))
	}
	alpha := detail.Projects[0]
	if alpha.Content != "Alpha" || len(alpha.Dimensions) != 3 {
		t.Fatalf("Alpha = %+v", alpha)
	}
	if alpha.Dimensions[1].Content != "cost" || alpha.Dimensions[1].Weight != 0.3 {
		t.Fatalf("cost dimension = %+v", alpha.Dimensions[1])
	}
	if len(alpha.Dimensions[0].Options) != 2 || alpha.Dimensions[0].Options[1].Score != 4 {
		t.Fatalf("quality options = %+v", alpha.Dimensions[0].Options)
	}
}

func TestWeightedCreateKeepsZeroWeight(t *testing.T) {
	ts := newTestServices(t)
	req := WeightedSurveyReq{Title: "zero", Projects: []ProjectReq{
		{Content: "Alpha", Dimensions: []DimensionReq{
			{Content: "ignored", Weight: 0, Options: opts(5)},
			{Content: "all", Weight: 1, Options: opts(5)},
		}},
	}}
	created, err := ts.weighted.Create(context.Background(), 1, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Survey.Status != model.SurveyDraft {
		t.Fatalf("status = %s, want DRAFT", created.Survey.Status)
	}

	rows, err := ts.weighted.Surveys.ListQuestions(context.Background(), created.Survey.ID)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := BuildSurveyTree(rows)
	if err != nil {
		t.Fatal(err)
	}
	if w := tree.Projects[0].Dimensions[0].Weight; w != 0 {
		t.Fatalf("stored weight = %v, want 0", w)
	}
}

func TestWeightedCreateRejectsBadProjectAtomically(t *testing.T) {
	ts := newTestServices(t)
	req := twoProjectReq()
	// Beta is off by more than the tolerance; Alpha's valid weights must not
	// rescue it.
	req.Projects[1].Dimensions = []DimensionReq{
		{Content: "quality", Weight: 0.7, Options: opts(1)},
		{Content: "cost", Weight: 0.2, Options: opts(1)},
	}

	_, err := ts.weighted.Create(context.Background(), 1, req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if util.KindOf(err) != util.KindValidation {
		t.Fatalf("kind = %v", util.KindOf(err))
	}
	if !strings.Contains(err.Error(), `"Beta"`) || !strings.Contains(err.Error(), "0.9000") {
		t.Fatalf("error %q should name Beta and its total", err)
	}

	for _, m := range []interface{}{&model.Survey{}, &model.Question{}, &model.QuestionOption{}} {
		var n int64
		ts.db.Model(m).Count(&n)
		if n != 0 {
			t.Fatalf("%T rows = %d after rejected create", m, n)
		}
	}
}

func TestWeightedCreateValidation(t *testing.T) {
	ts := newTestServices(t)
	past := ts.now.Add(-time.Hour)
	zero := 0

	cases := []struct {
		name   string
		mutate func(*WeightedSurveyReq)
	}{
		{"blank title", func(r *WeightedSurveyReq) { r.Title = " " }},
		{"no projects", func(r *WeightedSurveyReq) { r.Projects = nil }},
		{"no dimensions", func(r *WeightedSurveyReq) { r.Projects[1].Dimensions = nil }},
		{"dimension without options", func(r *WeightedSurveyReq) { r.Projects[1].Dimensions[0].Options = nil }},
		{"blank project", func(r *WeightedSurveyReq) { r.Projects[0].Content = "" }},
		{"expiry in the past", func(r *WeightedSurveyReq) { r.ExpiresAt = &past }},
		{"zero max responses", func(r *WeightedSurveyReq) { r.MaxResponses = &zero }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := twoProjectReq()
			c.mutate(&req)
			_, err := ts.weighted.Create(context.Background(), 1, req)
			if util.KindOf(err) != util.KindValidation {
				t.Fatalf("Create = %v, want validation error", err)
			}
		})
	}
}

func TestWeightedDetailExpired(t *testing.T) {
	ts := newTestServices(t)
	past := ts.now.Add(-time.Minute)
	s := testutil.CreateSurvey(t, ts.db, testutil.SurveyOpts{Kind: model.SurveyWeighted, ExpiresAt: &past})

	_, err := ts.weighted.GetDetail(context.Background(), s.ID, nil)
	if !errors.Is(err, util.ErrSurveyExpired) {
		t.Fatalf("GetDetail = %v, want expired", err)
	}
}

func TestWeightedDetailDraftHiddenFromOthers(t *testing.T) {
	ts := newTestServices(t)
	s := testutil.CreateSurvey(t, ts.db, testutil.SurveyOpts{Kind: model.SurveyWeighted, Status: model.SurveyDraft, CreatorID: 3})

	if _, err := ts.weighted.GetDetail(context.Background(), s.ID, nil); !errors.Is(err, util.ErrSurveyNotFound) {
		t.Fatalf("anonymous GetDetail = %v, want not found", err)
	}
	if _, err := ts.weighted.GetDetail(context.Background(), s.ID, testutil.UintPtr(3)); err != nil {
		t.Fatalf("owner GetDetail = %v", err)
	}
}

func TestWeightedResponsesAndScores(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	created, err := ts.weighted.Create(ctx, 1, twoProjectReq())
	if err != nil {
		t.Fatal(err)
	}
	alpha := created.Projects[0]
	beta := created.Projects[1]

	answers := []AnswerReq{
		{QuestionID: alpha.Dimensions[0].ID, OptionID: &alpha.Dimensions[0].Options[1].ID}, // 4 × 0.5
		{QuestionID: alpha.Dimensions[1].ID, OptionID: &alpha.Dimensions[1].Options[0].ID}, // 2 × 0.3
		{QuestionID: alpha.Dimensions[2].ID, OptionID: &alpha.Dimensions[2].Options[0].ID}, // 5 × 0.2
		{QuestionID: beta.Dimensions[0].ID, OptionID: &beta.Dimensions[0].Options[1].ID},   // 3 × 1
	}
	if _, err := ts.submit.Submit(ctx, created.Survey.ID, testutil.UintPtr(9), SubmitReq{Answers: answers}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	feed, err := ts.weighted.GetResponses(ctx, created.Survey.ID, 1)
	if err != nil {
		t.Fatalf("GetResponses: %v", err)
	}
	if len(feed) != 4 {
		t.Fatalf("feed rows = %d", len(feed))
	}
	for _, row := range feed {
		if row.Option == nil || row.Question.Parent == nil {
			t.Fatalf("row missing option or parent: %+v", row)
		}
		if row.QuestionID == alpha.Dimensions[1].ID {
			if row.Question.Weight != 0.3 || row.Option.Score != 2 || row.Question.Parent.Content != "Alpha" {
				t.Fatalf("cost row = %+v", row)
			}
		}
	}

	scores, err := ts.weighted.GetScores(ctx, created.Survey.ID, 1)
	if err != nil {
		t.Fatalf("GetScores: %v", err)
	}
	if len(scores.Submissions) != 1 {
		t.Fatalf("submissions = %d", len(scores.Submissions))
	}
	if got := scores.Projects[0].AverageScore; math.Abs(got-3.6) > 1e-9 {
		t.Fatalf("Alpha score = %v, want 3.6", got)
	}
	if got := scores.Projects[1].AverageScore; math.Abs(got-3) > 1e-9 {
		t.Fatalf("Beta score = %v, want 3", got)
	}

	if _, err := ts.weighted.GetScores(ctx, created.Survey.ID, 2); !errors.Is(err, util.ErrSurveyNotFound) {
		t.Fatalf("foreign GetScores = %v, want not found", err)
	}
}

func TestWeightedDetailCacheHitStillChecksExpiry(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	req := twoProjectReq()
	future := ts.now.Add(time.Hour)
	req.ExpiresAt = &future
	created, err := ts.weighted.Create(ctx, 1, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created.Survey.ID

	if _, err := ts.weighted.GetDetail(ctx, id, nil); err != nil {
		t.Fatalf("first GetDetail: %v", err)
	}
	if _, err := ts.weighted.GetDetail(ctx, id, nil); err != nil {
		t.Fatalf("second GetDetail: %v", err)
	}
	if got := ts.cache.hitCount(); got != 1 {
		t.Fatalf("cache hits = %d, want 1", got)
	}

	past := ts.now.Add(-time.Minute)
	if err := ts.db.Model(&model.Survey{}).Where("id = ?", id).Update("expires_at", past).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := ts.weighted.GetDetail(ctx, id, nil); !errors.Is(err, util.ErrSurveyExpired) {
		t.Fatalf("GetDetail after expiry = %v, want expired", err)
	}
}

func TestWeightedDetailCachedTreeDoesNotOutliveClose(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	created, err := ts.weighted.Create(ctx, 1, twoProjectReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created.Survey.ID
	if _, err := ts.weighted.GetDetail(ctx, id, nil); err != nil {
		t.Fatalf("GetDetail: %v", err)
	}

	// Close behind the service's back so the cached tree stays in place.
	if err := ts.db.Model(&model.Survey{}).Where("id = ?", id).Update("status", model.SurveyClosed).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := ts.weighted.GetDetail(ctx, id, testutil.UintPtr(7)); !errors.Is(err, util.ErrSurveyNotFound) {
		t.Fatalf("non-owner GetDetail = %v, want not found", err)
	}
	detail, err := ts.weighted.GetDetail(ctx, id, testutil.UintPtr(1))
	if err != nil {
		t.Fatalf("owner GetDetail: %v", err)
	}
	if detail.Survey.Status != model.SurveyClosed || len(detail.Projects) != 2 {
		t.Fatalf("owner detail = %+v", detail.Survey)
	}
}

func TestWeightedScoreFiveDimensions(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	weights := []float64{0.1, 0.3, 0.2, 0.2, 0.2}
	picks := []float64{9, 3, 1, 3, 9}
	dims := make([]DimensionReq, len(weights))
	for i, w := range weights {
		dims[i] = DimensionReq{Content: "dimension", Weight: w, Options: opts(1, 3, 9)}
	}
	created, err := ts.weighted.Create(ctx, 1, WeightedSurveyReq{
		Title:    "supplier audit",
		Publish:  true,
		Projects: []ProjectReq{{Content: "Supplier", Dimensions: dims}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	project := created.Projects[0]
	var answers []AnswerReq
	for i, d := range project.Dimensions {
		for j := range d.Options {
			if d.Options[j].Score == picks[i] {
				answers = append(answers, AnswerReq{QuestionID: d.ID, OptionID: &d.Options[j].ID})
			}
		}
	}
	if len(answers) != len(picks) {
		t.Fatalf("answers = %d", len(answers))
	}
	if _, err := ts.submit.Submit(ctx, created.Survey.ID, testutil.UintPtr(5), SubmitReq{Answers: answers}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	scores, err := ts.weighted.GetScores(ctx, created.Survey.ID, 1)
	if err != nil {
		t.Fatalf("GetScores: %v", err)
	}
	if got := scores.Projects[0].AverageScore; math.Abs(got-4.4) > 1e-9 {
		t.Fatalf("Supplier score = %v, want 4.4", got)
	}
}

func TestWeightedDeleteDropsCachedTree(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	created, err := ts.weighted.Create(ctx, 1, twoProjectReq())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created.Survey.ID
	if _, err := ts.weighted.GetDetail(ctx, id, nil); err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if err := ts.surveys.Delete(ctx, id, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit := ts.cache.GetProjects(ctx, id); hit {
		t.Fatal("cached tree survived delete")
	}
}
