package service

import (
	"errors"
	"testing"
	"time"

	"survey_backend/internal/model"
	"survey_backend/internal/util"
)

func TestCheckSurveyOpen(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	one, two := 1, 2

	cases := []struct {
		name   string
		survey model.Survey
		want   error
	}{
		{"published", model.Survey{Status: model.SurveyPublished}, nil},
		{"legacy active", model.Survey{Status: model.SurveyActiveLegacy}, nil},
		{"draft", model.Survey{Status: model.SurveyDraft}, util.ErrSurveyNotPublished},
		{"closed", model.Survey{Status: model.SurveyClosed}, util.ErrSurveyNotPublished},
		{"closed and expired", model.Survey{Status: model.SurveyClosed, ExpiresAt: &past}, util.ErrSurveyNotPublished},
		{"expired", model.Survey{Status: model.SurveyPublished, ExpiresAt: &past}, util.ErrSurveyExpired},
		{"expires exactly now", model.Survey{Status: model.SurveyPublished, ExpiresAt: &now}, util.ErrSurveyExpired},
		{"expired below limit", model.Survey{Status: model.SurveyPublished, ExpiresAt: &past, MaxResponses: &two}, util.ErrSurveyExpired},
		{"future expiry", model.Survey{Status: model.SurveyPublished, ExpiresAt: &future}, nil},
		{"below limit", model.Survey{Status: model.SurveyPublished, MaxResponses: &two, ResponseCount: 1}, nil},
		{"limit reached", model.Survey{Status: model.SurveyPublished, MaxResponses: &one, ResponseCount: 1}, util.ErrResponseLimitReached},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckSurveyOpen(&c.survey, now)
			if c.want == nil {
				if err != nil {
					t.Fatalf("CheckSurveyOpen = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("CheckSurveyOpen = %v, want %v", err, c.want)
			}
			if util.KindOf(err) != util.KindConflict {
				t.Fatalf("kind = %v, want conflict", util.KindOf(err))
			}
		})
	}
}

func TestParseSurveyStatus(t *testing.T) {
	cases := []struct {
		in   string
		want model.SurveyStatus
		ok   bool
	}{
		{"PUBLISHED", model.SurveyPublished, true},
		{"active", model.SurveyPublished, true},
		{" Active ", model.SurveyPublished, true},
		{"draft", model.SurveyDraft, true},
		{"CLOSED", model.SurveyClosed, true},
		{"archived", "", false},
	}
	for _, c := range cases {
		got, ok := model.ParseSurveyStatus(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseSurveyStatus(%q) = %q, %v", c.in, got, ok)
		}
	}
}
