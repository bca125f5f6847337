package service

import (
	"testing"
	"time"

	"survey_backend/internal/repository"
	"survey_backend/internal/testutil"

	"gorm.io/gorm"
)

type testServices struct {
	db       *gorm.DB
	surveys  *SurveyService
	weighted *WeightedSurveyService
	submit   *ResponseService
	cache    *memCache
	now      time.Time
}

// newTestServices wires every service against a fresh database, a fixed
// clock and an in-memory tree cache.
func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db := testutil.SetupTestDB(t)
	surveys := repository.NewSurveyRepository(db)
	responses := repository.NewResponseRepository(db)
	now := time.Now().UTC().Truncate(time.Second)
	clock := func() time.Time { return now }
	cache := newMemCache()

	ts := &testServices{
		db:       db,
		surveys:  NewSurveyService(surveys, responses, cache),
		weighted: NewWeightedSurveyService(surveys, responses, cache),
		submit:   NewResponseService(surveys, responses),
		cache:    cache,
		now:      now,
	}
	ts.surveys.Now = clock
	ts.weighted.Now = clock
	ts.submit.Now = clock
	return ts
}

func opts(scores ...float64) []OptionReq {
	out := make([]OptionReq, len(scores))
	for i, s := range scores {
		out[i] = OptionReq{Content: "level", Score: s}
	}
	return out
}

func twoProjectReq() WeightedSurveyReq {
	return WeightedSurveyReq{
		Title:   "vendor review",
		Publish: true,
		Projects: []ProjectReq{
			{Content: "Alpha", Dimensions: []DimensionReq{
				{Content: "quality", Weight: 0.5, Options: opts(1, 4)},
				{Content: "cost", Weight: 0.3, Options: opts(2, 3)},
				{Content: "support", Weight: 0.2, Options: opts(5)},
			}},
			{Content: "Beta", Dimensions: []DimensionReq{
				{Content: "quality", Weight: 1, Options: opts(2, 3)},
			}},
		},
	}
}
