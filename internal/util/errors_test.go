package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad %s", "input"), http.StatusBadRequest},
		{ErrAuthRequired, http.StatusBadRequest},
		{ErrSurveyNotFound, http.StatusNotFound},
		{ErrSurveyNotPublished, http.StatusBadRequest},
		{ErrSurveyExpired, http.StatusBadRequest},
		{ErrResponseLimitReached, http.StatusBadRequest},
		{ErrDuplicateSubmission, http.StatusConflict},
		{fmt.Errorf("submit: %w", ErrDuplicateSubmission), http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusFor(c.err); got != c.want {
			t.Fatalf("StatusFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestAppErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("save: %w", ErrSurveyExpired)
	if !errors.Is(wrapped, ErrSurveyExpired) {
		t.Fatal("wrapped sentinel should match")
	}
	if errors.Is(wrapped, ErrSurveyNotPublished) {
		t.Fatal("different reasons must not match")
	}
	if !errors.Is(NotFound("survey"), ErrSurveyNotFound) {
		t.Fatal("equal kind and reason should match")
	}
}

func TestHandleErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleError(c, errors.New("password=hunter2"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Message != "Internal server error" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestHandleErrorReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleError(c, fmt.Errorf("tx: %w", ErrResponseLimitReached))

	var body Response
	json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusBadRequest || body.Message != "limit reached" {
		t.Fatalf("got %d %q", w.Code, body.Message)
	}
}

func TestParseUintParam(t *testing.T) {
	if id, err := ParseUintParam("42"); err != nil || id != 42 {
		t.Fatalf("ParseUintParam(42) = %d, %v", id, err)
	}
	for _, s := range []string{"", "0", "-1", "abc"} {
		if _, err := ParseUintParam(s); err == nil {
			t.Fatalf("ParseUintParam(%q) should fail", s)
		}
	}
}
