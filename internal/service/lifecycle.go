package service

import (
	"time"

	"survey_backend/internal/model"
	"survey_backend/internal/util"
)

// CheckSurveyOpen 判断问卷是否可接受提交：已发布（含旧写法）、未过期、未达上限
// 按顺序检查，第一个不满足的条件决定返回的错误
func CheckSurveyOpen(s *model.Survey, now time.Time) error {
	if !s.Status.IsOpen() {
		return util.ErrSurveyNotPublished
	}
	if s.Expired(now) {
		return util.ErrSurveyExpired
	}
	if s.MaxResponses != nil && s.ResponseCount >= *s.MaxResponses {
		return util.ErrResponseLimitReached
	}
	return nil
}
