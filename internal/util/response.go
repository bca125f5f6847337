package util

import (
	"errors"
	"net/http"

	"survey_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// StatusFor maps an error to its HTTP status. Gate rejections are 400,
// duplicate submissions 409.
func StatusFor(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		if errors.Is(err, ErrDuplicateSubmission) {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// HandleError writes the envelope for err. Internal details are only exposed
// when gin runs in debug mode.
func HandleError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status != http.StatusInternalServerError {
		var appErr *AppError
		if errors.As(err, &appErr) {
			Error(c, status, appErr.Reason)
			return
		}
		Error(c, status, err.Error())
		return
	}

	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	if gin.Mode() == gin.DebugMode {
		Error(c, status, err.Error())
		return
	}
	InternalServerError(c)
}
