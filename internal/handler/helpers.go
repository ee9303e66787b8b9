package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/adboard/internal/middleware"
	appErr "github.com/xxxsen/adboard/internal/pkg/errors"
	"github.com/xxxsen/adboard/internal/pkg/response"
)

func getUserID(c *gin.Context) int64 {
	userID, _ := middleware.UserID(c)
	return userID
}

func parseAdID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid ad id")
		return 0, false
	}
	return id, true
}

// errorMessage strips the sentinel prefix off wrapped errors such as
// "invalid: title must be ...".
func errorMessage(err error, sentinel error, fallback string) string {
	msg := err.Error()
	if msg == sentinel.Error() {
		return fallback
	}
	return strings.TrimPrefix(msg, sentinel.Error()+": ")
}

func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden", "you are not the owner")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not_found", "ad not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, "invalid", errorMessage(err, appErr.ErrInvalid, "invalid request"))
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, http.StatusConflict, "conflict", errorMessage(err, appErr.ErrConflict, "conflict"))
	default:
		requestID, _ := c.Get(middleware.ContextRequestIDKey)
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.Any("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int64("user_id", getUserID(c)),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", bindErrorMessage(err))
		return false
	}
	return true
}

func bindErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", field)
		case "email":
			return "email must be a valid email address"
		case "min":
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case "max":
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		default:
			return fmt.Sprintf("%s is invalid", field)
		}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	}
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}
	return "invalid request body"
}
