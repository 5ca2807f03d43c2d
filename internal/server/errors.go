package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/kapitulo/kapitulo/internal/activity/domain"
	authdomain "github.com/kapitulo/kapitulo/internal/auth/domain"
	"github.com/kapitulo/kapitulo/internal/auth/token"
	chapterdomain "github.com/kapitulo/kapitulo/internal/chapter/domain"
	contributiondomain "github.com/kapitulo/kapitulo/internal/contribution/domain"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	paymentdomain "github.com/kapitulo/kapitulo/internal/payment/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(lastErr.Err),
			)
		}
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	// Duplicate unique keys come back as 400 with a message that names the
	// offending field. The client surfaces these inline on the form.
	if msg, ok := conflictMessage(err); ok {
		return http.StatusBadRequest, errorPayload{
			Type:    "conflict",
			Message: msg,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, token.ErrInvalidToken):
		// Deliberately generic so a caller cannot probe which part of the
		// credentials was wrong.
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func conflictMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, memberdomain.ErrDuplicateEmail):
		return "a member with this email already exists", true
	case errors.Is(err, memberdomain.ErrDuplicateBatchNumber):
		return "a member with this batch number already exists", true
	default:
		return "", false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isMemberValidationError(err),
		isPaymentValidationError(err),
		isChapterValidationError(err),
		isActivityValidationError(err),
		isContributionValidationError(err),
		isAuthValidationError(err):
		return true
	default:
		return false
	}
}

func isMemberValidationError(err error) bool {
	switch err {
	case memberdomain.ErrInvalidName,
		memberdomain.ErrInvalidEmail,
		memberdomain.ErrInvalidBatchNumber,
		memberdomain.ErrInvalidMemberType,
		memberdomain.ErrInvalidStatus,
		memberdomain.ErrWelcomingDateRequired,
		memberdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isPaymentValidationError(err error) bool {
	switch err {
	case paymentdomain.ErrInvalidID,
		paymentdomain.ErrInvalidMemberID,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidPaymentDate,
		paymentdomain.ErrMemberNotFound:
		return true
	default:
		return false
	}
}

func isChapterValidationError(err error) bool {
	return err == chapterdomain.ErrInvalidName
}

func isActivityValidationError(err error) bool {
	switch err {
	case activitydomain.ErrInvalidID,
		activitydomain.ErrInvalidName,
		activitydomain.ErrInvalidTargetAmount,
		activitydomain.ErrInvalidStatus,
		activitydomain.ErrInvalidStartDate:
		return true
	default:
		return false
	}
}

func isContributionValidationError(err error) bool {
	switch err {
	case contributiondomain.ErrInvalidID,
		contributiondomain.ErrInvalidActivityID,
		contributiondomain.ErrInvalidMemberID,
		contributiondomain.ErrInvalidAmount,
		contributiondomain.ErrInvalidDate,
		contributiondomain.ErrActivityNotFound,
		contributiondomain.ErrMemberNotFound,
		contributiondomain.ErrActivityNotAccepting:
		return true
	default:
		return false
	}
}

func isAuthValidationError(err error) bool {
	switch err {
	case authdomain.ErrInvalidID,
		authdomain.ErrInvalidPassword:
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, memberdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, activitydomain.ErrNotFound),
		errors.Is(err, contributiondomain.ErrNotFound),
		errors.Is(err, authdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
