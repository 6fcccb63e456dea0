package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/pkg/apperrors"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	// Check for specific error types
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.UserMessage(err, "Resource not found"))))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, apperrors.UserMessage(err, "Permission denied"))))
	case apperrors.Is(err, apperrors.ErrUnauthenticated, apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.UserMessage(err, "Validation failed"))))
	default:
		// Handle unknown errors
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// PageErrorMessage picks the toast text for a failed form submission.
// Validation and permission errors carry their own message; anything else gets fallback.
func PageErrorMessage(err error, fallback string) string {
	if apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrPermissionDenied, apperrors.ErrResourceNotFound) {
		return apperrors.UserMessage(err, fallback)
	}
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return "An account with this email already exists"
	case errors.Is(err, apperrors.ErrUnsupportedFile):
		return "Please upload a JPEG, PNG, GIF, WebP, BMP or TIFF image"
	case errors.Is(err, apperrors.ErrFileTooLarge):
		return "The photo is too large"
	}
	return fallback
}
