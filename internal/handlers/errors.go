package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"hospital-portal/internal/upstream"
	"hospital-portal/internal/utils"
)

// writeUpstreamError maps a backend failure onto the response envelope.
// Backend payloads are surfaced verbatim; transport failures get a generic
// message. No retry is attempted for any of them.
func writeUpstreamError(c *gin.Context, err error) {
	var apiErr *upstream.APIError
	switch {
	case errors.As(err, &apiErr):
		// 401s land here too, keeping the backend's payload intact.
		utils.Error(c, apiErr.StatusCode, apiErr.Message)
	case errors.Is(err, upstream.ErrUnauthorized):
		utils.Unauthorized(c, "Not authenticated")
	default:
		utils.BadGateway(c, "The hospital service is unavailable. Please try again.")
	}
}

// writeFormError distinguishes locally rejected input from backend
// failures.
func writeFormError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.BadRequest(c, utils.FormatValidationError(validationErrs))
		return
	}
	writeUpstreamError(c, err)
}
