package handler

import (
	"errors"
	"net/http"

	"myswamvar/backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string                 `json:"error" example:"An error message"`
	Code  string                 `json:"code" example:"INVALID_ARGUMENT"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// writeError maps an application error onto its HTTP status. Anything outside
// the taxonomy is an infrastructure failure and surfaces as a plain 500.
func writeError(c *gin.Context, err error) {
	var ae *apperr.AppError
	if errors.As(err, &ae) {
		c.JSON(apperr.HTTPStatus(ae.Code), ErrorResponse{Error: ae.Message, Code: string(ae.Code), Meta: ae.Meta})
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: string(apperr.CodeInternal)})
}
