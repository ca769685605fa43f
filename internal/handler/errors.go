package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/outreach-api/internal/apperr"
	"github.com/yourusername/outreach-api/internal/jobdata"
	"github.com/yourusername/outreach-api/internal/middleware"
	"github.com/yourusername/outreach-api/internal/service"
)

// writeError maps an outreach failure to its client-facing status and body.
// Client errors are 4xx; collaborator failures are 500 with the cause as detail.
func writeError(c *gin.Context, err error) {
	respond(c, classify(err))
}

func classify(err error) *apperr.Error {
	var upstream *jobdata.UpstreamContentError
	var stage *service.StageError

	switch {
	case errors.Is(err, jobdata.ErrInvalidJobData):
		return apperr.BadRequest("Job data is required", "")
	case errors.As(err, &upstream):
		return apperr.BadRequest("Target site unavailable, try another URL", upstream.Description)
	case errors.Is(err, jobdata.ErrInsufficientJobData):
		return apperr.BadRequest("Could not extract a job posting", "role, experience and skills are all missing")
	case errors.Is(err, service.ErrEmptyContent):
		return apperr.BadRequest("Could not load content from the provided URL", "")
	case errors.Is(err, service.ErrUnauthenticated):
		return apperr.Unauthorized("Authentication required")
	case errors.As(err, &stage):
		log.Error().Err(stage.Err).Str("stage", string(stage.Stage)).Msg("Outreach pipeline failed")
		return apperr.Internal("Failed to generate email", stage.Err.Error())
	default:
		log.Error().Err(err).Msg("Unexpected outreach failure")
		return apperr.Internal("Failed to generate email", err.Error())
	}
}

func respond(c *gin.Context, e *apperr.Error) {
	c.JSON(e.StatusCode(), e.WithRequestID(middleware.GetRequestID(c)))
}
