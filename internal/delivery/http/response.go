package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"opsdash/internal/assignment"
	"opsdash/internal/interval"
	"opsdash/internal/repository/cache"
	"opsdash/internal/service"
)

type errorResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	logrus.Error(message)
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}

// respondError maps domain errors onto HTTP statuses. Interval and
// last-row violations are user-recoverable edits, hence 422.
func respondError(c *gin.Context, err error) {
	var (
		fe *interval.FormatError
		be *interval.BoundsError
		oe *interval.OverlapError
		eh cache.ErrorHandler
	)
	switch {
	case errors.Is(err, service.ErrNoSession),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, assignment.ErrUnknownRow),
		errors.Is(err, assignment.ErrUnknownItem):
		newErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.As(err, &fe), errors.As(err, &be), errors.As(err, &oe),
		errors.Is(err, assignment.ErrLastRow),
		errors.Is(err, assignment.ErrBadStatus),
		errors.Is(err, service.ErrValidation):
		newErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrStageOrder):
		newErrorResponse(c, http.StatusConflict, err.Error())
	case errors.As(err, &eh):
		newErrorResponse(c, eh.StatusCode, err.Error())
	default:
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
