package handlers

import (
	"errors"

	"github.com/basecode360/traintrack/internal/hierarchy"
	"github.com/basecode360/traintrack/internal/middleware"
	"github.com/basecode360/traintrack/internal/services"
	"github.com/basecode360/traintrack/pkg/logger"
	"github.com/basecode360/traintrack/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// resolveActor builds the hierarchy actor for the authenticated user. Unit
// authority is never trusted from the token; it is re-read from current
// assignments on every request.
func resolveActor(c *gin.Context, scope *services.ScopeService) (hierarchy.Actor, bool) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		response.Unauthorized(c, "not authenticated")
		return hierarchy.Actor{}, false
	}

	actor, err := scope.ActorForUser(userID)
	if err != nil {
		response.ServerError(c, "failed to resolve user scope")
		return hierarchy.Actor{}, false
	}
	return actor, true
}

// respondError maps well-known service errors to HTTP statuses. Anything
// unrecognized is treated as a server error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, hierarchy.ErrAccessDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, hierarchy.ErrUnitNotFound),
		errors.Is(err, hierarchy.ErrUserNotFound),
		errors.Is(err, hierarchy.ErrAssignmentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrStaleParent),
		errors.Is(err, hierarchy.ErrDuplicateActiveAssignment):
		response.Conflict(c, err.Error())
	case errors.Is(err, hierarchy.ErrCycleDetected):
		// A cycle already persisted in the tree is data corruption, not a
		// caller mistake: log it loudly and fail the request as unavailable.
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("persisted cycle in unit hierarchy")
		response.ServerError(c, "unit hierarchy temporarily unavailable")
	case errors.Is(err, hierarchy.ErrCycleWouldForm),
		errors.Is(err, hierarchy.ErrInvalidLevelOrdering),
		errors.Is(err, hierarchy.ErrSelfParent),
		errors.Is(err, hierarchy.ErrInvalidUnitLevel),
		errors.Is(err, hierarchy.ErrNoPrimaryAssignment),
		errors.Is(err, hierarchy.ErrMultiplePrimaryAssignments),
		errors.Is(err, hierarchy.ErrCannotRemovePrimary),
		errors.Is(err, hierarchy.ErrInvalidLeadershipRole),
		errors.Is(err, services.ErrInvalidAssignmentType),
		errors.Is(err, services.ErrInvalidAARKind),
		errors.Is(err, services.ErrInvalidTrainingStep),
		errors.Is(err, services.ErrUnitHasChildren),
		errors.Is(err, services.ErrUnitHasMembers),
		errors.Is(err, services.ErrReferralInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}
