package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/services"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
)

// currentUser reads the authenticated caller set by the auth middleware.
func currentUser(c *gin.Context) (primitive.ObjectID, models.UserRole, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, "", false
	}
	role, exists := c.Get("user_role")
	if !exists {
		return primitive.NilObjectID, "", false
	}
	return userID.(primitive.ObjectID), role.(models.UserRole), true
}

// pathObjectID parses an ObjectID path parameter, answering 400 itself
// when the value is malformed.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError maps domain errors onto the HTTP taxonomy and hides
// everything else behind a logged 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	if domainErr, ok := services.AsDomainError(err); ok {
		switch domainErr.Code {
		case utils.CodeValidationError:
			utils.ErrorResponseWithDetails(c, http.StatusUnprocessableEntity, domainErr.Code, domainErr.Message, domainErr.Details)
		case utils.CodePermissionDenied:
			utils.ErrorResponse(c, http.StatusForbidden, domainErr.Code, domainErr.Message)
		case utils.CodeInvalidState:
			utils.ErrorResponse(c, http.StatusBadRequest, domainErr.Code, domainErr.Message)
		case utils.CodeNotFound:
			utils.ErrorResponse(c, http.StatusNotFound, domainErr.Code, domainErr.Message)
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, domainErr.Code, domainErr.Message)
		}
		return
	}

	log.WithError(err).
		WithField("path", c.FullPath()).
		Error("Unhandled service error")
	utils.InternalServerErrorResponse(c)
}
