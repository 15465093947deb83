package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/services"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/validators"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
)

type DisputeHandler struct {
	disputeService services.DisputeService
	logger         *logger.Logger
}

func NewDisputeHandler(disputeService services.DisputeService, logger *logger.Logger) *DisputeHandler {
	return &DisputeHandler{
		disputeService: disputeService,
		logger:         logger,
	}
}

// CreateDispute handles POST /disputes
func (h *DisputeHandler) CreateDispute(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.CreateDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	dispute, err := h.disputeService.CreateDispute(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Dispute raised", dispute)
}

// GetDispute handles GET /disputes/:disputeId
func (h *DisputeHandler) GetDispute(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	disputeID, ok := pathObjectID(c, "disputeId")
	if !ok {
		return
	}

	dispute, err := h.disputeService.GetDispute(c.Request.Context(), disputeID, userID, role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Dispute retrieved", dispute)
}

// ListDisputes handles GET /disputes
func (h *DisputeHandler) ListDisputes(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	disputes, total, err := h.disputeService.ListDisputes(c.Request.Context(), userID, role, params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Disputes retrieved", disputes, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(disputes),
	})
}
