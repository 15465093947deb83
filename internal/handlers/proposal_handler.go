package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/services"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/validators"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
)

type ProposalHandler struct {
	proposalService services.ProposalService
	logger          *logger.Logger
}

func NewProposalHandler(proposalService services.ProposalService, logger *logger.Logger) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
		logger:          logger,
	}
}

// CreateProposal handles POST /disputes/:disputeId/proposals (admin)
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	disputeID, ok := pathObjectID(c, "disputeId")
	if !ok {
		return
	}

	var req validators.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), disputeID, adminID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Mediation proposal created", proposal)
}

// ListByDispute handles GET /disputes/:disputeId/proposals
func (h *ProposalHandler) ListByDispute(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	disputeID, ok := pathObjectID(c, "disputeId")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	proposals, total, err := h.proposalService.ListByDispute(c.Request.Context(), disputeID, userID, role, params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Mediation proposals retrieved", proposals, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(proposals),
	})
}

// GetProposal handles GET /proposals/:proposalId
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	proposalID, ok := pathObjectID(c, "proposalId")
	if !ok {
		return
	}

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), proposalID, userID, role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Mediation proposal retrieved", proposal)
}

// RespondToProposal handles PUT /proposals/:proposalId/respond
func (h *ProposalHandler) RespondToProposal(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	proposalID, ok := pathObjectID(c, "proposalId")
	if !ok {
		return
	}

	var req validators.RespondToProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	proposal, err := h.proposalService.RespondToProposal(c.Request.Context(), proposalID, userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Response recorded", proposal)
}

// DeleteProposal handles DELETE /proposals/:proposalId (admin)
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	proposalID, ok := pathObjectID(c, "proposalId")
	if !ok {
		return
	}

	if err := h.proposalService.DeleteProposal(c.Request.Context(), proposalID, adminID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Mediation proposal deleted", nil)
}
