package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/services"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/validators"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
)

type EvidenceHandler struct {
	evidenceService services.EvidenceService
	logger          *logger.Logger
}

func NewEvidenceHandler(evidenceService services.EvidenceService, logger *logger.Logger) *EvidenceHandler {
	return &EvidenceHandler{
		evidenceService: evidenceService,
		logger:          logger,
	}
}

// CreateSubmission handles POST /disputes/:disputeId/evidence
func (h *EvidenceHandler) CreateSubmission(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	disputeID, ok := pathObjectID(c, "disputeId")
	if !ok {
		return
	}

	var req validators.CreateEvidenceSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	submission, err := h.evidenceService.CreateSubmission(c.Request.Context(), disputeID, userID, role, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Evidence submission created", submission)
}

// ListByDispute handles GET /disputes/:disputeId/evidence
func (h *EvidenceHandler) ListByDispute(c *gin.Context) {
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
	submissions, total, err := h.evidenceService.ListByDispute(c.Request.Context(), disputeID, userID, role, params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Evidence submissions retrieved", submissions, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(submissions),
	})
}

// ListSubmissions handles GET /evidence
func (h *EvidenceHandler) ListSubmissions(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	submissions, total, err := h.evidenceService.ListSubmissions(c.Request.Context(), userID, role, params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Evidence submissions retrieved", submissions, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(submissions),
	})
}

// GetSubmission handles GET /evidence/:submissionId
func (h *EvidenceHandler) GetSubmission(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	submissionID, ok := pathObjectID(c, "submissionId")
	if !ok {
		return
	}

	submission, err := h.evidenceService.GetSubmission(c.Request.Context(), submissionID, userID, role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Evidence submission retrieved", submission)
}

// UpdateSubmission handles PUT /evidence/:submissionId
func (h *EvidenceHandler) UpdateSubmission(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	submissionID, ok := pathObjectID(c, "submissionId")
	if !ok {
		return
	}

	var req validators.UpdateEvidenceSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	submission, err := h.evidenceService.UpdateSubmission(c.Request.Context(), submissionID, userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Evidence submission updated", submission)
}

// SubmitSubmission handles POST /evidence/:submissionId/submit
func (h *EvidenceHandler) SubmitSubmission(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	submissionID, ok := pathObjectID(c, "submissionId")
	if !ok {
		return
	}

	submission, err := h.evidenceService.SubmitSubmission(c.Request.Context(), submissionID, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Evidence submission submitted", submission)
}

// ReviewSubmission handles POST /evidence/:submissionId/review (admin)
func (h *EvidenceHandler) ReviewSubmission(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	submissionID, ok := pathObjectID(c, "submissionId")
	if !ok {
		return
	}

	var req validators.ReviewEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	submission, err := h.evidenceService.ReviewSubmission(c.Request.Context(), submissionID, adminID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Evidence submission reviewed", submission)
}

// AddComment handles POST /evidence/:submissionId/comments
func (h *EvidenceHandler) AddComment(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	submissionID, ok := pathObjectID(c, "submissionId")
	if !ok {
		return
	}

	var req validators.AddEvidenceCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	comment, err := h.evidenceService.AddComment(c.Request.Context(), submissionID, userID, role, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Comment added", comment)
}

// DeleteSubmission handles DELETE /evidence/:submissionId
func (h *EvidenceHandler) DeleteSubmission(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	submissionID, ok := pathObjectID(c, "submissionId")
	if !ok {
		return
	}

	if err := h.evidenceService.DeleteSubmission(c.Request.Context(), submissionID, userID, role); err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Evidence submission deleted", nil)
}
