package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/services"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/validators"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
)

type ExportHandler struct {
	exportService services.ExportService
	logger        *logger.Logger
}

func NewExportHandler(exportService services.ExportService, logger *logger.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger,
	}
}

// CheckEligibility handles GET /dispute-document-export/:disputeId/eligibility
func (h *ExportHandler) CheckEligibility(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	disputeID, ok := pathObjectID(c, "disputeId")
	if !ok {
		return
	}

	eligibility, err := h.exportService.CheckEligibility(c.Request.Context(), disputeID, userID, role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Eligibility checked", eligibility)
}

// GetPackage handles GET /dispute-document-export/:disputeId/package
func (h *ExportHandler) GetPackage(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	disputeID, ok := pathObjectID(c, "disputeId")
	if !ok {
		return
	}

	pkg, err := h.exportService.GetDisputeDocumentPackage(c.Request.Context(), disputeID, userID, role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Dispute document package assembled", pkg)
}

// CloseMediation handles POST /dispute-document-export/:disputeId/close (admin)
func (h *ExportHandler) CloseMediation(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	disputeID, ok := pathObjectID(c, "disputeId")
	if !ok {
		return
	}

	var req validators.CloseMediationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	dispute, err := h.exportService.CloseMediationForExternalResolution(c.Request.Context(), disputeID, adminID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Mediation closed for external resolution", dispute)
}
