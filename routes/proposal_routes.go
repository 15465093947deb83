package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/middleware"
)

func setupProposalRoutes(v1 *gin.RouterGroup, h *Handlers) {
	disputes := v1.Group("/disputes/:disputeId")
	{
		disputes.POST("/proposals", middleware.AdminRequired(), h.Proposal.CreateProposal)
		disputes.GET("/proposals", h.Proposal.ListByDispute)
	}

	proposals := v1.Group("/proposals")
	{
		proposals.GET("/:proposalId", h.Proposal.GetProposal)
		proposals.PUT("/:proposalId/respond", h.Proposal.RespondToProposal)
		proposals.DELETE("/:proposalId", middleware.AdminRequired(), h.Proposal.DeleteProposal)
	}
}
