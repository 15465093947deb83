package routes

import (
	"github.com/gin-gonic/gin"
)

func setupDisputeRoutes(v1 *gin.RouterGroup, h *Handlers) {
	disputes := v1.Group("/disputes")
	{
		disputes.POST("", h.Dispute.CreateDispute)
		disputes.GET("", h.Dispute.ListDisputes)
		disputes.GET("/:disputeId", h.Dispute.GetDispute)
	}
}
