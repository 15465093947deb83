package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/middleware"
)

func setupEvidenceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	disputes := v1.Group("/disputes/:disputeId")
	{
		disputes.POST("/evidence", h.Evidence.CreateSubmission)
		disputes.GET("/evidence", h.Evidence.ListByDispute)
	}

	evidence := v1.Group("/evidence")
	{
		evidence.GET("", h.Evidence.ListSubmissions)
		evidence.GET("/:submissionId", h.Evidence.GetSubmission)
		evidence.PUT("/:submissionId", h.Evidence.UpdateSubmission)
		evidence.POST("/:submissionId/submit", h.Evidence.SubmitSubmission)
		evidence.POST("/:submissionId/review", middleware.AdminRequired(), h.Evidence.ReviewSubmission)
		evidence.POST("/:submissionId/comments", h.Evidence.AddComment)
		evidence.DELETE("/:submissionId", h.Evidence.DeleteSubmission)
	}
}
