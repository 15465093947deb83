package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/middleware"
)

func setupExportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	export := v1.Group("/dispute-document-export/:disputeId")
	{
		export.GET("/eligibility", h.Export.CheckEligibility)
		export.GET("/package", h.Export.GetPackage)
		export.POST("/close", middleware.AdminRequired(), h.Export.CloseMediation)
	}
}
