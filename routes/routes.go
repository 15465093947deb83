package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/handlers"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/middleware"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
)

type Handlers struct {
	Dispute  *handlers.DisputeHandler
	Evidence *handlers.EvidenceHandler
	Proposal *handlers.ProposalHandler
	Export   *handlers.ExportHandler
}

// Setup wires the full HTTP surface: a public health probe and the
// authenticated /api/v1 resource groups.
func Setup(router *gin.Engine, h *Handlers, jwtSecret string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": utils.AppName,
			"version": utils.AppVersion,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthRequired(jwtSecret))

	setupDisputeRoutes(v1, h)
	setupEvidenceRoutes(v1, h)
	setupProposalRoutes(v1, h)
	setupExportRoutes(v1, h)
}
