package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
)

type EvidenceRepository interface {
	Create(ctx context.Context, submission *models.EvidenceSubmission) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvidenceSubmission, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AddComment appends to the submission's comment thread; comments are
	// never updated or removed.
	AddComment(ctx context.Context, submissionID primitive.ObjectID, comment *models.EvidenceComment) error

	ListByDispute(ctx context.Context, disputeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error)
	ListBySubmitter(ctx context.Context, submitterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error)
}
