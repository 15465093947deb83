package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
)

type ProposalRepository interface {
	Create(ctx context.Context, proposal *models.MediationProposal) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MediationProposal, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	ListByDispute(ctx context.Context, disputeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.MediationProposal, int64, error)
}
