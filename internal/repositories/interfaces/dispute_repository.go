package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
)

type DisputeRepository interface {
	Create(ctx context.Context, dispute *models.Dispute) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Dispute, error)
	GetByContractID(ctx context.Context, contractID primitive.ObjectID) (*models.Dispute, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// IncrementFailedMediationAttempts bumps the counter atomically and
	// returns the new value. Callers run it inside a transaction together
	// with the write that caused the failed attempt.
	IncrementFailedMediationAttempts(ctx context.Context, id primitive.ObjectID) (int, error)

	ListByParticipant(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Dispute, int64, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Dispute, int64, error)
}
