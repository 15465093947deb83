package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/repositories/interfaces"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/services"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
)

type proposalRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewProposalRepository(db *mongo.Database, cache services.CacheService) interfaces.ProposalRepository {
	return &proposalRepository{
		collection: db.Collection("mediation_proposals"),
		cache:      cache,
	}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *models.MediationProposal) error {
	proposal.ID = primitive.NewObjectID()
	proposal.CreatedAt = time.Now()
	proposal.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, proposal)
	if err != nil {
		return fmt.Errorf("failed to create mediation proposal: %w", err)
	}

	return nil
}

func (r *proposalRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MediationProposal, error) {
	if r.cache != nil {
		if proposal, err := r.cache.GetCachedProposal(ctx, id); err == nil {
			return proposal, nil
		}
	}

	var proposal models.MediationProposal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&proposal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mediation proposal: %w", err)
	}

	if r.cache != nil {
		r.cache.CacheProposal(ctx, &proposal, 15*time.Minute)
	}

	return &proposal, nil
}

func (r *proposalRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update mediation proposal: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateProposal(ctx, id)

	return nil
}

func (r *proposalRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete mediation proposal: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateProposal(ctx, id)

	return nil
}

func (r *proposalRepository) ListByDispute(ctx context.Context, disputeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.MediationProposal, int64, error) {
	filter := bson.M{"dispute_id": disputeID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count mediation proposals: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find mediation proposals: %w", err)
	}
	defer cursor.Close(ctx)

	var proposals []*models.MediationProposal
	for cursor.Next(ctx) {
		var proposal models.MediationProposal
		if err := cursor.Decode(&proposal); err != nil {
			return nil, 0, fmt.Errorf("failed to decode mediation proposal: %w", err)
		}
		proposals = append(proposals, &proposal)
	}

	return proposals, total, nil
}

func (r *proposalRepository) invalidateProposal(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.InvalidateProposal(ctx, id)
	}
}
