package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/repositories/interfaces"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/services"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
)

type disputeRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewDisputeRepository(db *mongo.Database, cache services.CacheService) interfaces.DisputeRepository {
	return &disputeRepository{
		collection: db.Collection("disputes"),
		cache:      cache,
	}
}

func (r *disputeRepository) Create(ctx context.Context, dispute *models.Dispute) error {
	dispute.ID = primitive.NewObjectID()
	dispute.CreatedAt = time.Now()
	dispute.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, dispute)
	if err != nil {
		return fmt.Errorf("failed to create dispute: %w", err)
	}

	r.cacheDispute(ctx, dispute)

	return nil
}

func (r *disputeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Dispute, error) {
	if r.cache != nil {
		if dispute, err := r.cache.GetCachedDispute(ctx, id); err == nil {
			return dispute, nil
		}
	}

	var dispute models.Dispute
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dispute)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get dispute: %w", err)
	}

	r.cacheDispute(ctx, &dispute)

	return &dispute, nil
}

func (r *disputeRepository) GetByContractID(ctx context.Context, contractID primitive.ObjectID) (*models.Dispute, error) {
	var dispute models.Dispute
	err := r.collection.FindOne(ctx, bson.M{"contract_id": contractID}).Decode(&dispute)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get dispute by contract: %w", err)
	}

	return &dispute, nil
}

func (r *disputeRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update dispute: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateDispute(ctx, id)

	return nil
}

func (r *disputeRepository) IncrementFailedMediationAttempts(ctx context.Context, id primitive.ObjectID) (int, error) {
	var updated models.Dispute
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"failed_mediation_attempts": 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, interfaces.ErrNotFound
		}
		return 0, fmt.Errorf("failed to increment failed mediation attempts: %w", err)
	}

	r.invalidateDispute(ctx, id)

	return updated.FailedMediationAttempts, nil
}

func (r *disputeRepository) ListByParticipant(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Dispute, int64, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"client_id": userID},
			{"freelancer_id": userID},
		},
	}

	return r.findWithFilter(ctx, filter, params)
}

func (r *disputeRepository) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Dispute, int64, error) {
	return r.findWithFilter(ctx, bson.M{}, params)
}

// Helper methods
func (r *disputeRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Dispute, int64, error) {
	if params.Search != "" {
		searchFields := []string{"dispute_number", "reason"}
		filter = bson.M{
			"$and": []bson.M{
				filter,
				params.GetSearchFilter(searchFields),
			},
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count disputes: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find disputes: %w", err)
	}
	defer cursor.Close(ctx)

	var disputes []*models.Dispute
	for cursor.Next(ctx) {
		var dispute models.Dispute
		if err := cursor.Decode(&dispute); err != nil {
			return nil, 0, fmt.Errorf("failed to decode dispute: %w", err)
		}
		disputes = append(disputes, &dispute)
	}

	return disputes, total, nil
}

// Cache operations
func (r *disputeRepository) cacheDispute(ctx context.Context, dispute *models.Dispute) {
	if r.cache != nil {
		r.cache.CacheDispute(ctx, dispute, 15*time.Minute)
	}
}

func (r *disputeRepository) invalidateDispute(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.InvalidateDispute(ctx, id)
	}
}
