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

type evidenceRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewEvidenceRepository(db *mongo.Database, cache services.CacheService) interfaces.EvidenceRepository {
	return &evidenceRepository{
		collection: db.Collection("evidence_submissions"),
		cache:      cache,
	}
}

func (r *evidenceRepository) Create(ctx context.Context, submission *models.EvidenceSubmission) error {
	submission.ID = primitive.NewObjectID()
	submission.CreatedAt = time.Now()
	submission.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, submission)
	if err != nil {
		return fmt.Errorf("failed to create evidence submission: %w", err)
	}

	return nil
}

func (r *evidenceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvidenceSubmission, error) {
	if r.cache != nil {
		if submission, err := r.cache.GetCachedSubmission(ctx, id); err == nil {
			return submission, nil
		}
	}

	var submission models.EvidenceSubmission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get evidence submission: %w", err)
	}

	if r.cache != nil {
		r.cache.CacheSubmission(ctx, &submission, 15*time.Minute)
	}

	return &submission, nil
}

func (r *evidenceRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update evidence submission: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateSubmission(ctx, id)

	return nil
}

func (r *evidenceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete evidence submission: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateSubmission(ctx, id)

	return nil
}

func (r *evidenceRepository) AddComment(ctx context.Context, submissionID primitive.ObjectID, comment *models.EvidenceComment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": submissionID},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to add evidence comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateSubmission(ctx, submissionID)

	return nil
}

func (r *evidenceRepository) ListByDispute(ctx context.Context, disputeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error) {
	return r.findWithFilter(ctx, bson.M{"dispute_id": disputeID}, params)
}

func (r *evidenceRepository) ListBySubmitter(ctx context.Context, submitterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error) {
	return r.findWithFilter(ctx, bson.M{"submitted_by_id": submitterID}, params)
}

func (r *evidenceRepository) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error) {
	return r.findWithFilter(ctx, bson.M{}, params)
}

// Helper methods
func (r *evidenceRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error) {
	if params.Search != "" {
		searchFields := []string{"title", "description"}
		filter = bson.M{
			"$and": []bson.M{
				filter,
				params.GetSearchFilter(searchFields),
			},
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count evidence submissions: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find evidence submissions: %w", err)
	}
	defer cursor.Close(ctx)

	var submissions []*models.EvidenceSubmission
	for cursor.Next(ctx) {
		var submission models.EvidenceSubmission
		if err := cursor.Decode(&submission); err != nil {
			return nil, 0, fmt.Errorf("failed to decode evidence submission: %w", err)
		}
		submissions = append(submissions, &submission)
	}

	return submissions, total, nil
}

func (r *evidenceRepository) invalidateSubmission(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.InvalidateSubmission(ctx, id)
	}
}
