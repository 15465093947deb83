package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/config"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/repositories/interfaces"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/validators"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
)

type EvidenceService interface {
	CreateSubmission(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole, req *validators.CreateEvidenceSubmissionRequest) (*models.EvidenceSubmission, error)
	GetSubmission(ctx context.Context, submissionID, userID primitive.ObjectID, role models.UserRole) (*models.EvidenceSubmission, error)
	UpdateSubmission(ctx context.Context, submissionID, userID primitive.ObjectID, req *validators.UpdateEvidenceSubmissionRequest) (*models.EvidenceSubmission, error)
	SubmitSubmission(ctx context.Context, submissionID, userID primitive.ObjectID) (*models.EvidenceSubmission, error)
	ReviewSubmission(ctx context.Context, submissionID, adminID primitive.ObjectID, req *validators.ReviewEvidenceRequest) (*models.EvidenceSubmission, error)
	AddComment(ctx context.Context, submissionID, userID primitive.ObjectID, role models.UserRole, req *validators.AddEvidenceCommentRequest) (*models.EvidenceComment, error)
	ListByDispute(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error)
	ListSubmissions(ctx context.Context, userID primitive.ObjectID, role models.UserRole, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error)
	DeleteSubmission(ctx context.Context, submissionID, userID primitive.ObjectID, role models.UserRole) error
}

type evidenceService struct {
	evidenceRepo interfaces.EvidenceRepository
	disputeRepo  interfaces.DisputeRepository
	transactor   Transactor
	cfg          *config.MediationConfig
	logger       *logger.Logger
}

func NewEvidenceService(
	evidenceRepo interfaces.EvidenceRepository,
	disputeRepo interfaces.DisputeRepository,
	transactor Transactor,
	cfg *config.MediationConfig,
	logger *logger.Logger,
) EvidenceService {
	return &evidenceService{
		evidenceRepo: evidenceRepo,
		disputeRepo:  disputeRepo,
		transactor:   transactor,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *evidenceService) CreateSubmission(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole, req *validators.CreateEvidenceSubmissionRequest) (*models.EvidenceSubmission, error) {
	if errs := validators.ValidateEvidenceCreate(req, s.cfg.MaxEvidenceItems); errs.HasErrors() {
		return nil, NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	dispute, err := loadDispute(ctx, s.disputeRepo, disputeID)
	if err != nil {
		return nil, err
	}

	// Admins file evidence on any dispute; everyone else must be a party.
	if role != models.UserRoleAdmin {
		role = dispute.ParticipantRole(userID)
		if role == "" {
			return nil, NewPermissionDenied("only a dispute participant or an admin can submit evidence")
		}
	}
	if dispute.IsClosed() {
		return nil, NewInvalidState("dispute is %s and no longer accepts evidence", dispute.Status)
	}

	submission := &models.EvidenceSubmission{
		DisputeID:     disputeID,
		SubmittedByID: userID,
		SubmittedRole: role,
		Title:         validators.SanitizeInput(req.Title),
		Description:   validators.SanitizeInput(req.Description),
		Status:        models.EvidenceStatusDraft,
		Items:         validators.ItemsToModels(req.Items),
		Comments:      []models.EvidenceComment{},
	}

	if err := s.evidenceRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.WithDisputeID(disputeID).
		WithSubmissionID(submission.ID).
		WithField("item_count", len(submission.Items)).
		Info("Evidence submission drafted")

	return submission, nil
}

func (s *evidenceService) GetSubmission(ctx context.Context, submissionID, userID primitive.ObjectID, role models.UserRole) (*models.EvidenceSubmission, error) {
	submission, err := s.loadSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if role != models.UserRoleAdmin {
		dispute, err := loadDispute(ctx, s.disputeRepo, submission.DisputeID)
		if err != nil {
			return nil, err
		}
		if !dispute.IsParticipant(userID) {
			return nil, NewPermissionDenied("not a participant of this dispute")
		}
	}

	return submission, nil
}

func (s *evidenceService) UpdateSubmission(ctx context.Context, submissionID, userID primitive.ObjectID, req *validators.UpdateEvidenceSubmissionRequest) (*models.EvidenceSubmission, error) {
	if errs := validators.ValidateEvidenceUpdate(req, s.cfg.MaxEvidenceItems); errs.HasErrors() {
		return nil, NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	submission, err := s.loadSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if submission.SubmittedByID != userID {
		return nil, NewPermissionDenied("only the original submitter can edit a submission")
	}
	if !submission.IsEditable() {
		return nil, NewInvalidState("submission is %s and can no longer be edited", submission.Status)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = validators.SanitizeInput(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = validators.SanitizeInput(*req.Description)
	}
	if req.Items != nil {
		updates["items"] = validators.ItemsToModels(req.Items)
	}

	if len(updates) > 0 {
		if err := s.evidenceRepo.Update(ctx, submissionID, updates); err != nil {
			return nil, err
		}
	}

	return s.loadSubmission(ctx, submissionID)
}

func (s *evidenceService) SubmitSubmission(ctx context.Context, submissionID, userID primitive.ObjectID) (*models.EvidenceSubmission, error) {
	submission, err := s.loadSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if submission.SubmittedByID != userID {
		return nil, NewPermissionDenied("only the original submitter can submit a submission")
	}
	if submission.Status != models.EvidenceStatusDraft {
		return nil, NewInvalidState("submission is %s; only DRAFT submissions can be submitted", submission.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.EvidenceStatusSubmitted,
		"submitted_at": now,
	}
	if err := s.evidenceRepo.Update(ctx, submissionID, updates); err != nil {
		return nil, err
	}

	s.logger.LogDisputeEvent(submission.DisputeID, utils.EventEvidenceSubmitted, map[string]interface{}{
		"submission_id": submissionID.Hex(),
		"submitted_by":  userID.Hex(),
	})

	return s.loadSubmission(ctx, submissionID)
}

// ReviewSubmission records the admin verdict. A rejection counts as a
// failed mediation attempt, so the verdict and the dispute counter move
// together in one transaction.
func (s *evidenceService) ReviewSubmission(ctx context.Context, submissionID, adminID primitive.ObjectID, req *validators.ReviewEvidenceRequest) (*models.EvidenceSubmission, error) {
	if errs := validators.ValidateEvidenceReview(req); errs.HasErrors() {
		return nil, NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	submission, err := s.loadSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if !submission.IsReviewable() {
		return nil, NewInvalidState("submission is %s and cannot be reviewed", submission.Status)
	}

	verdict := models.EvidenceStatus(req.Status)
	now := time.Now()

	// Marking UNDER_REVIEW claims the packet for this admin without a
	// verdict; the submission stays reviewable and the counter untouched.
	if verdict == models.EvidenceStatusUnderReview {
		if submission.Status != models.EvidenceStatusSubmitted {
			return nil, NewInvalidState("submission is already %s", submission.Status)
		}
		updates := map[string]interface{}{
			"status":         models.EvidenceStatusUnderReview,
			"reviewed_by_id": adminID,
		}
		if err := s.evidenceRepo.Update(ctx, submissionID, updates); err != nil {
			return nil, err
		}
		return s.loadSubmission(ctx, submissionID)
	}

	_, err = s.transactor.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		updates := map[string]interface{}{
			"status":         verdict,
			"reviewed_by_id": adminID,
			"review_notes":   req.ReviewNotes,
			"reviewed_at":    now,
		}
		if err := s.evidenceRepo.Update(sessCtx, submissionID, updates); err != nil {
			return nil, err
		}

		if verdict == models.EvidenceStatusRejected {
			attempts, err := s.disputeRepo.IncrementFailedMediationAttempts(sessCtx, submission.DisputeID)
			if err != nil {
				return nil, err
			}
			s.logger.WithDisputeID(submission.DisputeID).
				WithField("failed_mediation_attempts", attempts).
				Info("Failed mediation attempt recorded")
		}

		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogDisputeEvent(submission.DisputeID, utils.EventEvidenceReviewed, map[string]interface{}{
		"submission_id": submissionID.Hex(),
		"reviewed_by":   adminID.Hex(),
		"verdict":       verdict,
	})

	return s.loadSubmission(ctx, submissionID)
}

func (s *evidenceService) AddComment(ctx context.Context, submissionID, userID primitive.ObjectID, role models.UserRole, req *validators.AddEvidenceCommentRequest) (*models.EvidenceComment, error) {
	if errs := validators.ValidateEvidenceComment(req); errs.HasErrors() {
		return nil, NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	submission, err := s.loadSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if role != models.UserRoleAdmin {
		dispute, err := loadDispute(ctx, s.disputeRepo, submission.DisputeID)
		if err != nil {
			return nil, err
		}
		if !dispute.IsParticipant(userID) {
			return nil, NewPermissionDenied("not a participant of this dispute")
		}
		role = dispute.ParticipantRole(userID)
	}

	if req.ItemID != nil {
		if !submissionHasItem(submission, *req.ItemID) {
			return nil, NewValidationError("comment references an unknown item", map[string]string{
				"item_id": "item does not belong to this submission",
			})
		}
	}

	comment := &models.EvidenceComment{
		ItemID:   req.ItemID,
		AuthorID: userID,
		Role:     role,
		Content:  validators.SanitizeInput(req.Content),
	}

	if err := s.evidenceRepo.AddComment(ctx, submissionID, comment); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("evidence submission")
		}
		return nil, err
	}

	return comment, nil
}

func (s *evidenceService) ListByDispute(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error) {
	if role != models.UserRoleAdmin {
		dispute, err := loadDispute(ctx, s.disputeRepo, disputeID)
		if err != nil {
			return nil, 0, err
		}
		if !dispute.IsParticipant(userID) {
			return nil, 0, NewPermissionDenied("not a participant of this dispute")
		}
	}

	return s.evidenceRepo.ListByDispute(ctx, disputeID, params)
}

// ListSubmissions is the cross-dispute listing: a party sees only what
// they filed, an admin sees every submission on the platform.
func (s *evidenceService) ListSubmissions(ctx context.Context, userID primitive.ObjectID, role models.UserRole, params *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error) {
	if role == models.UserRoleAdmin {
		return s.evidenceRepo.ListAll(ctx, params)
	}
	return s.evidenceRepo.ListBySubmitter(ctx, userID, params)
}

func (s *evidenceService) DeleteSubmission(ctx context.Context, submissionID, userID primitive.ObjectID, role models.UserRole) error {
	submission, err := s.loadSubmission(ctx, submissionID)
	if err != nil {
		return err
	}

	if role != models.UserRoleAdmin {
		if submission.SubmittedByID != userID {
			return NewPermissionDenied("only the original submitter can delete a submission")
		}
		if !submission.IsEditable() {
			return NewInvalidState("submission is %s and can only be deleted by an admin", submission.Status)
		}
	}

	if err := s.evidenceRepo.Delete(ctx, submissionID); err != nil {
		return err
	}

	s.logger.WithSubmissionID(submissionID).
		WithUserID(userID).
		Warn("Evidence submission deleted")

	return nil
}

func (s *evidenceService) loadSubmission(ctx context.Context, submissionID primitive.ObjectID) (*models.EvidenceSubmission, error) {
	submission, err := s.evidenceRepo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("evidence submission")
		}
		return nil, err
	}
	return submission, nil
}

func submissionHasItem(submission *models.EvidenceSubmission, itemID primitive.ObjectID) bool {
	for i := range submission.Items {
		if submission.Items[i].ID == itemID {
			return true
		}
	}
	return false
}
