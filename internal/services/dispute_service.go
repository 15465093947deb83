package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/config"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/repositories/interfaces"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/validators"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
)

type DisputeService interface {
	CreateDispute(ctx context.Context, raisedByID primitive.ObjectID, req *validators.CreateDisputeRequest) (*models.Dispute, error)
	GetDispute(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole) (*models.Dispute, error)
	ListDisputes(ctx context.Context, userID primitive.ObjectID, role models.UserRole, params *utils.PaginationParams) ([]*models.Dispute, int64, error)
}

type disputeService struct {
	disputeRepo interfaces.DisputeRepository
	cfg         *config.MediationConfig
	logger      *logger.Logger
}

func NewDisputeService(disputeRepo interfaces.DisputeRepository, cfg *config.MediationConfig, logger *logger.Logger) DisputeService {
	return &disputeService{
		disputeRepo: disputeRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *disputeService) CreateDispute(ctx context.Context, raisedByID primitive.ObjectID, req *validators.CreateDisputeRequest) (*models.Dispute, error) {
	if errs := validators.ValidateDisputeCreate(req); errs.HasErrors() {
		return nil, NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	if raisedByID != req.ClientID && raisedByID != req.FreelancerID {
		return nil, NewPermissionDenied("only a contract party can raise a dispute")
	}

	// One dispute per contract; conflicts over the same contract continue
	// in the existing record.
	if existing, err := s.disputeRepo.GetByContractID(ctx, req.ContractID); err == nil && existing != nil {
		return nil, NewInvalidState("a dispute already exists for this contract")
	} else if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	dispute := &models.Dispute{
		DisputeNumber: utils.GenerateDisputeNumber(),
		ContractID:    req.ContractID,
		ClientID:      req.ClientID,
		FreelancerID:  req.FreelancerID,
		RaisedByID:    raisedByID,
		Reason:        req.Reason,
		Status:        models.DisputeStatusOpen,
	}

	if err := s.disputeRepo.Create(ctx, dispute); err != nil {
		return nil, err
	}

	s.logger.LogDisputeEvent(dispute.ID, utils.EventDisputeRaised, map[string]interface{}{
		"dispute_number": dispute.DisputeNumber,
		"raised_by":      raisedByID.Hex(),
	})

	return dispute, nil
}

func (s *disputeService) GetDispute(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole) (*models.Dispute, error) {
	dispute, err := s.disputeRepo.GetByID(ctx, disputeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("dispute")
		}
		return nil, err
	}

	if role != models.UserRoleAdmin && !dispute.IsParticipant(userID) {
		return nil, NewPermissionDenied("not a participant of this dispute")
	}

	return dispute, nil
}

func (s *disputeService) ListDisputes(ctx context.Context, userID primitive.ObjectID, role models.UserRole, params *utils.PaginationParams) ([]*models.Dispute, int64, error) {
	if role == models.UserRoleAdmin {
		return s.disputeRepo.ListAll(ctx, params)
	}
	return s.disputeRepo.ListByParticipant(ctx, userID, params)
}

// IsEligibleForDocumentExport is the escalation gate: a dispute may move
// to external resolution only after repeated failed mediation, and only a
// participant or an admin may ask.
func IsEligibleForDocumentExport(dispute *models.Dispute, userID primitive.ObjectID, role models.UserRole, threshold int) bool {
	if role != models.UserRoleAdmin && !dispute.IsParticipant(userID) {
		return false
	}
	return dispute.FailedMediationAttempts >= threshold
}

// loadDispute fetches a dispute for a dependent service, translating the
// repository miss into the domain taxonomy.
func loadDispute(ctx context.Context, repo interfaces.DisputeRepository, disputeID primitive.ObjectID) (*models.Dispute, error) {
	dispute, err := repo.GetByID(ctx, disputeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("dispute")
		}
		return nil, err
	}
	return dispute, nil
}
