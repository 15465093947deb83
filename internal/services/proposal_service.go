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

type ProposalService interface {
	CreateProposal(ctx context.Context, disputeID, adminID primitive.ObjectID, req *validators.CreateProposalRequest) (*models.MediationProposal, error)
	GetProposal(ctx context.Context, proposalID, userID primitive.ObjectID, role models.UserRole) (*models.MediationProposal, error)
	ListByDispute(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole, params *utils.PaginationParams) ([]*models.MediationProposal, int64, error)
	RespondToProposal(ctx context.Context, proposalID, userID primitive.ObjectID, req *validators.RespondToProposalRequest) (*models.MediationProposal, error)
	DeleteProposal(ctx context.Context, proposalID, adminID primitive.ObjectID) error
}

type proposalService struct {
	proposalRepo interfaces.ProposalRepository
	disputeRepo  interfaces.DisputeRepository
	transactor   Transactor
	cfg          *config.MediationConfig
	logger       *logger.Logger
}

func NewProposalService(
	proposalRepo interfaces.ProposalRepository,
	disputeRepo interfaces.DisputeRepository,
	transactor Transactor,
	cfg *config.MediationConfig,
	logger *logger.Logger,
) ProposalService {
	return &proposalService{
		proposalRepo: proposalRepo,
		disputeRepo:  disputeRepo,
		transactor:   transactor,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *proposalService) CreateProposal(ctx context.Context, disputeID, adminID primitive.ObjectID, req *validators.CreateProposalRequest) (*models.MediationProposal, error) {
	if errs := validators.ValidateProposalCreate(req, s.cfg.MinReasoningLength, s.cfg.MaxResponseDeadlineDays); errs.HasErrors() {
		return nil, NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	dispute, err := loadDispute(ctx, s.disputeRepo, disputeID)
	if err != nil {
		return nil, err
	}
	if dispute.IsClosed() {
		return nil, NewInvalidState("dispute is %s and no longer accepts proposals", dispute.Status)
	}

	deadlineDays := req.ResponseDeadlineDays
	if deadlineDays == 0 {
		deadlineDays = s.cfg.DefaultResponseDeadlineDays
	}

	proposal := &models.MediationProposal{
		DisputeID:          disputeID,
		CreatedByAdminID:   adminID,
		ReleaseAmount:      req.ReleaseAmount,
		RefundAmount:       req.RefundAmount,
		Reasoning:          req.Reasoning,
		ResponseDeadline:   time.Now().AddDate(0, 0, deadlineDays),
		Status:             models.ProposalStatusPending,
		ClientResponse:     models.ProposalResponse{Response: models.PartyResponsePending},
		FreelancerResponse: models.ProposalResponse{Response: models.PartyResponsePending},
	}

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	// A first proposal moves the dispute into active mediation.
	if dispute.Status == models.DisputeStatusOpen {
		updates := map[string]interface{}{
			"status":            models.DisputeStatusUnderMediation,
			"assigned_admin_id": adminID,
		}
		if err := s.disputeRepo.Update(ctx, disputeID, updates); err != nil {
			s.logger.WithError(err).WithDisputeID(disputeID).Warn("Failed to move dispute under mediation")
		}
	}

	s.logger.LogDisputeEvent(disputeID, utils.EventProposalCreated, map[string]interface{}{
		"proposal_id":       proposal.ID.Hex(),
		"created_by":        adminID.Hex(),
		"response_deadline": proposal.ResponseDeadline,
	})

	return proposal, nil
}

func (s *proposalService) GetProposal(ctx context.Context, proposalID, userID primitive.ObjectID, role models.UserRole) (*models.MediationProposal, error) {
	proposal, err := s.loadProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if role != models.UserRoleAdmin {
		dispute, err := loadDispute(ctx, s.disputeRepo, proposal.DisputeID)
		if err != nil {
			return nil, err
		}
		if !dispute.IsParticipant(userID) {
			return nil, NewPermissionDenied("not a participant of this dispute")
		}
	}

	return s.settleExpiry(ctx, proposal), nil
}

func (s *proposalService) ListByDispute(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole, params *utils.PaginationParams) ([]*models.MediationProposal, int64, error) {
	if role != models.UserRoleAdmin {
		dispute, err := loadDispute(ctx, s.disputeRepo, disputeID)
		if err != nil {
			return nil, 0, err
		}
		if !dispute.IsParticipant(userID) {
			return nil, 0, NewPermissionDenied("not a participant of this dispute")
		}
	}

	proposals, total, err := s.proposalRepo.ListByDispute(ctx, disputeID, params)
	if err != nil {
		return nil, 0, err
	}

	for i, proposal := range proposals {
		proposals[i] = s.settleExpiry(ctx, proposal)
	}

	return proposals, total, nil
}

// RespondToProposal records one party's answer and recomputes the
// aggregate status. The response write, the status recompute and any
// failed-attempt increment happen in one transaction.
func (s *proposalService) RespondToProposal(ctx context.Context, proposalID, userID primitive.ObjectID, req *validators.RespondToProposalRequest) (*models.MediationProposal, error) {
	if errs := validators.ValidateProposalRespond(req); errs.HasErrors() {
		return nil, NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	proposal, err := s.loadProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	dispute, err := loadDispute(ctx, s.disputeRepo, proposal.DisputeID)
	if err != nil {
		return nil, err
	}

	role := dispute.ParticipantRole(userID)
	if role == "" {
		return nil, NewPermissionDenied("only a disputing party can respond to a proposal")
	}

	now := time.Now()
	if proposal.EffectiveStatus(now) == models.ProposalStatusExpired {
		proposal = s.settleExpiry(ctx, proposal)
		return nil, NewInvalidState("proposal expired on %s; the response was not applied", proposal.ResponseDeadline.Format(time.RFC3339))
	}
	if proposal.Status.IsTerminal() {
		return nil, NewInvalidState("proposal is %s and no longer accepts responses", proposal.Status)
	}
	if proposal.ResponseFor(role).Response != models.PartyResponsePending {
		return nil, NewInvalidState("this party has already responded to the proposal")
	}

	response := models.ProposalResponse{
		Response:    models.PartyResponse(req.Response),
		Message:     validators.SanitizeInput(req.Message),
		RespondedAt: &now,
	}

	if role == models.UserRoleFreelancer {
		proposal.FreelancerResponse = response
	} else {
		proposal.ClientResponse = response
	}
	newStatus := proposal.AggregateStatus()

	_, err = s.transactor.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		updates := map[string]interface{}{
			"status": newStatus,
		}
		if role == models.UserRoleFreelancer {
			updates["freelancer_response"] = response
		} else {
			updates["client_response"] = response
		}
		if err := s.proposalRepo.Update(sessCtx, proposalID, updates); err != nil {
			return nil, err
		}

		switch newStatus {
		case models.ProposalStatusRejected:
			attempts, err := s.disputeRepo.IncrementFailedMediationAttempts(sessCtx, proposal.DisputeID)
			if err != nil {
				return nil, err
			}
			s.logger.WithDisputeID(proposal.DisputeID).
				WithField("failed_mediation_attempts", attempts).
				Info("Failed mediation attempt recorded")
		case models.ProposalStatusAcceptedByAll:
			if err := s.disputeRepo.Update(sessCtx, proposal.DisputeID, map[string]interface{}{
				"status": models.DisputeStatusResolved,
			}); err != nil {
				return nil, err
			}
		}

		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogDisputeEvent(proposal.DisputeID, utils.EventProposalResponded, map[string]interface{}{
		"proposal_id":      proposalID.Hex(),
		"responded_by":     userID.Hex(),
		"party":            role,
		"response":         response.Response,
		"aggregate_status": newStatus,
	})

	return s.loadProposal(ctx, proposalID)
}

func (s *proposalService) DeleteProposal(ctx context.Context, proposalID, adminID primitive.ObjectID) error {
	proposal, err := s.loadProposal(ctx, proposalID)
	if err != nil {
		return err
	}

	if err := s.proposalRepo.Delete(ctx, proposalID); err != nil {
		return err
	}

	// Deletion is allowed in any state; keep a trace since the record
	// itself is gone.
	s.logger.WithProposalID(proposalID).
		WithDisputeID(proposal.DisputeID).
		WithUserID(adminID).
		WithField("status", proposal.Status).
		Warn("Mediation proposal deleted")

	return nil
}

// settleExpiry persists a lazily observed expiry. There is no background
// sweep; the first read or respond past the deadline moves the stored
// status and records the failed attempt.
func (s *proposalService) settleExpiry(ctx context.Context, proposal *models.MediationProposal) *models.MediationProposal {
	now := time.Now()
	if proposal.Status != models.ProposalStatusPending || proposal.EffectiveStatus(now) != models.ProposalStatusExpired {
		return proposal
	}

	_, err := s.transactor.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := s.proposalRepo.Update(sessCtx, proposal.ID, map[string]interface{}{
			"status": models.ProposalStatusExpired,
		}); err != nil {
			return nil, err
		}

		attempts, err := s.disputeRepo.IncrementFailedMediationAttempts(sessCtx, proposal.DisputeID)
		if err != nil {
			return nil, err
		}
		s.logger.WithDisputeID(proposal.DisputeID).
			WithField("failed_mediation_attempts", attempts).
			Info("Failed mediation attempt recorded")

		return nil, nil
	})
	if err != nil {
		s.logger.WithError(err).WithProposalID(proposal.ID).Warn("Failed to persist proposal expiry")
	}

	proposal.Status = models.ProposalStatusExpired
	return proposal
}

func (s *proposalService) loadProposal(ctx context.Context, proposalID primitive.ObjectID) (*models.MediationProposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("mediation proposal")
		}
		return nil, err
	}
	return proposal, nil
}
