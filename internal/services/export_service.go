package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/config"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/repositories/interfaces"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/validators"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/storage"
)

type ExportService interface {
	CheckEligibility(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole) (*models.ExportEligibility, error)
	GetDisputeDocumentPackage(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole) (*models.DisputeDocumentPackage, error)
	CloseMediationForExternalResolution(ctx context.Context, disputeID, adminID primitive.ObjectID, req *validators.CloseMediationRequest) (*models.Dispute, error)
}

type exportService struct {
	disputeRepo     interfaces.DisputeRepository
	evidenceRepo    interfaces.EvidenceRepository
	proposalRepo    interfaces.ProposalRepository
	storageProvider storage.StorageProvider
	cfg             *config.MediationConfig
	logger          *logger.Logger
}

func NewExportService(
	disputeRepo interfaces.DisputeRepository,
	evidenceRepo interfaces.EvidenceRepository,
	proposalRepo interfaces.ProposalRepository,
	storageProvider storage.StorageProvider,
	cfg *config.MediationConfig,
	logger *logger.Logger,
) ExportService {
	return &exportService{
		disputeRepo:     disputeRepo,
		evidenceRepo:    evidenceRepo,
		proposalRepo:    proposalRepo,
		storageProvider: storageProvider,
		cfg:             cfg,
		logger:          logger,
	}
}

func (s *exportService) CheckEligibility(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole) (*models.ExportEligibility, error) {
	dispute, err := loadDispute(ctx, s.disputeRepo, disputeID)
	if err != nil {
		return nil, err
	}

	if role != models.UserRoleAdmin && !dispute.IsParticipant(userID) {
		return nil, NewPermissionDenied("not a participant of this dispute")
	}

	threshold := s.cfg.ExportEligibilityThreshold
	eligible := IsEligibleForDocumentExport(dispute, userID, role, threshold)

	message := fmt.Sprintf("dispute has %d of %d required failed mediation attempts", dispute.FailedMediationAttempts, threshold)
	if eligible {
		message = "dispute is eligible for document export and external resolution"
	}

	return &models.ExportEligibility{
		IsEligible:              eligible,
		FailedMediationAttempts: dispute.FailedMediationAttempts,
		RequiredAttempts:        threshold,
		Message:                 message,
	}, nil
}

// GetDisputeDocumentPackage assembles the read-only bundle handed to the
// parties for court use: the dispute record, every evidence submission
// with its items and comments, every proposal, and time-limited signed
// links for uploaded evidence files.
func (s *exportService) GetDisputeDocumentPackage(ctx context.Context, disputeID, userID primitive.ObjectID, role models.UserRole) (*models.DisputeDocumentPackage, error) {
	dispute, err := loadDispute(ctx, s.disputeRepo, disputeID)
	if err != nil {
		return nil, err
	}

	if role != models.UserRoleAdmin && !dispute.IsParticipant(userID) {
		return nil, NewPermissionDenied("not a participant of this dispute")
	}
	if !IsEligibleForDocumentExport(dispute, userID, role, s.cfg.ExportEligibilityThreshold) {
		return nil, NewInvalidState(
			"dispute is not eligible for document export: %d of %d required failed mediation attempts",
			dispute.FailedMediationAttempts, s.cfg.ExportEligibilityThreshold,
		)
	}

	params := exportListParams()
	submissions, _, err := s.evidenceRepo.ListByDispute(ctx, disputeID, params)
	if err != nil {
		return nil, err
	}
	proposals, _, err := s.proposalRepo.ListByDispute(ctx, disputeID, params)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, proposal := range proposals {
		proposal.Status = proposal.EffectiveStatus(now)
	}

	pkg := &models.DisputeDocumentPackage{
		Dispute:     dispute,
		Submissions: submissions,
		Proposals:   proposals,
		Documents:   s.signDocuments(ctx, submissions, now),
		GeneratedAt: now,
		GeneratedBy: userID,
	}

	s.logger.LogDisputeEvent(disputeID, utils.EventDocumentPackageBuilt, map[string]interface{}{
		"generated_by":     userID.Hex(),
		"submission_count": len(submissions),
		"proposal_count":   len(proposals),
		"document_count":   len(pkg.Documents),
	})

	return pkg, nil
}

func (s *exportService) CloseMediationForExternalResolution(ctx context.Context, disputeID, adminID primitive.ObjectID, req *validators.CloseMediationRequest) (*models.Dispute, error) {
	if errs := validators.ValidateCloseMediation(req, s.cfg.MinCloseReasonLength); errs.HasErrors() {
		return nil, NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	dispute, err := loadDispute(ctx, s.disputeRepo, disputeID)
	if err != nil {
		return nil, err
	}

	if dispute.IsClosed() {
		return nil, NewInvalidState("dispute is already %s", dispute.Status)
	}
	if dispute.FailedMediationAttempts < s.cfg.ExportEligibilityThreshold {
		return nil, NewInvalidState(
			"mediation cannot be closed: %d of %d required failed mediation attempts",
			dispute.FailedMediationAttempts, s.cfg.ExportEligibilityThreshold,
		)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.DisputeStatusClosedForExternal,
		"close_reason": req.Reason,
		"closed_by_id": adminID,
		"closed_at":    now,
	}
	if err := s.disputeRepo.Update(ctx, disputeID, updates); err != nil {
		return nil, err
	}

	s.logger.LogDisputeEvent(disputeID, utils.EventMediationClosed, map[string]interface{}{
		"closed_by":                 adminID.Hex(),
		"failed_mediation_attempts": dispute.FailedMediationAttempts,
	})

	return loadDispute(ctx, s.disputeRepo, disputeID)
}

// signDocuments collects every uploaded evidence file and issues a signed
// download link for each. A file that cannot be signed is skipped rather
// than failing the whole package.
func (s *exportService) signDocuments(ctx context.Context, submissions []*models.EvidenceSubmission, now time.Time) []models.ExportedDocument {
	documents := []models.ExportedDocument{}
	if s.storageProvider == nil {
		return documents
	}

	ttl := s.cfg.ExportDocumentURLTTL
	for _, submission := range submissions {
		for i := range submission.Items {
			item := &submission.Items[i]
			if item.StorageKey == "" {
				continue
			}

			url, err := s.storageProvider.GetURL(ctx, item.StorageKey, ttl)
			if err != nil {
				s.logger.WithError(err).
					WithSubmissionID(submission.ID).
					WithField("storage_key", item.StorageKey).
					Warn("Failed to sign evidence document URL")
				continue
			}

			documents = append(documents, models.ExportedDocument{
				SubmissionID: submission.ID,
				ItemID:       item.ID,
				FileName:     item.FileName,
				URL:          url,
				ExpiresAt:    now.Add(ttl),
			})
		}
	}

	return documents
}

func exportListParams() *utils.PaginationParams {
	return &utils.PaginationParams{
		Page:     1,
		PageSize: utils.MaxPageSize,
		Sort:     "created_at",
		Order:    "asc",
	}
}
