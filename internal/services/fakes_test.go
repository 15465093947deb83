package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/config"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/repositories/interfaces"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
)

// In-memory repository fakes. They apply the same update maps the Mongo
// repositories translate into $set documents.

type fakeTransactor struct{}

func (fakeTransactor) WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	return fn(nil)
}

type fakeDisputeRepo struct {
	disputes map[primitive.ObjectID]*models.Dispute
}

func newFakeDisputeRepo() *fakeDisputeRepo {
	return &fakeDisputeRepo{disputes: make(map[primitive.ObjectID]*models.Dispute)}
}

func (r *fakeDisputeRepo) Create(_ context.Context, dispute *models.Dispute) error {
	dispute.ID = primitive.NewObjectID()
	dispute.CreatedAt = time.Now()
	dispute.UpdatedAt = time.Now()
	stored := *dispute
	r.disputes[dispute.ID] = &stored
	return nil
}

func (r *fakeDisputeRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Dispute, error) {
	dispute, ok := r.disputes[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *dispute
	return &copied, nil
}

func (r *fakeDisputeRepo) GetByContractID(_ context.Context, contractID primitive.ObjectID) (*models.Dispute, error) {
	for _, dispute := range r.disputes {
		if dispute.ContractID == contractID {
			copied := *dispute
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeDisputeRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	dispute, ok := r.disputes[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "status":
			dispute.Status = value.(models.DisputeStatus)
		case "assigned_admin_id":
			adminID := value.(primitive.ObjectID)
			dispute.AssignedAdminID = &adminID
		case "close_reason":
			dispute.CloseReason = value.(string)
		case "closed_by_id":
			closedBy := value.(primitive.ObjectID)
			dispute.ClosedByID = &closedBy
		case "closed_at":
			closedAt := value.(time.Time)
			dispute.ClosedAt = &closedAt
		}
	}
	dispute.UpdatedAt = time.Now()
	return nil
}

func (r *fakeDisputeRepo) IncrementFailedMediationAttempts(_ context.Context, id primitive.ObjectID) (int, error) {
	dispute, ok := r.disputes[id]
	if !ok {
		return 0, interfaces.ErrNotFound
	}
	dispute.FailedMediationAttempts++
	dispute.UpdatedAt = time.Now()
	return dispute.FailedMediationAttempts, nil
}

func (r *fakeDisputeRepo) ListByParticipant(_ context.Context, userID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Dispute, int64, error) {
	var result []*models.Dispute
	for _, dispute := range r.disputes {
		if dispute.IsParticipant(userID) {
			copied := *dispute
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeDisputeRepo) ListAll(_ context.Context, _ *utils.PaginationParams) ([]*models.Dispute, int64, error) {
	var result []*models.Dispute
	for _, dispute := range r.disputes {
		copied := *dispute
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

type fakeEvidenceRepo struct {
	submissions map[primitive.ObjectID]*models.EvidenceSubmission
}

func newFakeEvidenceRepo() *fakeEvidenceRepo {
	return &fakeEvidenceRepo{submissions: make(map[primitive.ObjectID]*models.EvidenceSubmission)}
}

func (r *fakeEvidenceRepo) Create(_ context.Context, submission *models.EvidenceSubmission) error {
	submission.ID = primitive.NewObjectID()
	submission.CreatedAt = time.Now()
	submission.UpdatedAt = time.Now()
	stored := *submission
	r.submissions[submission.ID] = &stored
	return nil
}

func (r *fakeEvidenceRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.EvidenceSubmission, error) {
	submission, ok := r.submissions[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *submission
	return &copied, nil
}

func (r *fakeEvidenceRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	submission, ok := r.submissions[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "status":
			submission.Status = value.(models.EvidenceStatus)
		case "title":
			submission.Title = value.(string)
		case "description":
			submission.Description = value.(string)
		case "items":
			submission.Items = value.([]models.EvidenceItem)
		case "submitted_at":
			submittedAt := value.(time.Time)
			submission.SubmittedAt = &submittedAt
		case "reviewed_by_id":
			reviewedBy := value.(primitive.ObjectID)
			submission.ReviewedByID = &reviewedBy
		case "review_notes":
			submission.ReviewNotes = value.(string)
		case "reviewed_at":
			reviewedAt := value.(time.Time)
			submission.ReviewedAt = &reviewedAt
		}
	}
	submission.UpdatedAt = time.Now()
	return nil
}

func (r *fakeEvidenceRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.submissions[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.submissions, id)
	return nil
}

func (r *fakeEvidenceRepo) AddComment(_ context.Context, submissionID primitive.ObjectID, comment *models.EvidenceComment) error {
	submission, ok := r.submissions[submissionID]
	if !ok {
		return interfaces.ErrNotFound
	}
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	submission.Comments = append(submission.Comments, *comment)
	return nil
}

func (r *fakeEvidenceRepo) ListByDispute(_ context.Context, disputeID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error) {
	var result []*models.EvidenceSubmission
	for _, submission := range r.submissions {
		if submission.DisputeID == disputeID {
			copied := *submission
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeEvidenceRepo) ListBySubmitter(_ context.Context, submitterID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error) {
	var result []*models.EvidenceSubmission
	for _, submission := range r.submissions {
		if submission.SubmittedByID == submitterID {
			copied := *submission
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeEvidenceRepo) ListAll(_ context.Context, _ *utils.PaginationParams) ([]*models.EvidenceSubmission, int64, error) {
	var result []*models.EvidenceSubmission
	for _, submission := range r.submissions {
		copied := *submission
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

type fakeProposalRepo struct {
	proposals map[primitive.ObjectID]*models.MediationProposal
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{proposals: make(map[primitive.ObjectID]*models.MediationProposal)}
}

func (r *fakeProposalRepo) Create(_ context.Context, proposal *models.MediationProposal) error {
	proposal.ID = primitive.NewObjectID()
	proposal.CreatedAt = time.Now()
	proposal.UpdatedAt = time.Now()
	stored := *proposal
	r.proposals[proposal.ID] = &stored
	return nil
}

func (r *fakeProposalRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.MediationProposal, error) {
	proposal, ok := r.proposals[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *proposal
	return &copied, nil
}

func (r *fakeProposalRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	proposal, ok := r.proposals[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "status":
			proposal.Status = value.(models.ProposalStatus)
		case "client_response":
			proposal.ClientResponse = value.(models.ProposalResponse)
		case "freelancer_response":
			proposal.FreelancerResponse = value.(models.ProposalResponse)
		}
	}
	proposal.UpdatedAt = time.Now()
	return nil
}

func (r *fakeProposalRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.proposals[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.proposals, id)
	return nil
}

func (r *fakeProposalRepo) ListByDispute(_ context.Context, disputeID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.MediationProposal, int64, error) {
	var result []*models.MediationProposal
	for _, proposal := range r.proposals {
		if proposal.DisputeID == disputeID {
			copied := *proposal
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

// Shared test fixtures

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	return log
}

func testMediationConfig() *config.MediationConfig {
	return &config.MediationConfig{
		MinReasoningLength:          50,
		MinCloseReasonLength:        10,
		DefaultResponseDeadlineDays: 7,
		MaxResponseDeadlineDays:     30,
		ExportEligibilityThreshold:  2,
		MaxEvidenceItems:            50,
		ExportDocumentURLTTL:        24 * time.Hour,
	}
}

func seedDispute(repo *fakeDisputeRepo, status models.DisputeStatus, failedAttempts int) *models.Dispute {
	dispute := &models.Dispute{
		ID:                      primitive.NewObjectID(),
		DisputeNumber:           "DSP-TEST1234",
		ContractID:              primitive.NewObjectID(),
		ClientID:                primitive.NewObjectID(),
		FreelancerID:            primitive.NewObjectID(),
		Status:                  status,
		FailedMediationAttempts: failedAttempts,
		CreatedAt:               time.Now(),
		UpdatedAt:               time.Now(),
	}
	dispute.RaisedByID = dispute.ClientID
	repo.disputes[dispute.ID] = dispute
	return dispute
}
