package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/validators"
)

func newDisputeFixture() (DisputeService, *fakeDisputeRepo) {
	disputeRepo := newFakeDisputeRepo()
	svc := NewDisputeService(disputeRepo, testMediationConfig(), testLogger())
	return svc, disputeRepo
}

func validDisputeRequest() *validators.CreateDisputeRequest {
	return &validators.CreateDisputeRequest{
		ContractID:   primitive.NewObjectID(),
		ClientID:     primitive.NewObjectID(),
		FreelancerID: primitive.NewObjectID(),
		Reason:       "The final milestone was marked delivered but the agreed revisions were never made",
	}
}

func TestCreateDisputeStartsOpen(t *testing.T) {
	svc, repo := newDisputeFixture()
	req := validDisputeRequest()

	dispute, err := svc.CreateDispute(context.Background(), req.ClientID, req)
	require.NoError(t, err)

	assert.Equal(t, models.DisputeStatusOpen, dispute.Status)
	assert.Equal(t, req.ClientID, dispute.RaisedByID)
	assert.Equal(t, 0, dispute.FailedMediationAttempts)
	assert.Regexp(t, `^DSP-`, dispute.DisputeNumber)

	stored, err := repo.GetByID(context.Background(), dispute.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ContractID, stored.ContractID)
}

func TestCreateDisputeRejectsNonParty(t *testing.T) {
	svc, _ := newDisputeFixture()
	req := validDisputeRequest()

	_, err := svc.CreateDispute(context.Background(), primitive.NewObjectID(), req)

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodePermissionDenied, domainErr.Code)
}

func TestCreateDisputeRejectsShortReason(t *testing.T) {
	svc, _ := newDisputeFixture()
	req := validDisputeRequest()
	req.Reason = "bad work"

	_, err := svc.CreateDispute(context.Background(), req.ClientID, req)

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, domainErr.Code)
}

func TestCreateDisputeRejectsSameClientAndFreelancer(t *testing.T) {
	svc, _ := newDisputeFixture()
	req := validDisputeRequest()
	req.FreelancerID = req.ClientID

	_, err := svc.CreateDispute(context.Background(), req.ClientID, req)

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, domainErr.Code)
}

func TestCreateDisputeRejectsSecondDisputeOnContract(t *testing.T) {
	svc, _ := newDisputeFixture()
	req := validDisputeRequest()

	_, err := svc.CreateDispute(context.Background(), req.ClientID, req)
	require.NoError(t, err)

	_, err = svc.CreateDispute(context.Background(), req.FreelancerID, req)

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidState, domainErr.Code)
}

func TestGetDisputeScopedToParticipants(t *testing.T) {
	svc, repo := newDisputeFixture()
	dispute := seedDispute(repo, models.DisputeStatusOpen, 0)

	fetched, err := svc.GetDispute(context.Background(), dispute.ID, dispute.FreelancerID, models.UserRoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, dispute.ID, fetched.ID)

	_, err = svc.GetDispute(context.Background(), dispute.ID, primitive.NewObjectID(), models.UserRoleClient)
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodePermissionDenied, domainErr.Code)

	// Admins see everything
	_, err = svc.GetDispute(context.Background(), dispute.ID, primitive.NewObjectID(), models.UserRoleAdmin)
	assert.NoError(t, err)
}

func TestGetDisputeNotFound(t *testing.T) {
	svc, _ := newDisputeFixture()

	_, err := svc.GetDispute(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), models.UserRoleAdmin)

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotFound, domainErr.Code)
}

func TestListDisputesScopedByRole(t *testing.T) {
	svc, repo := newDisputeFixture()
	mine := seedDispute(repo, models.DisputeStatusOpen, 0)
	seedDispute(repo, models.DisputeStatusUnderMediation, 1)

	params := &utils.PaginationParams{Page: 1, PageSize: 20}

	disputes, total, err := svc.ListDisputes(context.Background(), mine.ClientID, models.UserRoleClient, params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, disputes, 1)
	assert.Equal(t, mine.ID, disputes[0].ID)

	all, total, err := svc.ListDisputes(context.Background(), primitive.NewObjectID(), models.UserRoleAdmin, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestEligibilityGateRequiresParticipantOrAdmin(t *testing.T) {
	dispute := &models.Dispute{
		ClientID:                primitive.NewObjectID(),
		FreelancerID:            primitive.NewObjectID(),
		FailedMediationAttempts: 3,
	}

	assert.True(t, IsEligibleForDocumentExport(dispute, dispute.ClientID, models.UserRoleClient, 2))
	assert.True(t, IsEligibleForDocumentExport(dispute, primitive.NewObjectID(), models.UserRoleAdmin, 2))
	assert.False(t, IsEligibleForDocumentExport(dispute, primitive.NewObjectID(), models.UserRoleClient, 2))

	dispute.FailedMediationAttempts = 1
	assert.False(t, IsEligibleForDocumentExport(dispute, dispute.ClientID, models.UserRoleClient, 2))
}
