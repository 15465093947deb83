package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/validators"
)

const testReasoning = "The delivered work covers the agreed milestones except final revisions; splitting the escrow 70/30 reflects that."

func newProposalFixture() (ProposalService, *fakeProposalRepo, *fakeDisputeRepo) {
	proposalRepo := newFakeProposalRepo()
	disputeRepo := newFakeDisputeRepo()
	svc := NewProposalService(proposalRepo, disputeRepo, fakeTransactor{}, testMediationConfig(), testLogger())
	return svc, proposalRepo, disputeRepo
}

func createTestProposal(t *testing.T, svc ProposalService, dispute *models.Dispute) *models.MediationProposal {
	t.Helper()
	proposal, err := svc.CreateProposal(context.Background(), dispute.ID, primitive.NewObjectID(), &validators.CreateProposalRequest{
		ReleaseAmount: 700,
		RefundAmount:  300,
		Reasoning:     testReasoning,
	})
	require.NoError(t, err)
	return proposal
}

func TestCreateProposalDefaultsDeadline(t *testing.T) {
	svc, _, disputeRepo := newProposalFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	proposal := createTestProposal(t, svc, dispute)

	assert.Equal(t, models.ProposalStatusPending, proposal.Status)
	assert.Equal(t, models.PartyResponsePending, proposal.ClientResponse.Response)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), proposal.ResponseDeadline, time.Minute)

	// First proposal moves the dispute into mediation
	stored, err := disputeRepo.GetByID(context.Background(), dispute.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusUnderMediation, stored.Status)
}

func TestCreateProposalRejectsShortReasoning(t *testing.T) {
	svc, _, disputeRepo := newProposalFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	_, err := svc.CreateProposal(context.Background(), dispute.ID, primitive.NewObjectID(), &validators.CreateProposalRequest{
		ReleaseAmount: 500,
		Reasoning:     strings.Repeat("x", 40),
	})

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, domainErr.Code)
}

func TestProposalAcceptedByAllInAnyOrder(t *testing.T) {
	for name, firstIsClient := range map[string]bool{"client first": true, "freelancer first": false} {
		t.Run(name, func(t *testing.T) {
			svc, _, disputeRepo := newProposalFixture()
			dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
			proposal := createTestProposal(t, svc, dispute)

			first, second := dispute.ClientID, dispute.FreelancerID
			if !firstIsClient {
				first, second = second, first
			}

			accept := &validators.RespondToProposalRequest{Response: string(models.PartyResponseAccepted)}

			afterFirst, err := svc.RespondToProposal(context.Background(), proposal.ID, first, accept)
			require.NoError(t, err)
			assert.Equal(t, models.ProposalStatusPending, afterFirst.Status)

			afterSecond, err := svc.RespondToProposal(context.Background(), proposal.ID, second, accept)
			require.NoError(t, err)
			assert.Equal(t, models.ProposalStatusAcceptedByAll, afterSecond.Status)

			// Full agreement resolves the dispute
			stored, err := disputeRepo.GetByID(context.Background(), dispute.ID)
			require.NoError(t, err)
			assert.Equal(t, models.DisputeStatusResolved, stored.Status)
		})
	}
}

func TestProposalRejectedOnFirstReject(t *testing.T) {
	svc, _, disputeRepo := newProposalFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
	proposal := createTestProposal(t, svc, dispute)

	rejected, err := svc.RespondToProposal(context.Background(), proposal.ID, dispute.FreelancerID, &validators.RespondToProposalRequest{
		Response: string(models.PartyResponseRejected),
		Message:  "The split does not cover the completed revisions",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusRejected, rejected.Status)

	// A rejection is a failed mediation attempt
	stored, err := disputeRepo.GetByID(context.Background(), dispute.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.FailedMediationAttempts)

	// Terminal: the other party can no longer respond
	_, err = svc.RespondToProposal(context.Background(), proposal.ID, dispute.ClientID, &validators.RespondToProposalRequest{
		Response: string(models.PartyResponseAccepted),
	})
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidState, domainErr.Code)
}

func TestProposalDoubleResponseRejected(t *testing.T) {
	svc, _, disputeRepo := newProposalFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
	proposal := createTestProposal(t, svc, dispute)

	accept := &validators.RespondToProposalRequest{Response: string(models.PartyResponseAccepted)}
	_, err := svc.RespondToProposal(context.Background(), proposal.ID, dispute.ClientID, accept)
	require.NoError(t, err)

	_, err = svc.RespondToProposal(context.Background(), proposal.ID, dispute.ClientID, accept)
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidState, domainErr.Code)
}

func TestProposalPendingIsNotAResponse(t *testing.T) {
	svc, _, disputeRepo := newProposalFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
	proposal := createTestProposal(t, svc, dispute)

	_, err := svc.RespondToProposal(context.Background(), proposal.ID, dispute.ClientID, &validators.RespondToProposalRequest{
		Response: string(models.PartyResponsePending),
	})
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, domainErr.Code)
}

func TestRespondAfterDeadlineExpiresInsteadOfApplying(t *testing.T) {
	svc, proposalRepo, disputeRepo := newProposalFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
	proposal := createTestProposal(t, svc, dispute)

	// Rewind the deadline: created at T0 with 7 days, responding at T0+8d
	proposalRepo.proposals[proposal.ID].ResponseDeadline = time.Now().AddDate(0, 0, -1)

	_, err := svc.RespondToProposal(context.Background(), proposal.ID, dispute.ClientID, &validators.RespondToProposalRequest{
		Response: string(models.PartyResponseAccepted),
	})
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidState, domainErr.Code)

	// The expiry was persisted, the response was not applied, and the
	// expired cycle counts as a failed attempt.
	stored, err := proposalRepo.GetByID(context.Background(), proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusExpired, stored.Status)
	assert.Equal(t, models.PartyResponsePending, stored.ClientResponse.Response)

	storedDispute, err := disputeRepo.GetByID(context.Background(), dispute.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, storedDispute.FailedMediationAttempts)
}

func TestGetProposalSettlesExpiryLazily(t *testing.T) {
	svc, proposalRepo, disputeRepo := newProposalFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
	proposal := createTestProposal(t, svc, dispute)

	proposalRepo.proposals[proposal.ID].ResponseDeadline = time.Now().Add(-time.Hour)

	fetched, err := svc.GetProposal(context.Background(), proposal.ID, dispute.ClientID, models.UserRoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusExpired, fetched.Status)

	// Persisted, so a second read does not double-count the attempt
	_, err = svc.GetProposal(context.Background(), proposal.ID, dispute.ClientID, models.UserRoleClient)
	require.NoError(t, err)
	storedDispute, err := disputeRepo.GetByID(context.Background(), dispute.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, storedDispute.FailedMediationAttempts)
}

func TestRespondRequiresDisputingParty(t *testing.T) {
	svc, _, disputeRepo := newProposalFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
	proposal := createTestProposal(t, svc, dispute)

	_, err := svc.RespondToProposal(context.Background(), proposal.ID, primitive.NewObjectID(), &validators.RespondToProposalRequest{
		Response: string(models.PartyResponseAccepted),
	})
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodePermissionDenied, domainErr.Code)
}

func TestDeleteProposalAnyState(t *testing.T) {
	svc, proposalRepo, disputeRepo := newProposalFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
	proposal := createTestProposal(t, svc, dispute)

	_, err := svc.RespondToProposal(context.Background(), proposal.ID, dispute.ClientID, &validators.RespondToProposalRequest{
		Response: string(models.PartyResponseRejected),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProposal(context.Background(), proposal.ID, primitive.NewObjectID()))

	_, err = proposalRepo.GetByID(context.Background(), proposal.ID)
	assert.Error(t, err)
}
