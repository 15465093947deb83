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

func newEvidenceFixture() (EvidenceService, *fakeEvidenceRepo, *fakeDisputeRepo) {
	evidenceRepo := newFakeEvidenceRepo()
	disputeRepo := newFakeDisputeRepo()
	svc := NewEvidenceService(evidenceRepo, disputeRepo, fakeTransactor{}, testMediationConfig(), testLogger())
	return svc, evidenceRepo, disputeRepo
}

func externalURLItem(url string) validators.EvidenceItemInput {
	return validators.EvidenceItemInput{
		Label:      "Final delivery link",
		SourceType: string(models.SourceTypeExternalURL),
		URL:        url,
	}
}

func TestCreateSubmissionStartsAsDraft(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Title: "Delivery proof",
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/delivery.zip")},
	})
	require.NoError(t, err)

	assert.Equal(t, models.EvidenceStatusDraft, submission.Status)
	assert.Equal(t, models.UserRoleClient, submission.SubmittedRole)
	assert.Len(t, submission.Items, 1)
	assert.False(t, submission.Items[0].ID.IsZero())
}

func TestCreateSubmissionRejectsNonParticipant(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	_, err := svc.CreateSubmission(context.Background(), dispute.ID, primitive.NewObjectID(), models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/x")},
	})

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodePermissionDenied, domainErr.Code)
}

func TestCreateSubmissionRejectsRelativeURL(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	_, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("/relative/path")},
	})

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, domainErr.Code)
}

func TestSubmitTransitionsExactlyOnce(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.FreelancerID, models.UserRoleFreelancer, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/x")},
	})
	require.NoError(t, err)

	submitted, err := svc.SubmitSubmission(context.Background(), submission.ID, dispute.FreelancerID)
	require.NoError(t, err)
	assert.Equal(t, models.EvidenceStatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	_, err = svc.SubmitSubmission(context.Background(), submission.ID, dispute.FreelancerID)
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidState, domainErr.Code)
}

func TestUpdateRequiresSubmitterAndDraft(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/x")},
	})
	require.NoError(t, err)

	newTitle := "Amended title"
	_, err = svc.UpdateSubmission(context.Background(), submission.ID, dispute.FreelancerID, &validators.UpdateEvidenceSubmissionRequest{Title: &newTitle})
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodePermissionDenied, domainErr.Code)

	_, err = svc.SubmitSubmission(context.Background(), submission.ID, dispute.ClientID)
	require.NoError(t, err)

	_, err = svc.UpdateSubmission(context.Background(), submission.ID, dispute.ClientID, &validators.UpdateEvidenceSubmissionRequest{Title: &newTitle})
	domainErr, ok = AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidState, domainErr.Code)
}

func TestReviewRejectionIncrementsFailedAttempts(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
	adminID := primitive.NewObjectID()

	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/x")},
	})
	require.NoError(t, err)
	_, err = svc.SubmitSubmission(context.Background(), submission.ID, dispute.ClientID)
	require.NoError(t, err)

	reviewed, err := svc.ReviewSubmission(context.Background(), submission.ID, adminID, &validators.ReviewEvidenceRequest{
		Status:      string(models.EvidenceStatusRejected),
		ReviewNotes: "Materials do not show completion",
	})
	require.NoError(t, err)

	assert.Equal(t, models.EvidenceStatusRejected, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedByID)
	assert.Equal(t, adminID, *reviewed.ReviewedByID)

	stored, err := disputeRepo.GetByID(context.Background(), dispute.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.FailedMediationAttempts)
}

func TestReviewAcceptanceLeavesCounterAlone(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)

	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/x")},
	})
	require.NoError(t, err)
	_, err = svc.SubmitSubmission(context.Background(), submission.ID, dispute.ClientID)
	require.NoError(t, err)

	_, err = svc.ReviewSubmission(context.Background(), submission.ID, primitive.NewObjectID(), &validators.ReviewEvidenceRequest{
		Status: string(models.EvidenceStatusAccepted),
	})
	require.NoError(t, err)

	stored, err := disputeRepo.GetByID(context.Background(), dispute.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FailedMediationAttempts)
}

func TestReviewRequiresSubmittedState(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)

	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/x")},
	})
	require.NoError(t, err)

	_, err = svc.ReviewSubmission(context.Background(), submission.ID, primitive.NewObjectID(), &validators.ReviewEvidenceRequest{
		Status: string(models.EvidenceStatusAccepted),
	})
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidState, domainErr.Code)
}

func TestItemsRoundTripInDisplayOrder(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	items := []validators.EvidenceItemInput{
		{SourceType: string(models.SourceTypeExternalURL), URL: "https://example.com/a"},
		{SourceType: string(models.SourceTypeExternalURL), URL: "https://example.com/b"},
		{SourceType: string(models.SourceTypeExternalURL), URL: "https://example.com/c"},
	}
	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{Items: items})
	require.NoError(t, err)

	fetched, err := svc.GetSubmission(context.Background(), submission.ID, dispute.ClientID, models.UserRoleClient)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 3)
	for i, item := range fetched.Items {
		assert.Equal(t, i, item.DisplayOrder)
	}
	assert.Equal(t, "https://example.com/b", fetched.Items[1].URL)
}

func TestAddCommentRejectsUnknownItem(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/x")},
	})
	require.NoError(t, err)

	strayItem := primitive.NewObjectID()
	_, err = svc.AddComment(context.Background(), submission.ID, dispute.ClientID, models.UserRoleClient, &validators.AddEvidenceCommentRequest{
		ItemID:  &strayItem,
		Content: "This attachment is mislabeled",
	})
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, domainErr.Code)

	comment, err := svc.AddComment(context.Background(), submission.ID, dispute.FreelancerID, models.UserRoleFreelancer, &validators.AddEvidenceCommentRequest{
		ItemID:  &submission.Items[0].ID,
		Content: "This link shows the accepted milestone",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleFreelancer, comment.Role)
}

func TestDeleteSubmissionRules(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/x")},
	})
	require.NoError(t, err)
	_, err = svc.SubmitSubmission(context.Background(), submission.ID, dispute.ClientID)
	require.NoError(t, err)

	// Submitter can no longer delete once submitted
	err = svc.DeleteSubmission(context.Background(), submission.ID, dispute.ClientID, models.UserRoleClient)
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidState, domainErr.Code)

	// Admin can
	err = svc.DeleteSubmission(context.Background(), submission.ID, primitive.NewObjectID(), models.UserRoleAdmin)
	require.NoError(t, err)

	_, err = svc.GetSubmission(context.Background(), submission.ID, dispute.ClientID, models.UserRoleClient)
	assert.True(t, IsNotFound(err))
}

func TestCreateSubmissionAllowsAdminNonParty(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
	adminID := primitive.NewObjectID()

	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, adminID, models.UserRoleAdmin, &validators.CreateEvidenceSubmissionRequest{
		Title: "Collected chat transcript",
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/transcript")},
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserRoleAdmin, submission.SubmittedRole)
	assert.Equal(t, adminID, submission.SubmittedByID)
}

func TestCreateSubmissionHonorsConfiguredItemCap(t *testing.T) {
	evidenceRepo := newFakeEvidenceRepo()
	disputeRepo := newFakeDisputeRepo()
	cfg := testMediationConfig()
	cfg.MaxEvidenceItems = 2
	svc := NewEvidenceService(evidenceRepo, disputeRepo, fakeTransactor{}, cfg, testLogger())

	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)
	items := []validators.EvidenceItemInput{
		externalURLItem("https://example.com/a"),
		externalURLItem("https://example.com/b"),
		externalURLItem("https://example.com/c"),
	}

	_, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{Items: items})
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, domainErr.Code)
	assert.Contains(t, domainErr.Details, "items")

	_, err = svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{Items: items[:2]})
	assert.NoError(t, err)
}

func TestReviewClaimHoldsPacketWithoutVerdict(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusUnderMediation, 0)
	adminID := primitive.NewObjectID()

	submission, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/x")},
	})
	require.NoError(t, err)
	_, err = svc.SubmitSubmission(context.Background(), submission.ID, dispute.ClientID)
	require.NoError(t, err)

	claimed, err := svc.ReviewSubmission(context.Background(), submission.ID, adminID, &validators.ReviewEvidenceRequest{
		Status: string(models.EvidenceStatusUnderReview),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EvidenceStatusUnderReview, claimed.Status)
	require.NotNil(t, claimed.ReviewedByID)
	assert.Equal(t, adminID, *claimed.ReviewedByID)
	assert.Nil(t, claimed.ReviewedAt)

	// Claiming is not a verdict, so nothing counts against mediation yet
	stored, err := disputeRepo.GetByID(context.Background(), dispute.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FailedMediationAttempts)

	// A second claim has nothing to take
	_, err = svc.ReviewSubmission(context.Background(), submission.ID, primitive.NewObjectID(), &validators.ReviewEvidenceRequest{
		Status: string(models.EvidenceStatusUnderReview),
	})
	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidState, domainErr.Code)

	// The claimed packet still accepts a verdict
	reviewed, err := svc.ReviewSubmission(context.Background(), submission.ID, adminID, &validators.ReviewEvidenceRequest{
		Status: string(models.EvidenceStatusRejected),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EvidenceStatusRejected, reviewed.Status)

	stored, err = disputeRepo.GetByID(context.Background(), dispute.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.FailedMediationAttempts)
}

func TestListSubmissionsScopedToCaller(t *testing.T) {
	svc, _, disputeRepo := newEvidenceFixture()
	dispute := seedDispute(disputeRepo, models.DisputeStatusOpen, 0)

	_, err := svc.CreateSubmission(context.Background(), dispute.ID, dispute.ClientID, models.UserRoleClient, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/client-proof")},
	})
	require.NoError(t, err)
	_, err = svc.CreateSubmission(context.Background(), dispute.ID, dispute.FreelancerID, models.UserRoleFreelancer, &validators.CreateEvidenceSubmissionRequest{
		Items: []validators.EvidenceItemInput{externalURLItem("https://example.com/freelancer-proof")},
	})
	require.NoError(t, err)

	params := &utils.PaginationParams{Page: 1, PageSize: 20}

	mine, total, err := svc.ListSubmissions(context.Background(), dispute.ClientID, models.UserRoleClient, params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, dispute.ClientID, mine[0].SubmittedByID)

	all, total, err := svc.ListSubmissions(context.Background(), primitive.NewObjectID(), models.UserRoleAdmin, params)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}
