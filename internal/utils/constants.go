package utils

import "time"

// Application Constants
const (
	AppName    = "FreelancerPlatformMediation"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Mediation
	MinProposalReasoningLength   = 50
	MinCloseReasonLength         = 10
	DefaultResponseDeadlineDays  = 7
	MinResponseDeadlineDays      = 1
	MaxResponseDeadlineDays      = 30
	ExportEligibilityThreshold   = 2
	MaxEvidenceItemsPerPacket    = 50
	MinEvidenceItemsPerPacket    = 1
	MaxEvidenceCommentLength     = 2000
	MaxEvidenceTitleLength       = 200
	MaxEvidenceDescriptionLength = 5000

	// Document export
	ExportDocumentURLTTL = 24 * time.Hour

	// Rate Limiting
	DefaultRateLimit = 100

	// Dispute numbers
	DisputeNumberLength = 8
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes surfaced in the response envelope
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeInvalidState     = "INVALID_STATE"
	CodeNotFound         = "NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
)

// Error Messages
const (
	ErrInvalidToken     = "invalid token"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
	ErrDisputeNotFound  = "dispute not found"
)

// Cache Keys
const (
	CacheDisputePrefix    = "dispute:"
	CacheSubmissionPrefix = "evidence_submission:"
	CacheProposalPrefix   = "mediation_proposal:"
	CacheRateLimitPrefix  = "rate_limit:"
)

// Event Types
const (
	EventDisputeRaised        = "dispute_raised"
	EventEvidenceSubmitted    = "evidence_submitted"
	EventEvidenceReviewed     = "evidence_reviewed"
	EventProposalCreated      = "mediation_proposal_created"
	EventProposalResponded    = "mediation_proposal_responded"
	EventMediationClosed      = "mediation_closed_for_external"
	EventDocumentPackageBuilt = "dispute_document_package_built"
)
