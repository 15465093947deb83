package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DisputeDocumentPackage is the read-only bundle of dispute artifacts
// assembled for external (court) use once mediation has repeatedly failed.
type DisputeDocumentPackage struct {
	Dispute     *Dispute              `json:"dispute"`
	Submissions []*EvidenceSubmission `json:"evidence_submissions"`
	Proposals   []*MediationProposal  `json:"mediation_proposals"`
	Documents   []ExportedDocument    `json:"documents"`
	GeneratedAt time.Time             `json:"generated_at"`
	GeneratedBy primitive.ObjectID    `json:"generated_by"`
}

// ExportedDocument is a time-limited signed link to an uploaded evidence
// file referenced from the package.
type ExportedDocument struct {
	SubmissionID primitive.ObjectID `json:"submission_id"`
	ItemID       primitive.ObjectID `json:"item_id"`
	FileName     string             `json:"file_name"`
	URL          string             `json:"url"`
	ExpiresAt    time.Time          `json:"expires_at"`
}

// ExportEligibility is the result of the eligibility gate check.
type ExportEligibility struct {
	IsEligible              bool   `json:"is_eligible"`
	FailedMediationAttempts int    `json:"failed_mediation_attempts"`
	RequiredAttempts        int    `json:"required_attempts"`
	Message                 string `json:"message"`
}
