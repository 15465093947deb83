package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EvidenceStatus string
type EvidenceSourceType string

const (
	EvidenceStatusDraft       EvidenceStatus = "DRAFT"
	EvidenceStatusSubmitted   EvidenceStatus = "SUBMITTED"
	EvidenceStatusUnderReview EvidenceStatus = "UNDER_REVIEW"
	EvidenceStatusAccepted    EvidenceStatus = "ACCEPTED"
	EvidenceStatusRejected    EvidenceStatus = "REJECTED"

	SourceTypeMilestoneAttachment EvidenceSourceType = "MILESTONE_ATTACHMENT"
	SourceTypeChatAttachment      EvidenceSourceType = "CHAT_ATTACHMENT"
	SourceTypeAsset               EvidenceSourceType = "ASSET"
	SourceTypeExternalURL         EvidenceSourceType = "EXTERNAL_URL"
	SourceTypeDocumentUpload      EvidenceSourceType = "DOCUMENT_UPLOAD"
	SourceTypeScreenshot          EvidenceSourceType = "SCREENSHOT"
	SourceTypeContractDocument    EvidenceSourceType = "CONTRACT_DOCUMENT"
)

// EvidenceSubmission is one packet of evidence from one party for one
// dispute. It owns its items and comments. The packet is mutable only
// while DRAFT; after submission only admin review transitions apply.
type EvidenceSubmission struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	DisputeID     primitive.ObjectID  `json:"dispute_id" bson:"dispute_id" validate:"required"`
	SubmittedByID primitive.ObjectID  `json:"submitted_by_id" bson:"submitted_by_id" validate:"required"`
	SubmittedRole UserRole            `json:"submitted_by_role" bson:"submitted_by_role" validate:"required"`
	Title         string              `json:"title" bson:"title"`
	Description   string              `json:"description" bson:"description"`
	Status        EvidenceStatus      `json:"status" bson:"status" default:"DRAFT"`
	Items         []EvidenceItem      `json:"items" bson:"items"`
	Comments      []EvidenceComment   `json:"comments" bson:"comments"`
	ReviewedByID  *primitive.ObjectID `json:"reviewed_by_id,omitempty" bson:"reviewed_by_id,omitempty"`
	ReviewNotes   string              `json:"review_notes,omitempty" bson:"review_notes,omitempty"`
	SubmittedAt   *time.Time          `json:"submitted_at,omitempty" bson:"submitted_at,omitempty"`
	ReviewedAt    *time.Time          `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}

// EvidenceItem references one piece of source material. Which reference
// field is meaningful depends on SourceType; the validators enforce the
// per-type requirement before an item is ever persisted.
type EvidenceItem struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Label        string              `json:"label" bson:"label"`
	SourceType   EvidenceSourceType  `json:"source_type" bson:"source_type" validate:"required"`
	SourceID     *primitive.ObjectID `json:"source_id,omitempty" bson:"source_id,omitempty"`
	AssetID      *primitive.ObjectID `json:"asset_id,omitempty" bson:"asset_id,omitempty"`
	URL          string              `json:"url,omitempty" bson:"url,omitempty"`
	FileName     string              `json:"file_name,omitempty" bson:"file_name,omitempty"`
	StorageKey   string              `json:"storage_key,omitempty" bson:"storage_key,omitempty"`
	DisplayOrder int                 `json:"display_order" bson:"display_order"`
}

// EvidenceComment is an append-only note on a submission or, when ItemID
// is set, on a specific item.
type EvidenceComment struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	ItemID    *primitive.ObjectID `json:"item_id,omitempty" bson:"item_id,omitempty"`
	AuthorID  primitive.ObjectID  `json:"author_id" bson:"author_id"`
	Role      UserRole            `json:"author_role" bson:"author_role"`
	Content   string              `json:"content" bson:"content"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}

// IsEditable reports whether the packet still accepts changes from its submitter.
func (s *EvidenceSubmission) IsEditable() bool {
	return s.Status == EvidenceStatusDraft
}

// IsReviewable reports whether an admin may still accept or reject the packet.
func (s *EvidenceSubmission) IsReviewable() bool {
	return s.Status == EvidenceStatusSubmitted || s.Status == EvidenceStatusUnderReview
}
