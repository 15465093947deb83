package validators

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
)

type EvidenceItemInput struct {
	Label        string              `json:"label" validate:"omitempty,max=200"`
	SourceType   string              `json:"source_type" validate:"required,evidence_source_type"`
	SourceID     *primitive.ObjectID `json:"source_id"`
	AssetID      *primitive.ObjectID `json:"asset_id"`
	URL          string              `json:"url" validate:"omitempty,absolute_url"`
	FileName     string              `json:"file_name" validate:"omitempty,max=255"`
	StorageKey   string              `json:"storage_key" validate:"omitempty,max=512"`
	DisplayOrder *int                `json:"display_order" validate:"omitempty,gte=0"`
}

type CreateEvidenceSubmissionRequest struct {
	Title       string              `json:"title" validate:"omitempty,max=200"`
	Description string              `json:"description" validate:"omitempty,max=5000"`
	Items       []EvidenceItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateEvidenceSubmissionRequest struct {
	Title       *string             `json:"title" validate:"omitempty,max=200"`
	Description *string             `json:"description" validate:"omitempty,max=5000"`
	Items       []EvidenceItemInput `json:"items" validate:"omitempty,min=1,dive"`
}

type ReviewEvidenceRequest struct {
	Status      string `json:"status" validate:"required,evidence_review_status"`
	ReviewNotes string `json:"review_notes" validate:"omitempty,max=5000"`
}

type AddEvidenceCommentRequest struct {
	ItemID  *primitive.ObjectID `json:"item_id"`
	Content string              `json:"content" validate:"required,min=1,max=2000"`
}

func ValidateEvidenceCreate(req *CreateEvidenceSubmissionRequest, maxItems int) ValidationErrors {
	errors := ValidateStruct(req)
	errors = append(errors, validateItems(req.Items, maxItems)...)
	return errors
}

func ValidateEvidenceUpdate(req *UpdateEvidenceSubmissionRequest, maxItems int) ValidationErrors {
	errors := ValidateStruct(req)
	errors = append(errors, validateItems(req.Items, maxItems)...)
	return errors
}

// validateItems applies the configured packet size cap and the
// per-sourceType reference requirement to every item.
func validateItems(items []EvidenceItemInput, maxItems int) ValidationErrors {
	var errors ValidationErrors

	if len(items) > maxItems {
		errors = append(errors, ValidationError{
			Field:   "items",
			Tag:     "max",
			Message: fmt.Sprintf("A submission may carry at most %d items", maxItems),
		})
	}

	for i := range items {
		errors = append(errors, validateItemSource(&items[i], i)...)
	}

	return errors
}

func ValidateEvidenceReview(req *ReviewEvidenceRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateEvidenceComment(req *AddEvidenceCommentRequest) ValidationErrors {
	return ValidateStruct(req)
}

// validateItemSource enforces the per-sourceType reference requirement.
// Exactly one reference field carries meaning for each source type, and it
// must be present before the item is ever persisted.
func validateItemSource(item *EvidenceItemInput, index int) ValidationErrors {
	var errors ValidationErrors
	field := func(name string) string {
		return fmt.Sprintf("items[%d].%s", index, name)
	}

	switch models.EvidenceSourceType(item.SourceType) {
	case models.SourceTypeExternalURL:
		if item.URL == "" {
			errors = append(errors, ValidationError{
				Field:   field("url"),
				Tag:     "required",
				Message: "url is required for EXTERNAL_URL items",
			})
		}
	case models.SourceTypeDocumentUpload, models.SourceTypeScreenshot:
		if item.FileName == "" {
			errors = append(errors, ValidationError{
				Field:   field("file_name"),
				Tag:     "required",
				Message: fmt.Sprintf("file_name is required for %s items", item.SourceType),
			})
		}
	case models.SourceTypeMilestoneAttachment, models.SourceTypeChatAttachment:
		if item.SourceID == nil || item.SourceID.IsZero() {
			errors = append(errors, ValidationError{
				Field:   field("source_id"),
				Tag:     "required",
				Message: fmt.Sprintf("source_id is required for %s items", item.SourceType),
			})
		}
	case models.SourceTypeAsset:
		if item.AssetID == nil || item.AssetID.IsZero() {
			errors = append(errors, ValidationError{
				Field:   field("asset_id"),
				Tag:     "required",
				Message: "asset_id is required for ASSET items",
			})
		}
	case models.SourceTypeContractDocument:
		hasSource := item.SourceID != nil && !item.SourceID.IsZero()
		hasAsset := item.AssetID != nil && !item.AssetID.IsZero()
		if !hasSource && !hasAsset && item.URL == "" {
			errors = append(errors, ValidationError{
				Field:   field("source_id"),
				Tag:     "required",
				Message: "one of source_id, asset_id or url is required for CONTRACT_DOCUMENT items",
			})
		}
	}

	return errors
}

// ToModel converts a validated input into the stored item, assigning a
// fresh item id. An omitted display order falls back to the input
// position so a round-trip read preserves the order the caller sent; an
// explicit value, including zero, is kept as sent.
func (i *EvidenceItemInput) ToModel(position int) models.EvidenceItem {
	order := position
	if i.DisplayOrder != nil {
		order = *i.DisplayOrder
	}

	return models.EvidenceItem{
		ID:           primitive.NewObjectID(),
		Label:        SanitizeInput(i.Label),
		SourceType:   models.EvidenceSourceType(i.SourceType),
		SourceID:     i.SourceID,
		AssetID:      i.AssetID,
		URL:          i.URL,
		FileName:     i.FileName,
		StorageKey:   i.StorageKey,
		DisplayOrder: order,
	}
}

// ItemsToModels converts the full item list preserving input order.
func ItemsToModels(inputs []EvidenceItemInput) []models.EvidenceItem {
	items := make([]models.EvidenceItem, 0, len(inputs))
	for i := range inputs {
		items = append(items, inputs[i].ToModel(i))
	}
	return items
}
