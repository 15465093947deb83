package validators

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation functions
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("evidence_source_type", validateEvidenceSourceType)
	validate.RegisterValidation("evidence_review_status", validateEvidenceReviewStatus)
	validate.RegisterValidation("proposal_response", validateProposalResponse)
	validate.RegisterValidation("absolute_url", validateAbsoluteURL)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// Details flattens the errors into the field→message map used by the
// response envelope.
func (v ValidationErrors) Details() map[string]string {
	details := make(map[string]string, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "evidence_source_type":
		return "Unknown evidence source type"
	case "evidence_review_status":
		return "Review status must be UNDER_REVIEW, ACCEPTED or REJECTED"
	case "proposal_response":
		return "Response must be ACCEPTED or REJECTED"
	case "absolute_url":
		return "Must be a valid absolute URL"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

// Custom validation functions
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateEvidenceSourceType(fl validator.FieldLevel) bool {
	switch models.EvidenceSourceType(fl.Field().String()) {
	case models.SourceTypeMilestoneAttachment,
		models.SourceTypeChatAttachment,
		models.SourceTypeAsset,
		models.SourceTypeExternalURL,
		models.SourceTypeDocumentUpload,
		models.SourceTypeScreenshot,
		models.SourceTypeContractDocument:
		return true
	}
	return false
}

// A review either claims the packet (UNDER_REVIEW) or settles it with a
// verdict; DRAFT and SUBMITTED are caller-side states.
func validateEvidenceReviewStatus(fl validator.FieldLevel) bool {
	switch models.EvidenceStatus(fl.Field().String()) {
	case models.EvidenceStatusUnderReview, models.EvidenceStatusAccepted, models.EvidenceStatusRejected:
		return true
	}
	return false
}

// A party response is an action; PENDING is the initial stored state and
// never a value a caller may send.
func validateProposalResponse(fl validator.FieldLevel) bool {
	switch models.PartyResponse(fl.Field().String()) {
	case models.PartyResponseAccepted, models.PartyResponseRejected:
		return true
	}
	return false
}

func validateAbsoluteURL(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return IsValidAbsoluteURL(value)
}

// IsValidAbsoluteURL reports whether raw parses as an absolute http(s) URL.
func IsValidAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.IsAbs() && parsed.Host != "" && (parsed.Scheme == "http" || parsed.Scheme == "https")
}

func IsValidObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

func SanitizeInput(input string) string {
	return strings.TrimSpace(input)
}
