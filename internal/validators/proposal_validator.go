package validators

import "fmt"

type CreateProposalRequest struct {
	ReleaseAmount        float64 `json:"release_amount" validate:"gte=0"`
	RefundAmount         float64 `json:"refund_amount" validate:"gte=0"`
	Reasoning            string  `json:"reasoning" validate:"required,max=5000"`
	ResponseDeadlineDays int     `json:"response_deadline_days" validate:"omitempty,gte=1"`
}

type RespondToProposalRequest struct {
	Response string `json:"response" validate:"required,proposal_response"`
	Message  string `json:"message" validate:"omitempty,max=2000"`
}

func ValidateProposalCreate(req *CreateProposalRequest, minReasoning, maxDeadlineDays int) ValidationErrors {
	errors := ValidateStruct(req)

	// Guards against low-effort settlements; the floor is a policy knob.
	if len(req.Reasoning) < minReasoning {
		errors = append(errors, ValidationError{
			Field:   "reasoning",
			Tag:     "min",
			Message: fmt.Sprintf("Reasoning must be at least %d characters", minReasoning),
		})
	}

	if req.ResponseDeadlineDays > maxDeadlineDays {
		errors = append(errors, ValidationError{
			Field:   "response_deadline_days",
			Tag:     "max",
			Message: fmt.Sprintf("Response deadline may be at most %d days out", maxDeadlineDays),
		})
	}

	// The release/refund split must cover something; the caller is
	// responsible for matching the escrowed milestone amount.
	if req.ReleaseAmount == 0 && req.RefundAmount == 0 {
		errors = append(errors, ValidationError{
			Field:   "release_amount",
			Tag:     "required",
			Message: "At least one of release_amount and refund_amount must be positive",
		})
	}

	return errors
}

func ValidateProposalRespond(req *RespondToProposalRequest) ValidationErrors {
	return ValidateStruct(req)
}
