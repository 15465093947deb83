package validators

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateDisputeRequest struct {
	ContractID   primitive.ObjectID `json:"contract_id" validate:"required"`
	ClientID     primitive.ObjectID `json:"client_id" validate:"required"`
	FreelancerID primitive.ObjectID `json:"freelancer_id" validate:"required"`
	Reason       string             `json:"reason" validate:"required,min=10,max=5000"`
}

type CloseMediationRequest struct {
	Reason string `json:"reason" validate:"required,max=5000"`
}

func ValidateDisputeCreate(req *CreateDisputeRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.ClientID == req.FreelancerID {
		errors = append(errors, ValidationError{
			Field:   "freelancer_id",
			Tag:     "nefield",
			Message: "Client and freelancer must be different users",
		})
	}

	return errors
}

func ValidateCloseMediation(req *CloseMediationRequest, minReason int) ValidationErrors {
	errors := ValidateStruct(req)

	if len(req.Reason) < minReason {
		errors = append(errors, ValidationError{
			Field:   "reason",
			Tag:     "min",
			Message: fmt.Sprintf("Close reason must be at least %d characters", minReason),
		})
	}

	return errors
}
