package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DisputeStatus string

const (
	DisputeStatusOpen              DisputeStatus = "open"
	DisputeStatusUnderMediation    DisputeStatus = "under_mediation"
	DisputeStatusResolved          DisputeStatus = "resolved"
	DisputeStatusClosedForExternal DisputeStatus = "closed_for_external"
)

// Dispute is a contract-level conflict between a client and a freelancer.
// Disputes are a permanent audit trail and are never hard-deleted.
type Dispute struct {
	ID                      primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	DisputeNumber           string              `json:"dispute_number" bson:"dispute_number" validate:"required"`
	ContractID              primitive.ObjectID  `json:"contract_id" bson:"contract_id" validate:"required"`
	ClientID                primitive.ObjectID  `json:"client_id" bson:"client_id" validate:"required"`
	FreelancerID            primitive.ObjectID  `json:"freelancer_id" bson:"freelancer_id" validate:"required"`
	RaisedByID              primitive.ObjectID  `json:"raised_by_id" bson:"raised_by_id"`
	Reason                  string              `json:"reason" bson:"reason" validate:"required"`
	Status                  DisputeStatus       `json:"status" bson:"status" default:"open"`
	FailedMediationAttempts int                 `json:"failed_mediation_attempts" bson:"failed_mediation_attempts" default:"0"`
	AssignedAdminID         *primitive.ObjectID `json:"assigned_admin_id" bson:"assigned_admin_id"`
	CloseReason             string              `json:"close_reason,omitempty" bson:"close_reason,omitempty"`
	ClosedByID              *primitive.ObjectID `json:"closed_by_id,omitempty" bson:"closed_by_id,omitempty"`
	ClosedAt                *time.Time          `json:"closed_at,omitempty" bson:"closed_at,omitempty"`
	CreatedAt               time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at" bson:"updated_at"`
}

// IsParticipant reports whether the user is one of the disputing parties.
func (d *Dispute) IsParticipant(userID primitive.ObjectID) bool {
	return d.ClientID == userID || d.FreelancerID == userID
}

// ParticipantRole returns the side the user is on, or "" if they are not a party.
func (d *Dispute) ParticipantRole(userID primitive.ObjectID) UserRole {
	switch userID {
	case d.ClientID:
		return UserRoleClient
	case d.FreelancerID:
		return UserRoleFreelancer
	}
	return ""
}

// IsClosed reports whether the dispute reached a terminal state.
func (d *Dispute) IsClosed() bool {
	return d.Status == DisputeStatusResolved || d.Status == DisputeStatusClosedForExternal
}
