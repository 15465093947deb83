package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProposalStatus string
type PartyResponse string

const (
	ProposalStatusPending       ProposalStatus = "PENDING"
	ProposalStatusAcceptedByAll ProposalStatus = "ACCEPTED_BY_ALL"
	ProposalStatusRejected      ProposalStatus = "REJECTED"
	ProposalStatusExpired       ProposalStatus = "EXPIRED"

	PartyResponsePending  PartyResponse = "PENDING"
	PartyResponseAccepted PartyResponse = "ACCEPTED"
	PartyResponseRejected PartyResponse = "REJECTED"
)

// MediationProposal is an admin-authored settlement offer: a release/refund
// split over the escrowed milestone amount that both disputing parties must
// accept before the set deadline.
type MediationProposal struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DisputeID          primitive.ObjectID `json:"dispute_id" bson:"dispute_id" validate:"required"`
	CreatedByAdminID   primitive.ObjectID `json:"created_by_admin_id" bson:"created_by_admin_id" validate:"required"`
	ReleaseAmount      float64            `json:"release_amount" bson:"release_amount"`
	RefundAmount       float64            `json:"refund_amount" bson:"refund_amount"`
	Reasoning          string             `json:"reasoning" bson:"reasoning" validate:"required,min=50"`
	ResponseDeadline   time.Time          `json:"response_deadline" bson:"response_deadline"`
	Status             ProposalStatus     `json:"status" bson:"status" default:"PENDING"`
	ClientResponse     ProposalResponse   `json:"client_response" bson:"client_response"`
	FreelancerResponse ProposalResponse   `json:"freelancer_response" bson:"freelancer_response"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProposalResponse tracks one party's answer to the proposal.
type ProposalResponse struct {
	Response    PartyResponse `json:"response" bson:"response" default:"PENDING"`
	Message     string        `json:"message,omitempty" bson:"message,omitempty"`
	RespondedAt *time.Time    `json:"responded_at,omitempty" bson:"responded_at,omitempty"`
}

// IsTerminal reports whether the status admits no further transitions.
func (s ProposalStatus) IsTerminal() bool {
	return s != ProposalStatusPending
}

// EffectiveStatus evaluates expiry lazily: a proposal that is still PENDING
// in storage reads as EXPIRED once the response deadline has passed. There
// is no background sweep; every read and respond path goes through here.
func (p *MediationProposal) EffectiveStatus(now time.Time) ProposalStatus {
	if p.Status == ProposalStatusPending && now.After(p.ResponseDeadline) {
		return ProposalStatusExpired
	}
	return p.Status
}

// AggregateStatus recomputes the proposal status from the two party
// responses: rejected as soon as either party rejects, accepted only when
// both have accepted, otherwise still pending.
func (p *MediationProposal) AggregateStatus() ProposalStatus {
	if p.ClientResponse.Response == PartyResponseRejected || p.FreelancerResponse.Response == PartyResponseRejected {
		return ProposalStatusRejected
	}
	if p.ClientResponse.Response == PartyResponseAccepted && p.FreelancerResponse.Response == PartyResponseAccepted {
		return ProposalStatusAcceptedByAll
	}
	return ProposalStatusPending
}

// ResponseFor returns the stored response for the given party side.
func (p *MediationProposal) ResponseFor(role UserRole) ProposalResponse {
	if role == UserRoleFreelancer {
		return p.FreelancerResponse
	}
	return p.ClientResponse
}
