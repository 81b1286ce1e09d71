package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Classification of a proposed edit
type Classification string

const (
	ClassificationMinor Classification = "minor"
	ClassificationMajor Classification = "major"
)

// Change request lifecycle states. Pending is the only non-terminal
// state; approved and rejected are terminal and immutable.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// ChangeRequest is one proposed field edit in the ledger
type ChangeRequest struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ReferenceID    string              `bson:"reference_id" json:"referenceId"`
	CitizenID      primitive.ObjectID  `bson:"citizen_id" json:"citizenId"`
	DocumentType   DocumentType        `bson:"document_type" json:"documentType"`
	Classification Classification      `bson:"classification" json:"classification"`
	FieldToUpdate  string              `bson:"field_to_update" json:"fieldToUpdate"`
	NewValue       string              `bson:"new_value" json:"newValue"`
	OldValue       string              `bson:"old_value,omitempty" json:"oldValue,omitempty"`
	Status         RequestStatus       `bson:"status" json:"status"`
	Evidence       []string            `bson:"evidence,omitempty" json:"evidence,omitempty"`
	SubmittedAt    time.Time           `bson:"submitted_at" json:"submittedAt"`
	ReviewedAt     *time.Time          `bson:"reviewed_at,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy     *primitive.ObjectID `bson:"reviewed_by,omitempty" json:"reviewedBy,omitempty"`
	Comments       string              `bson:"comments,omitempty" json:"comments,omitempty"`
}

// Terminal reports whether the request has been decided
func (r *ChangeRequest) Terminal() bool {
	return r.Status != StatusPending
}

// FieldChangeCounter tracks applied self-service edits for one
// (citizen, documentType, field) triple
type FieldChangeCounter struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CitizenID    primitive.ObjectID `bson:"citizen_id" json:"citizenId"`
	DocumentType DocumentType       `bson:"document_type" json:"documentType"`
	FieldName    string             `bson:"field_name" json:"fieldName"`
	ChangeCount  int64              `bson:"change_count" json:"changeCount"`
	LastChanged  time.Time          `bson:"last_changed" json:"lastChanged"`
}

// Decision outcomes accepted by the decide endpoint
const (
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
)
