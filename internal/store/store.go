// Package store provides persistence for citizens, documents and the
// change-request ledger. The Mongo implementation backs production;
// the memory implementation backs unit tests of the workflow services.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagrik-seva/app-docvault/internal/models"
)

// CitizenStore persists citizen identity records
type CitizenStore interface {
	Insert(ctx context.Context, citizen *models.Citizen) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Citizen, error)
	GetByNationalID(ctx context.Context, nationalID string) (*models.Citizen, error)
}

// AdminStore persists reviewing administrators
type AdminStore interface {
	Insert(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Admin, error)
}

// DocumentStore persists the denormalized per-type document records
type DocumentStore interface {
	Insert(ctx context.Context, doc *models.Document) error
	GetByCitizenAndType(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType) (*models.Document, error)
	ListByCitizen(ctx context.Context, citizenID primitive.ObjectID) ([]models.Document, error)
	// UpdateField sets a single field on the citizen's document of the
	// given type and refreshes last_updated. Returns
	// models.ErrDocumentNotFound when the citizen has no such document.
	UpdateField(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, bsonKey string, value interface{}) error
}

// LedgerStore persists change requests. Transition is the only way a
// request leaves the pending state and it applies exactly once.
type LedgerStore interface {
	Insert(ctx context.Context, req *models.ChangeRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ChangeRequest, error)
	GetByReference(ctx context.Context, referenceID string) (*models.ChangeRequest, error)
	ListPending(ctx context.Context) ([]models.ChangeRequest, error)
	ListByCitizen(ctx context.Context, citizenID primitive.ObjectID) ([]models.ChangeRequest, error)
	// Transition atomically moves a pending request to a terminal
	// status. Returns models.ErrAlreadyDecided when the request exists
	// but is no longer pending, so concurrent reviewers lose cleanly.
	Transition(ctx context.Context, id primitive.ObjectID, outcome models.RequestStatus, reviewedBy primitive.ObjectID, comments string) (*models.ChangeRequest, error)
	// Reopen compensates a Transition whose downstream processing
	// failed, putting the request back in the review queue.
	Reopen(ctx context.Context, id primitive.ObjectID) error
}

// TrackerStore persists self-service edit counters per
// (citizen, documentType, field) triple
type TrackerStore interface {
	Count(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) (int64, error)
	Increment(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) error
	Reset(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) error
}

// Store bundles the per-concern stores behind one injection point
type Store struct {
	Citizens  CitizenStore
	Admins    AdminStore
	Documents DocumentStore
	Ledger    LedgerStore
	Tracker   TrackerStore
}
