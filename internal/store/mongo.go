package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/observability"
	"github.com/nagrik-seva/app-docvault/internal/utils"
)

// Collections names the MongoDB collections the stores operate on
type Collections struct {
	Citizens       string
	Admins         string
	Documents      string
	ChangeRequests string
	FieldCounters  string
}

// NewMongoStore wires every store against the given database
func NewMongoStore(db *mongo.Database, c Collections) *Store {
	return &Store{
		Citizens:  &mongoCitizenStore{col: db.Collection(c.Citizens)},
		Admins:    &mongoAdminStore{col: db.Collection(c.Admins)},
		Documents: &mongoDocumentStore{col: db.Collection(c.Documents)},
		Ledger:    &mongoLedgerStore{col: db.Collection(c.ChangeRequests)},
		Tracker:   &mongoTrackerStore{col: db.Collection(c.FieldCounters)},
	}
}

type mongoCitizenStore struct {
	col *mongo.Collection
}

func (s *mongoCitizenStore) Insert(ctx context.Context, citizen *models.Citizen) error {
	citizen.CreatedAt = time.Now()
	res, err := s.col.InsertOne(ctx, citizen)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("insert", s.col.Name(), "error").Inc()
		return fmt.Errorf("failed to insert citizen: %w", err)
	}
	citizen.ID = res.InsertedID.(primitive.ObjectID)
	observability.DatabaseOperations.WithLabelValues("insert", s.col.Name(), "success").Inc()
	return nil
}

func (s *mongoCitizenStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Citizen, error) {
	var citizen models.Citizen
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&citizen)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrCitizenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find citizen: %w", err)
	}
	return &citizen, nil
}

func (s *mongoCitizenStore) GetByNationalID(ctx context.Context, nationalID string) (*models.Citizen, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, s.col.Name(), "national_id")
	defer span.End()

	var citizen models.Citizen
	err := s.col.FindOne(ctx, bson.M{"national_id": nationalID}).Decode(&citizen)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrCitizenNotFound
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to find citizen: %w", err)
	}
	return &citizen, nil
}

type mongoAdminStore struct {
	col *mongo.Collection
}

func (s *mongoAdminStore) Insert(ctx context.Context, admin *models.Admin) error {
	admin.CreatedAt = time.Now()
	res, err := s.col.InsertOne(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	admin.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoAdminStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var admin models.Admin
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &admin, nil
}

func (s *mongoAdminStore) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Admin, error) {
	var admin models.Admin
	err := s.col.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &admin, nil
}

type mongoDocumentStore struct {
	col *mongo.Collection
}

func (s *mongoDocumentStore) Insert(ctx context.Context, doc *models.Document) error {
	doc.LastUpdated = time.Now()
	res, err := s.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateDocument
	}
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("insert", s.col.Name(), "error").Inc()
		return fmt.Errorf("failed to insert document: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	observability.DatabaseOperations.WithLabelValues("insert", s.col.Name(), "success").Inc()
	return nil
}

func (s *mongoDocumentStore) GetByCitizenAndType(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType) (*models.Document, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, s.col.Name(), "citizen_id+document_type")
	defer span.End()

	var doc models.Document
	err := s.col.FindOne(ctx, bson.M{"citizen_id": citizenID, "document_type": t}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrDocumentNotFound
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return &doc, nil
}

func (s *mongoDocumentStore) ListByCitizen(ctx context.Context, citizenID primitive.ObjectID) ([]models.Document, error) {
	cursor, err := s.col.Find(ctx, bson.M{"citizen_id": citizenID})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

func (s *mongoDocumentStore) UpdateField(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, bsonKey string, value interface{}) error {
	ctx, span := utils.TraceDatabaseUpdate(ctx, s.col.Name(), "update")
	defer span.End()
	utils.AddSpanAttribute(span, "document.type", string(t))
	utils.AddSpanAttribute(span, "document.field", bsonKey)

	res, err := s.col.UpdateOne(ctx,
		bson.M{"citizen_id": citizenID, "document_type": t},
		bson.M{"$set": bson.M{bsonKey: value, "last_updated": time.Now()}},
	)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		observability.DatabaseOperations.WithLabelValues("update", s.col.Name(), "error").Inc()
		return fmt.Errorf("failed to update document field: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrDocumentNotFound
	}
	observability.DatabaseOperations.WithLabelValues("update", s.col.Name(), "success").Inc()
	return nil
}

type mongoLedgerStore struct {
	col *mongo.Collection
}

func (s *mongoLedgerStore) Insert(ctx context.Context, req *models.ChangeRequest) error {
	res, err := s.col.InsertOne(ctx, req)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("insert", s.col.Name(), "error").Inc()
		return fmt.Errorf("failed to insert change request: %w", err)
	}
	req.ID = res.InsertedID.(primitive.ObjectID)
	observability.DatabaseOperations.WithLabelValues("insert", s.col.Name(), "success").Inc()
	return nil
}

func (s *mongoLedgerStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ChangeRequest, error) {
	var req models.ChangeRequest
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find change request: %w", err)
	}
	return &req, nil
}

func (s *mongoLedgerStore) GetByReference(ctx context.Context, referenceID string) (*models.ChangeRequest, error) {
	var req models.ChangeRequest
	err := s.col.FindOne(ctx, bson.M{"reference_id": referenceID}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find change request: %w", err)
	}
	return &req, nil
}

func (s *mongoLedgerStore) ListPending(ctx context.Context) ([]models.ChangeRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{"status": models.StatusPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.ChangeRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("failed to decode pending requests: %w", err)
	}
	return reqs, nil
}

func (s *mongoLedgerStore) ListByCitizen(ctx context.Context, citizenID primitive.ObjectID) ([]models.ChangeRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{"citizen_id": citizenID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list change requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.ChangeRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("failed to decode change requests: %w", err)
	}
	return reqs, nil
}

func (s *mongoLedgerStore) Transition(ctx context.Context, id primitive.ObjectID, outcome models.RequestStatus, reviewedBy primitive.ObjectID, comments string) (*models.ChangeRequest, error) {
	ctx, span := utils.TraceDatabaseUpdate(ctx, s.col.Name(), "findOneAndUpdate")
	defer span.End()
	utils.AddSpanAttribute(span, "request.outcome", string(outcome))

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":      outcome,
		"reviewed_at": now,
		"reviewed_by": reviewedBy,
		"comments":    comments,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.ChangeRequest
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.StatusPending},
		update, opts,
	).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the request never existed or another reviewer won the
		// race; a second read tells the two apart.
		if _, lookupErr := s.GetByID(ctx, id); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, models.ErrAlreadyDecided
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to transition change request: %w", err)
	}
	return &req, nil
}

func (s *mongoLedgerStore) Reopen(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"status": models.StatusPending},
			"$unset": bson.M{"reviewed_at": "", "reviewed_by": "", "comments": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to reopen change request: %w", err)
	}
	return nil
}

type mongoTrackerStore struct {
	col *mongo.Collection
}

func (s *mongoTrackerStore) Count(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) (int64, error) {
	var counter models.FieldChangeCounter
	err := s.col.FindOne(ctx, bson.M{
		"citizen_id":    citizenID,
		"document_type": t,
		"field_name":    field,
	}).Decode(&counter)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read change counter: %w", err)
	}
	return counter.ChangeCount, nil
}

// Increment bumps the counter atomically; the upsert avoids the lost
// update a read-modify-write cycle would allow under concurrency.
func (s *mongoTrackerStore) Increment(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"citizen_id": citizenID, "document_type": t, "field_name": field},
		bson.M{
			"$inc": bson.M{"change_count": 1},
			"$set": bson.M{"last_changed": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to increment change counter: %w", err)
	}
	return nil
}

func (s *mongoTrackerStore) Reset(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"citizen_id": citizenID, "document_type": t, "field_name": field},
		bson.M{"$set": bson.M{"change_count": 0, "last_changed": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to reset change counter: %w", err)
	}
	return nil
}
