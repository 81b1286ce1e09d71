package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nagrik-seva/app-docvault/internal/models"
)

func setupMongoStore(t *testing.T) *Store {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7.0")
	require.NoError(t, err, "Failed to start MongoDB container")
	t.Cleanup(func() { _ = mongoContainer.Terminate(context.Background()) })

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	require.NoError(t, err, "Failed to connect to MongoDB")
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	require.NoError(t, client.Ping(ctx, nil), "Failed to ping MongoDB")

	db := client.Database("docvault_test")
	return NewMongoStore(db, Collections{
		Citizens:       "citizens",
		Admins:         "admins",
		Documents:      "documents",
		ChangeRequests: "change_requests",
		FieldCounters:  "field_change_counters",
	})
}

func TestMongoLedgerTransitionOnce(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()

	req := &models.ChangeRequest{
		ReferenceID:    "REQ-integration-1",
		CitizenID:      primitive.NewObjectID(),
		DocumentType:   models.DocumentTypeAadhaar,
		Classification: models.ClassificationMajor,
		FieldToUpdate:  "name",
		NewValue:       "Asha Verma",
		Status:         models.StatusPending,
	}
	require.NoError(t, s.Ledger.Insert(ctx, req))

	const reviewers = 5
	var wg sync.WaitGroup
	errs := make([]error, reviewers)
	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Ledger.Transition(ctx, req.ID, models.StatusApproved, primitive.NewObjectID(), "ok")
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, models.ErrAlreadyDecided)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one reviewer should win")

	got, err := s.Ledger.GetByReference(ctx, "REQ-integration-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.NotNil(t, got.ReviewedAt)

	t.Run("reopen clears review fields", func(t *testing.T) {
		require.NoError(t, s.Ledger.Reopen(ctx, req.ID))
		got, err := s.Ledger.GetByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, got.Status)
		assert.Nil(t, got.ReviewedAt)
		assert.Nil(t, got.ReviewedBy)
	})
}

func TestMongoLedgerListByCitizenSubmissionOrder(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()
	citizenID := primitive.NewObjectID()

	base := time.Now().Truncate(time.Millisecond)
	refs := []string{"REQ-A", "REQ-B", "REQ-C"}
	// Insert newest first so insertion order cannot mask a missing sort
	for i := len(refs) - 1; i >= 0; i-- {
		require.NoError(t, s.Ledger.Insert(ctx, &models.ChangeRequest{
			ReferenceID: refs[i],
			CitizenID:   citizenID,
			Status:      models.StatusPending,
			SubmittedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	got, err := s.Ledger.ListByCitizen(ctx, citizenID)
	require.NoError(t, err)

	gotRefs := make([]string, 0, len(got))
	for _, r := range got {
		gotRefs = append(gotRefs, r.ReferenceID)
	}
	assert.Equal(t, refs, gotRefs, "history must come back oldest first")
}

func TestMongoTrackerConcurrentIncrement(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()
	citizenID := primitive.NewObjectID()

	const increments = 20
	var wg sync.WaitGroup
	for i := 0; i < increments; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Tracker.Increment(ctx, citizenID, models.DocumentTypeVoterID, "address")
		}()
	}
	wg.Wait()

	n, err := s.Tracker.Count(ctx, citizenID, models.DocumentTypeVoterID, "address")
	require.NoError(t, err)
	assert.EqualValues(t, increments, n, "no increments should be lost")
}

func TestMongoDocumentUpdateField(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()
	citizenID := primitive.NewObjectID()

	require.NoError(t, s.Documents.Insert(ctx, &models.Document{
		CitizenID: citizenID,
		Type:      models.DocumentTypeRationCard,
		Number:    "RC1234567890",
		Name:      "Ravi Kumar",
		Category:  models.RationCategoryBPL,
	}))

	t.Run("typed value survives the round trip", func(t *testing.T) {
		require.NoError(t, s.Documents.UpdateField(ctx, citizenID, models.DocumentTypeRationCard, "family_members", int32(5)))
		got, err := s.Documents.GetByCitizenAndType(ctx, citizenID, models.DocumentTypeRationCard)
		require.NoError(t, err)
		assert.EqualValues(t, 5, got.FamilyMembers)
	})

	t.Run("missing document", func(t *testing.T) {
		err := s.Documents.UpdateField(ctx, citizenID, models.DocumentTypePAN, "name", "x")
		assert.ErrorIs(t, err, models.ErrDocumentNotFound)
	})
}
