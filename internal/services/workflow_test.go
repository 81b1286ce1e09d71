package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagrik-seva/app-docvault/internal/config"
	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/store"
)

type captureMailer struct {
	mu        sync.Mutex
	decisions []string
}

func (m *captureMailer) SendOTP(string, string) error { return nil }

func (m *captureMailer) SendDecision(_ string, req *models.ChangeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, req.ReferenceID)
	return nil
}

type workflowFixture struct {
	store   *store.Store
	ledger  *LedgerService
	citizen *models.Citizen
	admin   *models.Admin
}

func newWorkflowFixture(t *testing.T, cfg *config.Config) *workflowFixture {
	t.Helper()
	ctx := context.Background()

	s := store.NewMemoryStore()
	cache := NewMemoryCache()
	policy := NewPolicyService(s.Tracker, cfg.MinorChangeLimit)
	approval := NewApprovalService(s.Documents, cache)
	ledger := NewLedgerService(s, policy, approval, &captureMailer{}, cfg)

	citizen := &models.Citizen{
		NationalID: "123456789012",
		Name:       "Asha Verma",
		Email:      "asha@example.in",
	}
	require.NoError(t, s.Citizens.Insert(ctx, citizen))

	admin := &models.Admin{EmployeeID: "EMP001", Name: "Reviewer"}
	require.NoError(t, s.Admins.Insert(ctx, admin))

	for _, doc := range []*models.Document{
		{CitizenID: citizen.ID, Type: models.DocumentTypeAadhaar, Number: "123456789012", Name: citizen.Name, Address: "12 MG Road", Phone: "+919876543210", Email: citizen.Email},
		{CitizenID: citizen.ID, Type: models.DocumentTypePAN, Number: "ABCDE1234F", Name: citizen.Name, Address: "12 MG Road"},
		{CitizenID: citizen.ID, Type: models.DocumentTypeVoterID, Number: "XYZ1234567", Name: citizen.Name, Address: "12 MG Road"},
	} {
		require.NoError(t, s.Documents.Insert(ctx, doc))
	}

	return &workflowFixture{store: s, ledger: ledger, citizen: citizen, admin: admin}
}

func testConfig() *config.Config {
	return &config.Config{
		MinorChangeLimit: 2,
		QuotaResetPolicy: config.QuotaResetNever,
	}
}

func TestSubmitMinorEditAppliesImmediately(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	ctx := context.Background()

	resp, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
		DocumentType:  string(models.DocumentTypeAadhaar),
		FieldToUpdate: "address",
		NewValue:      "7 Park Street",
	})
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Empty(t, resp.ReferenceIDs)

	t.Run("target document updated", func(t *testing.T) {
		doc, err := f.store.Documents.GetByCitizenAndType(ctx, f.citizen.ID, models.DocumentTypeAadhaar)
		require.NoError(t, err)
		assert.Equal(t, "7 Park Street", doc.Address)
	})

	t.Run("shared field fanned out", func(t *testing.T) {
		for _, dt := range []models.DocumentType{models.DocumentTypePAN, models.DocumentTypeVoterID} {
			doc, err := f.store.Documents.GetByCitizenAndType(ctx, f.citizen.ID, dt)
			require.NoError(t, err)
			assert.Equal(t, "7 Park Street", doc.Address, "fan-out should reach %s", dt)
		}
	})

	t.Run("counter incremented", func(t *testing.T) {
		n, err := f.store.Tracker.Count(ctx, f.citizen.ID, models.DocumentTypeAadhaar, "address")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("nothing in the review queue", func(t *testing.T) {
		pending, err := f.store.Ledger.ListPending(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})
}

func TestSubmitFanOutSkipsVariantsWithoutField(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	ctx := context.Background()

	// PAN records carry no phone column, so the fan-out must skip PAN
	resp, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
		DocumentType:  string(models.DocumentTypeAadhaar),
		FieldToUpdate: "phone",
		NewValue:      "+919999999999",
	})
	require.NoError(t, err)
	assert.True(t, resp.Applied)

	aadhaar, err := f.store.Documents.GetByCitizenAndType(ctx, f.citizen.ID, models.DocumentTypeAadhaar)
	require.NoError(t, err)
	assert.Equal(t, "+919999999999", aadhaar.Phone)

	pan, err := f.store.Documents.GetByCitizenAndType(ctx, f.citizen.ID, models.DocumentTypePAN)
	require.NoError(t, err)
	assert.Empty(t, pan.Phone)
}

func TestSubmitQuotaReroutesToReview(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	ctx := context.Background()

	submit := func() *models.SubmitChangeResponse {
		resp, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
			DocumentType:  string(models.DocumentTypeAadhaar),
			FieldToUpdate: "address",
			NewValue:      "New Address",
		})
		require.NoError(t, err)
		return resp
	}

	assert.True(t, submit().Applied)
	assert.True(t, submit().Applied)

	third := submit()
	assert.False(t, third.Applied, "third edit of the same field must go to review")
	require.Len(t, third.Requests, 1)

	// The stored classification stays minor even though the edit was
	// rerouted; only the routing changed.
	assert.Equal(t, models.ClassificationMinor, third.Requests[0].Classification)
	assert.Equal(t, models.StatusPending, third.Requests[0].Status)

	pending, err := f.store.Ledger.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestSubmitMajorEditGoesToReview(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	ctx := context.Background()

	resp, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
		DocumentType:  string(models.DocumentTypeAadhaar),
		FieldToUpdate: "name",
		NewValue:      "Asha Sharma",
	})
	require.NoError(t, err)
	assert.False(t, resp.Applied)
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, models.ClassificationMajor, resp.Requests[0].Classification)
	assert.Equal(t, "Asha Verma", resp.Requests[0].OldValue)

	// The document is untouched until a reviewer approves
	doc, err := f.store.Documents.GetByCitizenAndType(ctx, f.citizen.ID, models.DocumentTypeAadhaar)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", doc.Name)
}

func TestSubmitValidation(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	ctx := context.Background()

	t.Run("unknown document type", func(t *testing.T) {
		_, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
			DocumentType:  "passport",
			FieldToUpdate: "address",
			NewValue:      "x",
		})
		assert.ErrorIs(t, err, models.ErrInvalidDocumentType)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
			DocumentType:  string(models.DocumentTypePAN),
			FieldToUpdate: "phone",
			NewValue:      "+919876543210",
		})
		assert.ErrorIs(t, err, models.ErrInvalidField)
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
			DocumentType:  string(models.DocumentTypeRationCard),
			FieldToUpdate: "address",
			NewValue:      "x",
		})
		assert.ErrorIs(t, err, models.ErrDocumentNotFound)
	})

	t.Run("bad typed value", func(t *testing.T) {
		require.NoError(t, f.store.Documents.Insert(ctx, &models.Document{
			CitizenID: f.citizen.ID,
			Type:      models.DocumentTypeRationCard,
			Number:    "RC0001",
			Name:      f.citizen.Name,
			Category:  models.RationCategoryAPL,
		}))
		_, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
			DocumentType:  string(models.DocumentTypeRationCard),
			FieldToUpdate: "familyMembers",
			NewValue:      "many",
		})
		assert.ErrorIs(t, err, models.ErrInvalidFieldValue)
	})
}

func TestSubmitMultiFieldBatch(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	ctx := context.Background()

	// Three non-sensitive fields: the whole batch is major
	resp, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
		DocumentType: string(models.DocumentTypeAadhaar),
		Fields: map[string]string{
			"address": "7 Park Street",
			"phone":   "+919999999999",
			"email":   "new@example.in",
		},
	})
	require.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Len(t, resp.Requests, 3)
	for _, req := range resp.Requests {
		assert.Equal(t, models.ClassificationMajor, req.Classification)
	}
}

func TestDecideApprovesAndApplies(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	ctx := context.Background()

	resp, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
		DocumentType:  string(models.DocumentTypeAadhaar),
		FieldToUpdate: "name",
		NewValue:      "Asha Sharma",
	})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)
	reqID := resp.Requests[0].ID

	decided, err := f.ledger.Decide(ctx, f.admin.ID, reqID, models.OutcomeApproved, "documents verified")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.Status)

	t.Run("name fanned out to every document", func(t *testing.T) {
		docs, err := f.store.Documents.ListByCitizen(ctx, f.citizen.ID)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		for _, doc := range docs {
			assert.Equal(t, "Asha Sharma", doc.Name, "document %s", doc.Type)
		}
	})

	t.Run("second decision is rejected", func(t *testing.T) {
		_, err := f.ledger.Decide(ctx, f.admin.ID, reqID, models.OutcomeRejected, "")
		assert.ErrorIs(t, err, models.ErrAlreadyDecided)
	})
}

func TestDecideRejectLeavesDocumentAlone(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	ctx := context.Background()

	resp, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
		DocumentType:  string(models.DocumentTypeAadhaar),
		FieldToUpdate: "dateOfBirth",
		NewValue:      "1990-01-01",
	})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)

	decided, err := f.ledger.Decide(ctx, f.admin.ID, resp.Requests[0].ID, models.OutcomeRejected, "evidence missing")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, decided.Status)
	assert.Equal(t, "evidence missing", decided.Comments)

	doc, err := f.store.Documents.GetByCitizenAndType(ctx, f.citizen.ID, models.DocumentTypeAadhaar)
	require.NoError(t, err)
	assert.Empty(t, doc.DateOfBirth)
}

func TestDecideInvalidOutcome(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	_, err := f.ledger.Decide(context.Background(), f.admin.ID, primitive.NewObjectID(), "maybe", "")
	assert.ErrorIs(t, err, models.ErrInvalidOutcome)
}

func TestConcurrentDecideSingleWinner(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	ctx := context.Background()

	resp, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
		DocumentType:  string(models.DocumentTypeAadhaar),
		FieldToUpdate: "name",
		NewValue:      "Asha Sharma",
	})
	require.NoError(t, err)
	reqID := resp.Requests[0].ID

	const reviewers = 6
	var wg sync.WaitGroup
	errs := make([]error, reviewers)
	for i := 0; i < reviewers; i++ {
		outcome := models.OutcomeApproved
		if i%2 == 1 {
			outcome = models.OutcomeRejected
		}
		wg.Add(1)
		go func(i int, outcome string) {
			defer wg.Done()
			_, errs[i] = f.ledger.Decide(ctx, f.admin.ID, reqID, outcome, "")
		}(i, outcome)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, models.ErrAlreadyDecided)
		}
	}
	assert.Equal(t, 1, wins)
}

// brokenDocumentStore fails every write so the approval processor
// cannot apply a decided change
type brokenDocumentStore struct {
	store.DocumentStore
}

func (b brokenDocumentStore) UpdateField(context.Context, primitive.ObjectID, models.DocumentType, string, interface{}) error {
	return errors.New("storage unavailable")
}

func TestDecideReopensOnApplyFailure(t *testing.T) {
	cfg := testConfig()
	f := newWorkflowFixture(t, cfg)
	ctx := context.Background()

	resp, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
		DocumentType:  string(models.DocumentTypeAadhaar),
		FieldToUpdate: "name",
		NewValue:      "Asha Sharma",
	})
	require.NoError(t, err)
	reqID := resp.Requests[0].ID

	// Swap in a ledger whose approval path cannot write documents
	cache := NewMemoryCache()
	broken := NewLedgerService(f.store,
		NewPolicyService(f.store.Tracker, cfg.MinorChangeLimit),
		NewApprovalService(brokenDocumentStore{f.store.Documents}, cache),
		&captureMailer{}, cfg)

	_, err = broken.Decide(ctx, f.admin.ID, reqID, models.OutcomeApproved, "")
	require.Error(t, err)

	got, err := f.store.Ledger.GetByID(ctx, reqID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status, "failed apply must put the request back in the queue")

	// A later retry with working storage succeeds
	decided, err := f.ledger.Decide(ctx, f.admin.ID, reqID, models.OutcomeApproved, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.Status)
}

func TestQuotaResetOnApproval(t *testing.T) {
	cfg := testConfig()
	cfg.QuotaResetPolicy = config.QuotaResetOnApproval
	f := newWorkflowFixture(t, cfg)
	ctx := context.Background()

	submit := func() *models.SubmitChangeResponse {
		resp, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
			DocumentType:  string(models.DocumentTypeAadhaar),
			FieldToUpdate: "address",
			NewValue:      "New Address",
		})
		require.NoError(t, err)
		return resp
	}

	assert.True(t, submit().Applied)
	assert.True(t, submit().Applied)

	rerouted := submit()
	require.False(t, rerouted.Applied)

	_, err := f.ledger.Decide(ctx, f.admin.ID, rerouted.Requests[0].ID, models.OutcomeApproved, "")
	require.NoError(t, err)

	// Approval reset the counter, so self-service works again
	assert.True(t, submit().Applied)
}

func TestListPendingEnrichesCitizen(t *testing.T) {
	f := newWorkflowFixture(t, testConfig())
	ctx := context.Background()

	_, err := f.ledger.Submit(ctx, f.citizen, &models.SubmitChangeRequest{
		DocumentType:  string(models.DocumentTypeAadhaar),
		FieldToUpdate: "name",
		NewValue:      "Asha Sharma",
	})
	require.NoError(t, err)

	views, err := f.ledger.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Asha Verma", views[0].CitizenName)
	assert.NotContains(t, views[0].CitizenNationalID, "12345678", "national ID must be masked")
}
