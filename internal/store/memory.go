package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagrik-seva/app-docvault/internal/models"
)

// NewMemoryStore returns a fully in-memory store for tests
func NewMemoryStore() *Store {
	return &Store{
		Citizens:  &memoryCitizenStore{byID: map[primitive.ObjectID]*models.Citizen{}},
		Admins:    &memoryAdminStore{byID: map[primitive.ObjectID]*models.Admin{}},
		Documents: &memoryDocumentStore{docs: map[primitive.ObjectID]*models.Document{}},
		Ledger:    &memoryLedgerStore{reqs: map[primitive.ObjectID]*models.ChangeRequest{}},
		Tracker:   &memoryTrackerStore{counts: map[trackerKey]int64{}},
	}
}

type memoryCitizenStore struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]*models.Citizen
}

func (s *memoryCitizenStore) Insert(_ context.Context, citizen *models.Citizen) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if citizen.ID.IsZero() {
		citizen.ID = primitive.NewObjectID()
	}
	citizen.CreatedAt = time.Now()
	cp := *citizen
	s.byID[citizen.ID] = &cp
	return nil
}

func (s *memoryCitizenStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Citizen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, models.ErrCitizenNotFound
}

func (s *memoryCitizenStore) GetByNationalID(_ context.Context, nationalID string) (*models.Citizen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.byID {
		if c.NationalID == nationalID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.ErrCitizenNotFound
}

type memoryAdminStore struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]*models.Admin
}

func (s *memoryAdminStore) Insert(_ context.Context, admin *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	admin.CreatedAt = time.Now()
	cp := *admin
	s.byID[admin.ID] = &cp
	return nil
}

func (s *memoryAdminStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, models.ErrAdminNotFound
}

func (s *memoryAdminStore) GetByEmployeeID(_ context.Context, employeeID string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.byID {
		if a.EmployeeID == employeeID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, models.ErrAdminNotFound
}

type memoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]*models.Document
}

func (s *memoryDocumentStore) Insert(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.CitizenID == doc.CitizenID && d.Type == doc.Type {
			return models.ErrDuplicateDocument
		}
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	doc.LastUpdated = time.Now()
	cp := *doc
	s.docs[doc.ID] = &cp
	return nil
}

func (s *memoryDocumentStore) GetByCitizenAndType(_ context.Context, citizenID primitive.ObjectID, t models.DocumentType) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.docs {
		if d.CitizenID == citizenID && d.Type == t {
			cp := *d
			return &cp, nil
		}
	}
	return nil, models.ErrDocumentNotFound
}

func (s *memoryDocumentStore) ListByCitizen(_ context.Context, citizenID primitive.ObjectID) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Document
	for _, d := range s.docs {
		if d.CitizenID == citizenID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (s *memoryDocumentStore) UpdateField(_ context.Context, citizenID primitive.ObjectID, t models.DocumentType, bsonKey string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.CitizenID != citizenID || d.Type != t {
			continue
		}
		if err := setByBSONKey(d, bsonKey, value); err != nil {
			return err
		}
		d.LastUpdated = time.Now()
		return nil
	}
	return models.ErrDocumentNotFound
}

// setByBSONKey mirrors the Mongo $set path onto the struct
func setByBSONKey(d *models.Document, key string, value interface{}) error {
	switch key {
	case "number":
		d.Number = value.(string)
	case "name":
		d.Name = value.(string)
	case "father_name":
		d.FatherName = value.(string)
	case "date_of_birth":
		d.DateOfBirth = value.(string)
	case "gender":
		d.Gender = value.(string)
	case "address":
		d.Address = value.(string)
	case "phone":
		d.Phone = value.(string)
	case "email":
		d.Email = value.(string)
	case "constituency":
		d.Constituency = value.(string)
	case "vehicle_class":
		d.VehicleClass = value.(string)
	case "issue_date":
		d.IssueDate = value.(string)
	case "expiry_date":
		d.ExpiryDate = value.(string)
	case "family_members":
		d.FamilyMembers = value.(int32)
	case "category":
		d.Category = value.(string)
	default:
		return models.ErrInvalidField
	}
	return nil
}

type memoryLedgerStore struct {
	mu   sync.RWMutex
	reqs map[primitive.ObjectID]*models.ChangeRequest
}

func (s *memoryLedgerStore) Insert(_ context.Context, req *models.ChangeRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	cp := *req
	s.reqs[req.ID] = &cp
	return nil
}

func (s *memoryLedgerStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.ChangeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.reqs[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, models.ErrRequestNotFound
}

func (s *memoryLedgerStore) GetByReference(_ context.Context, referenceID string) (*models.ChangeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reqs {
		if r.ReferenceID == referenceID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, models.ErrRequestNotFound
}

func (s *memoryLedgerStore) ListPending(_ context.Context) ([]models.ChangeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ChangeRequest
	for _, r := range s.reqs {
		if r.Status == models.StatusPending {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return out, nil
}

func (s *memoryLedgerStore) ListByCitizen(_ context.Context, citizenID primitive.ObjectID) ([]models.ChangeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ChangeRequest
	for _, r := range s.reqs {
		if r.CitizenID == citizenID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return out, nil
}

func (s *memoryLedgerStore) Transition(_ context.Context, id primitive.ObjectID, outcome models.RequestStatus, reviewedBy primitive.ObjectID, comments string) (*models.ChangeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reqs[id]
	if !ok {
		return nil, models.ErrRequestNotFound
	}
	if r.Status != models.StatusPending {
		return nil, models.ErrAlreadyDecided
	}
	now := time.Now()
	r.Status = outcome
	r.ReviewedAt = &now
	r.ReviewedBy = &reviewedBy
	r.Comments = comments
	cp := *r
	return &cp, nil
}

func (s *memoryLedgerStore) Reopen(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reqs[id]
	if !ok {
		return models.ErrRequestNotFound
	}
	r.Status = models.StatusPending
	r.ReviewedAt = nil
	r.ReviewedBy = nil
	r.Comments = ""
	return nil
}

type trackerKey struct {
	citizenID primitive.ObjectID
	docType   models.DocumentType
	field     string
}

type memoryTrackerStore struct {
	mu     sync.Mutex
	counts map[trackerKey]int64
}

func (s *memoryTrackerStore) Count(_ context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[trackerKey{citizenID, t, field}], nil
}

func (s *memoryTrackerStore) Increment(_ context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[trackerKey{citizenID, t, field}]++
	return nil
}

func (s *memoryTrackerStore) Reset(_ context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[trackerKey{citizenID, t, field}] = 0
	return nil
}
