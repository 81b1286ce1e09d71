package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/observability"
	"github.com/nagrik-seva/app-docvault/internal/store"
	"github.com/nagrik-seva/app-docvault/internal/utils"
)

func documentsCacheKey(citizenID primitive.ObjectID) string {
	return "documents:" + citizenID.Hex()
}

// DocumentService serves citizen document reads through a Redis
// cache and handles new document registration.
type DocumentService struct {
	documents store.DocumentStore
	citizens  store.CitizenStore
	cache     Cache
	ttl       time.Duration
}

// NewDocumentService creates a document service
func NewDocumentService(documents store.DocumentStore, citizens store.CitizenStore, cache Cache, ttl time.Duration) *DocumentService {
	return &DocumentService{documents: documents, citizens: citizens, cache: cache, ttl: ttl}
}

// GetPortfolio returns every document the citizen holds, keyed by
// type. Reads go through the cache; writers invalidate the key.
func (d *DocumentService) GetPortfolio(ctx context.Context, citizenID primitive.ObjectID) (*models.DocumentsResponse, error) {
	ctx, span := utils.TraceCacheGet(ctx, "documents")
	defer span.End()

	key := documentsCacheKey(citizenID)
	if cached, err := d.cache.Get(ctx, key); err == nil {
		var resp models.DocumentsResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			observability.CacheHits.WithLabelValues("documents_hit").Inc()
			utils.AddSpanAttribute(span, "cache.hit", true)
			return &resp, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		observability.Logger().Warn("document cache read failed", zap.Error(err))
	}
	observability.CacheHits.WithLabelValues("documents_miss").Inc()

	citizen, err := d.citizens.GetByID(ctx, citizenID)
	if err != nil {
		return nil, err
	}
	docs, err := d.documents.ListByCitizen(ctx, citizenID)
	if err != nil {
		return nil, err
	}

	resp := &models.DocumentsResponse{
		Citizen:   citizen,
		Documents: make(map[models.DocumentType]*models.Document, len(docs)),
	}
	for i := range docs {
		resp.Documents[docs[i].Type] = &docs[i]
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := d.cache.Set(ctx, key, string(payload), d.ttl); err != nil {
			observability.Logger().Warn("document cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}

// GetDocument returns one document of the given type
func (d *DocumentService) GetDocument(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType) (*models.Document, error) {
	return d.documents.GetByCitizenAndType(ctx, citizenID, t)
}

// Register stores a newly issued document for the citizen
func (d *DocumentService) Register(ctx context.Context, doc *models.Document) error {
	if _, err := models.LookupField(doc.Type, "name"); err != nil {
		return err
	}
	if err := d.documents.Insert(ctx, doc); err != nil {
		return err
	}
	if err := d.cache.Del(ctx, documentsCacheKey(doc.CitizenID)); err != nil {
		observability.Logger().Warn("document cache invalidation failed", zap.Error(err))
	}
	return nil
}
