package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/observability"
	"github.com/nagrik-seva/app-docvault/internal/store"
	"github.com/nagrik-seva/app-docvault/internal/utils"
)

// ApprovalService applies field edits to documents and propagates
// shared fields across the citizen's other documents.
type ApprovalService struct {
	documents store.DocumentStore
	cache     Cache
}

// NewApprovalService creates an approval service
func NewApprovalService(documents store.DocumentStore, cache Cache) *ApprovalService {
	return &ApprovalService{documents: documents, cache: cache}
}

// ApplyEdit writes one validated field edit to the target document and
// fans shared fields out to the citizen's other documents. The target
// write must succeed; fan-out failures are logged and skipped so one
// stale record never blocks the edit itself.
func (a *ApprovalService) ApplyEdit(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, field, newValue string) error {
	ctx, span := utils.TraceBusinessLogic(ctx, "apply_edit")
	defer span.End()
	utils.AddSpanAttribute(span, "edit.document_type", string(t))
	utils.AddSpanAttribute(span, "edit.field", field)

	spec, err := models.LookupField(t, field)
	if err != nil {
		return err
	}
	value, err := spec.Value(newValue)
	if err != nil {
		return err
	}

	if err := a.documents.UpdateField(ctx, citizenID, t, spec.BSONKey, value); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return fmt.Errorf("failed to apply edit: %w", err)
	}

	if spec.Shared {
		a.fanOut(ctx, citizenID, t, spec.Name, newValue)
	}

	if err := a.cache.Del(ctx, documentsCacheKey(citizenID)); err != nil {
		observability.Logger().Warn("document cache invalidation failed", zap.Error(err))
	}
	return nil
}

// ApplyRequest applies an approved change request
func (a *ApprovalService) ApplyRequest(ctx context.Context, req *models.ChangeRequest) error {
	return a.ApplyEdit(ctx, req.CitizenID, req.DocumentType, req.FieldToUpdate, req.NewValue)
}

// fanOut propagates a shared field to every other document the citizen
// holds. Document types that do not carry the field are skipped, and a
// failed update on one document never blocks the rest.
func (a *ApprovalService) fanOut(ctx context.Context, citizenID primitive.ObjectID, sourceType models.DocumentType, field, newValue string) {
	ctx, span := utils.TraceBusinessLogic(ctx, "fan_out_shared_field")
	defer span.End()
	utils.AddSpanAttribute(span, "fanout.field", field)

	docs, err := a.documents.ListByCitizen(ctx, citizenID)
	if err != nil {
		observability.Logger().Error("fan-out aborted, could not list documents",
			zap.String("field", field),
			zap.Error(err))
		utils.RecordErrorInSpan(span, err, nil)
		return
	}

	for _, doc := range docs {
		if doc.Type == sourceType {
			continue
		}
		spec, err := models.LookupField(doc.Type, field)
		if err != nil {
			// This variant does not store the field
			observability.FanOutUpdates.WithLabelValues("skipped").Inc()
			continue
		}
		value, err := spec.Value(newValue)
		if err != nil {
			observability.FanOutUpdates.WithLabelValues("skipped").Inc()
			continue
		}
		if err := a.documents.UpdateField(ctx, citizenID, doc.Type, spec.BSONKey, value); err != nil {
			observability.Logger().Error("fan-out update failed",
				zap.String("document_type", string(doc.Type)),
				zap.String("field", field),
				zap.Error(err))
			observability.FanOutUpdates.WithLabelValues("failed").Inc()
			continue
		}
		observability.FanOutUpdates.WithLabelValues("updated").Inc()
	}
}
