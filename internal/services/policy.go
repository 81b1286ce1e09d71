package services

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/observability"
	"github.com/nagrik-seva/app-docvault/internal/store"
	"github.com/nagrik-seva/app-docvault/internal/utils"
)

// maxMinorBatchFields caps how many fields one submission may touch
// and still classify as minor. This is a classification rule, not a
// quota: tuning MINOR_CHANGE_LIMIT must not loosen it.
const maxMinorBatchFields = 2

// PolicyService classifies proposed edits and enforces the
// self-service quota. The quota limit applies per
// (citizen, documentType, field) triple.
type PolicyService struct {
	tracker store.TrackerStore
	limit   int
}

// NewPolicyService creates a policy service with the given quota limit
func NewPolicyService(tracker store.TrackerStore, limit int) *PolicyService {
	return &PolicyService{tracker: tracker, limit: limit}
}

// Classify decides whether a batch of field edits is minor or major.
// Any sensitive field makes the batch major, as does exceeding the
// field-count cap. Unknown fields are rejected before classification.
func (p *PolicyService) Classify(t models.DocumentType, fields []string) (models.Classification, error) {
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: no fields submitted", models.ErrInvalidField)
	}

	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if seen[field] {
			return "", fmt.Errorf("%w: duplicate field %q", models.ErrInvalidField, field)
		}
		seen[field] = true

		spec, err := models.LookupField(t, field)
		if err != nil {
			return "", err
		}
		if spec.Sensitive {
			return models.ClassificationMajor, nil
		}
	}

	if len(fields) > maxMinorBatchFields {
		return models.ClassificationMajor, nil
	}
	return models.ClassificationMinor, nil
}

// AuthorizeMinorEdit checks the quota for one field edit. The check
// fails closed: a storage error routes the edit to review rather than
// letting it bypass the limit.
func (p *PolicyService) AuthorizeMinorEdit(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) error {
	ctx, span := utils.TraceBusinessLogic(ctx, "authorize_minor_edit")
	defer span.End()
	utils.AddSpanAttribute(span, "quota.document_type", string(t))
	utils.AddSpanAttribute(span, "quota.field", field)

	count, err := p.tracker.Count(ctx, citizenID, t, field)
	if err != nil {
		observability.Logger().Warn("quota check failed, routing edit to review",
			zap.String("document_type", string(t)),
			zap.String("field", field),
			zap.Error(err))
		utils.RecordErrorInSpan(span, err, nil)
		return models.ErrQuotaExceeded
	}
	if count >= int64(p.limit) {
		utils.AddSpanAttribute(span, "quota.exhausted", true)
		return models.ErrQuotaExceeded
	}
	return nil
}

// RecordMinorEdit bumps the quota counter after a successful apply
func (p *PolicyService) RecordMinorEdit(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) error {
	return p.tracker.Increment(ctx, citizenID, t, field)
}

// ResetQuota clears the counter for one field triple
func (p *PolicyService) ResetQuota(ctx context.Context, citizenID primitive.ObjectID, t models.DocumentType, field string) error {
	return p.tracker.Reset(ctx, citizenID, t, field)
}

// sortedFields returns field names in a stable order so batch
// processing and responses are deterministic
func sortedFields(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
