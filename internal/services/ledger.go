package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nagrik-seva/app-docvault/internal/config"
	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/observability"
	"github.com/nagrik-seva/app-docvault/internal/store"
	"github.com/nagrik-seva/app-docvault/internal/utils"
)

// LedgerService owns the change-request workflow: routing submissions
// between self-service and review, and applying admin decisions.
type LedgerService struct {
	store    *store.Store
	policy   *PolicyService
	approval *ApprovalService
	mailer   Mailer

	quotaResetPolicy string
}

// NewLedgerService wires the workflow services together
func NewLedgerService(s *store.Store, policy *PolicyService, approval *ApprovalService, mailer Mailer, cfg *config.Config) *LedgerService {
	return &LedgerService{
		store:            s,
		policy:           policy,
		approval:         approval,
		mailer:           mailer,
		quotaResetPolicy: cfg.QuotaResetPolicy,
	}
}

// Submit routes a batch of proposed field edits. Minor edits within
// quota apply immediately; everything else lands in the review queue.
// The client's classification hint is ignored: the server recomputes
// it from the submitted fields.
func (l *LedgerService) Submit(ctx context.Context, citizen *models.Citizen, in *models.SubmitChangeRequest) (*models.SubmitChangeResponse, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "submit_change_request")
	defer span.End()

	docType, err := models.ParseDocumentType(in.DocumentType)
	if err != nil {
		return nil, err
	}
	utils.AddSpanAttribute(span, "request.document_type", in.DocumentType)

	fields := in.Fields
	if len(fields) == 0 {
		if in.FieldToUpdate == "" {
			return nil, fmt.Errorf("%w: no fields submitted", models.ErrInvalidField)
		}
		fields = map[string]string{in.FieldToUpdate: in.NewValue}
	}

	doc, err := l.store.Documents.GetByCitizenAndType(ctx, citizen.ID, docType)
	if err != nil {
		return nil, err
	}

	names := sortedFields(fields)
	for _, name := range names {
		spec, err := models.LookupField(docType, name)
		if err != nil {
			return nil, err
		}
		if _, err := spec.Value(fields[name]); err != nil {
			return nil, err
		}
	}

	classification, err := l.policy.Classify(docType, names)
	if err != nil {
		return nil, err
	}
	if in.Classification != "" && in.Classification != string(classification) {
		observability.Logger().Warn("client classification hint overruled",
			zap.String("hinted", in.Classification),
			zap.String("computed", string(classification)))
	}
	utils.AddSpanAttribute(span, "request.classification", string(classification))

	resp := &models.SubmitChangeResponse{Applied: true}
	now := time.Now()

	for _, name := range names {
		spec, _ := models.LookupField(docType, name)
		newValue := fields[name]

		route := "review"
		if classification == models.ClassificationMinor {
			switch err := l.policy.AuthorizeMinorEdit(ctx, citizen.ID, docType, name); {
			case err == nil:
				route = "applied"
			case errors.Is(err, models.ErrQuotaExceeded):
				// Quota exhausted: the edit itself is still minor, it
				// just needs a reviewer now. The stored classification
				// stays minor so the queue shows why it is there.
				route = "quota_rerouted"
			default:
				return nil, err
			}
		}

		if route == "applied" {
			if err := l.approval.ApplyEdit(ctx, citizen.ID, docType, name, newValue); err != nil {
				return nil, err
			}
			if err := l.policy.RecordMinorEdit(ctx, citizen.ID, docType, name); err != nil {
				observability.Logger().Error("failed to record minor edit",
					zap.String("field", name),
					zap.Error(err))
			}
			observability.SelfServiceEdits.WithLabelValues(string(docType)).Inc()
			observability.ChangeRequestsSubmitted.WithLabelValues(string(classification), route).Inc()
			continue
		}

		req := &models.ChangeRequest{
			ReferenceID:    utils.NewReferenceCode(),
			CitizenID:      citizen.ID,
			DocumentType:   docType,
			Classification: classification,
			FieldToUpdate:  name,
			NewValue:       newValue,
			OldValue:       spec.Get(doc),
			Status:         models.StatusPending,
			Evidence:       in.Evidence,
			SubmittedAt:    now,
		}
		if err := l.store.Ledger.Insert(ctx, req); err != nil {
			return nil, err
		}
		observability.ChangeRequestsSubmitted.WithLabelValues(string(classification), route).Inc()

		resp.Applied = false
		resp.ReferenceIDs = append(resp.ReferenceIDs, req.ReferenceID)
		resp.Requests = append(resp.Requests, *req)
	}

	if resp.Applied {
		resp.Message = "changes applied"
		docs, err := l.store.Documents.ListByCitizen(ctx, citizen.ID)
		if err == nil {
			resp.Documents = docs
		}
	} else {
		resp.Message = "change request submitted for review"
	}
	return resp, nil
}

// Decide applies an admin's verdict to a pending request. The status
// transition is atomic, so of two concurrent reviewers exactly one
// wins and the loser sees ErrAlreadyDecided. If applying an approved
// change fails, the request is reopened and the error surfaces.
func (l *LedgerService) Decide(ctx context.Context, adminID, requestID primitive.ObjectID, outcome, comments string) (*models.ChangeRequest, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "decide_change_request")
	defer span.End()
	utils.AddSpanAttribute(span, "request.outcome", outcome)

	var status models.RequestStatus
	switch outcome {
	case models.OutcomeApproved:
		status = models.StatusApproved
	case models.OutcomeRejected:
		status = models.StatusRejected
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidOutcome, outcome)
	}

	req, err := l.store.Ledger.Transition(ctx, requestID, status, adminID, comments)
	if err != nil {
		return nil, err
	}

	if status == models.StatusApproved {
		if err := l.approval.ApplyRequest(ctx, req); err != nil {
			observability.Logger().Error("failed to apply approved change, reopening request",
				zap.String("reference_id", req.ReferenceID),
				zap.Error(err))
			if reopenErr := l.store.Ledger.Reopen(ctx, requestID); reopenErr != nil {
				observability.Logger().Error("failed to reopen request after apply failure",
					zap.String("reference_id", req.ReferenceID),
					zap.Error(reopenErr))
			}
			utils.RecordErrorInSpan(span, err, nil)
			return nil, err
		}
		if l.quotaResetPolicy == config.QuotaResetOnApproval {
			if err := l.policy.ResetQuota(ctx, req.CitizenID, req.DocumentType, req.FieldToUpdate); err != nil {
				observability.Logger().Warn("failed to reset quota after approval",
					zap.String("reference_id", req.ReferenceID),
					zap.Error(err))
			}
		}
	}

	observability.ChangeRequestsDecided.WithLabelValues(outcome).Inc()
	l.notifyDecision(req)
	return req, nil
}

// notifyDecision emails the citizen about the verdict without blocking
// the admin's response
func (l *LedgerService) notifyDecision(req *models.ChangeRequest) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		citizen, err := l.store.Citizens.GetByID(ctx, req.CitizenID)
		if err != nil || citizen.Email == "" {
			return
		}
		if err := l.mailer.SendDecision(citizen.Email, req); err != nil {
			observability.Logger().Error("failed to send decision email",
				zap.String("reference_id", req.ReferenceID),
				zap.Error(err))
		}
	}()
}

// ListPending returns the review queue enriched with citizen identity
func (l *LedgerService) ListPending(ctx context.Context) ([]models.PendingRequestView, error) {
	reqs, err := l.store.Ledger.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.PendingRequestView, 0, len(reqs))
	citizens := map[primitive.ObjectID]*models.Citizen{}
	for _, req := range reqs {
		view := models.PendingRequestView{ChangeRequest: req}
		citizen, ok := citizens[req.CitizenID]
		if !ok {
			citizen, err = l.store.Citizens.GetByID(ctx, req.CitizenID)
			if err != nil {
				observability.Logger().Warn("pending request references unknown citizen",
					zap.String("reference_id", req.ReferenceID))
				citizen = nil
			}
			citizens[req.CitizenID] = citizen
		}
		if citizen != nil {
			view.CitizenName = citizen.Name
			view.CitizenNationalID = observability.MaskNationalID(citizen.NationalID)
		}
		views = append(views, view)
	}
	return views, nil
}

// GetByReference looks up one request by its citizen-facing code
func (l *LedgerService) GetByReference(ctx context.Context, referenceID string) (*models.ChangeRequest, error) {
	return l.store.Ledger.GetByReference(ctx, referenceID)
}

// ListByCitizen returns the citizen's own submission history
func (l *LedgerService) ListByCitizen(ctx context.Context, citizenID primitive.ObjectID) ([]models.ChangeRequest, error) {
	return l.store.Ledger.ListByCitizen(ctx, citizenID)
}
