package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagrik-seva/app-docvault/internal/middleware"
	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/services"
	"github.com/nagrik-seva/app-docvault/internal/store"
	"github.com/nagrik-seva/app-docvault/internal/utils"
)

// AdminHandlers serves the review queue and registration endpoints
type AdminHandlers struct {
	ledger    *services.LedgerService
	documents *services.DocumentService
	citizens  store.CitizenStore
}

// NewAdminHandlers creates admin handlers
func NewAdminHandlers(ledger *services.LedgerService, documents *services.DocumentService, citizens store.CitizenStore) *AdminHandlers {
	return &AdminHandlers{ledger: ledger, documents: documents, citizens: citizens}
}

// ListPending godoc
// @Summary List the review queue
// @Description Returns pending change requests oldest first, with citizen identity attached
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PendingRequestView
// @Failure 401 {object} ErrorResponse
// @Router /admin/change-requests [get]
func (h *AdminHandlers) ListPending(c *gin.Context) {
	views, err := h.ledger.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Decide godoc
// @Summary Decide a change request
// @Description Approves or rejects a pending request. Approval applies the edit and fans shared fields out; concurrent decisions on the same request resolve to exactly one winner.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change request ID"
// @Param request body models.DecideRequest true "Verdict"
// @Success 200 {object} models.ChangeRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/change-requests/{id}/decision [post]
func (h *AdminHandlers) Decide(c *gin.Context) {
	admin := middleware.AdminFromContext(c)

	requestID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request id"})
		return
	}

	var req models.DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "outcome is required"})
		return
	}

	decided, err := h.ledger.Decide(c.Request.Context(), admin.ID, requestID, req.Outcome, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decided)
}

// RegisterCitizen godoc
// @Summary Register a citizen
// @Description Creates a citizen identity record
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Citizen true "Citizen"
// @Success 201 {object} models.Citizen
// @Failure 400 {object} ErrorResponse
// @Router /admin/citizens [post]
func (h *AdminHandlers) RegisterCitizen(c *gin.Context) {
	var citizen models.Citizen
	if err := c.ShouldBindJSON(&citizen); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid citizen payload"})
		return
	}
	if !utils.ValidateNationalID(citizen.NationalID) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "nationalId must be 12 digits"})
		return
	}
	citizen.ID = primitive.NilObjectID

	if err := h.citizens.Insert(c.Request.Context(), &citizen); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, citizen)
}

// RegisterDocument godoc
// @Summary Register a document for a citizen
// @Description Stores a newly issued document record. A citizen can hold at most one document of each type.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Document true "Document"
// @Success 201 {object} models.Document
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/documents [post]
func (h *AdminHandlers) RegisterDocument(c *gin.Context) {
	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid document payload"})
		return
	}
	if _, err := models.ParseDocumentType(string(doc.Type)); err != nil {
		respondError(c, err)
		return
	}
	if doc.CitizenID.IsZero() || doc.Number == "" || doc.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "citizenId, documentType, number and name are required"})
		return
	}
	if _, err := h.citizens.GetByID(c.Request.Context(), doc.CitizenID); err != nil {
		respondError(c, err)
		return
	}
	doc.ID = primitive.NilObjectID

	if err := h.documents.Register(c.Request.Context(), &doc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// GetCitizenDocuments godoc
// @Summary List a citizen's documents
// @Description Returns every document one citizen holds, keyed by type
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Citizen ID"
// @Success 200 {object} models.DocumentsResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/citizens/{id}/documents [get]
func (h *AdminHandlers) GetCitizenDocuments(c *gin.Context) {
	citizenID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid citizen id"})
		return
	}

	resp, err := h.documents.GetPortfolio(c.Request.Context(), citizenID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCitizenRequests godoc
// @Summary List a citizen's change requests
// @Description Returns the full submission history for one citizen
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Citizen ID"
// @Success 200 {array} models.ChangeRequest
// @Failure 404 {object} ErrorResponse
// @Router /admin/citizens/{id}/change-requests [get]
func (h *AdminHandlers) GetCitizenRequests(c *gin.Context) {
	citizenID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid citizen id"})
		return
	}
	if _, err := h.citizens.GetByID(c.Request.Context(), citizenID); err != nil {
		respondError(c, err)
		return
	}

	reqs, err := h.ledger.ListByCitizen(c.Request.Context(), citizenID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}
