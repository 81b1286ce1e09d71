package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nagrik-seva/app-docvault/internal/middleware"
	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/services"
)

// CitizenHandlers serves the citizen-facing document and
// change-request endpoints
type CitizenHandlers struct {
	documents *services.DocumentService
	ledger    *services.LedgerService
}

// NewCitizenHandlers creates citizen handlers
func NewCitizenHandlers(documents *services.DocumentService, ledger *services.LedgerService) *CitizenHandlers {
	return &CitizenHandlers{documents: documents, ledger: ledger}
}

// GetDocuments godoc
// @Summary List my documents
// @Description Returns every document the authenticated citizen holds, keyed by type
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DocumentsResponse
// @Failure 401 {object} ErrorResponse
// @Router /citizen/documents [get]
func (h *CitizenHandlers) GetDocuments(c *gin.Context) {
	citizen := middleware.CitizenFromContext(c)

	resp, err := h.documents.GetPortfolio(c.Request.Context(), citizen.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetDocument godoc
// @Summary Get one of my documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param type path string true "Document type" Enums(aadhaar, pan, voterId, drivingLicense, rationCard)
// @Success 200 {object} models.Document
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /citizen/documents/{type} [get]
func (h *CitizenHandlers) GetDocument(c *gin.Context) {
	citizen := middleware.CitizenFromContext(c)

	docType, err := models.ParseDocumentType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	doc, err := h.documents.GetDocument(c.Request.Context(), citizen.ID, docType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// SubmitChange godoc
// @Summary Submit a change request
// @Description Proposes field edits to one of my documents. Minor edits within quota apply immediately; everything else goes to review.
// @Tags change-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SubmitChangeRequest true "Proposed edits"
// @Success 200 {object} models.SubmitChangeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /citizen/change-requests [post]
func (h *CitizenHandlers) SubmitChange(c *gin.Context) {
	citizen := middleware.CitizenFromContext(c)

	var req models.SubmitChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "documentType is required"})
		return
	}

	resp, err := h.ledger.Submit(c.Request.Context(), citizen, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMyRequests godoc
// @Summary List my change requests
// @Description Returns the citizen's submission history in submission order
// @Tags change-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ChangeRequest
// @Failure 401 {object} ErrorResponse
// @Router /citizen/change-requests [get]
func (h *CitizenHandlers) ListMyRequests(c *gin.Context) {
	citizen := middleware.CitizenFromContext(c)

	reqs, err := h.ledger.ListByCitizen(c.Request.Context(), citizen.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// GetMyRequest godoc
// @Summary Track one change request
// @Description Looks up a change request by its reference code. Citizens can only see their own requests.
// @Tags change-requests
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Reference code"
// @Success 200 {object} models.ChangeRequest
// @Failure 404 {object} ErrorResponse
// @Router /citizen/change-requests/{reference} [get]
func (h *CitizenHandlers) GetMyRequest(c *gin.Context) {
	citizen := middleware.CitizenFromContext(c)

	req, err := h.ledger.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	if req.CitizenID != citizen.ID {
		// Do not reveal that the reference exists at all
		respondError(c, models.ErrRequestNotFound)
		return
	}
	c.JSON(http.StatusOK, req)
}
