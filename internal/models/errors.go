package models

import "errors"

// Error constants for the change-request workflow
var (
	ErrCitizenNotFound     = errors.New("citizen not found")
	ErrAdminNotFound       = errors.New("administrator not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrRequestNotFound     = errors.New("change request not found")
	ErrAlreadyDecided      = errors.New("change request already decided")
	ErrQuotaExceeded       = errors.New("self-service change quota exceeded")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrInvalidField        = errors.New("invalid field name for document type")
	ErrInvalidFieldValue   = errors.New("invalid value for field")
	ErrDuplicateDocument   = errors.New("citizen already has a document of this type")
	ErrInvalidOutcome      = errors.New("outcome must be approved or rejected")
)
