package models

// SendOTPRequest starts a citizen login
type SendOTPRequest struct {
	NationalID string `json:"nationalId" binding:"required"`
}

// SendOTPResponse acknowledges OTP delivery with a masked email
type SendOTPResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// VerifyOTPRequest completes a citizen login
type VerifyOTPRequest struct {
	NationalID string `json:"nationalId" binding:"required"`
	OTP        string `json:"otp" binding:"required"`
}

// AdminLoginRequest authenticates an administrator
type AdminLoginRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse carries the session token plus the authenticated identity
type LoginResponse struct {
	Token   string   `json:"token"`
	Citizen *Citizen `json:"citizen,omitempty"`
	Admin   *Admin   `json:"admin,omitempty"`
}

// SubmitChangeRequest proposes one or more field edits to a document.
// Either FieldToUpdate/NewValue or Fields must be set. Classification
// is a hint only; the server recomputes it.
type SubmitChangeRequest struct {
	DocumentType   string            `json:"documentType" binding:"required"`
	FieldToUpdate  string            `json:"fieldToUpdate,omitempty"`
	NewValue       string            `json:"newValue,omitempty"`
	Fields         map[string]string `json:"fields,omitempty"`
	Classification string            `json:"classification,omitempty"`
	Evidence       []string          `json:"evidence,omitempty"`
}

// SubmitChangeResponse reports the outcome per submitted field.
// Applied is true only when every field was applied immediately.
type SubmitChangeResponse struct {
	Applied      bool            `json:"applied"`
	Message      string          `json:"message"`
	Documents    []Document      `json:"documents,omitempty"`
	ReferenceIDs []string        `json:"referenceIds,omitempty"`
	Requests     []ChangeRequest `json:"requests,omitempty"`
}

// DecideRequest carries the admin's review decision
type DecideRequest struct {
	Outcome  string `json:"outcome" binding:"required"`
	Comments string `json:"comments"`
}

// DocumentsResponse bundles every document a citizen owns
type DocumentsResponse struct {
	Citizen   *Citizen                   `json:"citizen,omitempty"`
	Documents map[DocumentType]*Document `json:"documents"`
}

// PendingRequestView enriches a ledger entry with citizen identity for
// the admin review queue
type PendingRequestView struct {
	ChangeRequest
	CitizenName       string `json:"citizenName"`
	CitizenNationalID string `json:"citizenNationalId"`
}
