package models

import (
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagrik-seva/app-docvault/internal/utils"
)

// DocumentType identifies one of the five document record variants
type DocumentType string

const (
	DocumentTypeAadhaar        DocumentType = "aadhaar"
	DocumentTypePAN            DocumentType = "pan"
	DocumentTypeVoterID        DocumentType = "voterId"
	DocumentTypeDrivingLicense DocumentType = "drivingLicense"
	DocumentTypeRationCard     DocumentType = "rationCard"
)

// Ration card categories
const (
	RationCategoryAPL = "APL"
	RationCategoryBPL = "BPL"
	RationCategoryAAY = "AAY"
)

// AllDocumentTypes returns every document type in a stable order
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeAadhaar,
		DocumentTypePAN,
		DocumentTypeVoterID,
		DocumentTypeDrivingLicense,
		DocumentTypeRationCard,
	}
}

// ParseDocumentType validates a document type string
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	for _, known := range AllDocumentTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDocumentType, s)
}

// Document holds one document record owned by a citizen. All five
// variants share this struct; the per-type field registry below decides
// which fields a given variant actually carries.
type Document struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CitizenID     primitive.ObjectID `bson:"citizen_id" json:"citizenId"`
	Type          DocumentType       `bson:"document_type" json:"documentType"`
	Number        string             `bson:"number" json:"number"`
	Name          string             `bson:"name" json:"name"`
	FatherName    string             `bson:"father_name,omitempty" json:"fatherName,omitempty"`
	DateOfBirth   string             `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	Gender        string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Constituency  string             `bson:"constituency,omitempty" json:"constituency,omitempty"`
	VehicleClass  string             `bson:"vehicle_class,omitempty" json:"vehicleClass,omitempty"`
	IssueDate     string             `bson:"issue_date,omitempty" json:"issueDate,omitempty"`
	ExpiryDate    string             `bson:"expiry_date,omitempty" json:"expiryDate,omitempty"`
	FamilyMembers int32              `bson:"family_members,omitempty" json:"familyMembers,omitempty"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	LastUpdated   time.Time          `bson:"last_updated" json:"lastUpdated"`
}

// FieldSpec is the typed accessor for one editable field of a document
// variant. Unknown field names never reach storage: the registry lookup
// fails first with ErrInvalidField.
type FieldSpec struct {
	Name      string
	BSONKey   string
	Shared    bool
	Sensitive bool
	Get       func(*Document) string
	Set       func(*Document, string) error
	// Value converts the submitted string into the typed value written
	// to storage ($set), so numeric fields stay numeric in the database.
	Value func(string) (interface{}, error)
}

func stringField(name, bsonKey string, ptr func(*Document) *string) FieldSpec {
	return FieldSpec{
		Name:    name,
		BSONKey: bsonKey,
		Get:     func(d *Document) string { return *ptr(d) },
		Set: func(d *Document, v string) error {
			*ptr(d) = v
			return nil
		},
		Value: func(v string) (interface{}, error) { return v, nil },
	}
}

func shared(f FieldSpec) FieldSpec {
	f.Shared = true
	return f
}

func sensitive(f FieldSpec) FieldSpec {
	f.Sensitive = true
	return f
}

func numberField(name string) FieldSpec {
	return sensitive(stringField(name, "number", func(d *Document) *string { return &d.Number }))
}

func familyMembersField() FieldSpec {
	return FieldSpec{
		Name:    "familyMembers",
		BSONKey: "family_members",
		Get:     func(d *Document) string { return strconv.Itoa(int(d.FamilyMembers)) },
		Set: func(d *Document, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("%w: familyMembers must be a non-negative integer", ErrInvalidFieldValue)
			}
			d.FamilyMembers = int32(n)
			return nil
		},
		Value: func(v string) (interface{}, error) {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: familyMembers must be a non-negative integer", ErrInvalidFieldValue)
			}
			return int32(n), nil
		},
	}
}

func categoryField() FieldSpec {
	f := stringField("category", "category", func(d *Document) *string { return &d.Category })
	set := f.Set
	f.Set = func(d *Document, v string) error {
		if v != RationCategoryAPL && v != RationCategoryBPL && v != RationCategoryAAY {
			return fmt.Errorf("%w: category must be APL, BPL or AAY", ErrInvalidFieldValue)
		}
		return set(d, v)
	}
	f.Value = func(v string) (interface{}, error) {
		if v != RationCategoryAPL && v != RationCategoryBPL && v != RationCategoryAAY {
			return nil, fmt.Errorf("%w: category must be APL, BPL or AAY", ErrInvalidFieldValue)
		}
		return v, nil
	}
	return f
}

func nameField() FieldSpec {
	return sensitive(shared(stringField("name", "name", func(d *Document) *string { return &d.Name })))
}

func fatherNameField() FieldSpec {
	return sensitive(stringField("fatherName", "father_name", func(d *Document) *string { return &d.FatherName }))
}

func dateOfBirthField() FieldSpec {
	return sensitive(stringField("dateOfBirth", "date_of_birth", func(d *Document) *string { return &d.DateOfBirth }))
}

func addressField() FieldSpec {
	return shared(stringField("address", "address", func(d *Document) *string { return &d.Address }))
}

func phoneField() FieldSpec {
	f := shared(stringField("phone", "phone", func(d *Document) *string { return &d.Phone }))
	f.Set = func(d *Document, v string) error {
		normalized, err := utils.ValidatePhoneValue(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFieldValue, err)
		}
		d.Phone = normalized
		return nil
	}
	// Stored numbers are normalized to E.164
	f.Value = func(v string) (interface{}, error) {
		normalized, err := utils.ValidatePhoneValue(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFieldValue, err)
		}
		return normalized, nil
	}
	return f
}

func emailField() FieldSpec {
	return shared(stringField("email", "email", func(d *Document) *string { return &d.Email }))
}

func genderField() FieldSpec {
	return stringField("gender", "gender", func(d *Document) *string { return &d.Gender })
}

func issueDateField() FieldSpec {
	return stringField("issueDate", "issue_date", func(d *Document) *string { return &d.IssueDate })
}

// documentFields maps each document type to its editable fields. The
// per-type number fields keep their historical names (aadhaarNumber,
// panNumber, ...) so reference codes and audit entries stay readable.
var documentFields = map[DocumentType]map[string]FieldSpec{}

func init() {
	register := func(t DocumentType, specs ...FieldSpec) {
		m := make(map[string]FieldSpec, len(specs))
		for _, f := range specs {
			m[f.Name] = f
		}
		documentFields[t] = m
	}

	register(DocumentTypeAadhaar,
		numberField("aadhaarNumber"),
		nameField(), fatherNameField(), dateOfBirthField(),
		genderField(), addressField(), phoneField(), emailField(),
		issueDateField(),
	)
	register(DocumentTypePAN,
		numberField("panNumber"),
		nameField(), fatherNameField(), dateOfBirthField(),
		addressField(), issueDateField(),
	)
	register(DocumentTypeVoterID,
		numberField("voterIdNumber"),
		nameField(), fatherNameField(), dateOfBirthField(),
		genderField(), addressField(),
		stringField("constituency", "constituency", func(d *Document) *string { return &d.Constituency }),
		issueDateField(),
	)
	register(DocumentTypeDrivingLicense,
		numberField("licenseNumber"),
		nameField(), fatherNameField(), dateOfBirthField(),
		addressField(),
		stringField("vehicleClass", "vehicle_class", func(d *Document) *string { return &d.VehicleClass }),
		issueDateField(),
		stringField("expiryDate", "expiry_date", func(d *Document) *string { return &d.ExpiryDate }),
	)
	register(DocumentTypeRationCard,
		numberField("rationCardNumber"),
		nameField(), familyMembersField(), categoryField(),
		addressField(), issueDateField(),
	)
}

// LookupField resolves a field name for a document type, rejecting
// unknown names before they reach the policy engine or storage.
func LookupField(t DocumentType, field string) (FieldSpec, error) {
	fields, ok := documentFields[t]
	if !ok {
		return FieldSpec{}, fmt.Errorf("%w: %q", ErrInvalidDocumentType, t)
	}
	spec, ok := fields[field]
	if !ok {
		return FieldSpec{}, fmt.Errorf("%w: %q on %s", ErrInvalidField, field, t)
	}
	return spec, nil
}

// HasField reports whether the document type carries the given field.
// Fan-out uses this to skip variants that do not store a shared field.
func HasField(t DocumentType, field string) bool {
	_, err := LookupField(t, field)
	return err == nil
}
