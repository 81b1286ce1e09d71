package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/store"
)

func TestClassify(t *testing.T) {
	policy := NewPolicyService(store.NewMemoryStore().Tracker, 2)

	tests := []struct {
		name    string
		docType models.DocumentType
		fields  []string
		want    models.Classification
		wantErr error
	}{
		{
			name:    "single contact field is minor",
			docType: models.DocumentTypeAadhaar,
			fields:  []string{"address"},
			want:    models.ClassificationMinor,
		},
		{
			name:    "two contact fields are minor",
			docType: models.DocumentTypeAadhaar,
			fields:  []string{"address", "phone"},
			want:    models.ClassificationMinor,
		},
		{
			name:    "three fields exceed the minor cap",
			docType: models.DocumentTypeAadhaar,
			fields:  []string{"address", "phone", "email"},
			want:    models.ClassificationMajor,
		},
		{
			name:    "name is always major",
			docType: models.DocumentTypeVoterID,
			fields:  []string{"name"},
			want:    models.ClassificationMajor,
		},
		{
			name:    "date of birth is always major",
			docType: models.DocumentTypePAN,
			fields:  []string{"dateOfBirth"},
			want:    models.ClassificationMajor,
		},
		{
			name:    "document number is always major",
			docType: models.DocumentTypeDrivingLicense,
			fields:  []string{"licenseNumber"},
			want:    models.ClassificationMajor,
		},
		{
			name:    "one sensitive field taints the batch",
			docType: models.DocumentTypeAadhaar,
			fields:  []string{"address", "fatherName"},
			want:    models.ClassificationMajor,
		},
		{
			name:    "family members on ration card is minor",
			docType: models.DocumentTypeRationCard,
			fields:  []string{"familyMembers"},
			want:    models.ClassificationMinor,
		},
		{
			name:    "unknown field rejected",
			docType: models.DocumentTypePAN,
			fields:  []string{"phone"},
			wantErr: models.ErrInvalidField,
		},
		{
			name:    "duplicate field rejected",
			docType: models.DocumentTypeAadhaar,
			fields:  []string{"address", "address"},
			wantErr: models.ErrInvalidField,
		},
		{
			name:    "empty batch rejected",
			docType: models.DocumentTypeAadhaar,
			fields:  nil,
			wantErr: models.ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Classify(tt.docType, tt.fields)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyBatchCapIndependentOfQuota(t *testing.T) {
	// A generous quota must not loosen the field-count rule
	policy := NewPolicyService(store.NewMemoryStore().Tracker, 10)

	got, err := policy.Classify(models.DocumentTypeAadhaar, []string{"address", "phone", "email"})
	require.NoError(t, err)
	assert.Equal(t, models.ClassificationMajor, got)

	got, err = policy.Classify(models.DocumentTypeAadhaar, []string{"address", "phone"})
	require.NoError(t, err)
	assert.Equal(t, models.ClassificationMinor, got)
}

type failingTracker struct{}

func (failingTracker) Count(context.Context, primitive.ObjectID, models.DocumentType, string) (int64, error) {
	return 0, errors.New("storage unavailable")
}
func (failingTracker) Increment(context.Context, primitive.ObjectID, models.DocumentType, string) error {
	return errors.New("storage unavailable")
}
func (failingTracker) Reset(context.Context, primitive.ObjectID, models.DocumentType, string) error {
	return errors.New("storage unavailable")
}

func TestAuthorizeMinorEdit(t *testing.T) {
	ctx := context.Background()
	citizenID := primitive.NewObjectID()

	t.Run("quota counts down then closes", func(t *testing.T) {
		tracker := store.NewMemoryStore().Tracker
		policy := NewPolicyService(tracker, 2)

		require.NoError(t, policy.AuthorizeMinorEdit(ctx, citizenID, models.DocumentTypeAadhaar, "address"))
		require.NoError(t, policy.RecordMinorEdit(ctx, citizenID, models.DocumentTypeAadhaar, "address"))

		require.NoError(t, policy.AuthorizeMinorEdit(ctx, citizenID, models.DocumentTypeAadhaar, "address"))
		require.NoError(t, policy.RecordMinorEdit(ctx, citizenID, models.DocumentTypeAadhaar, "address"))

		err := policy.AuthorizeMinorEdit(ctx, citizenID, models.DocumentTypeAadhaar, "address")
		assert.ErrorIs(t, err, models.ErrQuotaExceeded)

		// Other fields and types keep their own budget
		assert.NoError(t, policy.AuthorizeMinorEdit(ctx, citizenID, models.DocumentTypeAadhaar, "phone"))
		assert.NoError(t, policy.AuthorizeMinorEdit(ctx, citizenID, models.DocumentTypeVoterID, "address"))
	})

	t.Run("storage errors fail closed", func(t *testing.T) {
		policy := NewPolicyService(failingTracker{}, 2)
		err := policy.AuthorizeMinorEdit(ctx, citizenID, models.DocumentTypeAadhaar, "address")
		assert.ErrorIs(t, err, models.ErrQuotaExceeded)
	})

	t.Run("reset reopens the budget", func(t *testing.T) {
		tracker := store.NewMemoryStore().Tracker
		policy := NewPolicyService(tracker, 1)

		require.NoError(t, policy.RecordMinorEdit(ctx, citizenID, models.DocumentTypeRationCard, "familyMembers"))
		assert.ErrorIs(t, policy.AuthorizeMinorEdit(ctx, citizenID, models.DocumentTypeRationCard, "familyMembers"), models.ErrQuotaExceeded)

		require.NoError(t, policy.ResetQuota(ctx, citizenID, models.DocumentTypeRationCard, "familyMembers"))
		assert.NoError(t, policy.AuthorizeMinorEdit(ctx, citizenID, models.DocumentTypeRationCard, "familyMembers"))
	})
}
