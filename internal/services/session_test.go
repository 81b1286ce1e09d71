package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionService(NewMemoryCache(), time.Hour)
	subjectID := primitive.NewObjectID()

	token, err := sessions.Create(ctx, PrincipalCitizen, subjectID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := sessions.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, PrincipalCitizen, resolved.Kind)
	assert.Equal(t, subjectID, resolved.SubjectID)

	t.Run("tokens are unique", func(t *testing.T) {
		other, err := sessions.Create(ctx, PrincipalAdmin, primitive.NewObjectID())
		require.NoError(t, err)
		assert.NotEqual(t, token, other)
	})

	t.Run("destroy revokes", func(t *testing.T) {
		require.NoError(t, sessions.Destroy(ctx, token))
		_, err := sessions.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := sessions.Resolve(ctx, "nope")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionService(NewMemoryCache(), 10*time.Millisecond)

	token, err := sessions.Create(ctx, PrincipalAdmin, primitive.NewObjectID())
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = sessions.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
