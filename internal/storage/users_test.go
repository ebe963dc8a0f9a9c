package storage

import (
	"context"
	"testing"

	"github.com/meur/pinboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertUser(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	missing, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	u, err := s.UpsertUser(ctx, "u1", &models.ProfileUpdate{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "AL", u.Initials)

	u2, err := s.UpsertUser(ctx, "u1", &models.ProfileUpdate{FirstName: "Grace", Email: "grace@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", u2.FirstName)
	assert.Equal(t, "", u2.LastName)
	assert.Equal(t, "--", u2.Initials)
	assert.Equal(t, u.CreatedAt.Unix(), u2.CreatedAt.Unix())
}
