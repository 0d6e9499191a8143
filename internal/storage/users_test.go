package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwallet/smartwallet/internal/common"
)

func TestCreateUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.CreateUser(ctx, testUser, "some-hash")
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	require.NoError(t, store.CreateUser(ctx, "bob", "bob-hash"))

	hash, err := store.UserPasswordHash(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob-hash", hash)
}

func TestUserPasswordHashUnknownUser(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UserPasswordHash(context.Background(), "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
