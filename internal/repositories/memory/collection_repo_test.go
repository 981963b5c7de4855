package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCollectionRepo_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewCollectionRepo[models.Badge]()

	first := &models.Badge{Title: "first"}
	second := &models.Badge{Title: "second"}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))
	assert.False(t, first.ID.IsZero())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)

	// callers get copies
	list[0].Title = "mutated"
	got, err := repo.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)

	got.Title = "renamed"
	require.NoError(t, repo.Replace(ctx, got))
	got, err = repo.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), utils.ErrNotFound)
	_, err = repo.Get(ctx, first.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.ErrorIs(t, repo.Replace(ctx, &models.Badge{Meta: models.Meta{ID: primitive.NewObjectID()}}), utils.ErrNotFound)
}

func TestCollectionRepo_EmptyListIsNotNil(t *testing.T) {
	list, err := NewCollectionRepo[models.Internship]().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCollectionRepo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollectionRepo[models.Badge]().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo()

	require.NoError(t, repo.Create(ctx, &models.User{Email: " Admin@Example.com "}))
	assert.True(t, utils.IsCode(repo.Create(ctx, &models.User{Email: "admin@example.com"}), utils.CodeConflict))

	u, err := repo.GetByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = repo.GetByEmail(ctx, "other@example.com")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
