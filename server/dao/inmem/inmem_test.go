package inmem

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wespiper/ufr-ds/server/dao"
)

func Test_Create_AssignsIDAndCreatedAt(t *testing.T) {
	store := NewDatastore()
	defer store.Close()

	run, err := store.Runs().Create(context.Background(), dao.Run{Tokens: []string{"a", "b"}})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
}

func Test_Create_RejectsDuplicateID(t *testing.T) {
	store := NewDatastore()
	defer store.Close()

	id := uuid.New()
	_, err := store.Runs().Create(context.Background(), dao.Run{ID: id})
	assert.NoError(t, err)

	_, err = store.Runs().Create(context.Background(), dao.Run{ID: id})
	assert.ErrorIs(t, err, dao.ErrConstraintViolation)
}

func Test_Get_ReturnsCreatedRun(t *testing.T) {
	store := NewDatastore()
	defer store.Close()

	created, err := store.Runs().Create(context.Background(), dao.Run{Tokens: []string{"x"}})
	assert.NoError(t, err)

	fetched, err := store.Runs().Get(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func Test_Get_ReturnsErrNotFoundForUnknownID(t *testing.T) {
	store := NewDatastore()
	defer store.Close()

	_, err := store.Runs().Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dao.ErrNotFound)
}
