package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wespiper/ufr-ds/internal/induce"
	"github.com/wespiper/ufr-ds/server/dao"
)

func Test_CreateAndGet_RoundTrip(t *testing.T) {
	st, err := NewDatastore(t.TempDir())
	assert.NoError(t, err)
	defer st.Close()

	cfg := induce.DefaultEngineConfig()
	cfg.Emergence = true
	res := induce.Result{
		Compressed: []string{"R1"},
		Rules:      map[string][]string{"R1": {"a", "b"}},
		Entropies:  []float64{0, 0.5, 1.0},
	}

	created, err := st.Runs().Create(context.Background(), dao.Run{
		Tokens: []string{"a", "b"},
		Config: cfg,
		Result: res,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	fetched, err := st.Runs().Get(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.Tokens, fetched.Tokens)
	assert.Equal(t, res.Rules, fetched.Result.Rules)
	assert.Equal(t, res.Entropies, fetched.Result.Entropies)
}

func Test_Get_ReturnsErrNotFoundForUnknownID(t *testing.T) {
	st, err := NewDatastore(t.TempDir())
	assert.NoError(t, err)
	defer st.Close()

	_, err = st.Runs().Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dao.ErrNotFound)
}
