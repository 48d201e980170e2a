// Package inmem provides an in-memory dao.Store, useful for tests and for
// running the server without persistence across restarts.
package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wespiper/ufr-ds/server/dao"
)

type store struct {
	runs *runsRepository
}

// NewDatastore returns a dao.Store backed entirely by in-process memory.
// Its contents do not survive process restart.
func NewDatastore() dao.Store {
	return &store{runs: newRunsRepository()}
}

func (s *store) Runs() dao.RunRepository {
	return s.runs
}

func (s *store) Close() error {
	return s.runs.Close()
}

type runsRepository struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]dao.Run
}

func newRunsRepository() *runsRepository {
	return &runsRepository{runs: make(map[uuid.UUID]dao.Run)}
}

func (r *runsRepository) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == uuid.Nil {
		newID, err := uuid.NewRandom()
		if err != nil {
			return dao.Run{}, err
		}
		run.ID = newID
	}

	if _, ok := r.runs[run.ID]; ok {
		return dao.Run{}, dao.ErrConstraintViolation
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	r.runs[run.ID] = run
	return run, nil
}

func (r *runsRepository) Get(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return dao.Run{}, dao.ErrNotFound
	}
	return run, nil
}

func (r *runsRepository) Close() error {
	return nil
}
