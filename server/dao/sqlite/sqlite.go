// Package sqlite provides a dao.Store backed by a single SQLite file, using
// modernc.org/sqlite's pure-Go driver.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/rezi"
	"github.com/wespiper/ufr-ds/server/dao"
	"github.com/wespiper/ufr-ds/server/serr"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string
	db         *sql.DB
	runs       *runsRepository
}

// NewDatastore opens (creating if necessary) a SQLite database file named
// "runs.db" inside storageDir.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{dbFilename: "runs.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.runs = &runsRepository{db: st.db}
	if err := st.runs.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Runs() dao.RunRepository {
	return s.runs
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

// convertToDB_StringSlice JSON-encodes a []string for storage, per the
// teacher's convention of marshaling structured values to a text column
// rather than normalizing into extra tables.
func convertToDB_StringSlice(s []string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func convertFromDB_StringSlice(s string) ([]string, error) {
	var out []string
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// convertToDB_EntropyTrajectory REZI-encodes the entropy trajectory to a
// binary blob, then base64-safe-encodes it into a text column.
func convertToDB_EntropyTrajectory(traj []float64) []byte {
	return rezi.EncBinary(traj)
}

func convertFromDB_EntropyTrajectory(data []byte) ([]float64, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var traj []float64
	n, err := rezi.DecBinary(data, &traj)
	if err != nil {
		return nil, serr.New("decode entropy trajectory", err)
	}
	if n != len(data) {
		return nil, serr.New(fmt.Sprintf("REZI decoded byte count mismatch; only consumed %d/%d bytes", n, len(data)))
	}
	return traj, nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return serr.New("constraint violation", dao.ErrConstraintViolation)
		}
		return serr.New(sqlite.ErrorCodeString[sqliteErr.Code()], serr.ErrDB)
	} else if errors.Is(err, sql.ErrNoRows) {
		return serr.New("not found", dao.ErrNotFound)
	}
	return serr.WrapDB("unexpected DB error", err)
}
