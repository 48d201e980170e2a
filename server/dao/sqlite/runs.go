package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/wespiper/ufr-ds/internal/induce"
	"github.com/wespiper/ufr-ds/server/dao"
)

type runsRepository struct {
	db *sql.DB
}

func (repo *runsRepository) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT NOT NULL PRIMARY KEY,
		created_at INTEGER NOT NULL,
		tokens TEXT NOT NULL,
		config TEXT NOT NULL,
		result TEXT NOT NULL,
		entropy_trajectory BLOB
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *runsRepository) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	if run.ID == uuid.Nil {
		newID, err := uuid.NewRandom()
		if err != nil {
			return dao.Run{}, err
		}
		run.ID = newID
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = timeNow()
	}

	tokensJSON, err := convertToDB_StringSlice(run.Tokens)
	if err != nil {
		return dao.Run{}, err
	}
	configJSON, err := json.Marshal(run.Config)
	if err != nil {
		return dao.Run{}, err
	}
	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return dao.Run{}, err
	}
	trajBlob := convertToDB_EntropyTrajectory(run.Result.Entropies)

	stmt, err := repo.db.Prepare(`INSERT INTO runs (id, created_at, tokens, config, result, entropy_trajectory) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Run{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, run.ID.String(), run.CreatedAt.Unix(), tokensJSON, string(configJSON), string(resultJSON), trajBlob)
	if err != nil {
		return dao.Run{}, wrapDBError(err)
	}

	return repo.Get(ctx, run.ID)
}

func (repo *runsRepository) Get(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, created_at, tokens, config, result, entropy_trajectory FROM runs WHERE id = ?`, id.String())

	var idStr string
	var createdAt int64
	var tokensJSON, configJSON, resultJSON string
	var trajBlob []byte

	err := row.Scan(&idStr, &createdAt, &tokensJSON, &configJSON, &resultJSON, &trajBlob)
	if err != nil {
		return dao.Run{}, wrapDBError(err)
	}

	parsedID, err := uuid.Parse(idStr)
	if err != nil {
		return dao.Run{}, err
	}

	tokens, err := convertFromDB_StringSlice(tokensJSON)
	if err != nil {
		return dao.Run{}, err
	}

	var cfg induce.EngineConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return dao.Run{}, err
	}

	var res induce.Result
	if err := json.Unmarshal([]byte(resultJSON), &res); err != nil {
		return dao.Run{}, err
	}

	traj, err := convertFromDB_EntropyTrajectory(trajBlob)
	if err != nil {
		return dao.Run{}, err
	}
	if len(traj) > 0 {
		res.Entropies = traj
	}

	return dao.Run{
		ID:        parsedID,
		CreatedAt: unixToTime(createdAt),
		Tokens:    tokens,
		Config:    cfg,
		Result:    res,
	}, nil
}

func (repo *runsRepository) Close() error {
	return nil
}
