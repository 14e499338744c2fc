package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nounsIndexer/internal/model"
)

// Schema creates the mirror tables.
const Schema = `
CREATE TABLE IF NOT EXISTS indexed_events (
	event_name   TEXT   NOT NULL,
	block_number BIGINT NOT NULL,
	log_index    BIGINT NOT NULL,
	tx_hash      TEXT   NOT NULL,
	address      TEXT   NOT NULL,
	payload      JSONB  NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (event_name, block_number, log_index)
);

CREATE TABLE IF NOT EXISTS indexer_state (
	name       TEXT PRIMARY KEY,
	last_block BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store mirrors normalized events into Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the mirror tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Schema)
	return err
}

// MirrorEvents inserts a committed batch. Rows already present are left as is.
func (s *Store) MirrorEvents(ctx context.Context, name string, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	var last uint64
	for _, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal %s record: %w", name, err)
		}
		p := record.Origin()
		batch.Queue(`
			INSERT INTO indexed_events (event_name, block_number, log_index, tx_hash, address, payload)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (event_name, block_number, log_index) DO NOTHING
		`,
			name,
			int64(p.BlockNumber),
			int64(p.LogIndex),
			p.TxHash,
			p.Address,
			payload,
		)
		last = p.BlockNumber
	}
	batch.Queue(`
		INSERT INTO indexer_state (name, last_block, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_block = GREATEST(indexer_state.last_block, EXCLUDED.last_block), updated_at = now()
	`, name, int64(last))

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns the last mirrored block for an event name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var block int64
	row := s.pool.QueryRow(ctx, `SELECT last_block FROM indexer_state WHERE name=$1`, name)
	if err := row.Scan(&block); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(block), true, nil
}
