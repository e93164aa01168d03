package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMessageStore is the durable session.MessageStore backing,
// replacing the teacher's lib/pq tables with pgx's pooled connections and
// context-first query methods.
type PostgresMessageStore struct {
	pool *pgxpool.Pool
}

// NewPostgresMessageStore wraps an already-connected pool. Callers run the
// migrate command first to create the fix_messages table.
func NewPostgresMessageStore(pool *pgxpool.Pool) *PostgresMessageStore {
	return &PostgresMessageStore{pool: pool}
}

// Save persists one raw message keyed by session and sequence number,
// overwriting a previous save at the same (sessionID, seqNum) so resent
// messages never duplicate a row.
func (s *PostgresMessageStore) Save(ctx context.Context, sessionID string, seqNum int, raw []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO fix_messages (session_id, seq_num, raw_message)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, seq_num) DO UPDATE SET raw_message = EXCLUDED.raw_message
	`, sessionID, seqNum, raw)
	if err != nil {
		return fmt.Errorf("store: save message %s/%d: %w", sessionID, seqNum, err)
	}
	return nil
}

// Range returns every stored message for sessionID with seqNum in
// [beginSeqNo, endSeqNo], ordered for replay.
func (s *PostgresMessageStore) Range(ctx context.Context, sessionID string, beginSeqNo, endSeqNo int) ([][]byte, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT raw_message FROM fix_messages
		WHERE session_id = $1 AND seq_num BETWEEN $2 AND $3
		ORDER BY seq_num ASC
	`, sessionID, beginSeqNo, endSeqNo)
	if err != nil {
		return nil, fmt.Errorf("store: range messages %s [%d,%d]: %w", sessionID, beginSeqNo, endSeqNo, err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("store: scan message %s: %w", sessionID, err)
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate messages %s: %w", sessionID, err)
	}
	return out, nil
}

// PostgresSequenceStore is the durable session.SequenceStore backing,
// sharing its pool with a PostgresMessageStore over the same database.
type PostgresSequenceStore struct {
	pool *pgxpool.Pool
}

// NewPostgresSequenceStore wraps an already-connected pool. Callers run
// the migrate command first to create the fix_sequences table.
func NewPostgresSequenceStore(pool *pgxpool.Pool) *PostgresSequenceStore {
	return &PostgresSequenceStore{pool: pool}
}

// Load returns the persisted in/out sequence counters for sessionID,
// defaulting to FIX's initial sequence number 1 when the session has
// never been saved before.
func (s *PostgresSequenceStore) Load(ctx context.Context, sessionID string) (int, int, error) {
	var inSeqNum, outSeqNum int
	err := s.pool.QueryRow(ctx, `
		SELECT in_seq_num, out_seq_num FROM fix_sequences WHERE session_id = $1
	`, sessionID).Scan(&inSeqNum, &outSeqNum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 1, 1, nil
		}
		return 0, 0, fmt.Errorf("store: load sequence %s: %w", sessionID, err)
	}
	return inSeqNum, outSeqNum, nil
}

// Save upserts the in/out sequence counters for sessionID.
func (s *PostgresSequenceStore) Save(ctx context.Context, sessionID string, inSeqNum, outSeqNum int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO fix_sequences (session_id, in_seq_num, out_seq_num)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET in_seq_num = EXCLUDED.in_seq_num, out_seq_num = EXCLUDED.out_seq_num
	`, sessionID, inSeqNum, outSeqNum)
	if err != nil {
		return fmt.Errorf("store: save sequence %s: %w", sessionID, err)
	}
	return nil
}
