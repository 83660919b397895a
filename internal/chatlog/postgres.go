package chatlog

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresSink appends transcript rows to the chat_transcripts table.
type PostgresSink struct {
	db *sql.DB
}

// NewPostgresSink creates a Postgres transcript sink.
func NewPostgresSink(db *sql.DB) *PostgresSink {
	if db == nil {
		return nil
	}
	return &PostgresSink{db: db}
}

// EnsureSchema creates the transcript table if it does not exist. Called once
// at startup.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS chat_transcripts (
	id          UUID PRIMARY KEY,
	recorded_at TIMESTAMPTZ NOT NULL,
	session_id  TEXT NOT NULL,
	sender      TEXT NOT NULL,
	message     TEXT NOT NULL,
	heat_score  INT NOT NULL DEFAULT 0,
	intent      TEXT NOT NULL DEFAULT '',
	industry    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_chat_transcripts_session ON chat_transcripts (session_id, recorded_at);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("chatlog: ensure schema: %w", err)
	}
	return nil
}

// Append inserts one transcript row.
func (s *PostgresSink) Append(ctx context.Context, e Entry) error {
	const q = `
INSERT INTO chat_transcripts (id, recorded_at, session_id, sender, message, heat_score, intent, industry)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, q,
		e.ID, e.Timestamp, e.SessionID, e.Sender, e.Message, e.HeatScore, e.Intent, e.Industry)
	if err != nil {
		return fmt.Errorf("chatlog: insert transcript row: %w", err)
	}
	return nil
}
