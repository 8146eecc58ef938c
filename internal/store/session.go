package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Session represents one capture run recorded in the journal.
type Session struct {
	ID         string
	Source     string
	FramesRead int
	StartedAt  time.Time
	EndedAt    *time.Time
}

// SessionRepository provides journal operations for capture sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Begin records the start of a capture session.
func (r *SessionRepository) Begin(id, source string) error {
	_, err := r.db.Exec(
		`INSERT INTO capture_sessions (id, source, frames_read, started_at)
		 VALUES (?, ?, 0, ?)`,
		id, source, time.Now(),
	)
	return err
}

// Finish records the end of a capture session together with its frame count.
func (r *SessionRepository) Finish(id string, framesRead int) error {
	res, err := r.db.Exec(
		`UPDATE capture_sessions SET frames_read = ?, ended_at = ? WHERE id = ?`,
		framesRead, time.Now(), id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}
	var endedAt sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, source, frames_read, started_at, ended_at
		 FROM capture_sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.Source, &sess.FramesRead, &sess.StartedAt, &endedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if endedAt.Valid {
		sess.EndedAt = &endedAt.Time
	}
	return sess, nil
}

// List retrieves all sessions, most recent first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, source, frames_read, started_at, ended_at
		 FROM capture_sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var endedAt sql.NullTime

		if err := rows.Scan(&sess.ID, &sess.Source, &sess.FramesRead, &sess.StartedAt, &endedAt); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			sess.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}
