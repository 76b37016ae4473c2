// Package sqlite provides the recitation history store backed by an embedded
// SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

// Store persists scored recitations.
type Store struct {
	db *sql.DB
}

// Open creates the database file (and parent directory) when missing and
// applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS recitations (
    id TEXT PRIMARY KEY,
    learner_id TEXT NOT NULL,
    ayah_id TEXT,
    expected_text TEXT,
    status TEXT NOT NULL,
    feedback BLOB,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recitations_learner_created ON recitations(learner_id, created_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a scored recitation. The feedback is stored as a JSON blob;
// it is written once and never updated in place.
func (s *Store) Save(ctx context.Context, recitation *domain.Recitation) error {
	var feedback []byte
	if recitation.Feedback != nil {
		var err error
		feedback, err = json.Marshal(recitation.Feedback)
		if err != nil {
			return fmt.Errorf("marshal feedback: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO recitations (id, learner_id, ayah_id, expected_text, status, feedback, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		recitation.ID,
		recitation.LearnerID,
		recitation.AyahID,
		recitation.ExpectedText,
		string(recitation.Status),
		feedback,
		recitation.CreatedAt.UTC(),
		recitation.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert recitation: %w", err)
	}
	return nil
}

// Get retrieves a recitation by ID, scoped to the learner that owns it.
func (s *Store) Get(ctx context.Context, learnerID, recitationID string) (*domain.Recitation, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, learner_id, ayah_id, expected_text, status, feedback, created_at, updated_at
FROM recitations WHERE id = ? AND learner_id = ?`, recitationID, learnerID)

	recitation, err := scanRecitation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query recitation: %w", err)
	}
	return recitation, nil
}

// List returns the learner's most recent recitations, newest first.
func (s *Store) List(ctx context.Context, learnerID string, limit int) ([]*domain.Recitation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, learner_id, ayah_id, expected_text, status, feedback, created_at, updated_at
FROM recitations WHERE learner_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, learnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recitations: %w", err)
	}
	defer rows.Close()

	var recitations []*domain.Recitation
	for rows.Next() {
		recitation, err := scanRecitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recitation: %w", err)
		}
		recitations = append(recitations, recitation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recitations: %w", err)
	}
	return recitations, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecitation(row rowScanner) (*domain.Recitation, error) {
	var (
		recitation domain.Recitation
		status     string
		feedback   []byte
		createdAt  time.Time
		updatedAt  time.Time
	)

	err := row.Scan(
		&recitation.ID,
		&recitation.LearnerID,
		&recitation.AyahID,
		&recitation.ExpectedText,
		&status,
		&feedback,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	recitation.Status = domain.RecitationStatus(status)
	recitation.CreatedAt = createdAt
	recitation.UpdatedAt = updatedAt

	if len(feedback) > 0 {
		recitation.Feedback = &domain.RecitationFeedback{}
		if err := json.Unmarshal(feedback, recitation.Feedback); err != nil {
			return nil, fmt.Errorf("unmarshal feedback: %w", err)
		}
	}

	return &recitation, nil
}
