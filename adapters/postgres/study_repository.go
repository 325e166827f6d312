package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"goresample/domain/core"
	"goresample/domain/resample"
	"goresample/internal/errors"
	"goresample/ports"
)

// studyRepository implements StudyRepositoryPort over postgres
type studyRepository struct {
	db *sqlx.DB
}

// NewStudyRepository creates a new study repository
func NewStudyRepository(db *sqlx.DB) ports.StudyRepositoryPort {
	return &studyRepository{db: db}
}

// Connect opens a postgres-backed study repository
func Connect(url string) (ports.StudyRepositoryPort, *sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to study store")
	}
	return NewStudyRepository(db), db, nil
}

// Migrate creates the studies table if it does not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS studies (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL,
		seed        BIGINT NOT NULL,
		trials      INTEGER NOT NULL,
		payload     JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return errors.Wrap(err, "failed to migrate studies table")
	}
	return nil
}

// Save inserts a study artifact
func (r *studyRepository) Save(ctx context.Context, artifact *resample.StudyArtifact) error {
	payloadJSON, err := json.Marshal(artifact.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal study payload: %w", err)
	}

	query := `INSERT INTO studies (id, kind, seed, trials, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		artifact.ID.String(), string(artifact.Kind), artifact.Seed, artifact.Trials,
		payloadJSON, artifact.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save study: %w", err)
	}
	return nil
}

// Get retrieves a study artifact by ID
func (r *studyRepository) Get(ctx context.Context, id core.StudyID) (*resample.StudyArtifact, error) {
	query := `SELECT id, kind, seed, trials, payload, created_at FROM studies WHERE id = $1`

	artifact, err := scanStudy(r.db.QueryRowxContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound(fmt.Sprintf("study %s", id))
		}
		return nil, fmt.Errorf("failed to get study: %w", err)
	}
	return artifact, nil
}

// ListByKind retrieves the most recent studies of one kind
func (r *studyRepository) ListByKind(ctx context.Context, kind resample.StudyKind, limit int) ([]*resample.StudyArtifact, error) {
	query := `SELECT id, kind, seed, trials, payload, created_at FROM studies
		WHERE kind = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.QueryxContext(ctx, query, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list studies: %w", err)
	}
	defer rows.Close()

	var out []*resample.StudyArtifact
	for rows.Next() {
		artifact, err := scanStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan study row: %w", err)
		}
		out = append(out, artifact)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStudy(row rowScanner) (*resample.StudyArtifact, error) {
	var (
		artifact    resample.StudyArtifact
		id, kind    string
		payloadJSON []byte
		createdAt   time.Time
	)
	if err := row.Scan(&id, &kind, &artifact.Seed, &artifact.Trials, &payloadJSON, &createdAt); err != nil {
		return nil, err
	}
	artifact.ID = core.StudyID(id)
	artifact.Kind = resample.StudyKind(kind)
	artifact.CreatedAt = core.NewTimestamp(createdAt)
	if len(payloadJSON) > 0 {
		if err := json.Unmarshal(payloadJSON, &artifact.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal study payload: %w", err)
		}
	}
	return &artifact, nil
}
