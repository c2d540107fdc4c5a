// internal/store/artifacts.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
)

// Artifact is one persisted task deliverable: a branding record, a legal
// document set, a support reply, or a video job outcome. Payload holds
// the typed result serialized as JSON.
type Artifact struct {
	ID        string          `json:"id"`
	Task      string          `json:"task"`
	Idea      string          `json:"idea"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// ArtifactStore persists artifacts in PostgreSQL.
type ArtifactStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewArtifactStore(db *sql.DB, log logger.Logger) *ArtifactStore {
	return &ArtifactStore{
		db:     db,
		logger: log.With(map[string]interface{}{"store": "artifacts"}),
	}
}

// Save inserts the artifact and returns its assigned id.
func (s *ArtifactStore) Save(ctx context.Context, task, idea string, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", commonerrors.NewStoreWriteFailedError(err)
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO artifacts (id, task, idea, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		id,
		task,
		idea,
		data,
		createdAt,
	)
	if err != nil {
		return "", commonerrors.NewStoreWriteFailedError(err)
	}

	s.logger.Info("artifact saved", map[string]interface{}{
		"artifactId": id,
		"task":       task,
	})
	return id, nil
}

// Get fetches one artifact by id.
func (s *ArtifactStore) Get(ctx context.Context, id string) (*Artifact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, task, idea, payload, created_at
		FROM artifacts WHERE id = $1`, id)

	var a Artifact
	if err := row.Scan(&a.ID, &a.Task, &a.Idea, &a.Payload, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ListByTask returns the most recent artifacts for one task type.
func (s *ArtifactStore) ListByTask(ctx context.Context, task string, limit int) ([]Artifact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task, idea, payload, created_at
		FROM artifacts WHERE task = $1
		ORDER BY created_at DESC LIMIT $2`, task, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ID, &a.Task, &a.Idea, &a.Payload, &a.CreatedAt); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
