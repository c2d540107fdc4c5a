// internal/store/artifacts_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
)

func TestArtifactStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO artifacts`).
		WithArgs(sqlmock.AnyArg(), "branding", "eco pet store", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := NewArtifactStore(db, logger.NewTestLogger(t))
	id, err := store.Save(context.Background(), "branding", "eco pet store", map[string]string{
		"brand_name": "Urban Paws",
		"tagline":    "Style for city pets",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtifactStore_Save_InsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO artifacts`).
		WillReturnError(assert.AnError)

	store := NewArtifactStore(db, logger.NewTestLogger(t))
	_, err = store.Save(context.Background(), "branding", "eco pet store", map[string]string{})

	require.Error(t, err)
	stdErr, ok := err.(*commonerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeStoreWriteFailed, stdErr.Code)
}

func TestArtifactStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "task", "idea", "payload", "created_at"}).
		AddRow("art-1", "legal_docs", "candle store", []byte(`{"documents":[]}`), createdAt)

	mock.ExpectQuery(`SELECT id, task, idea, payload, created_at`).
		WithArgs("art-1").
		WillReturnRows(rows)

	store := NewArtifactStore(db, logger.NewTestLogger(t))
	artifact, err := store.Get(context.Background(), "art-1")

	assert.NoError(t, err)
	require.NotNil(t, artifact)
	assert.Equal(t, "legal_docs", artifact.Task)
	assert.JSONEq(t, `{"documents":[]}`, string(artifact.Payload))
}

func TestArtifactStore_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, task, idea, payload, created_at`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "task", "idea", "payload", "created_at"}))

	store := NewArtifactStore(db, logger.NewTestLogger(t))
	artifact, err := store.Get(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, artifact)
}

func TestArtifactStore_ListByTask(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "task", "idea", "payload", "created_at"}).
		AddRow("art-2", "branding", "candle store", []byte(`{}`), createdAt).
		AddRow("art-1", "branding", "pet store", []byte(`{}`), createdAt.Add(-time.Hour))

	mock.ExpectQuery(`SELECT id, task, idea, payload, created_at`).
		WithArgs("branding", 10).
		WillReturnRows(rows)

	store := NewArtifactStore(db, logger.NewTestLogger(t))
	artifacts, err := store.ListByTask(context.Background(), "branding", 10)

	assert.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "art-2", artifacts[0].ID)
}
