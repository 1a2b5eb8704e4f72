package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"failfast/internal/domain"
	"failfast/internal/port"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

func TestDocumentRepo_Transition_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDocumentRepo(db)

	docID := uuid.New()
	prev := domain.ValidationStatusPending

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documents SET").
		WithArgs(domain.ValidationStatusApproved, "verified", sqlmock.AnyArg(), docID, domain.ValidationStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO document_validation_logs").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Transition(context.Background(), port.TransitionParams{
		DocumentID:  docID,
		FromStatus:  domain.ValidationStatusPending,
		ToStatus:    domain.ValidationStatusApproved,
		Reason:      "verified",
		ValidatedAt: time.Now().UTC(),
		Entry: &domain.ValidationLogEntry{
			ID:             uuid.New(),
			DocumentID:     docID,
			Action:         domain.LogActionApproved,
			PreviousStatus: &prev,
			NewStatus:      domain.ValidationStatusApproved,
			Reason:         "verified",
			PerformedBy:    "admin",
		},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepo_Transition_Conflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDocumentRepo(db)

	docID := uuid.New()
	prev := domain.ValidationStatusPending

	// Zero rows updated means the compare-and-swap lost: no log row may be
	// written and the transaction rolls back.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documents SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Transition(context.Background(), port.TransitionParams{
		DocumentID:  docID,
		FromStatus:  domain.ValidationStatusPending,
		ToStatus:    domain.ValidationStatusRejected,
		Reason:      "late",
		ValidatedAt: time.Now().UTC(),
		Entry: &domain.ValidationLogEntry{
			ID:             uuid.New(),
			DocumentID:     docID,
			Action:         domain.LogActionRejected,
			PreviousStatus: &prev,
			NewStatus:      domain.ValidationStatusRejected,
		},
	})

	assert.ErrorIs(t, err, domain.ErrDocumentAlreadyProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepo_CreateWithLog_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDocumentRepo(db)

	doc := &domain.Document{
		ID:               uuid.New(),
		CompanyID:        uuid.New(),
		EntityID:         uuid.New(),
		DocumentTypeID:   uuid.New(),
		FileName:         "soat.pdf",
		FileSize:         1024,
		MimeType:         "application/pdf",
		S3Bucket:         "failfast-docs",
		S3Key:            "companies/x/vehicles/y/SOAT_20260828_120000.pdf",
		S3Region:         "us-east-1",
		ValidationStatus: domain.ValidationStatusPending,
		UploadedBy:       "admin",
	}
	entry := &domain.ValidationLogEntry{
		ID:          uuid.New(),
		DocumentID:  doc.ID,
		Action:      domain.LogActionUploaded,
		NewStatus:   domain.ValidationStatusPending,
		Reason:      "document uploaded",
		PerformedBy: "admin",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO documents").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO document_validation_logs").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateWithLog(context.Background(), doc, entry)

	assert.NoError(t, err)
	assert.False(t, doc.UploadedAt.IsZero())
	assert.Equal(t, doc.UploadedAt, entry.CreatedAt)
	assert.Equal(t, []byte("{}"), []byte(entry.Metadata))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepo_CreateWithLog_LogInsertFails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDocumentRepo(db)

	doc := &domain.Document{ID: uuid.New(), ValidationStatus: domain.ValidationStatusPending}
	entry := &domain.ValidationLogEntry{ID: uuid.New(), DocumentID: doc.ID, Action: domain.LogActionUploaded}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO documents").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO document_validation_logs").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateWithLog(context.Background(), doc, entry)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert log")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepo_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDocumentRepo(db)

	id := uuid.New()
	mock.ExpectExec("DELETE FROM documents").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
