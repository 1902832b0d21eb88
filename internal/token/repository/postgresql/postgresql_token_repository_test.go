package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/stampd/internal/errors"
	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestPostgreSQLTokenRepository_Create(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	record := &tokenDomain.TokenRecord{
		TokenID:       "tok-1",
		Type:          tokenDomain.TokenTypeUniversal,
		CustomerID:    "alice",
		CustomerEmail: "alice@example.com",
		IsActive:      true,
		IssuedAt:      issuedAt,
	}
	insert := regexp.QuoteMeta("INSERT INTO qr_tokens")

	t.Run("Success_CreateRecord", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(insert).
			WithArgs("tok-1", "universal_stamp_card", "alice", "alice@example.com",
				sqlmock.AnyArg(), true, issuedAt, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewPostgreSQLTokenRepository(db).Create(ctx, record)
		assert.NoError(t, err)
	})

	t.Run("Error_DuplicateTokenID", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(insert).WillReturnError(&pq.Error{Code: "23505"})

		err := NewPostgreSQLTokenRepository(db).Create(ctx, record)
		assert.ErrorIs(t, err, tokenDomain.ErrTokenAlreadyExists)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_TransientFailure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(insert).WillReturnError(&pq.Error{Code: "40001"})

		err := NewPostgreSQLTokenRepository(db).Create(ctx, record)
		assert.ErrorIs(t, err, apperrors.ErrTransient)
	})
}

func TestPostgreSQLTokenRepository_Get(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	revokedAt := issuedAt.Add(time.Hour)
	query := regexp.QuoteMeta("FROM qr_tokens WHERE token_id = $1")
	columns := []string{
		"token_id", "token_type", "customer_id", "customer_email",
		"business_id", "is_active", "issued_at", "revoked_at",
	}

	t.Run("Success_SingleBusinessToken", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).
			WithArgs("tok-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("tok-1", "stamp_card", "alice", "alice@example.com", "cafe", true, issuedAt, nil))

		record, err := NewPostgreSQLTokenRepository(db).Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, tokenDomain.TokenTypeSingleBusiness, record.Type)
		assert.Equal(t, "cafe", record.BusinessID)
		assert.True(t, record.IsActive)
		assert.Nil(t, record.RevokedAt)
		assert.Equal(t, tokenDomain.TokenStatusActive, record.Status())
	})

	t.Run("Success_RevokedUniversalToken", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).
			WithArgs("tok-2").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("tok-2", "universal_stamp_card", "bob", "bob@example.com", nil, false, issuedAt, revokedAt))

		record, err := NewPostgreSQLTokenRepository(db).Get(ctx, "tok-2")
		require.NoError(t, err)
		assert.Empty(t, record.BusinessID)
		require.NotNil(t, record.RevokedAt)
		assert.Equal(t, revokedAt, *record.RevokedAt)
		assert.Equal(t, tokenDomain.TokenStatusRevoked, record.Status())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		record, err := NewPostgreSQLTokenRepository(db).Get(ctx, "missing")
		assert.Nil(t, record)
		assert.ErrorIs(t, err, tokenDomain.ErrTokenNotFound)
	})

	t.Run("Error_QueryFailure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("tok-1").WillReturnError(errors.New("boom"))

		_, err := NewPostgreSQLTokenRepository(db).Get(ctx, "tok-1")
		assert.ErrorContains(t, err, "failed to get token")
	})
}

func TestPostgreSQLTokenRepository_Deactivate(t *testing.T) {
	ctx := context.Background()
	revokedAt := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	update := regexp.QuoteMeta("UPDATE qr_tokens")

	t.Run("Success_Deactivate", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).WithArgs("tok-1", revokedAt).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLTokenRepository(db).Deactivate(ctx, "tok-1", revokedAt))
	})

	t.Run("Success_UnknownTokenIsNoOp", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).WithArgs("missing", revokedAt).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, NewPostgreSQLTokenRepository(db).Deactivate(ctx, "missing", revokedAt))
	})

	t.Run("Error_ExecFailure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).WillReturnError(errors.New("boom"))

		err := NewPostgreSQLTokenRepository(db).Deactivate(ctx, "tok-1", revokedAt)
		assert.ErrorContains(t, err, "failed to deactivate token")
	})
}
