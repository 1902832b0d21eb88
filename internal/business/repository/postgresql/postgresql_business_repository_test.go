package postgresql

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	apperrors "github.com/allisson/stampd/internal/errors"
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

var (
	createdAt = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	columns   = []string{
		"id", "display_name", "category", "location", "is_active", "stamps_needed", "reward_description",
		"total_stamps_given", "rewards_redeemed", "secret_hash", "created_at", "updated_at",
	}
)

func newBusiness() *businessDomain.Business {
	return &businessDomain.Business{
		ID:                "cafe",
		DisplayName:       "Cafe",
		Category:          "coffee",
		Location:          "Main St",
		IsActive:          true,
		StampsNeeded:      10,
		RewardDescription: "Free coffee",
		SecretHash:        "hash",
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func TestPostgreSQLBusinessRepository_Create(t *testing.T) {
	ctx := context.Background()
	insert := regexp.QuoteMeta("INSERT INTO businesses")

	t.Run("Success_Create", func(t *testing.T) {
		db, mock := newMockDB(t)
		b := newBusiness()
		mock.ExpectExec(insert).
			WithArgs(b.ID, b.DisplayName, b.Category, b.Location, b.IsActive, b.StampsNeeded,
				b.RewardDescription, int64(0), int64(0), b.SecretHash, b.CreatedAt, b.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLBusinessRepository(db).Create(ctx, b))
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(insert).WillReturnError(&pq.Error{Code: "23505"})

		err := NewPostgreSQLBusinessRepository(db).Create(ctx, newBusiness())
		assert.ErrorIs(t, err, businessDomain.ErrBusinessAlreadyExists)
	})
}

func TestPostgreSQLBusinessRepository_Get(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("FROM businesses WHERE id = $1")

	t.Run("Success_Get", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("cafe").WillReturnRows(sqlmock.NewRows(columns).
			AddRow("cafe", "Cafe", "coffee", "Main St", true, int64(10), "Free coffee",
				int64(42), int64(4), "hash", createdAt, createdAt))

		b, err := NewPostgreSQLBusinessRepository(db).Get(ctx, "cafe")
		require.NoError(t, err)
		assert.Equal(t, int64(42), b.TotalStampsGiven)
		assert.Equal(t, int64(4), b.RewardsRedeemed)
		assert.True(t, b.IsActive)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := NewPostgreSQLBusinessRepository(db).Get(ctx, "missing")
		assert.ErrorIs(t, err, businessDomain.ErrBusinessNotFound)
	})

	t.Run("Error_ConnectionDropped", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("cafe").WillReturnError(sql.ErrConnDone)

		_, err := NewPostgreSQLBusinessRepository(db).Get(ctx, "cafe")
		assert.ErrorIs(t, err, apperrors.ErrTransient)
	})
}

func TestPostgreSQLBusinessRepository_Update(t *testing.T) {
	ctx := context.Background()
	update := regexp.QuoteMeta("UPDATE businesses")

	t.Run("Success_Update", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLBusinessRepository(db).Update(ctx, newBusiness()))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgreSQLBusinessRepository(db).Update(ctx, newBusiness())
		assert.ErrorIs(t, err, businessDomain.ErrBusinessNotFound)
	})
}

func TestPostgreSQLBusinessRepository_IncrementStats(t *testing.T) {
	ctx := context.Background()
	update := regexp.QuoteMeta("SET total_stamps_given = total_stamps_given + $1")

	t.Run("Success_Increment", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).WithArgs(int64(1), int64(1), "cafe").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLBusinessRepository(db).IncrementStats(ctx, "cafe", 1, 1))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).WithArgs(int64(1), int64(0), "gone").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgreSQLBusinessRepository(db).IncrementStats(ctx, "gone", 1, 0)
		assert.ErrorIs(t, err, businessDomain.ErrBusinessNotFound)
	})
}

func TestPostgreSQLBusinessRepository_IncrementDailyStats(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (business_id, day) DO UPDATE")).
		WithArgs("cafe", day, int64(1), int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewPostgreSQLBusinessRepository(db).IncrementDailyStats(ctx, "cafe", day, 1, 0))
}

func TestPostgreSQLBusinessRepository_ListDailyStats(t *testing.T) {
	ctx := context.Background()
	since := time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC)

	t.Run("Success_List", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM business_daily_stats")).
			WithArgs("cafe", since).
			WillReturnRows(sqlmock.NewRows([]string{"business_id", "day", "stamps_given", "rewards_earned"}).
				AddRow("cafe", since, int64(3), int64(0)).
				AddRow("cafe", since.AddDate(0, 0, 2), int64(7), int64(1)))

		stats, err := NewPostgreSQLBusinessRepository(db).ListDailyStats(ctx, "cafe", since)
		require.NoError(t, err)
		require.Len(t, stats, 2)
		assert.Equal(t, int64(3), stats[0].StampsGiven)
		assert.Equal(t, since.AddDate(0, 0, 2), stats[1].Day)
		assert.Equal(t, int64(1), stats[1].RewardsEarned)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM business_daily_stats")).
			WithArgs("cafe", since).
			WillReturnRows(sqlmock.NewRows([]string{"business_id", "day", "stamps_given", "rewards_earned"}))

		stats, err := NewPostgreSQLBusinessRepository(db).ListDailyStats(ctx, "cafe", since)
		require.NoError(t, err)
		assert.Empty(t, stats)
		assert.NotNil(t, stats)
	})
}
