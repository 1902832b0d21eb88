package leveldb

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	apperrors "github.com/allisson/stampd/internal/errors"
	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
)

var baseTime = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newRepository(t *testing.T) *LevelDBLedgerRepository {
	t.Helper()
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewLevelDBLedgerRepository(db)
}

func newRecord(customerID, businessID string, visitedAt time.Time) *ledgerDomain.LedgerRecord {
	return &ledgerDomain.LedgerRecord{
		CustomerID:       customerID,
		CustomerEmail:    customerID + "@example.com",
		BusinessID:       businessID,
		BusinessName:     "Cafe",
		CurrentStamps:    1,
		StampsNeeded:     3,
		BusinessVerified: true,
		Version:          1,
		CreatedAt:        visitedAt,
		LastVisitAt:      visitedAt,
	}
}

func TestLevelDBLedgerRepository_CreateGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		repo := newRepository(t)
		r := newRecord("cust-1", "cafe", baseTime)

		require.NoError(t, repo.Create(ctx, r))

		got, err := repo.Get(ctx, "cust-1", "cafe")
		require.NoError(t, err)
		assert.Equal(t, r, got)
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		repo := newRepository(t)
		require.NoError(t, repo.Create(ctx, newRecord("cust-1", "cafe", baseTime)))

		err := repo.Create(ctx, newRecord("cust-1", "cafe", baseTime.Add(time.Hour)))
		assert.ErrorIs(t, err, ledgerDomain.ErrLedgerRecordAlreadyExists)

		got, err := repo.Get(ctx, "cust-1", "cafe")
		require.NoError(t, err)
		assert.True(t, got.LastVisitAt.Equal(baseTime))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := newRepository(t)

		_, err := repo.Get(ctx, "cust-1", "cafe")
		assert.ErrorIs(t, err, ledgerDomain.ErrLedgerRecordNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestLevelDBLedgerRepository_ApplyStampIncrement(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_BumpsVersion", func(t *testing.T) {
		repo := newRepository(t)
		r := newRecord("cust-1", "cafe", baseTime)
		require.NoError(t, repo.Create(ctx, r))

		require.NoError(t, repo.ApplyStampIncrement(ctx, r.NextIncrement(baseTime.Add(time.Hour))))

		got, err := repo.Get(ctx, "cust-1", "cafe")
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.CurrentStamps)
		assert.Equal(t, int64(2), got.Version)
		assert.False(t, got.Claimed)
		assert.True(t, got.LastVisitAt.Equal(baseTime.Add(time.Hour)))
	})

	t.Run("Success_ClaimedNeverReverts", func(t *testing.T) {
		repo := newRepository(t)
		r := newRecord("cust-1", "cafe", baseTime)
		r.Claimed = true
		require.NoError(t, repo.Create(ctx, r))

		require.NoError(t, repo.ApplyStampIncrement(ctx, &ledgerDomain.StampIncrement{
			CustomerID:      "cust-1",
			BusinessID:      "cafe",
			NewStamps:       2,
			Claimed:         false,
			ExpectedVersion: 1,
			VisitedAt:       baseTime,
		}))

		got, err := repo.Get(ctx, "cust-1", "cafe")
		require.NoError(t, err)
		assert.True(t, got.Claimed)
	})

	t.Run("Error_StaleVersion", func(t *testing.T) {
		repo := newRepository(t)
		r := newRecord("cust-1", "cafe", baseTime)
		require.NoError(t, repo.Create(ctx, r))
		stale := r.NextIncrement(baseTime)
		require.NoError(t, repo.ApplyStampIncrement(ctx, stale))

		err := repo.ApplyStampIncrement(ctx, stale)
		assert.ErrorIs(t, err, ledgerDomain.ErrLedgerConflict)

		got, err := repo.Get(ctx, "cust-1", "cafe")
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.CurrentStamps)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := newRepository(t)

		err := repo.ApplyStampIncrement(ctx, newRecord("cust-1", "cafe", baseTime).NextIncrement(baseTime))
		assert.ErrorIs(t, err, ledgerDomain.ErrLedgerRecordNotFound)
	})

	t.Run("Success_ConcurrentIncrementsAreNotLost", func(t *testing.T) {
		repo := newRepository(t)
		require.NoError(t, repo.Create(ctx, newRecord("cust-1", "cafe", baseTime)))

		const workers = 10
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					r, err := repo.Get(ctx, "cust-1", "cafe")
					if !assert.NoError(t, err) {
						return
					}
					err = repo.ApplyStampIncrement(ctx, r.NextIncrement(baseTime))
					if apperrors.Is(err, ledgerDomain.ErrLedgerConflict) {
						continue
					}
					assert.NoError(t, err)
					return
				}
			}()
		}
		wg.Wait()

		got, err := repo.Get(ctx, "cust-1", "cafe")
		require.NoError(t, err)
		assert.Equal(t, int64(1+workers), got.CurrentStamps)
		assert.Equal(t, int64(1+workers), got.Version)
		assert.True(t, got.Claimed)
	})
}

func TestLevelDBLedgerRepository_Lists(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ListByBusinessMostRecentFirst", func(t *testing.T) {
		repo := newRepository(t)
		first := newRecord("cust-1", "cafe", baseTime)
		second := newRecord("cust-2", "cafe", baseTime.Add(time.Minute))
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, newRecord("cust-3", "bakery", baseTime)))

		// A later visit moves cust-1 to the top.
		require.NoError(t, repo.ApplyStampIncrement(ctx, first.NextIncrement(baseTime.Add(time.Hour))))

		records, err := repo.ListByBusiness(ctx, "cafe", 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "cust-1", records[0].CustomerID)
		assert.Equal(t, "cust-2", records[1].CustomerID)

		limited, err := repo.ListByBusiness(ctx, "cafe", 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, "cust-1", limited[0].CustomerID)

		count, err := repo.CountByBusiness(ctx, "cafe")
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Success_ListByCustomer", func(t *testing.T) {
		repo := newRepository(t)
		require.NoError(t, repo.Create(ctx, newRecord("cust-1", "cafe", baseTime)))
		require.NoError(t, repo.Create(ctx, newRecord("cust-1", "bakery", baseTime.Add(time.Hour))))
		require.NoError(t, repo.Create(ctx, newRecord("cust-10", "cafe", baseTime)))

		records, err := repo.ListByCustomer(ctx, "cust-1")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "bakery", records[0].BusinessID)
		assert.Equal(t, "cafe", records[1].BusinessID)
	})

	t.Run("Success_EmptyLists", func(t *testing.T) {
		repo := newRepository(t)

		records, err := repo.ListByCustomer(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, records)

		count, err := repo.CountByBusiness(ctx, "cafe")
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
