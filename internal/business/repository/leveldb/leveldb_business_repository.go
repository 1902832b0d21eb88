// Package leveldb implements business profile persistence on an embedded LevelDB store.
package leveldb

import (
	"context"
	"strings"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	"github.com/allisson/stampd/internal/database"
)

const (
	businessKeyPrefix   = "business:"
	dailyStatsKeyPrefix = "business_daily:"
	dayLayout           = "2006-01-02"
)

// businessDocument is the JSON form of a profile stored under business:<id>.
type businessDocument struct {
	ID                string    `json:"id"`
	DisplayName       string    `json:"display_name"`
	Category          string    `json:"category,omitempty"`
	Location          string    `json:"location,omitempty"`
	IsActive          bool      `json:"is_active"`
	StampsNeeded      int64     `json:"stamps_needed"`
	RewardDescription string    `json:"reward_description,omitempty"`
	TotalStampsGiven  int64     `json:"total_stamps_given"`
	RewardsRedeemed   int64     `json:"rewards_redeemed"`
	SecretHash        string    `json:"secret_hash"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// dailyStatsDocument is stored under business_daily:<id>\x00<yyyy-mm-dd> so a prefix
// scan returns the days of one business in date order.
type dailyStatsDocument struct {
	StampsGiven   int64 `json:"stamps_given"`
	RewardsEarned int64 `json:"rewards_earned"`
}

func toDocument(b *businessDomain.Business) *businessDocument {
	return &businessDocument{
		ID:                b.ID,
		DisplayName:       b.DisplayName,
		Category:          b.Category,
		Location:          b.Location,
		IsActive:          b.IsActive,
		StampsNeeded:      b.StampsNeeded,
		RewardDescription: b.RewardDescription,
		TotalStampsGiven:  b.TotalStampsGiven,
		RewardsRedeemed:   b.RewardsRedeemed,
		SecretHash:        b.SecretHash,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (d *businessDocument) toBusiness() *businessDomain.Business {
	return &businessDomain.Business{
		ID:                d.ID,
		DisplayName:       d.DisplayName,
		Category:          d.Category,
		Location:          d.Location,
		IsActive:          d.IsActive,
		StampsNeeded:      d.StampsNeeded,
		RewardDescription: d.RewardDescription,
		TotalStampsGiven:  d.TotalStampsGiven,
		RewardsRedeemed:   d.RewardsRedeemed,
		SecretHash:        d.SecretHash,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func businessKey(businessID string) []byte {
	return []byte(businessKeyPrefix + businessID)
}

func dailyStatsPrefix(businessID string) string {
	return dailyStatsKeyPrefix + businessID + "\x00"
}

func dailyStatsKey(businessID string, day time.Time) []byte {
	return []byte(dailyStatsPrefix(businessID) + businessDomain.DayOf(day).Format(dayLayout))
}

// LevelDBBusinessRepository implements business persistence for LevelDB.
// Every read-modify-write runs inside an exclusive LevelDB transaction.
type LevelDBBusinessRepository struct {
	db        *leveldb.DB
	txManager database.TxManager
}

// Create stores a new profile. Returns ErrBusinessAlreadyExists on a duplicate id.
func (l *LevelDBBusinessRepository) Create(ctx context.Context, business *businessDomain.Business) error {
	return l.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetLevelTx(ctx, l.db)

		key := businessKey(business.ID)
		exists, err := querier.Has(key, nil)
		if err != nil {
			return database.ClassifyError(err, "failed to check business")
		}
		if exists {
			return businessDomain.ErrBusinessAlreadyExists
		}

		return database.PutDocument(querier, key, toDocument(business))
	})
}

// Get retrieves a profile by id. Returns ErrBusinessNotFound if absent.
func (l *LevelDBBusinessRepository) Get(ctx context.Context, businessID string) (*businessDomain.Business, error) {
	doc, err := l.load(database.GetLevelTx(ctx, l.db), businessID)
	if err != nil {
		return nil, err
	}
	return doc.toBusiness(), nil
}

// Update writes the profile fields, keeping the stored counters and secret.
func (l *LevelDBBusinessRepository) Update(ctx context.Context, business *businessDomain.Business) error {
	return l.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetLevelTx(ctx, l.db)

		doc, err := l.load(querier, business.ID)
		if err != nil {
			return err
		}

		doc.DisplayName = business.DisplayName
		doc.Category = business.Category
		doc.Location = business.Location
		doc.IsActive = business.IsActive
		doc.StampsNeeded = business.StampsNeeded
		doc.RewardDescription = business.RewardDescription
		doc.UpdatedAt = business.UpdatedAt

		return database.PutDocument(querier, businessKey(business.ID), doc)
	})
}

// IncrementStats adds to the lifetime counters. Returns ErrBusinessNotFound if absent.
func (l *LevelDBBusinessRepository) IncrementStats(
	ctx context.Context,
	businessID string,
	stampsGiven, rewards int64,
) error {
	return l.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetLevelTx(ctx, l.db)

		doc, err := l.load(querier, businessID)
		if err != nil {
			return err
		}

		doc.TotalStampsGiven += stampsGiven
		doc.RewardsRedeemed += rewards
		return database.PutDocument(querier, businessKey(businessID), doc)
	})
}

// IncrementDailyStats adds to the counters of one UTC day, creating the row if needed.
func (l *LevelDBBusinessRepository) IncrementDailyStats(
	ctx context.Context,
	businessID string,
	day time.Time,
	stampsGiven, rewards int64,
) error {
	return l.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetLevelTx(ctx, l.db)

		key := dailyStatsKey(businessID, day)
		var doc dailyStatsDocument
		if err := database.GetDocument(querier, key, &doc); err != nil && err != leveldb.ErrNotFound {
			return database.ClassifyError(err, "failed to increment daily stats")
		}

		doc.StampsGiven += stampsGiven
		doc.RewardsEarned += rewards
		return database.PutDocument(querier, key, &doc)
	})
}

// ListDailyStats returns the rows on or after since, oldest first.
func (l *LevelDBBusinessRepository) ListDailyStats(
	ctx context.Context,
	businessID string,
	since time.Time,
) ([]*businessDomain.DailyStats, error) {
	querier := database.GetLevelTx(ctx, l.db)

	prefix := dailyStatsPrefix(businessID)
	from := businessDomain.DayOf(since)
	stats := make([]*businessDomain.DailyStats, 0)

	var decodeErr error
	err := database.ScanPrefix(querier, []byte(prefix), func(key, value []byte) bool {
		day, err := time.Parse(dayLayout, strings.TrimPrefix(string(key), prefix))
		if err != nil {
			decodeErr = err
			return false
		}
		if day.Before(from) {
			return true
		}

		var doc dailyStatsDocument
		if err := database.DecodeDocument(value, &doc); err != nil {
			decodeErr = err
			return false
		}
		stats = append(stats, &businessDomain.DailyStats{
			BusinessID:    businessID,
			Day:           day,
			StampsGiven:   doc.StampsGiven,
			RewardsEarned: doc.RewardsEarned,
		})
		return true
	})
	if err == nil {
		err = decodeErr
	}
	if err != nil {
		return nil, database.ClassifyError(err, "failed to list daily stats")
	}

	return stats, nil
}

func (l *LevelDBBusinessRepository) load(querier database.LevelQuerier, businessID string) (*businessDocument, error) {
	var doc businessDocument
	if err := database.GetDocument(querier, businessKey(businessID), &doc); err != nil {
		if err == leveldb.ErrNotFound {
			return nil, businessDomain.ErrBusinessNotFound
		}
		return nil, database.ClassifyError(err, "failed to get business")
	}
	return &doc, nil
}

// NewLevelDBBusinessRepository creates a new LevelDB business repository.
func NewLevelDBBusinessRepository(db *leveldb.DB) *LevelDBBusinessRepository {
	return &LevelDBBusinessRepository{
		db:        db,
		txManager: database.NewLevelTxManager(db),
	}
}
