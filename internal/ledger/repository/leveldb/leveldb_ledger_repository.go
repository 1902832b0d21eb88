// Package leveldb implements ledger record persistence on an embedded LevelDB store.
package leveldb

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/allisson/stampd/internal/database"
	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
)

const (
	ledgerKeyPrefix        = "ledger:"
	businessIndexKeyPrefix = "ledger_by_business:"
)

// ledgerDocument is the JSON form of a record stored under ledger:<customer>\x00<business>.
type ledgerDocument struct {
	CustomerID        string    `json:"customer_id"`
	CustomerEmail     string    `json:"customer_email"`
	BusinessID        string    `json:"business_id"`
	BusinessName      string    `json:"business_name"`
	CurrentStamps     int64     `json:"current_stamps"`
	StampsNeeded      int64     `json:"stamps_needed"`
	RewardDescription string    `json:"reward_description,omitempty"`
	Claimed           bool      `json:"claimed"`
	BusinessVerified  bool      `json:"business_verified"`
	Version           int64     `json:"version"`
	CreatedAt         time.Time `json:"created_at"`
	LastVisitAt       time.Time `json:"last_visit_at"`
}

func toDocument(r *ledgerDomain.LedgerRecord) *ledgerDocument {
	return &ledgerDocument{
		CustomerID:        r.CustomerID,
		CustomerEmail:     r.CustomerEmail,
		BusinessID:        r.BusinessID,
		BusinessName:      r.BusinessName,
		CurrentStamps:     r.CurrentStamps,
		StampsNeeded:      r.StampsNeeded,
		RewardDescription: r.RewardDescription,
		Claimed:           r.Claimed,
		BusinessVerified:  r.BusinessVerified,
		Version:           r.Version,
		CreatedAt:         r.CreatedAt,
		LastVisitAt:       r.LastVisitAt,
	}
}

func (d *ledgerDocument) toRecord() *ledgerDomain.LedgerRecord {
	return &ledgerDomain.LedgerRecord{
		CustomerID:        d.CustomerID,
		CustomerEmail:     d.CustomerEmail,
		BusinessID:        d.BusinessID,
		BusinessName:      d.BusinessName,
		CurrentStamps:     d.CurrentStamps,
		StampsNeeded:      d.StampsNeeded,
		RewardDescription: d.RewardDescription,
		Claimed:           d.Claimed,
		BusinessVerified:  d.BusinessVerified,
		Version:           d.Version,
		CreatedAt:         d.CreatedAt,
		LastVisitAt:       d.LastVisitAt,
	}
}

func customerPrefix(customerID string) string {
	return ledgerKeyPrefix + customerID + "\x00"
}

func ledgerKey(customerID, businessID string) []byte {
	return []byte(customerPrefix(customerID) + businessID)
}

func businessIndexPrefix(businessID string) string {
	return businessIndexKeyPrefix + businessID + "\x00"
}

// businessIndexKey orders the entries of one business by most recent visit first.
func businessIndexKey(businessID string, lastVisitAt time.Time, customerID string) []byte {
	recency := fmt.Sprintf("%019d", math.MaxInt64-lastVisitAt.UnixNano())
	return []byte(businessIndexPrefix(businessID) + recency + "\x00" + customerID)
}

// LevelDBLedgerRepository implements ledger persistence for LevelDB.
// Writes run inside exclusive LevelDB transactions, so the version check and
// the write of ApplyStampIncrement are atomic.
type LevelDBLedgerRepository struct {
	db        *leveldb.DB
	txManager database.TxManager
}

// Create stores a new record. Returns ErrLedgerRecordAlreadyExists when the pair is taken.
func (l *LevelDBLedgerRepository) Create(ctx context.Context, record *ledgerDomain.LedgerRecord) error {
	return l.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetLevelTx(ctx, l.db)

		key := ledgerKey(record.CustomerID, record.BusinessID)
		exists, err := querier.Has(key, nil)
		if err != nil {
			return database.ClassifyError(err, "failed to check ledger record")
		}
		if exists {
			return ledgerDomain.ErrLedgerRecordAlreadyExists
		}

		if err := database.PutDocument(querier, key, toDocument(record)); err != nil {
			return database.ClassifyError(err, "failed to create ledger record")
		}
		indexKey := businessIndexKey(record.BusinessID, record.LastVisitAt, record.CustomerID)
		if err := querier.Put(indexKey, []byte(record.CustomerID), nil); err != nil {
			return database.ClassifyError(err, "failed to index ledger record")
		}
		return nil
	})
}

// Get retrieves the record of a customer at a business. Returns ErrLedgerRecordNotFound if absent.
func (l *LevelDBLedgerRepository) Get(
	ctx context.Context,
	customerID, businessID string,
) (*ledgerDomain.LedgerRecord, error) {
	doc, err := l.load(database.GetLevelTx(ctx, l.db), customerID, businessID)
	if err != nil {
		return nil, err
	}
	return doc.toRecord(), nil
}

// ApplyStampIncrement performs the version guarded update and moves the business index entry.
func (l *LevelDBLedgerRepository) ApplyStampIncrement(
	ctx context.Context,
	inc *ledgerDomain.StampIncrement,
) error {
	return l.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetLevelTx(ctx, l.db)

		doc, err := l.load(querier, inc.CustomerID, inc.BusinessID)
		if err != nil {
			return err
		}
		if doc.Version != inc.ExpectedVersion {
			return ledgerDomain.ErrLedgerConflict
		}

		oldIndexKey := businessIndexKey(doc.BusinessID, doc.LastVisitAt, doc.CustomerID)
		if err := querier.Delete(oldIndexKey, nil); err != nil {
			return database.ClassifyError(err, "failed to unindex ledger record")
		}

		doc.CurrentStamps = inc.NewStamps
		doc.Claimed = doc.Claimed || inc.Claimed
		doc.BusinessVerified = true
		doc.Version++
		doc.LastVisitAt = inc.VisitedAt

		if err := database.PutDocument(querier, ledgerKey(doc.CustomerID, doc.BusinessID), doc); err != nil {
			return database.ClassifyError(err, "failed to apply stamp increment")
		}
		newIndexKey := businessIndexKey(doc.BusinessID, doc.LastVisitAt, doc.CustomerID)
		if err := querier.Put(newIndexKey, []byte(doc.CustomerID), nil); err != nil {
			return database.ClassifyError(err, "failed to index ledger record")
		}
		return nil
	})
}

// ListByCustomer returns every record of customerID, most recently visited first.
func (l *LevelDBLedgerRepository) ListByCustomer(
	ctx context.Context,
	customerID string,
) ([]*ledgerDomain.LedgerRecord, error) {
	querier := database.GetLevelTx(ctx, l.db)

	records := make([]*ledgerDomain.LedgerRecord, 0)
	var decodeErr error
	err := database.ScanPrefix(querier, []byte(customerPrefix(customerID)), func(_, value []byte) bool {
		var doc ledgerDocument
		if err := database.DecodeDocument(value, &doc); err != nil {
			decodeErr = err
			return false
		}
		records = append(records, doc.toRecord())
		return true
	})
	if err == nil {
		err = decodeErr
	}
	if err != nil {
		return nil, database.ClassifyError(err, "failed to list ledger records")
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastVisitAt.After(records[j].LastVisitAt)
	})
	return records, nil
}

// ListByBusiness returns up to limit records of businessID, most recently visited first.
func (l *LevelDBLedgerRepository) ListByBusiness(
	ctx context.Context,
	businessID string,
	limit int,
) ([]*ledgerDomain.LedgerRecord, error) {
	if limit < 1 {
		return []*ledgerDomain.LedgerRecord{}, nil
	}
	querier := database.GetLevelTx(ctx, l.db)

	customerIDs := make([]string, 0, limit)
	err := database.ScanPrefix(querier, []byte(businessIndexPrefix(businessID)), func(_, value []byte) bool {
		customerIDs = append(customerIDs, string(value))
		return len(customerIDs) < limit
	})
	if err != nil {
		return nil, database.ClassifyError(err, "failed to list ledger records")
	}

	records := make([]*ledgerDomain.LedgerRecord, 0, len(customerIDs))
	for _, customerID := range customerIDs {
		doc, err := l.load(querier, customerID, businessID)
		if err != nil {
			return nil, err
		}
		records = append(records, doc.toRecord())
	}
	return records, nil
}

// CountByBusiness returns how many customers hold a card at businessID.
func (l *LevelDBLedgerRepository) CountByBusiness(ctx context.Context, businessID string) (int64, error) {
	querier := database.GetLevelTx(ctx, l.db)

	var count int64
	err := database.ScanPrefix(querier, []byte(businessIndexPrefix(businessID)), func(_, _ []byte) bool {
		count++
		return true
	})
	if err != nil {
		return 0, database.ClassifyError(err, "failed to count ledger records")
	}
	return count, nil
}

func (l *LevelDBLedgerRepository) load(
	querier database.LevelQuerier,
	customerID, businessID string,
) (*ledgerDocument, error) {
	var doc ledgerDocument
	if err := database.GetDocument(querier, ledgerKey(customerID, businessID), &doc); err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ledgerDomain.ErrLedgerRecordNotFound
		}
		return nil, database.ClassifyError(err, "failed to get ledger record")
	}
	return &doc, nil
}

// NewLevelDBLedgerRepository creates a new LevelDB ledger repository.
func NewLevelDBLedgerRepository(db *leveldb.DB) *LevelDBLedgerRepository {
	return &LevelDBLedgerRepository{
		db:        db,
		txManager: database.NewLevelTxManager(db),
	}
}
