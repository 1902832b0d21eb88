// Package domain defines ledger records, the stamp transition and scan results.
package domain

import (
	"time"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

// RecordID derives the display id of the ledger record of a customer at a business.
func RecordID(customerID, businessID string) string {
	return customerID + "_" + businessID
}

// LedgerRecord is the stamp card of one customer at one business.
//
// StampsNeeded is snapshotted from the business profile when the record is created.
// Claimed latches to true once CurrentStamps reaches StampsNeeded and never reverts.
// Version increases by one on every write and guards concurrent updates.
type LedgerRecord struct {
	CustomerID        string
	CustomerEmail     string
	BusinessID        string
	BusinessName      string
	CurrentStamps     int64
	StampsNeeded      int64
	RewardDescription string
	Claimed           bool
	BusinessVerified  bool
	Version           int64
	CreatedAt         time.Time
	LastVisitAt       time.Time
}

// ID returns the derived record id.
func (r *LedgerRecord) ID() string {
	return RecordID(r.CustomerID, r.BusinessID)
}

// RewardEarned reports whether the card has reached its threshold.
func (r *LedgerRecord) RewardEarned() bool {
	return r.CurrentStamps >= r.StampsNeeded
}

// NewLedgerRecord builds the record created by the first scan of a customer at a business.
func NewLedgerRecord(
	token *tokenDomain.Token,
	business *businessDomain.Business,
	businessName string,
	at time.Time,
) *LedgerRecord {
	return &LedgerRecord{
		CustomerID:        token.CustomerID,
		CustomerEmail:     token.CustomerEmail,
		BusinessID:        business.ID,
		BusinessName:      businessName,
		CurrentStamps:     1,
		StampsNeeded:      business.StampsNeeded,
		RewardDescription: business.RewardDescription,
		Claimed:           1 >= business.StampsNeeded,
		BusinessVerified:  true,
		Version:           1,
		CreatedAt:         at,
		LastVisitAt:       at,
	}
}

// StampIncrement is a conditional update of a ledger record: it applies only while the
// stored version still equals ExpectedVersion.
type StampIncrement struct {
	CustomerID      string
	BusinessID      string
	NewStamps       int64
	Claimed         bool
	ExpectedVersion int64
	VisitedAt       time.Time
}

// NextIncrement computes the transition of one more stamp on top of r.
func (r *LedgerRecord) NextIncrement(at time.Time) *StampIncrement {
	newStamps := r.CurrentStamps + 1
	return &StampIncrement{
		CustomerID:      r.CustomerID,
		BusinessID:      r.BusinessID,
		NewStamps:       newStamps,
		Claimed:         newStamps >= r.StampsNeeded,
		ExpectedVersion: r.Version,
		VisitedAt:       at,
	}
}

// Apply mirrors in memory what the store does when inc succeeds.
func (r *LedgerRecord) Apply(inc *StampIncrement) {
	r.CurrentStamps = inc.NewStamps
	r.Claimed = r.Claimed || inc.Claimed
	r.BusinessVerified = true
	r.Version = inc.ExpectedVersion + 1
	r.LastVisitAt = inc.VisitedAt
}

// Dashboard is the read composition returned to a business.
type Dashboard struct {
	Business       *businessDomain.Business
	TotalCustomers int64
	RecentActivity []*LedgerRecord
	DailyStats     []*businessDomain.DailyStats
}
