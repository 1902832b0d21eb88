// Package domain defines the business profile, its scan statistics and directory errors.
package domain

import "time"

// DefaultStampsNeeded is the reward threshold applied when onboarding does not set one.
const DefaultStampsNeeded int64 = 10

// Business is the directory profile of a business that accepts scans.
type Business struct {
	ID                string
	DisplayName       string
	Category          string
	Location          string
	IsActive          bool
	StampsNeeded      int64
	RewardDescription string
	TotalStampsGiven  int64
	RewardsRedeemed   int64
	SecretHash        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DailyStats holds the per UTC day scan counters of a business.
type DailyStats struct {
	BusinessID    string
	Day           time.Time
	StampsGiven   int64
	RewardsEarned int64
}

// DayOf truncates t to the start of its UTC day, the key of DailyStats rows.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RegisterBusinessInput contains the parameters for onboarding a business.
// An empty ID gets a generated one and a zero StampsNeeded gets DefaultStampsNeeded.
type RegisterBusinessInput struct {
	ID                string
	DisplayName       string
	Category          string
	Location          string
	StampsNeeded      int64
	RewardDescription string
}

// RegisterBusinessOutput contains the onboarded business and its plain scan secret.
// The secret is returned only once.
type RegisterBusinessOutput struct {
	Business    *Business
	PlainSecret string
}

// UpdateBusinessInput contains the profile fields to change. Nil fields are left untouched.
// Counters and the scan secret cannot be changed here.
type UpdateBusinessInput struct {
	ID                string
	DisplayName       *string
	Category          *string
	Location          *string
	StampsNeeded      *int64
	RewardDescription *string
	IsActive          *bool
}
