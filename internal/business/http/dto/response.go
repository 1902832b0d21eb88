package dto

import (
	"time"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
)

// BusinessResponse represents a business profile in API responses (excludes the secret hash).
type BusinessResponse struct {
	ID                string    `json:"id"`
	DisplayName       string    `json:"display_name"`
	Category          string    `json:"category"`
	Location          string    `json:"location"`
	IsActive          bool      `json:"is_active"`
	StampsNeeded      int64     `json:"stamps_needed"`
	RewardDescription string    `json:"reward_description"`
	TotalStampsGiven  int64     `json:"total_stamps_given"`
	RewardsRedeemed   int64     `json:"rewards_redeemed"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// MapBusinessToResponse converts a business profile to an API response.
func MapBusinessToResponse(business *businessDomain.Business) BusinessResponse {
	return BusinessResponse{
		ID:                business.ID,
		DisplayName:       business.DisplayName,
		Category:          business.Category,
		Location:          business.Location,
		IsActive:          business.IsActive,
		StampsNeeded:      business.StampsNeeded,
		RewardDescription: business.RewardDescription,
		TotalStampsGiven:  business.TotalStampsGiven,
		RewardsRedeemed:   business.RewardsRedeemed,
		CreatedAt:         business.CreatedAt,
		UpdatedAt:         business.UpdatedAt,
	}
}

// DailyStatsResponse represents one day of scan counters.
type DailyStatsResponse struct {
	Day           string `json:"day"`
	StampsGiven   int64  `json:"stamps_given"`
	RewardsEarned int64  `json:"rewards_earned"`
}

// MapDailyStatsToResponse converts daily counters to API responses.
func MapDailyStatsToResponse(stats []*businessDomain.DailyStats) []DailyStatsResponse {
	responses := make([]DailyStatsResponse, 0, len(stats))
	for _, s := range stats {
		responses = append(responses, DailyStatsResponse{
			Day:           s.Day.Format("2006-01-02"),
			StampsGiven:   s.StampsGiven,
			RewardsEarned: s.RewardsEarned,
		})
	}
	return responses
}
