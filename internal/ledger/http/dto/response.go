package dto

import (
	"time"

	businessDto "github.com/allisson/stampd/internal/business/http/dto"
	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
)

// ScanResponse represents the outcome of a scan in API responses.
type ScanResponse struct {
	Success           bool   `json:"success"`
	Reason            string `json:"reason,omitempty"`
	Message           string `json:"message"`
	CustomerID        string `json:"customer_id,omitempty"`
	BusinessID        string `json:"business_id,omitempty"`
	BusinessName      string `json:"business_name,omitempty"`
	CurrentStamps     int64  `json:"current_stamps"`
	StampsNeeded      int64  `json:"stamps_needed"`
	RewardEarned      bool   `json:"reward_earned"`
	Claimed           bool   `json:"claimed"`
	IsNewCard         bool   `json:"is_new_card"`
	RewardDescription string `json:"reward_description,omitempty"`
}

// MapScanResultToResponse converts a scan result to an API response.
func MapScanResultToResponse(result *ledgerDomain.ScanResult) ScanResponse {
	return ScanResponse{
		Success:           result.Success,
		Reason:            string(result.Reason),
		Message:           result.Message,
		CustomerID:        result.CustomerID,
		BusinessID:        result.BusinessID,
		BusinessName:      result.BusinessName,
		CurrentStamps:     result.CurrentStamps,
		StampsNeeded:      result.StampsNeeded,
		RewardEarned:      result.RewardEarned,
		Claimed:           result.Claimed,
		IsNewCard:         result.IsNewCard,
		RewardDescription: result.RewardDescription,
	}
}

// CardResponse represents a ledger record in API responses.
type CardResponse struct {
	ID                string    `json:"id"`
	CustomerID        string    `json:"customer_id"`
	CustomerEmail     string    `json:"customer_email"`
	BusinessID        string    `json:"business_id"`
	BusinessName      string    `json:"business_name"`
	CurrentStamps     int64     `json:"current_stamps"`
	StampsNeeded      int64     `json:"stamps_needed"`
	RewardDescription string    `json:"reward_description"`
	RewardEarned      bool      `json:"reward_earned"`
	Claimed           bool      `json:"claimed"`
	BusinessVerified  bool      `json:"business_verified"`
	CreatedAt         time.Time `json:"created_at"`
	LastVisitAt       time.Time `json:"last_visit_at"`
}

// MapRecordToResponse converts a ledger record to an API response.
func MapRecordToResponse(record *ledgerDomain.LedgerRecord) CardResponse {
	return CardResponse{
		ID:                record.ID(),
		CustomerID:        record.CustomerID,
		CustomerEmail:     record.CustomerEmail,
		BusinessID:        record.BusinessID,
		BusinessName:      record.BusinessName,
		CurrentStamps:     record.CurrentStamps,
		StampsNeeded:      record.StampsNeeded,
		RewardDescription: record.RewardDescription,
		RewardEarned:      record.RewardEarned(),
		Claimed:           record.Claimed,
		BusinessVerified:  record.BusinessVerified,
		CreatedAt:         record.CreatedAt,
		LastVisitAt:       record.LastVisitAt,
	}
}

// CardListResponse represents a list of ledger records in API responses.
type CardListResponse struct {
	Data []CardResponse `json:"data"`
}

// MapRecordsToListResponse converts ledger records to a list API response.
func MapRecordsToListResponse(records []*ledgerDomain.LedgerRecord) CardListResponse {
	data := make([]CardResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapRecordToResponse(record))
	}
	return CardListResponse{Data: data}
}

// DashboardResponse represents a business dashboard in API responses.
type DashboardResponse struct {
	Business       businessDto.BusinessResponse     `json:"business"`
	TotalCustomers int64                            `json:"total_customers"`
	RecentActivity []CardResponse                   `json:"recent_activity"`
	DailyStats     []businessDto.DailyStatsResponse `json:"daily_stats"`
}

// MapDashboardToResponse converts a dashboard to an API response.
func MapDashboardToResponse(dashboard *ledgerDomain.Dashboard) DashboardResponse {
	return DashboardResponse{
		Business:       businessDto.MapBusinessToResponse(dashboard.Business),
		TotalCustomers: dashboard.TotalCustomers,
		RecentActivity: MapRecordsToListResponse(dashboard.RecentActivity).Data,
		DailyStats:     businessDto.MapDailyStatsToResponse(dashboard.DailyStats),
	}
}
