package domain

import "fmt"

// ScanFailureReason names why a scan was rejected.
type ScanFailureReason string

const (
	ReasonInvalidFormat         ScanFailureReason = "invalid_format"
	ReasonInvalidToken          ScanFailureReason = "invalid_token"
	ReasonInvalidOrExpiredToken ScanFailureReason = "invalid_or_expired_token"
	ReasonBusinessNotFound      ScanFailureReason = "business_not_found"
	ReasonBusinessInactive      ScanFailureReason = "business_inactive"
)

// Message returns the human readable text shown to the scanning business.
func (r ScanFailureReason) Message() string {
	switch r {
	case ReasonInvalidFormat:
		return "The scanned code is not a valid stamp card"
	case ReasonInvalidToken:
		return "This stamp card is not valid here"
	case ReasonInvalidOrExpiredToken:
		return "This stamp card is invalid or has been deactivated"
	case ReasonBusinessNotFound:
		return "Business not found"
	case ReasonBusinessInactive:
		return "This business is not accepting stamps right now"
	default:
		return "Scan rejected"
	}
}

// ScanResult is the outcome of one scan. Rejected scans carry Success=false and a Reason.
type ScanResult struct {
	Success           bool
	Reason            ScanFailureReason
	CustomerID        string
	BusinessID        string
	BusinessName      string
	CurrentStamps     int64
	StampsNeeded      int64
	RewardEarned      bool
	Claimed           bool
	IsNewCard         bool
	RewardDescription string
	Message           string
}

// FailedScan builds the result of a rejected scan.
func FailedScan(reason ScanFailureReason) *ScanResult {
	return &ScanResult{
		Success: false,
		Reason:  reason,
		Message: reason.Message(),
	}
}

// SucceededScan builds the result of a scan that was written to record.
func SucceededScan(record *LedgerRecord, isNewCard bool) *ScanResult {
	result := &ScanResult{
		Success:           true,
		CustomerID:        record.CustomerID,
		BusinessID:        record.BusinessID,
		BusinessName:      record.BusinessName,
		CurrentStamps:     record.CurrentStamps,
		StampsNeeded:      record.StampsNeeded,
		RewardEarned:      record.RewardEarned(),
		Claimed:           record.Claimed,
		IsNewCard:         isNewCard,
		RewardDescription: record.RewardDescription,
	}

	switch {
	case result.RewardEarned && result.RewardDescription != "":
		result.Message = fmt.Sprintf("Reward earned: %s", result.RewardDescription)
	case result.RewardEarned:
		result.Message = "Reward earned"
	case isNewCard:
		result.Message = fmt.Sprintf("New card started: %d/%d stamps", result.CurrentStamps, result.StampsNeeded)
	default:
		result.Message = fmt.Sprintf("Stamp added: %d/%d stamps", result.CurrentStamps, result.StampsNeeded)
	}
	return result
}
