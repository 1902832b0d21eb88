package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
)

func TestMapBusinessToResponse(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	business := &businessDomain.Business{
		ID:                "corner-cafe",
		DisplayName:       "Corner Cafe",
		Category:          "cafe",
		Location:          "Main St",
		IsActive:          true,
		StampsNeeded:      10,
		RewardDescription: "Free coffee",
		TotalStampsGiven:  42,
		RewardsRedeemed:   3,
		SecretHash:        "argon2id-hash",
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	response := MapBusinessToResponse(business)

	assert.Equal(t, "corner-cafe", response.ID)
	assert.Equal(t, "Corner Cafe", response.DisplayName)
	assert.True(t, response.IsActive)
	assert.Equal(t, int64(10), response.StampsNeeded)
	assert.Equal(t, int64(42), response.TotalStampsGiven)
	assert.Equal(t, int64(3), response.RewardsRedeemed)
	assert.Equal(t, now, response.CreatedAt)
}

func TestMapDailyStatsToResponse(t *testing.T) {
	t.Run("formats days", func(t *testing.T) {
		stats := []*businessDomain.DailyStats{
			{BusinessID: "corner-cafe", Day: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), StampsGiven: 5, RewardsEarned: 1},
			{BusinessID: "corner-cafe", Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), StampsGiven: 2},
		}

		responses := MapDailyStatsToResponse(stats)

		require.Len(t, responses, 2)
		assert.Equal(t, DailyStatsResponse{Day: "2026-03-01", StampsGiven: 5, RewardsEarned: 1}, responses[0])
		assert.Equal(t, "2026-03-02", responses[1].Day)
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		responses := MapDailyStatsToResponse(nil)
		assert.NotNil(t, responses)
		assert.Empty(t, responses)
	})
}
