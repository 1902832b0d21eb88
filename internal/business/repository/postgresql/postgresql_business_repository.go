// Package postgresql implements business profile persistence for PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	"github.com/allisson/stampd/internal/database"
)

// PostgreSQLBusinessRepository implements business persistence for PostgreSQL.
// Counters are only ever changed with single-statement increments.
type PostgreSQLBusinessRepository struct {
	db *sql.DB
}

// Create inserts a new business profile. Returns ErrBusinessAlreadyExists on a duplicate id.
func (p *PostgreSQLBusinessRepository) Create(ctx context.Context, business *businessDomain.Business) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO businesses (id, display_name, category, location, is_active, stamps_needed,
			  reward_description, total_stamps_given, rewards_redeemed, secret_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		business.ID,
		business.DisplayName,
		business.Category,
		business.Location,
		business.IsActive,
		business.StampsNeeded,
		business.RewardDescription,
		business.TotalStampsGiven,
		business.RewardsRedeemed,
		business.SecretHash,
		business.CreatedAt,
		business.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return businessDomain.ErrBusinessAlreadyExists
		}
		return database.ClassifyError(err, "failed to create business")
	}
	return nil
}

// Get retrieves a business profile by id. Returns ErrBusinessNotFound if absent.
func (p *PostgreSQLBusinessRepository) Get(ctx context.Context, businessID string) (*businessDomain.Business, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, display_name, category, location, is_active, stamps_needed, reward_description,
			  total_stamps_given, rewards_redeemed, secret_hash, created_at, updated_at
			  FROM businesses WHERE id = $1`

	var business businessDomain.Business

	err := querier.QueryRowContext(ctx, query, businessID).Scan(
		&business.ID,
		&business.DisplayName,
		&business.Category,
		&business.Location,
		&business.IsActive,
		&business.StampsNeeded,
		&business.RewardDescription,
		&business.TotalStampsGiven,
		&business.RewardsRedeemed,
		&business.SecretHash,
		&business.CreatedAt,
		&business.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, businessDomain.ErrBusinessNotFound
		}
		return nil, database.ClassifyError(err, "failed to get business")
	}

	return &business, nil
}

// Update writes the profile fields of an existing business. Returns ErrBusinessNotFound if absent.
func (p *PostgreSQLBusinessRepository) Update(ctx context.Context, business *businessDomain.Business) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE businesses
			  SET display_name = $1,
			      category = $2,
			      location = $3,
			      is_active = $4,
			      stamps_needed = $5,
			      reward_description = $6,
			      updated_at = $7
			  WHERE id = $8`

	result, err := querier.ExecContext(
		ctx,
		query,
		business.DisplayName,
		business.Category,
		business.Location,
		business.IsActive,
		business.StampsNeeded,
		business.RewardDescription,
		business.UpdatedAt,
		business.ID,
	)
	if err != nil {
		return database.ClassifyError(err, "failed to update business")
	}
	return requireRow(result, "failed to update business")
}

// IncrementStats adds to the lifetime counters. Returns ErrBusinessNotFound if absent.
func (p *PostgreSQLBusinessRepository) IncrementStats(
	ctx context.Context,
	businessID string,
	stampsGiven, rewards int64,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE businesses
			  SET total_stamps_given = total_stamps_given + $1,
			      rewards_redeemed = rewards_redeemed + $2
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, stampsGiven, rewards, businessID)
	if err != nil {
		return database.ClassifyError(err, "failed to increment business stats")
	}
	return requireRow(result, "failed to increment business stats")
}

// IncrementDailyStats upserts the daily row, adding to its counters when it already exists.
func (p *PostgreSQLBusinessRepository) IncrementDailyStats(
	ctx context.Context,
	businessID string,
	day time.Time,
	stampsGiven, rewards int64,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO business_daily_stats (business_id, day, stamps_given, rewards_earned)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (business_id, day) DO UPDATE
			  SET stamps_given = business_daily_stats.stamps_given + EXCLUDED.stamps_given,
			      rewards_earned = business_daily_stats.rewards_earned + EXCLUDED.rewards_earned`

	if _, err := querier.ExecContext(ctx, query, businessID, day, stampsGiven, rewards); err != nil {
		return database.ClassifyError(err, "failed to increment daily stats")
	}
	return nil
}

// ListDailyStats returns the daily rows on or after since, oldest first.
func (p *PostgreSQLBusinessRepository) ListDailyStats(
	ctx context.Context,
	businessID string,
	since time.Time,
) ([]*businessDomain.DailyStats, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT business_id, day, stamps_given, rewards_earned
			  FROM business_daily_stats
			  WHERE business_id = $1 AND day >= $2
			  ORDER BY day ASC`

	rows, err := querier.QueryContext(ctx, query, businessID, since)
	if err != nil {
		return nil, database.ClassifyError(err, "failed to list daily stats")
	}
	defer func() {
		_ = rows.Close()
	}()

	stats := make([]*businessDomain.DailyStats, 0)
	for rows.Next() {
		var s businessDomain.DailyStats
		if err := rows.Scan(&s.BusinessID, &s.Day, &s.StampsGiven, &s.RewardsEarned); err != nil {
			return nil, database.ClassifyError(err, "failed to scan daily stats")
		}
		s.Day = businessDomain.DayOf(s.Day)
		stats = append(stats, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, database.ClassifyError(err, "failed to iterate daily stats")
	}

	return stats, nil
}

func requireRow(result sql.Result, msg string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return database.ClassifyError(err, msg)
	}
	if affected == 0 {
		return businessDomain.ErrBusinessNotFound
	}
	return nil
}

// NewPostgreSQLBusinessRepository creates a new PostgreSQL business repository.
func NewPostgreSQLBusinessRepository(db *sql.DB) *PostgreSQLBusinessRepository {
	return &PostgreSQLBusinessRepository{db: db}
}
