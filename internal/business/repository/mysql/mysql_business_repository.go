// Package mysql implements business profile persistence for MySQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	"github.com/allisson/stampd/internal/database"
)

// MySQLBusinessRepository implements business persistence for MySQL.
// Counters are only ever changed with single-statement increments.
type MySQLBusinessRepository struct {
	db *sql.DB
}

// Create inserts a new business profile. Returns ErrBusinessAlreadyExists on a duplicate id.
func (m *MySQLBusinessRepository) Create(ctx context.Context, business *businessDomain.Business) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO businesses (id, display_name, category, location, is_active, stamps_needed,
			  reward_description, total_stamps_given, rewards_redeemed, secret_hash, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
func (m *MySQLBusinessRepository) Get(ctx context.Context, businessID string) (*businessDomain.Business, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, display_name, category, location, is_active, stamps_needed, reward_description,
			  total_stamps_given, rewards_redeemed, secret_hash, created_at, updated_at
			  FROM businesses WHERE id = ?`

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
func (m *MySQLBusinessRepository) Update(ctx context.Context, business *businessDomain.Business) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE businesses
			  SET display_name = ?,
			      category = ?,
			      location = ?,
			      is_active = ?,
			      stamps_needed = ?,
			      reward_description = ?,
			      updated_at = ?
			  WHERE id = ?`

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
	return m.requireRow(ctx, result, business.ID, "failed to update business")
}

// IncrementStats adds to the lifetime counters. Returns ErrBusinessNotFound if absent.
func (m *MySQLBusinessRepository) IncrementStats(
	ctx context.Context,
	businessID string,
	stampsGiven, rewards int64,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE businesses
			  SET total_stamps_given = total_stamps_given + ?,
			      rewards_redeemed = rewards_redeemed + ?
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, stampsGiven, rewards, businessID)
	if err != nil {
		return database.ClassifyError(err, "failed to increment business stats")
	}
	return m.requireRow(ctx, result, businessID, "failed to increment business stats")
}

// IncrementDailyStats upserts the daily row, adding to its counters when it already exists.
func (m *MySQLBusinessRepository) IncrementDailyStats(
	ctx context.Context,
	businessID string,
	day time.Time,
	stampsGiven, rewards int64,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO business_daily_stats (business_id, day, stamps_given, rewards_earned)
			  VALUES (?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  stamps_given = stamps_given + VALUES(stamps_given),
			  rewards_earned = rewards_earned + VALUES(rewards_earned)`

	if _, err := querier.ExecContext(ctx, query, businessID, day, stampsGiven, rewards); err != nil {
		return database.ClassifyError(err, "failed to increment daily stats")
	}
	return nil
}

// ListDailyStats returns the daily rows on or after since, oldest first.
func (m *MySQLBusinessRepository) ListDailyStats(
	ctx context.Context,
	businessID string,
	since time.Time,
) ([]*businessDomain.DailyStats, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT business_id, day, stamps_given, rewards_earned
			  FROM business_daily_stats
			  WHERE business_id = ? AND day >= ?
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

// requireRow maps a zero row update to ErrBusinessNotFound. MySQL reports changed rows
// rather than matched rows, so a zero count is confirmed with an existence check.
func (m *MySQLBusinessRepository) requireRow(ctx context.Context, result sql.Result, businessID, msg string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return database.ClassifyError(err, msg)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM businesses WHERE id = ?)`
	if err := database.GetTx(ctx, m.db).QueryRowContext(ctx, query, businessID).Scan(&exists); err != nil {
		return database.ClassifyError(err, msg)
	}
	if !exists {
		return businessDomain.ErrBusinessNotFound
	}
	return nil
}

// NewMySQLBusinessRepository creates a new MySQL business repository.
func NewMySQLBusinessRepository(db *sql.DB) *MySQLBusinessRepository {
	return &MySQLBusinessRepository{db: db}
}
