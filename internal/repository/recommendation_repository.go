package repository

import (
	"context"
	"errors"
	"fmt"

	"equiptrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// generateLockKey is the advisory lock held while a recommendation batch is replaced.
const generateLockKey int64 = 0x6571756970

// maxBindParams is the most parameters postgres accepts in one statement.
const maxBindParams = 65535

var recommendationColumns = []string{
	"id", "type", "title", "description", "savings_text", "implemented", "created_at", "hours_saved",
	"device_id",
	"current_location", "optimal_location", "best_overall_location", "best_storage_location",
	"distance_saved", "movements_per_month", "percent_improvement",
	"device_type", "utilization_rate", "additional_units",
	"hours_used", "threshold", "urgency",
}

type RecommendationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRecommendationRepository(db *pgxpool.Pool, logger *zap.Logger) *RecommendationRepository {
	return &RecommendationRepository{
		db:     db,
		logger: logger,
	}
}

func recommendationValues(rec *models.Recommendation) []any {
	return []any{
		rec.ID, rec.Type, rec.Title, rec.Description, rec.SavingsText, rec.Implemented, rec.CreatedAt, rec.HoursSaved,
		rec.DeviceID,
		rec.CurrentLocation, rec.OptimalLocation, rec.BestOverallLocation, rec.BestStorageLocation,
		rec.DistanceSaved, rec.MovementsPerMonth, rec.PercentImprovement,
		rec.DeviceType, rec.UtilizationRate, rec.AdditionalUnits,
		rec.HoursUsed, rec.Threshold, rec.Urgency,
	}
}

// recommendationInserts splits a batch into INSERT statements that each stay
// under the bind parameter limit.
func recommendationInserts(recommendations []*models.Recommendation) []squirrel.InsertBuilder {
	perStatement := maxBindParams / len(recommendationColumns)

	var inserts []squirrel.InsertBuilder
	for start := 0; start < len(recommendations); start += perStatement {
		end := min(start+perStatement, len(recommendations))
		builder := squirrel.Insert("recommendations").
			Columns(recommendationColumns...).
			PlaceholderFormat(squirrel.Dollar)
		for _, rec := range recommendations[start:end] {
			builder = builder.Values(recommendationValues(rec)...)
		}
		inserts = append(inserts, builder)
	}
	return inserts
}

// ReplaceAll deletes the previous batch and inserts recommendations in one
// transaction guarded by a transaction-scoped advisory lock.
func (r *RecommendationRepository) ReplaceAll(ctx context.Context, recommendations []*models.Recommendation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", generateLockKey); err != nil {
		return fmt.Errorf("failed to acquire generate lock: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM recommendations"); err != nil {
		return fmt.Errorf("failed to clear recommendations: %w", err)
	}

	for _, builder := range recommendationInserts(recommendations) {
		sql, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to insert recommendations: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recommendations: %w", err)
	}

	r.logger.Debug("Recommendations replaced", zap.Int("count", len(recommendations)))
	return nil
}

func (r *RecommendationRepository) Get(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	query := squirrel.Select(recommendationColumns...).
		From("recommendations").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rec, err := scanRecommendation(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("recommendation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RecommendationRepository) Find(ctx context.Context, filter RecommendationFilter) ([]*models.Recommendation, error) {
	query := squirrel.Select(recommendationColumns...).
		From("recommendations").
		OrderBy("created_at DESC", "hours_saved DESC").
		PlaceholderFormat(squirrel.Dollar)
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.DeviceID != "" {
		query = query.Where(squirrel.Eq{"device_id": filter.DeviceID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recommendations []*models.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, rows.Err()
}

func (r *RecommendationRepository) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM recommendations WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recommendation %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *RecommendationRepository) RemoveAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "DELETE FROM recommendations")
	return err
}

func scanRecommendation(row pgx.Row) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := row.Scan(
		&rec.ID, &rec.Type, &rec.Title, &rec.Description, &rec.SavingsText, &rec.Implemented, &rec.CreatedAt, &rec.HoursSaved,
		&rec.DeviceID,
		&rec.CurrentLocation, &rec.OptimalLocation, &rec.BestOverallLocation, &rec.BestStorageLocation,
		&rec.DistanceSaved, &rec.MovementsPerMonth, &rec.PercentImprovement,
		&rec.DeviceType, &rec.UtilizationRate, &rec.AdditionalUnits,
		&rec.HoursUsed, &rec.Threshold, &rec.Urgency,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}
