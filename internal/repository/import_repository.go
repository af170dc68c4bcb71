package repository

import (
	"context"
	"errors"
	"fmt"

	"equiptrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var importColumns = []string{
	"id", "file_name", "file_size", "file_hash", "row_count", "movements", "duplicates", "errors",
	"unknown_locations", "created_at",
}

type ImportRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewImportRepository(db *pgxpool.Pool, logger *zap.Logger) *ImportRepository {
	return &ImportRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ImportRepository) Insert(ctx context.Context, run *models.ImportRun) error {
	query := squirrel.Insert("imports").
		Columns(importColumns...).
		Values(run.ID, run.FileName, run.FileSize, run.FileHash, run.Rows, run.Movements, run.Duplicates,
			run.Errors, run.UnknownLocations, run.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// GetByHash returns the most recent run for a file content hash.
func (r *ImportRepository) GetByHash(ctx context.Context, hash string) (*models.ImportRun, error) {
	query := squirrel.Select(importColumns...).
		From("imports").
		Where(squirrel.Eq{"file_hash": hash}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	run, err := scanImport(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("import %s: %w", hash, ErrNotFound)
	}
	return run, err
}

func (r *ImportRepository) List(ctx context.Context, limit uint64) ([]*models.ImportRun, error) {
	query := squirrel.Select(importColumns...).
		From("imports").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	if limit > 0 {
		query = query.Limit(limit)
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

	var runs []*models.ImportRun
	for rows.Next() {
		run, err := scanImport(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *ImportRepository) RemoveAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "DELETE FROM imports")
	return err
}

func scanImport(row pgx.Row) (*models.ImportRun, error) {
	var run models.ImportRun
	if err := row.Scan(
		&run.ID, &run.FileName, &run.FileSize, &run.FileHash, &run.Rows, &run.Movements, &run.Duplicates,
		&run.Errors, &run.UnknownLocations, &run.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &run, nil
}
