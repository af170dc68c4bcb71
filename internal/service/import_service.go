package service

import (
	"bytes"
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"time"

	"equiptrack/internal/dto"
	"equiptrack/internal/ingest"
	"equiptrack/internal/models"
	"equiptrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImportOptions struct {
	// SkipSeen refuses files whose content hash was imported before.
	SkipSeen bool
}

type ImportService struct {
	store     *repository.Store
	movements *MovementService
	logger    *zap.Logger
}

func NewImportService(store *repository.Store, movements *MovementService, logger *zap.Logger) *ImportService {
	return &ImportService{
		store:     store,
		movements: movements,
		logger:    logger,
	}
}

// ImportCSV reads an event export, builds movements from it and records the run.
func (s *ImportService) ImportCSV(ctx context.Context, fileName string, file io.Reader, opts ImportOptions) (*dto.ImportResponse, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	hash := fmt.Sprintf("%x", md5.Sum(data))

	if opts.SkipSeen {
		prev, err := s.store.Imports.GetByHash(ctx, hash)
		if err == nil {
			s.logger.Info("File already imported, skipping",
				zap.String("file", fileName),
				zap.String("hash", hash),
				zap.Time("imported_at", prev.CreatedAt),
			)
			return nil, fmt.Errorf("%w: %s", ErrAlreadyImported, fileName)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	parsed, err := ingest.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(parsed.MissingColumns) > 0 {
		s.logger.Warn("Export lacks columns, affected rows will be reported",
			zap.String("file", fileName),
			zap.Strings("columns", parsed.MissingColumns),
		)
	}

	return s.importRows(ctx, fileName, int64(len(data)), hash, parsed.Events, parsed.Errors)
}

// ImportRecords builds movements from keyed records such as a JSON body.
func (s *ImportService) ImportRecords(ctx context.Context, source string, records []map[string]any) (*dto.ImportResponse, error) {
	return s.importRows(ctx, source, 0, "", ingest.FromRecords(records), nil)
}

func (s *ImportService) importRows(
	ctx context.Context,
	fileName string,
	size int64,
	hash string,
	rows []models.RawEvent,
	readErrors []models.RowError,
) (*dto.ImportResponse, error) {
	build, err := s.movements.Build(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build movements: %w", err)
	}

	rowErrors := append(readErrors, build.Errors...)
	run := &models.ImportRun{
		ID:               uuid.New(),
		FileName:         sanitizeLabel(fileName),
		FileSize:         size,
		FileHash:         hash,
		Rows:             build.Rows + len(readErrors),
		Movements:        build.Inserted,
		Duplicates:       build.Duplicates,
		Errors:           len(rowErrors),
		UnknownLocations: len(build.UnknownLocations),
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.store.Imports.Insert(ctx, run); err != nil {
		s.logger.Warn("Failed to record import run", zap.String("file", fileName), zap.Error(err))
	}

	if rowErrors == nil {
		rowErrors = []models.RowError{}
	}
	unknown := build.UnknownLocations
	if unknown == nil {
		unknown = []string{}
	}

	return &dto.ImportResponse{
		ID:               run.ID.String(),
		FileName:         run.FileName,
		FileSize:         run.FileSize,
		FileHash:         run.FileHash,
		Rows:             run.Rows,
		Movements:        build.Inserted,
		Duplicates:       build.Duplicates,
		Skipped:          build.Skipped,
		DevicesUpdated:   build.DevicesUpdated,
		LocationsMarked:  build.LocationsMarked,
		UnknownLocations: unknown,
		Errors:           rowErrors,
		CreatedAt:        run.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ListImports returns recent import runs, newest first.
func (s *ImportService) ListImports(ctx context.Context, limit uint64) ([]*models.ImportRun, error) {
	return s.store.Imports.List(ctx, limit)
}
