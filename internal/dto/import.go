package dto

import (
	"time"

	"equiptrack/internal/models"
)

type ImportResponse struct {
	ID               string            `json:"id"`
	FileName         string            `json:"file_name"`
	FileSize         int64             `json:"file_size"`
	FileHash         string            `json:"file_hash"`
	Rows             int               `json:"rows"`
	Movements        int               `json:"movements"`
	Duplicates       int               `json:"duplicates"`
	Skipped          int               `json:"skipped"`
	DevicesUpdated   int               `json:"devices_updated"`
	LocationsMarked  int               `json:"locations_marked"`
	UnknownLocations []string          `json:"unknown_locations"`
	Errors           []models.RowError `json:"errors"`
	CreatedAt        string            `json:"created_at"`
}

type ImportRecordsRequest struct {
	Records []map[string]any `json:"records"`
}

type ImportRunResponse struct {
	ID               string `json:"id"`
	FileName         string `json:"file_name"`
	FileSize         int64  `json:"file_size"`
	FileHash         string `json:"file_hash"`
	Rows             int    `json:"rows"`
	Movements        int    `json:"movements"`
	Duplicates       int    `json:"duplicates"`
	Errors           int    `json:"errors"`
	UnknownLocations int    `json:"unknown_locations"`
	CreatedAt        string `json:"created_at"`
}

func NewImportRunResponse(run *models.ImportRun) ImportRunResponse {
	return ImportRunResponse{
		ID:               run.ID.String(),
		FileName:         run.FileName,
		FileSize:         run.FileSize,
		FileHash:         run.FileHash,
		Rows:             run.Rows,
		Movements:        run.Movements,
		Duplicates:       run.Duplicates,
		Errors:           run.Errors,
		UnknownLocations: run.UnknownLocations,
		CreatedAt:        run.CreatedAt.Format(time.RFC3339),
	}
}
