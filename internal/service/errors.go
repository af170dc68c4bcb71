package service

import "errors"

var (
	// ErrNoData is reported, not returned, when a generation run has nothing to analyze.
	ErrNoData = errors.New("no devices or movements to analyze")

	ErrRecommendationNotFound    = errors.New("recommendation not found")
	ErrDeviceNotFound            = errors.New("device not found")
	ErrUnsupportedRecommendation = errors.New("unsupported recommendation type")

	// ErrAlreadyImported marks a file whose content hash was imported before.
	ErrAlreadyImported = errors.New("file already imported")
)
