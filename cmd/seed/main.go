package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"equiptrack/internal/app"
	"equiptrack/internal/dto"
	"equiptrack/internal/service"
	"equiptrack/pkg/config"
	"equiptrack/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", filepath.Join("cmd", "seed", "data"), "directory of CSV event logs")
	generate := flag.Bool("generate", true, "generate recommendations after importing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	appLogger.Info("Starting event log seeding", zap.String("dir", *dir))

	cacheFile := filepath.Join(*dir, ".seed_cache.json")
	if err := seedEventLogs(ctx, *dir, cacheFile, a.Imports, appLogger); err != nil {
		appLogger.Fatal("Failed to seed event logs", zap.Error(err))
	}

	if *generate {
		res, err := a.Recommendations.Generate(ctx)
		if err != nil {
			appLogger.Fatal("Failed to generate recommendations", zap.Error(err))
		}
		if res.Declined {
			appLogger.Warn("Recommendation generation declined", zap.String("reason", res.Reason))
		}
	}

	appLogger.Info("Seeding completed")
}

// SeededFile is one imported log in the cache.
type SeededFile struct {
	FilePath   string    `json:"file_path"`
	FileHash   string    `json:"file_hash"`
	Movements  int       `json:"movements"`
	ImportedAt time.Time `json:"imported_at"`
}

// CacheData remembers imported logs by path so unchanged files are skipped.
type CacheData struct {
	SeededFiles map[string]SeededFile `json:"seeded_files"`
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{SeededFiles: make(map[string]SeededFile)}

	data, err := os.ReadFile(cacheFile)
	if errors.Is(err, os.ErrNotExist) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.SeededFiles == nil {
		cache.SeededFiles = make(map[string]SeededFile)
	}
	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// listEventLogs returns the .csv files of dir in name order.
func listEventLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// seedEventLogs imports every CSV log in dir that the cache has not seen with
// the same content. The store's own import log is consulted as well, so a
// lost cache file does not cause a re-import.
func seedEventLogs(
	ctx context.Context,
	dir string,
	cacheFile string,
	imports *service.ImportService,
	logger *zap.Logger,
) error {
	cache, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Failed to load cache, will process all files", zap.Error(err))
		cache = &CacheData{SeededFiles: make(map[string]SeededFile)}
	}

	files, err := listEventLogs(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("No CSV event logs found", zap.String("dir", dir))
		return nil
	}

	for _, path := range files {
		fileHash, err := calculateFileHash(path)
		if err != nil {
			logger.Warn("Failed to calculate file hash, will import anyway", zap.String("path", path), zap.Error(err))
		}

		if cached, ok := cache.SeededFiles[path]; ok {
			if cached.FileHash == fileHash {
				logger.Info("Event log already imported, skipping",
					zap.String("path", path),
					zap.Time("imported_at", cached.ImportedAt),
				)
				continue
			}
			logger.Info("Event log changed, reimporting",
				zap.String("path", path),
				zap.String("old_hash", cached.FileHash),
				zap.String("new_hash", fileHash),
			)
		}

		res, err := importFile(ctx, imports, path)
		if errors.Is(err, service.ErrAlreadyImported) {
			logger.Info("Event log content already in store, skipping", zap.String("path", path))
		} else if err != nil {
			logger.Error("Failed to import event log", zap.String("path", path), zap.Error(err))
			continue
		} else {
			logger.Info("Imported event log",
				zap.String("path", path),
				zap.Int("rows", res.Rows),
				zap.Int("movements", res.Movements),
				zap.Int("duplicates", res.Duplicates),
				zap.Int("row_errors", len(res.Errors)),
				zap.Strings("unknown_locations", res.UnknownLocations),
			)
		}

		entry := SeededFile{FilePath: path, FileHash: fileHash, ImportedAt: time.Now()}
		if res != nil {
			entry.Movements = res.Movements
		}
		cache.SeededFiles[path] = entry
	}

	if err := saveCache(cacheFile, cache); err != nil {
		logger.Warn("Failed to save cache", zap.Error(err))
	} else {
		logger.Info("Cache saved", zap.Int("seeded_files", len(cache.SeededFiles)))
	}
	return nil
}

func importFile(ctx context.Context, imports *service.ImportService, path string) (*dto.ImportResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return imports.ImportCSV(ctx, filepath.Base(path), f, service.ImportOptions{SkipSeen: true})
}
