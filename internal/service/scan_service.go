package service

import (
	"context"
	"io"
	"time"

	apperrors "go-food-lens/internal/errors"
	"go-food-lens/internal/logger"
	"go-food-lens/pkg/models"
)

// ScanService orchestrates the ingestion pipeline: artifact save, image
// normalization, the two provider calls, record building and persistence.
// Every step runs once; the first failure aborts the rest. The artifact is
// removed on every exit path, success or failure.
type ScanService struct {
	artifacts  ArtifactStore
	normalizer Normalizer
	analyzer   NutritionAnalyzer
	store      ScanStore
	now        func() time.Time
}

func NewScanService(artifacts ArtifactStore, normalizer Normalizer, analyzer NutritionAnalyzer, store ScanStore) *ScanService {
	return &ScanService{
		artifacts:  artifacts,
		normalizer: normalizer,
		analyzer:   analyzer,
		store:      store,
		now:        time.Now,
	}
}

// ScanImage runs one upload through the full pipeline and returns the
// persisted scanned item. On failure nothing is persisted and the caller
// receives a single typed error.
func (s *ScanService) ScanImage(ctx context.Context, upload io.Reader, filename string) (*models.ScannedItem, error) {
	path, err := s.artifacts.Save(upload, filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.artifacts.Remove(path); err != nil {
			logger.WithError(err).WithField("artifact", path).Warn("Failed to remove temporary artifact")
		}
	}()

	if err := s.normalizer.Normalize(path); err != nil {
		return nil, err
	}

	seg, err := s.analyzer.CompleteSegmentation(ctx, path)
	if err != nil {
		return nil, err
	}

	payload, err := s.analyzer.NutritionalInfo(ctx, seg.ImageID)
	if err != nil {
		return nil, err
	}

	item, err := buildScannedItem(payload, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.store.InsertScannedItem(ctx, item); err != nil {
		return nil, apperrors.NewPersistenceError("failed to save scanned item", err)
	}
	return item, nil
}

// ListScannedItems returns the complete scan history.
func (s *ScanService) ListScannedItems(ctx context.Context) ([]models.ScannedItem, error) {
	items, err := s.store.ListScannedItems(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to load scanned items", err)
	}
	return items, nil
}

// buildScannedItem shapes the provider payload into the persisted record. A
// payload without the food-name field is an upstream defect, not a
// persistence failure, and aborts before any write.
func buildScannedItem(payload models.NutritionPayload, capturedAt time.Time) (*models.ScannedItem, error) {
	names, ok := payload.FoodNames()
	if !ok {
		return nil, apperrors.NewUpstreamError("nutrition payload missing foodName", nil)
	}
	return &models.ScannedItem{
		FoodNames:  names,
		WholeData:  payload,
		CapturedAt: capturedAt,
	}, nil
}
