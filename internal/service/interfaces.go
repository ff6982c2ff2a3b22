package service

import (
	"context"
	"io"

	"go-food-lens/internal/logmeal"
	"go-food-lens/pkg/models"
)

// NutritionAnalyzer drives the provider's two-step analysis protocol. The
// segmentation identifier from step one is the only input to step two.
type NutritionAnalyzer interface {
	CompleteSegmentation(ctx context.Context, imagePath string) (*logmeal.SegmentationResult, error)
	NutritionalInfo(ctx context.Context, imageID int64) (models.NutritionPayload, error)
}

// Normalizer converts an on-disk image artifact to its canonical form.
type Normalizer interface {
	Normalize(path string) error
}

// ArtifactStore manages transient upload artifacts.
type ArtifactStore interface {
	Save(r io.Reader, originalName string) (string, error)
	Remove(path string) error
}

// ScanStore persists and lists scanned items.
type ScanStore interface {
	InsertScannedItem(ctx context.Context, item *models.ScannedItem) error
	ListScannedItems(ctx context.Context) ([]models.ScannedItem, error)
}

// DietLogStore persists and lists diet log entries.
type DietLogStore interface {
	InsertDietLog(ctx context.Context, entry *models.DietLogEntry) error
	ListDietLogs(ctx context.Context) ([]models.DietLogEntry, error)
}
