package service

import (
	"context"

	apperrors "go-food-lens/internal/errors"
	"go-food-lens/pkg/models"
)

// DietService validates and persists client-logged meals. Entries are
// independent of scanned items; the same meal can be logged twice and both
// entries are kept.
type DietService struct {
	store DietLogStore
}

func NewDietService(store DietLogStore) *DietService {
	return &DietService{store: store}
}

// AddToDiet validates the request and persists a new diet log entry.
// Validation failures never reach the store.
func (s *DietService) AddToDiet(ctx context.Context, req models.AddToDietRequest) (*models.DietLogEntry, error) {
	if req.MealType == "" || len(req.NutritionData) == 0 {
		return nil, apperrors.NewValidationError("Meal type or nutrition data missing", nil)
	}

	mealType := models.MealType(req.MealType)
	if !mealType.Valid() {
		return nil, apperrors.NewValidationError("Invalid meal type", nil)
	}

	entry := &models.DietLogEntry{
		MealType:      mealType,
		NutritionData: req.NutritionData,
		Timestamp:     req.Timestamp,
	}
	if err := s.store.InsertDietLog(ctx, entry); err != nil {
		return nil, apperrors.NewPersistenceError("failed to save diet log", err)
	}
	return entry, nil
}

// ListDietLogs returns the complete diet log history.
func (s *DietService) ListDietLogs(ctx context.Context) ([]models.DietLogEntry, error) {
	entries, err := s.store.ListDietLogs(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to load diet logs", err)
	}
	return entries, nil
}
