package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealType is the closed set of slots a meal can be logged against.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeOther     MealType = "other"
)

// Valid reports whether the meal type is one of the accepted slots.
func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeOther:
		return true
	}
	return false
}

// NutritionPayload is the raw nutrition document returned by the analysis
// provider. It is stored verbatim so new provider fields survive round trips.
type NutritionPayload map[string]any

// FoodNames extracts the provider's foodName field. The provider returns
// either a list of names or a single name; both shapes are accepted.
func (p NutritionPayload) FoodNames() ([]string, bool) {
	raw, ok := p["foodName"]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case string:
		return []string{v}, true
	case []string:
		return v, true
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, false
			}
			names = append(names, name)
		}
		return names, true
	}
	return nil, false
}

// ScannedItem is the persisted record of one completed image-to-nutrition
// analysis. Items are append-only; identity comes from the store.
type ScannedItem struct {
	ID         primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	FoodNames  []string           `json:"foodNames" bson:"foodNames"`
	WholeData  NutritionPayload   `json:"wholeData" bson:"wholeData"`
	CapturedAt time.Time          `json:"captured_at" bson:"captured_at"`
}

// DietLogEntry is the persisted record of one meal a user attributes to a
// meal-type slot and time. The nutrition data and timestamp are client
// supplied and stored as given.
type DietLogEntry struct {
	ID            primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	MealType      MealType           `json:"meal_type" bson:"meal_type"`
	NutritionData map[string]any     `json:"nutrition_data" bson:"nutrition_data"`
	Timestamp     string             `json:"timestamp" bson:"timestamp"`
}
