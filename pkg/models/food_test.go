package models

import (
	"reflect"
	"testing"
)

func TestNutritionPayload_FoodNames(t *testing.T) {
	tests := []struct {
		name      string
		payload   NutritionPayload
		wantNames []string
		wantOK    bool
	}{
		{
			name:      "List of names",
			payload:   NutritionPayload{"foodName": []any{"apple", "banana"}},
			wantNames: []string{"apple", "banana"},
			wantOK:    true,
		},
		{
			name:      "Single name",
			payload:   NutritionPayload{"foodName": "apple"},
			wantNames: []string{"apple"},
			wantOK:    true,
		},
		{
			name:      "String slice",
			payload:   NutritionPayload{"foodName": []string{"rice"}},
			wantNames: []string{"rice"},
			wantOK:    true,
		},
		{
			name:    "Missing field",
			payload: NutritionPayload{"calories": 95},
			wantOK:  false,
		},
		{
			name:    "Non-string list entries",
			payload: NutritionPayload{"foodName": []any{1, 2}},
			wantOK:  false,
		},
		{
			name:    "Wrong type",
			payload: NutritionPayload{"foodName": 42},
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, ok := tt.payload.FoodNames()
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if tt.wantOK && !reflect.DeepEqual(names, tt.wantNames) {
				t.Errorf("Expected %v, got %v", tt.wantNames, names)
			}
		})
	}
}

func TestMealType_Valid(t *testing.T) {
	for _, mt := range []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeOther} {
		if !mt.Valid() {
			t.Errorf("Expected %q to be valid", mt)
		}
	}
	for _, mt := range []MealType{"snack", "", "Breakfast"} {
		if mt.Valid() {
			t.Errorf("Expected %q to be invalid", mt)
		}
	}
}
