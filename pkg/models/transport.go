package models

// AddToDietRequest is the body of POST /api/add-to-diet.
type AddToDietRequest struct {
	MealType      string         `json:"mealType"`
	NutritionData map[string]any `json:"nutritionData"`
	Timestamp     string         `json:"timestamp"`
}

// ChatRequest is the body of POST /api/chatbot.
type ChatRequest struct {
	Message string `json:"message"`
}
