package logmeal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "go-food-lens/internal/errors"
)

func writeArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.jpg")
	if err := os.WriteFile(path, []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}
	return path
}

func TestClient_TwoStepProtocol(t *testing.T) {
	var segRequests, nutritionRequests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Expected bearer credential, got %q", got)
		}

		switch r.URL.Path {
		case "/image/segmentation/complete":
			segRequests++
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("Expected multipart body: %v", err)
			}
			if _, _, err := r.FormFile("image"); err != nil {
				t.Errorf("Expected image form file: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]any{"imageId": 42})
		case "/recipe/nutritionalInfo":
			nutritionRequests++
			var body map[string]int64
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("Expected JSON body: %v", err)
			}
			if body["imageId"] != 42 {
				t.Errorf("Expected imageId 42, got %d", body["imageId"])
			}
			json.NewEncoder(w).Encode(map[string]any{"foodName": []string{"apple"}, "calories": 95})
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", 5*time.Second)
	ctx := context.Background()

	seg, err := client.CompleteSegmentation(ctx, writeArtifact(t))
	if err != nil {
		t.Fatalf("Expected segmentation success, got: %v", err)
	}
	if seg.ImageID != 42 {
		t.Errorf("Expected imageId 42, got %d", seg.ImageID)
	}

	payload, err := client.NutritionalInfo(ctx, seg.ImageID)
	if err != nil {
		t.Fatalf("Expected nutrition success, got: %v", err)
	}
	if cal, _ := payload["calories"].(float64); cal != 95 {
		t.Errorf("Expected calories 95, got %v", payload["calories"])
	}
	names, ok := payload.FoodNames()
	if !ok || len(names) != 1 || names[0] != "apple" {
		t.Errorf("Expected foodName [apple], got %v (ok=%v)", names, ok)
	}

	if segRequests != 1 || nutritionRequests != 1 {
		t.Errorf("Expected exactly one call per step, got %d and %d", segRequests, nutritionRequests)
	}
}

func TestClient_SegmentationFailures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantType   apperrors.ErrorType
		wantStatus int
	}{
		{
			name: "Non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"bad token"}`))
			},
			wantType:   apperrors.ErrorTypeUpstream,
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "Missing identifier field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ok":true}`))
			},
			wantType:   apperrors.ErrorTypeUpstream,
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "Malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			wantType:   apperrors.ErrorTypeUpstream,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, "test-token", 5*time.Second)
			_, err := client.CompleteSegmentation(context.Background(), writeArtifact(t))
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !apperrors.IsType(err, tt.wantType) {
				t.Errorf("Expected %s error, got: %v", tt.wantType, err)
			}
			if got := apperrors.GetStatusCode(err); got != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, got)
			}
		})
	}
}

func TestClient_UnreachableProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	client := NewClient(server.URL, "test-token", 2*time.Second)
	_, err := client.CompleteSegmentation(context.Background(), writeArtifact(t))
	if err == nil {
		t.Fatal("Expected error, got none")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeUnavailable) {
		t.Errorf("Expected unavailable error, got: %v", err)
	}
}

func TestClient_NutritionFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("provider down"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", 5*time.Second)
	_, err := client.NutritionalInfo(context.Background(), 42)
	if err == nil {
		t.Fatal("Expected error, got none")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeUpstream) {
		t.Errorf("Expected upstream error, got: %v", err)
	}
}
