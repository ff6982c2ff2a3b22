package logmeal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	apperrors "go-food-lens/internal/errors"
	"go-food-lens/pkg/models"
)

const maxErrorBodyBytes = 512

// Client talks to a LogMeal-compatible analysis provider. It is a plain
// request/response mediator: one attempt per call, no retries, no caching.
// Safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a provider client authenticated with the given bearer
// token. baseURL is the provider root, e.g. "https://api.logmeal.com/v2".
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// SegmentationResult is the provider's answer to a segmentation submit. Only
// the identifier matters; it feeds the nutrition lookup and is never stored.
type SegmentationResult struct {
	ImageID int64 `json:"imageId"`
}

// CompleteSegmentation submits the normalized image as multipart field
// "image" to the provider's segmentation endpoint.
func (c *Client) CompleteSegmentation(ctx context.Context, imagePath string) (*SegmentationResult, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to open image artifact", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build multipart body", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, apperrors.NewInternalError("failed to build multipart body", err)
	}
	if err := mw.Close(); err != nil {
		return nil, apperrors.NewInternalError("failed to build multipart body", err)
	}

	respBody, err := c.post(ctx, "/image/segmentation/complete", mw.FormDataContentType(), &body, "segmentation")
	if err != nil {
		return nil, err
	}

	var seg SegmentationResult
	if err := json.Unmarshal(respBody, &seg); err != nil {
		return nil, apperrors.NewUpstreamError("malformed segmentation response", err)
	}
	if seg.ImageID == 0 {
		return nil, apperrors.NewUpstreamError("segmentation response missing imageId", nil)
	}
	return &seg, nil
}

// NutritionalInfo exchanges a segmentation identifier for the nutrition
// payload via the provider's recipe endpoint.
func (c *Client) NutritionalInfo(ctx context.Context, imageID int64) (models.NutritionPayload, error) {
	reqBody, err := json.Marshal(map[string]int64{"imageId": imageID})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to marshal nutrition request", err)
	}

	respBody, err := c.post(ctx, "/recipe/nutritionalInfo", "application/json", bytes.NewReader(reqBody), "nutrition")
	if err != nil {
		return nil, err
	}

	var payload models.NutritionPayload
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, apperrors.NewUpstreamError("malformed nutrition response", err)
	}
	return payload, nil
}

// post performs one authenticated call and returns the response body of a
// successful status, or a typed error otherwise.
func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader, step string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create "+step+" request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(step+" request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError("failed to read "+step+" response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("%s API error %d: %s", step, resp.StatusCode, truncate(respBody)), nil)
	}
	return respBody, nil
}

func transportError(message string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.NewTimeoutError(message, err)
	}
	return apperrors.NewUnavailableError(message, err)
}

func truncate(body []byte) string {
	if len(body) > maxErrorBodyBytes {
		return string(body[:maxErrorBodyBytes]) + "..."
	}
	return string(body)
}
