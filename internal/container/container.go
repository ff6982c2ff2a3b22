package container

import (
	"context"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"go-food-lens/internal/chat"
	"go-food-lens/internal/config"
	"go-food-lens/internal/imaging"
	"go-food-lens/internal/logmeal"
	"go-food-lens/internal/service"
	"go-food-lens/internal/storage"
	"go-food-lens/internal/store"
	"go-food-lens/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config      *config.Config
	mongoClient *mongo.Client
	handler     http.Handler
}

// NewContainer wires configuration into the full dependency graph: document
// store, artifact store, normalizer, analysis client, chat client, services
// and the HTTP handler.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	mongoClient, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}
	st := store.NewStore(mongoClient.Database(cfg.MongoDB))

	artifacts, err := storage.NewArtifactStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	normalizer := imaging.NewNormalizer(cfg.JPEGQuality, cfg.MaxImageDimension)
	analyzer := logmeal.NewClient(cfg.LogMealBaseURL, cfg.APIToken, cfg.AnalysisTimeout)

	gemini, err := chat.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat client: %w", err)
	}

	scanSvc := service.NewScanService(artifacts, normalizer, analyzer, st)
	dietSvc := service.NewDietService(st)
	handler := transport.NewHandler(scanSvc, dietSvc, gemini, cfg)

	return &Container{
		config:      cfg,
		mongoClient: mongoClient,
		handler:     handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases the document store connection.
func (c *Container) Close(ctx context.Context) error {
	return c.mongoClient.Disconnect(ctx)
}
