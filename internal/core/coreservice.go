package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kabbandre/pit-assignment/internal/backend/database"
)

type CoreService struct {
	config          *ServiceConfig
	databaseService database.DatabaseService
}

func NewCoreService(ctx context.Context, config *ServiceConfig) (*CoreService, error) {
	databaseService, err := getDatabaseService(ctx, config)
	if err != nil {
		slog.Error("failed to initialize database service", "error", err)
		return nil, err
	}
	return &CoreService{
		config:          config,
		databaseService: databaseService,
	}, nil
}

func (service *CoreService) Config() *ServiceConfig {
	return service.config
}

func (service *CoreService) GetImages(ctx context.Context) ([]*database.Image, error) {
	return service.databaseService.GetImages(ctx)
}

func (service *CoreService) GetImageByID(ctx context.Context, id string) (*database.Image, error) {
	return service.databaseService.GetImageByID(ctx, id)
}

// CreateImage casts the recognized fields and stores them as a new image.
func (service *CoreService) CreateImage(ctx context.Context, fields map[string]any) (*database.Image, error) {
	image, err := database.ImageFromFields(fields)
	if err != nil {
		return nil, err
	}
	return service.databaseService.CreateImage(ctx, image)
}

func (service *CoreService) Ping(ctx context.Context) error {
	return service.databaseService.Ping(ctx)
}

func (service *CoreService) Close() error {
	return service.databaseService.Close()
}

func getDatabaseService(ctx context.Context, config *ServiceConfig) (database.DatabaseService, error) {
	databaseService, err := database.NewDatabase(ctx, config.Database.Type, config.Database.ConnectionString, config.Database.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("database initialized successfully", "type", config.Database.Type)
	return databaseService, nil
}
