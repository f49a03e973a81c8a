package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/mrled/stackcalc/internal/model"
	"github.com/mrled/stackcalc/internal/repository/dynamorepo"
	"github.com/mrled/stackcalc/internal/repository/memrepo"
)

// RepositoryConfig holds configuration for creating a repository
type RepositoryConfig struct {
	// FilePath for JSON file persistence (ignored when DynamoTable is set)
	FilePath string

	// DynamoTable is the DynamoDB table name for persistence
	DynamoTable string

	// DynamoEndpoint is an optional custom DynamoDB endpoint URL
	DynamoEndpoint string
}

// Persistent reports whether the configuration names a backing store
func (c RepositoryConfig) Persistent() bool {
	return c.DynamoTable != "" || c.FilePath != ""
}

// NewRepository creates an EvaluationRepository based on the provided configuration.
// DynamoDB takes precedence over a JSON file; with neither configured the
// repository lives in memory only.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (model.EvaluationRepository, error) {
	if cfg.DynamoTable != "" {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := NewDynamoClient(awsCfg, cfg.DynamoEndpoint)
		slog.Debug("Using DynamoDB persistence",
			slog.String("table", cfg.DynamoTable),
			slog.String("endpoint", cfg.DynamoEndpoint))
		return dynamorepo.NewDynamoRepository(client, cfg.DynamoTable), nil
	}

	if cfg.FilePath != "" {
		memRepo, err := memrepo.NewMemoryRepositoryWithPersistence(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create repository: %w", err)
		}
		slog.Debug("Using JSON persistence", slog.String("file", cfg.FilePath))
		return memRepo, nil
	}

	slog.Debug("Using in-memory persistence")
	return memrepo.NewMemoryRepository(), nil
}
