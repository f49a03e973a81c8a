package commands

import (
	"context"

	"github.com/mrled/stackcalc/internal/model"
	"github.com/mrled/stackcalc/internal/repository"
	"github.com/mrled/stackcalc/internal/usecase/evaluate"
	"github.com/spf13/cobra"
)

// PersistenceFlags holds flags related to persistence and data storage options
type PersistenceFlags struct {
	FilePath       string
	DynamoTable    string
	DynamoEndpoint string
}

// addPersistenceFlags adds common persistence-related flags to a command
func addPersistenceFlags(cmd *cobra.Command, flags *PersistenceFlags) {
	cmd.Flags().StringVarP(&flags.FilePath, "file", "f", "", "Path to JSON file for persistence")
	cmd.Flags().StringVarP(&flags.DynamoTable, "dynamodb-table", "t", "", "DynamoDB table name for persistence")
	cmd.Flags().StringVarP(&flags.DynamoEndpoint, "dynamodb-endpoint", "e", "", "DynamoDB endpoint URL (optional, uses AWS SDK default if not specified)")
}

// repositoryConfig merges the flags over the loaded configuration; a set flag wins
func (f *PersistenceFlags) repositoryConfig() repository.RepositoryConfig {
	cfg := repository.RepositoryConfig{
		FilePath:       appConfig.Persistence.File,
		DynamoTable:    appConfig.Persistence.DynamoDBTable,
		DynamoEndpoint: appConfig.Persistence.DynamoDBEndpoint,
	}
	if f.FilePath != "" {
		cfg.FilePath = f.FilePath
	}
	if f.DynamoTable != "" {
		cfg.DynamoTable = f.DynamoTable
	}
	if f.DynamoEndpoint != "" {
		cfg.DynamoEndpoint = f.DynamoEndpoint
	}
	return cfg
}

// newRepository opens the configured repository; with nothing configured it returns nil
// so evaluations are not recorded
func (f *PersistenceFlags) newRepository(ctx context.Context) (model.EvaluationRepository, error) {
	cfg := f.repositoryConfig()
	if !cfg.Persistent() {
		return nil, nil
	}
	return repository.NewRepository(ctx, cfg)
}

// newEvaluateUseCase builds the evaluate use case over the configured repository
func (f *PersistenceFlags) newEvaluateUseCase(ctx context.Context, opts evaluate.Options) (*evaluate.EvaluateUseCase, error) {
	repo, err := f.newRepository(ctx)
	if err != nil {
		return nil, err
	}
	return evaluate.NewEvaluateUseCase(repo, opts), nil
}
