package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mrled/stackcalc/internal/repository/memrepo"
)

func TestNewRepository_InMemoryByDefault(t *testing.T) {
	repo, err := NewRepository(context.Background(), RepositoryConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.(*memrepo.MemoryRepository); !ok {
		t.Errorf("Expected *memrepo.MemoryRepository, got %T", repo)
	}
}

func TestNewRepository_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	repo, err := NewRepository(context.Background(), RepositoryConfig{FilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.(*memrepo.MemoryRepository); !ok {
		t.Errorf("Expected *memrepo.MemoryRepository, got %T", repo)
	}
}

func TestRepositoryConfig_Persistent(t *testing.T) {
	tests := []struct {
		name     string
		cfg      RepositoryConfig
		expected bool
	}{
		{"empty", RepositoryConfig{}, false},
		{"file", RepositoryConfig{FilePath: "x.json"}, true},
		{"dynamo", RepositoryConfig{DynamoTable: "t"}, true},
		{"endpoint only", RepositoryConfig{DynamoEndpoint: "http://localhost:8000"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Persistent(); got != tt.expected {
				t.Errorf("Persistent() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
