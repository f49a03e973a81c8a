package model

import (
	"context"
	"errors"

	"github.com/mrled/stackcalc/internal/exercise"
)

var (
	ErrNotFound      = errors.New("evaluation record not found")
	ErrAlreadyExists = errors.New("evaluation record already exists")
)

// EvaluationRepository defines the interface for storing and retrieving evaluation records
type EvaluationRepository interface {
	// Store saves a record; it returns ErrAlreadyExists if the kind and ID are taken
	Store(ctx context.Context, record *EvaluationRecord) error

	// Get retrieves a record by kind and record ID (the composite key)
	Get(ctx context.Context, kind exercise.Kind, id string) (*EvaluationRecord, error)

	// List retrieves all records
	List(ctx context.Context) ([]*EvaluationRecord, error)

	// Delete removes a record by kind and record ID
	Delete(ctx context.Context, kind exercise.Kind, id string) error
}
