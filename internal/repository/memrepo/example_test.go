package memrepo

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/model"
)

func ExampleMemoryRepository() {
	tmpFile, _ := os.CreateTemp("", "example-*.json")
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	ctx := context.Background()
	repo, _ := NewMemoryRepositoryWithPersistence(tmpPath)

	record := &model.EvaluationRecord{
		ID:       "v1:f:example",
		Kind:     exercise.Factorial,
		Input:    "5",
		Valid:    true,
		Result:   120,
		EvalTime: time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC),
	}

	repo.Store(ctx, record)

	// Read the JSON file to show format
	content, _ := os.ReadFile(tmpPath)
	fmt.Println(string(content))

	// Output:
	// [
	//   {
	//     "ID": "v1:f:example",
	//     "Kind": "f",
	//     "Input": "5",
	//     "Valid": true,
	//     "Result": 120,
	//     "Overflow": false,
	//     "Reason": "",
	//     "EvalTime": "2025-10-17T12:00:00Z"
	//   }
	// ]
}
