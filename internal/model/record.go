package model

import (
	"time"

	"github.com/mrled/stackcalc/internal/exercise"
)

// EvaluationRecord is the stored outcome of running one stack exercise on one input
type EvaluationRecord struct {
	ID       string
	Kind     exercise.Kind
	Input    string
	Valid    bool
	Result   int64
	Overflow bool
	Reason   string
	EvalTime time.Time
}

// GroupByKind groups records by their exercise kind
func GroupByKind(records []*EvaluationRecord) map[exercise.Kind][]*EvaluationRecord {
	grouped := make(map[exercise.Kind][]*EvaluationRecord)
	for _, record := range records {
		grouped[record.Kind] = append(grouped[record.Kind], record)
	}
	return grouped
}
