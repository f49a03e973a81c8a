package model

import "sort"

// SortBy specifies the field and order for sorting evaluation records
type SortBy string

const (
	SortByKind     SortBy = "kind"
	SortByInput    SortBy = "input"
	SortByEvalTime SortBy = "eval-time"
	SortByResult   SortBy = "result"
	SortByDefault  SortBy = "" // Default sort: kind, then ID
)

// SortRecords sorts a slice of evaluation records in place based on the specified field.
// The sortBy parameter should be one of: "kind", "input", "eval-time", "result".
// If sortBy is empty or unrecognized, records are sorted by kind, then by ID.
func SortRecords(records []*EvaluationRecord, sortBy string) {
	switch SortBy(sortBy) {
	case SortByKind:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Kind < records[j].Kind
		})
	case SortByInput:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Input < records[j].Input
		})
	case SortByEvalTime:
		// Most recent first
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].EvalTime.After(records[j].EvalTime)
		})
	case SortByResult:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Result < records[j].Result
		})
	default:
		sort.Slice(records, func(i, j int) bool {
			if records[i].Kind != records[j].Kind {
				return records[i].Kind < records[j].Kind
			}
			return records[i].ID < records[j].ID
		})
	}
}
