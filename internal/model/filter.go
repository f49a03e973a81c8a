package model

import "strings"

// RecordFilter contains criteria for filtering evaluation records.
// All criteria are optional; only non-empty slices and non-nil pointers are applied.
// Within each field, values are combined with OR logic (any value matches).
// Between fields, criteria are combined with AND logic (all fields must match).
type RecordFilter struct {
	// Kinds filters by exercise kind codes (OR within list)
	Kinds []string

	// Inputs filters by exact input text, ignoring surrounding whitespace (OR within list)
	Inputs []string

	// Valid filters by the validity flag when set
	Valid *bool
}

// FilterRecords filters a slice of evaluation records based on the provided criteria.
// Returns a new slice containing only records that match the filter.
// Empty filter slices are ignored (treated as "match all").
func FilterRecords(records []*EvaluationRecord, filter RecordFilter) []*EvaluationRecord {
	if len(filter.Kinds) == 0 && len(filter.Inputs) == 0 && filter.Valid == nil {
		return records
	}

	kindMap := make(map[string]bool)
	for _, k := range filter.Kinds {
		kindMap[k] = true
	}

	inputMap := make(map[string]bool)
	for _, in := range filter.Inputs {
		inputMap[strings.TrimSpace(in)] = true
	}

	var filtered []*EvaluationRecord

	for _, record := range records {
		if len(filter.Kinds) > 0 && !kindMap[string(record.Kind)] {
			continue
		}

		if len(filter.Inputs) > 0 && !inputMap[strings.TrimSpace(record.Input)] {
			continue
		}

		if filter.Valid != nil && record.Valid != *filter.Valid {
			continue
		}

		filtered = append(filtered, record)
	}

	return filtered
}
