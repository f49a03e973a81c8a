package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/model"
	"gopkg.in/yaml.v3"
)

// FormatValidation renders the validator's verdict as a single line
func FormatValidation(valid bool) string {
	if valid {
		return "Valid expression."
	}
	return "Invalid expression."
}

// FormatFactorial renders a factorial result as a single line
func FormatFactorial(value int64) string {
	return fmt.Sprintf("Factorial: %d", value)
}

// FormatRecord renders an evaluation record the way the matching command would print it
func FormatRecord(record *model.EvaluationRecord) string {
	if record.Overflow {
		return fmt.Sprintf("Factorial: overflow (%s! exceeds int64)", record.Input)
	}
	if record.Kind == exercise.Factorial {
		return FormatFactorial(record.Result)
	}
	return FormatValidation(record.Valid)
}

// recordView is the serialized shape of a record in json and yaml output
type recordView struct {
	ID       string    `json:"id" yaml:"id"`
	Kind     string    `json:"kind" yaml:"kind"`
	Input    string    `json:"input" yaml:"input"`
	Valid    bool      `json:"valid" yaml:"valid"`
	Result   *int64    `json:"result,omitempty" yaml:"result,omitempty"`
	Overflow bool      `json:"overflow,omitempty" yaml:"overflow,omitempty"`
	Reason   string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	EvalTime time.Time `json:"evalTime" yaml:"evalTime"`
}

func toViews(records []*model.EvaluationRecord) []recordView {
	views := make([]recordView, 0, len(records))
	for _, r := range records {
		v := recordView{
			ID:       r.ID,
			Kind:     r.Kind.Name(),
			Input:    r.Input,
			Valid:    r.Valid,
			Overflow: r.Overflow,
			Reason:   r.Reason,
			EvalTime: r.EvalTime.UTC(),
		}
		if r.Kind == exercise.Factorial && !r.Overflow {
			result := r.Result
			v.Result = &result
		}
		views = append(views, v)
	}
	return views
}

// WriteRecordsJSON writes records as an indented JSON array
func WriteRecordsJSON(w io.Writer, records []*model.EvaluationRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toViews(records))
}

// WriteRecordsYAML writes records as a YAML sequence
func WriteRecordsYAML(w io.Writer, records []*model.EvaluationRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toViews(records)); err != nil {
		return err
	}
	return enc.Close()
}

// TruncateString truncates a string to the specified length with ellipsis
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Rule returns a horizontal separator of the given width
func Rule(width int) string {
	return strings.Repeat("-", width)
}
