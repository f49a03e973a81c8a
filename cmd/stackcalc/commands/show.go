package commands

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/mrled/stackcalc/internal/evalid"
	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/model"
	"github.com/mrled/stackcalc/internal/presenter"
	"github.com/spf13/cobra"
)

var showFlags struct {
	PersistenceFlags
	Kind    string
	Input   string
	Valid   bool
	Invalid bool
	Format  string
	SortBy  string
}

var showCmd = &cobra.Command{
	Use:     "show",
	Short:   "Show recorded evaluations",
	GroupID: "history",
	Long: `Display recorded evaluations, optionally filtered by kind, input or outcome.

Examples:
  # Show all records
  stackcalc show --file ./history.json

  # Show only factorials, most recent first
  stackcalc show --file ./history.json --kind factorial --sort eval-time

  # Show unbalanced expressions as YAML
  stackcalc show --file ./history.json --kind parens --invalid --format yaml

  # Show records from DynamoDB Local
  stackcalc show --dynamodb-table evaluations --dynamodb-endpoint http://localhost:8000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		switch showFlags.Format {
		case "detailed", "compact", "json", "yaml":
		default:
			return UsageError{fmt.Errorf("unknown format %q: use detailed, compact, json, or yaml", showFlags.Format)}
		}

		if showFlags.Valid && showFlags.Invalid {
			return UsageError{fmt.Errorf("--valid and --invalid are mutually exclusive")}
		}

		filter := model.RecordFilter{}
		if showFlags.Kind != "" {
			kind, err := exercise.ParseKind(showFlags.Kind)
			if err != nil {
				return UsageError{err}
			}
			filter.Kinds = []string{string(kind)}
		}
		if showFlags.Input != "" {
			filter.Inputs = []string{showFlags.Input}
		}
		if showFlags.Valid || showFlags.Invalid {
			valid := showFlags.Valid
			filter.Valid = &valid
		}

		cfg := showFlags.repositoryConfig()
		if !cfg.Persistent() {
			return UsageError{fmt.Errorf("show needs --file or --dynamodb-table (or persistence in the config file)")}
		}

		repo, err := showFlags.newRepository(ctx)
		if err != nil {
			return err
		}

		allRecords, err := repo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		mismatched := checkRecordIDs(allRecords)

		records := model.FilterRecords(allRecords, filter)
		model.SortRecords(records, showFlags.SortBy)

		out := cmd.OutOrStdout()
		switch showFlags.Format {
		case "json":
			return presenter.WriteRecordsJSON(out, records)
		case "yaml":
			return presenter.WriteRecordsYAML(out, records)
		}

		if len(records) == 0 {
			fmt.Fprintln(out, "\nNo records found matching the specified criteria.")
			return nil
		}

		if showFlags.Format == "compact" {
			displayRecordsCompact(out, records)
		} else {
			displayRecordsDetailed(out, records)
		}

		fmt.Fprintf(out, "\nTotal records: %d\n", len(records))
		if mismatched > 0 {
			fmt.Fprintf(out, "Warning: %d stored record(s) have an ID that does not match their input\n", mismatched)
		}
		return nil
	},
}

// checkRecordIDs logs every record whose ID was not derived from its kind and input,
// and returns how many there were
func checkRecordIDs(records []*model.EvaluationRecord) int {
	mismatched := 0
	for _, record := range records {
		if err := evalid.VerifyV1(record.ID, string(record.Kind), record.Input); err != nil {
			slog.Warn("Stored record has an unexpected ID",
				slog.String("kind", string(record.Kind)),
				slog.String("id", record.ID),
				slog.String("error", err.Error()))
			mismatched++
		}
	}
	return mismatched
}

// displayRecordsDetailed displays records grouped by kind
func displayRecordsDetailed(out io.Writer, records []*model.EvaluationRecord) {
	fmt.Fprintln(out, "\n=== Evaluations ===")

	grouped := model.GroupByKind(records)
	kinds := make([]exercise.Kind, 0, len(grouped))
	for kind := range grouped {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name() < kinds[j].Name() })

	for _, kind := range kinds {
		kindRecords := grouped[kind]
		fmt.Fprintf(out, "\nKind: %s (%d)\n", kind.Name(), len(kindRecords))

		for _, record := range kindRecords {
			fmt.Fprintf(out, "  - %q => %s (evaluated: %s)\n",
				record.Input,
				presenter.FormatRecord(record),
				presenter.FormatTimeSince(record.EvalTime))
			if record.Reason != "" {
				fmt.Fprintf(out, "      reason: %s\n", record.Reason)
			}
		}
	}
}

// displayRecordsCompact displays records as a table
func displayRecordsCompact(out io.Writer, records []*model.EvaluationRecord) {
	fmt.Fprintln(out, "\n=== Evaluations (Compact) ===")
	fmt.Fprintf(out, "%-10s %-30s %-40s %s\n", "Kind", "Input", "Outcome", "Evaluated")
	fmt.Fprintln(out, presenter.Rule(95))

	for _, record := range records {
		fmt.Fprintf(out, "%-10s %-30s %-40s %s\n",
			record.Kind.Name(),
			presenter.TruncateString(record.Input, 28),
			presenter.TruncateString(presenter.FormatRecord(record), 38),
			presenter.FormatTimeSinceCompact(record.EvalTime))
	}
}

func init() {
	addPersistenceFlags(showCmd, &showFlags.PersistenceFlags)

	showCmd.Flags().StringVarP(&showFlags.Kind, "kind", "k", "", "Filter by kind: parens or factorial")
	showCmd.Flags().StringVarP(&showFlags.Input, "input", "i", "", "Filter by exact input")
	showCmd.Flags().BoolVar(&showFlags.Valid, "valid", false, "Show only valid results")
	showCmd.Flags().BoolVar(&showFlags.Invalid, "invalid", false, "Show only invalid or overflowed results")

	showCmd.Flags().StringVar(&showFlags.Format, "format", "detailed", "Output format: detailed, compact, json, or yaml")
	showCmd.Flags().StringVar(&showFlags.SortBy, "sort", "", "Sort by: kind, input, eval-time, or result")
}
