package commands

import (
	"fmt"

	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/presenter"
	"github.com/mrled/stackcalc/internal/usecase/evaluate"
	"github.com/spf13/cobra"
)

var validateFlags struct {
	PersistenceFlags
	Strict  bool
	Explain bool
}

var validateCmd = &cobra.Command{
	Use:     "validate [expression...]",
	Short:   "Check that parentheses in expressions are balanced",
	GroupID: "exercises",
	Long: `Check each expression for balanced parentheses and print one line per expression:
"Valid expression." or "Invalid expression."

Only '(' and ')' are considered; every other character is ignored. With no arguments
the configured default expression is checked (` + "`(5+3)*(2+(4-1))`" + ` unless overridden).

Examples:
  # Check the default expression
  stackcalc validate

  # Check several expressions and explain failures
  stackcalc validate --explain "(5+3))" "((5+3)"

  # Exit with status 1 if any expression is unbalanced
  stackcalc validate --strict "(1+2"

  # Record results for later review
  stackcalc validate --file ./history.json "(a(b)c)"`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exprs := args
		if len(exprs) == 0 {
			exprs = []string{appConfig.Defaults.Expression}
		}

		uc, err := validateFlags.newEvaluateUseCase(cmd.Context(), evaluate.Options{})
		if err != nil {
			return err
		}

		requests := make([]evaluate.Request, len(exprs))
		for i, expr := range exprs {
			requests[i] = evaluate.Request{Kind: exercise.Parens, Input: expr}
		}

		results, err := uc.EvaluateBatch(cmd.Context(), requests, appConfig.Batch.Concurrency)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		invalid := 0
		for _, r := range results {
			if r.Err != nil {
				return r.Err
			}

			fmt.Fprintln(out, presenter.FormatValidation(r.Record.Valid))
			if !r.Record.Valid {
				invalid++
				if validateFlags.Explain {
					fmt.Fprintf(out, "  %s: %s\n", r.Record.Input, r.Record.Reason)
				}
			}
		}

		if validateFlags.Strict && invalid > 0 {
			return ExitWithCode(1, fmt.Errorf("%d of %d expressions are invalid", invalid, len(results)))
		}

		return nil
	},
}

func init() {
	addPersistenceFlags(validateCmd, &validateFlags.PersistenceFlags)
	validateCmd.Flags().BoolVar(&validateFlags.Strict, "strict", false, "Exit with status 1 if any expression is invalid")
	validateCmd.Flags().BoolVar(&validateFlags.Explain, "explain", false, "Print why each invalid expression failed")
}
