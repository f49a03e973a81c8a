package commands

import (
	"errors"
	"fmt"

	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/factorial"
	"github.com/mrled/stackcalc/internal/presenter"
	"github.com/mrled/stackcalc/internal/usecase/evaluate"
	"github.com/spf13/cobra"
)

var factorialFlags struct {
	PersistenceFlags
	CheckOverflow bool
}

var factorialCmd = &cobra.Command{
	Use:     "factorial [n...]",
	Short:   "Compute factorials by draining a stack",
	GroupID: "exercises",
	Long: `Compute n! for each argument by pushing n, n-1, ..., 2 onto a stack and
multiplying while popping. Prints one "Factorial: <value>" line per input.

Values are 64-bit signed integers. Results are exact up to n = ` + fmt.Sprint(factorial.MaxExact) + `; beyond
that the product wraps silently unless --check-overflow is given. Inputs of 1 or
less (including negative numbers) yield 1. Inputs above ` + fmt.Sprint(evaluate.MaxFactorialInput) + ` are rejected.

Examples:
  # Compute the default input (5)
  stackcalc factorial

  # Compute several values
  stackcalc factorial 0 1 10 20

  # Fail instead of wrapping
  stackcalc factorial --check-overflow 21`,
	Args: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			if _, err := evaluate.ParseFactorialInput(arg); err != nil {
				return UsageError{err}
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs := args
		if len(inputs) == 0 {
			inputs = []string{fmt.Sprint(appConfig.Defaults.Factorial)}
		}

		uc, err := factorialFlags.newEvaluateUseCase(cmd.Context(), evaluate.Options{
			CheckOverflow: factorialFlags.CheckOverflow,
		})
		if err != nil {
			return err
		}

		requests := make([]evaluate.Request, len(inputs))
		for i, in := range inputs {
			requests[i] = evaluate.Request{Kind: exercise.Factorial, Input: in}
		}

		results, err := uc.EvaluateBatch(cmd.Context(), requests, appConfig.Batch.Concurrency)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var overflowed []error
		for _, r := range results {
			if errors.Is(r.Err, factorial.ErrOverflow) {
				overflowed = append(overflowed, r.Err)
				continue
			}
			if r.Err != nil {
				return r.Err
			}
			fmt.Fprintln(out, presenter.FormatFactorial(r.Record.Result))
		}

		if len(overflowed) > 0 {
			return ExitWithCode(1, errors.Join(overflowed...))
		}

		return nil
	},
}

func init() {
	addPersistenceFlags(factorialCmd, &factorialFlags.PersistenceFlags)
	factorialCmd.Flags().BoolVar(&factorialFlags.CheckOverflow, "check-overflow", false, "Fail instead of wrapping when n! exceeds int64")
}
