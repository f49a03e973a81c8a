package commands

import (
	"errors"
	"fmt"

	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/model"
	"github.com/mrled/stackcalc/internal/usecase/evaluate"
	"github.com/spf13/cobra"
)

var forgetFlags struct {
	PersistenceFlags
}

var forgetCmd = &cobra.Command{
	Use:     "forget <kind> <input>",
	Short:   "Delete a recorded evaluation",
	GroupID: "history",
	Long: `Delete the recorded evaluation of input for the given kind.

Arguments:
  kind    parens or factorial
  input   the expression or integer that was evaluated`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := exercise.ParseKind(args[0])
		if err != nil {
			return UsageError{err}
		}
		input := args[1]

		if !forgetFlags.repositoryConfig().Persistent() {
			return UsageError{fmt.Errorf("forget needs --file or --dynamodb-table (or persistence in the config file)")}
		}

		uc, err := forgetFlags.newEvaluateUseCase(cmd.Context(), evaluate.Options{})
		if err != nil {
			return err
		}

		err = uc.Forget(cmd.Context(), kind, input)
		if errors.Is(err, model.ErrNotFound) {
			return ExitWithCode(1, fmt.Errorf("no %s record for %q", kind.Name(), input))
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s %q\n", kind.Name(), input)
		return nil
	},
}

func init() {
	addPersistenceFlags(forgetCmd, &forgetFlags.PersistenceFlags)
}
