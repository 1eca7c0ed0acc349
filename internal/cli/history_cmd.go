package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planqa/aperture/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		planLabel string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored metric runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := app.OpenRepo()
			if err != nil {
				return err
			}
			defer closeRepo()

			runs, err := repo.ListRuns(context.Background(), planLabel, limit)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatRuns(runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&planLabel, "plan", "", "Only show runs for this plan label")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	cmd.AddCommand(newHistoryShowCmd(app))

	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a stored run with all its metric values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := app.OpenRepo()
			if err != nil {
				return err
			}
			defer closeRepo()

			run, err := repo.GetRun(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatRun(run))
			return nil
		},
	}
}
