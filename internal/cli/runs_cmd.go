package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/paperplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errNoDatabase = errors.New("no plan database configured (set PAPERPLAN_DB)")

func newRunsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored planning runs",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Runs == nil {
				return errNoDatabase
			}
			runs, err := app.Runs.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatRuns(runs))
			return nil
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a stored run's schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Runs == nil {
				return errNoDatabase
			}
			run, err := app.Runs.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, 0, run.Schedule.Len())
			for _, id := range run.Schedule.IDs() {
				iv, _ := run.Schedule.Interval(id)
				rows = append(rows, []string{id, iv.StartDate.Format("2006-01-02"), iv.EndDate.Format("2006-01-02")})
			}
			fmt.Print(formatter.RenderTable([]string{"SUBMISSION", "START", "END"}, rows))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Runs == nil {
				return errNoDatabase
			}
			return app.Runs.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, show, remove)
	return cmd
}
