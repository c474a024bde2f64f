// Package cli wires the planning engine to its cobra command surface. The
// commands are thin: they translate flags into planner requests and render
// results through the formatter.
package cli

import (
	"os"

	"github.com/alexanderramin/paperplan/internal/repository"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// App holds the dependencies shared by CLI commands.
type App struct {
	// Runs is nil when no database was opened (PAPERPLAN_DB=none).
	Runs repository.PlanRunRepo

	// Interactive reports whether stdout is a terminal; prompts and color
	// are disabled otherwise.
	Interactive bool
}

// NewApp builds an App, detecting terminal interactivity.
func NewApp(runs repository.PlanRunRepo) *App {
	return &App{
		Runs:        runs,
		Interactive: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// NewRootCmd creates the top-level "paperplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "paperplan",
		Short:         "Constraint-aware submission planner",
		Long:          "Plans academic submissions onto a calendar, respecting dependencies,\nvenue deadlines, working days, and the concurrency cap.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newValidateCmd(app),
		newScoreCmd(app),
		newRunsCmd(app),
	)

	return root
}
