package cli

import (
	"fmt"

	"github.com/alexanderramin/paperplan/internal/cli/formatter"
	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/spf13/cobra"
)

func newScoreCmd(app *App) *cobra.Command {
	var (
		configPath   string
		schedulePath string
		today        string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a schedule document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			schedule, err := loadSchedule(schedulePath)
			if err != nil {
				return err
			}
			p, err := buildPlanner(cfg, today, false)
			if err != nil {
				return err
			}
			report := p.Score(cmd.Context(), schedule)
			fmt.Print(formatter.FormatScores(report))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration JSON file (required)")
	cmd.Flags().StringVar(&schedulePath, "schedule", "", "schedule JSON file (required)")
	cmd.Flags().StringVar(&today, "today", "", "reference day (YYYY-MM-DD)")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("schedule")

	return cmd
}
