package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/paperplan/internal/cli/formatter"
	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/spf13/cobra"
)

func newValidateCmd(app *App) *cobra.Command {
	var (
		configPath   string
		schedulePath string
		today        string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a schedule document against a configuration",
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
			result := p.Validate(cmd.Context(), schedule)
			fmt.Print(formatter.FormatValidation(result))
			if !result.IsValid {
				return fmt.Errorf("%d constraint violations", len(result.Violations))
			}
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

// loadSchedule reads either a bare intervals object or a full schedule
// document (with an "intervals" key).
func loadSchedule(path string) (*domain.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Intervals json.RawMessage `json:"intervals"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Intervals) > 0 {
		data = wrapped.Intervals
	}

	schedule := domain.NewSchedule()
	if err := json.Unmarshal(data, schedule); err != nil {
		return nil, fmt.Errorf("parsing schedule %s: %w", path, err)
	}
	return schedule, nil
}
