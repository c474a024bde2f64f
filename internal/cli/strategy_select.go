package cli

import (
	"fmt"

	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/charmbracelet/huh"
)

// resolveStrategy parses the --strategy flag, or offers an interactive
// picker when the flag is absent and stdout is a terminal.
func resolveStrategy(app *App, value string) (domain.Strategy, error) {
	if value != "" {
		strategy, ok := domain.ParseStrategy(value)
		if !ok {
			return "", fmt.Errorf("unknown strategy: %q", value)
		}
		return strategy, nil
	}
	if !app.Interactive {
		return domain.StrategyGreedy, nil
	}
	return pickStrategy()
}

var strategyDescriptions = map[domain.Strategy]string{
	domain.StrategyGreedy:       "highest priority first",
	domain.StrategyStochastic:   "greedy with noise",
	domain.StrategyLookahead:    "greedy with dependency lookahead",
	domain.StrategyBacktracking: "greedy with reversible placement",
	domain.StrategyRandom:       "random baseline",
	domain.StrategyHeuristic:    "classic dispatch orderings",
	domain.StrategyOptimal:      "exact MILP (slow)",
}

func pickStrategy() (domain.Strategy, error) {
	options := make([]huh.Option[domain.Strategy], 0, len(domain.AllStrategies()))
	for _, s := range domain.AllStrategies() {
		label := fmt.Sprintf("%-13s %s", s, strategyDescriptions[s])
		options = append(options, huh.NewOption(label, s))
	}

	var selected domain.Strategy
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[domain.Strategy]().
			Title("Scheduling strategy").
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}
