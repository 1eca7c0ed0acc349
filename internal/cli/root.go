package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planqa/aperture/internal/cli/formatter"
	"github.com/planqa/aperture/internal/domain"
	"github.com/planqa/aperture/internal/repository"
)

// App holds the dependencies CLI commands need.
type App struct {
	Log *logrus.Logger

	// OpenRepo opens the result store lazily, so commands that never
	// persist anything do not touch the database.
	OpenRepo func() (repository.ResultRepo, func() error, error)

	// IsInteractive reports whether stdout is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "aperture" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "aperture",
		Short:         "MLC aperture complexity metrics for treatment plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool("verbose") {
				app.Log.SetLevel(logrus.DebugLevel)
			}
			if app.IsInteractive != nil && !app.IsInteractive() {
				formatter.DisableColors()
			}
		},
	}

	root.PersistentFlags().String("db", "", "Path to the result database (default ~/.aperture/aperture.db)")
	root.PersistentFlags().Float64("epsilon", 0, "Tolerance for leaf/jaw position comparisons")
	root.PersistentFlags().String("unit", "mm", "Length unit of the plan's positions")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	for _, name := range []string{"db", "epsilon", "unit", "verbose"} {
		_ = viper.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}
	viper.SetEnvPrefix("APERTURE")
	viper.AutomaticEnv()

	root.AddCommand(
		newComputeCmd(app),
		newHistoryCmd(app),
		newMetricsCmd(app),
	)

	return root
}

// geometryConfig builds the geometry configuration from flags and
// environment.
func geometryConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Epsilon = viper.GetFloat64("epsilon")
	if unit := viper.GetString("unit"); unit != "" {
		cfg.LengthUnit = unit
	}
	return cfg
}
