package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planqa/aperture/internal/cli/formatter"
	"github.com/planqa/aperture/internal/metrics"
)

func newMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List the available complexity metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			unit := viper.GetString("unit")
			rows := make([][]string, 0)
			for _, strat := range metrics.All() {
				rows = append(rows, []string{
					formatter.StyleBlue.Render(strat.Name()),
					formatter.Dim(strat.Unit(unit)),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"METRIC", "UNIT"}, rows))
			return nil
		},
	}
}
