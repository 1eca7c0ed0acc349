package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planqa/aperture/internal/cli/formatter"
	"github.com/planqa/aperture/internal/plot"
	"github.com/planqa/aperture/internal/service"
)

func newComputeCmd(app *App) *cobra.Command {
	var (
		metricNames []string
		perCP       bool
		asJSON      bool
		modIndex    bool
		modIndexK   float64
		save        bool
		plotDir     string
	)

	cmd := &cobra.Command{
		Use:   "compute <plan.json>",
		Short: "Compute complexity metrics for a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewComputeService(geometryConfig(), app.Log)

			opts := service.Options{
				Metrics:          metricNames,
				PerControlPoint:  perCP || plotDir != "",
				ModulationIndex:  modIndex,
				ModulationIndexK: modIndexK,
			}

			report, err := svc.ComputeFile(args[0], opts)
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeReportJSON(cmd, report, perCP); err != nil {
					return err
				}
			} else {
				fmt.Print(formatter.FormatReport(report))
			}

			if plotDir != "" {
				for _, res := range report.Results {
					written, err := plot.SaveBeamSeries(plotDir, res.Metric, res.Unit, res.Series)
					if err != nil {
						return err
					}
					for _, path := range written {
						fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("wrote "+path))
					}
				}
			}

			if save {
				repo, closeRepo, err := app.OpenRepo()
				if err != nil {
					return err
				}
				defer closeRepo()

				run, err := service.SaveReport(context.Background(), repo, report)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("saved run "+run.ID))
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&metricNames, "metric", "m", nil, "Metric to compute (repeatable; default all)")
	cmd.Flags().BoolVar(&perCP, "per-cp", false, "Include per-control-point series in JSON output")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON instead of a table")
	cmd.Flags().BoolVar(&modIndex, "modulation-index", false, "Also compute per-beam modulation indices")
	cmd.Flags().Float64Var(&modIndexK, "mi-k", 1, "Threshold multiplier bound for the modulation index integral")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run to the result database")
	cmd.Flags().StringVar(&plotDir, "plot", "", "Write per-control-point plots to this directory")

	return cmd
}

// reportJSON is the machine-readable shape of a computed report.
type reportJSON struct {
	Plan              string                `json:"plan"`
	SourceFile        string                `json:"source_file"`
	Metrics           []metricJSON          `json:"metrics"`
	ModulationIndices []modulationIndexJSON `json:"modulation_indices,omitempty"`
}

type metricJSON struct {
	Metric    string               `json:"metric"`
	Unit      string               `json:"unit"`
	PlanValue float64              `json:"plan_value"`
	Beams     []beamValueJSON      `json:"beams"`
	Series    map[string][]float64 `json:"series,omitempty"`
}

type beamValueJSON struct {
	Beam  string  `json:"beam"`
	MU    float64 `json:"mu"`
	Value float64 `json:"value"`
}

type modulationIndexJSON struct {
	Beam         string  `json:"beam"`
	Speed        float64 `json:"speed"`
	Acceleration float64 `json:"acceleration"`
	Total        float64 `json:"total"`
}

func writeReportJSON(cmd *cobra.Command, report *service.Report, includeSeries bool) error {
	out := reportJSON{
		Plan:       report.Plan.Label,
		SourceFile: report.SourceFile,
	}
	for _, res := range report.Results {
		m := metricJSON{
			Metric:    res.Metric,
			Unit:      res.Unit,
			PlanValue: res.PlanValue,
		}
		for _, bv := range res.Beams {
			m.Beams = append(m.Beams, beamValueJSON{Beam: bv.Beam, MU: bv.MU, Value: bv.Value})
		}
		if includeSeries {
			m.Series = res.Series
		}
		out.Metrics = append(out.Metrics, m)
	}
	for _, mi := range report.ModulationIndices {
		out.ModulationIndices = append(out.ModulationIndices, modulationIndexJSON{
			Beam:         mi.Beam,
			Speed:        mi.Result.Speed,
			Acceleration: mi.Result.Acceleration,
			Total:        mi.Result.Total,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
