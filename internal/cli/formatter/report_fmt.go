package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/planqa/aperture/internal/service"
)

// FormatReport renders a computed report: a plan summary, the plan-level
// metric table and a per-beam table for each metric.
func FormatReport(report *service.Report) string {
	var b strings.Builder

	b.WriteString(Header("Plan " + report.Plan.Label))
	b.WriteString("\n")
	if report.Plan.PlanName != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("name:"), report.Plan.PlanName))
	}
	if report.Plan.PatientID != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("patient:"), report.Plan.PatientID))
	}
	b.WriteString(fmt.Sprintf("%s %d treatment, %d total\n",
		Dim("beams:"), len(report.Plan.TreatmentBeams()), len(report.Plan.Beams)))
	b.WriteString(fmt.Sprintf("%s %s MU\n", Dim("meterset:"), FormatValue(report.Plan.TotalMU())))
	b.WriteString("\n")

	b.WriteString(Header("Plan metrics"))
	b.WriteString("\n")
	planRows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		planRows = append(planRows, []string{
			StyleBlue.Render(res.Metric),
			FormatValue(res.PlanValue),
			Dim(res.Unit),
		})
	}
	b.WriteString(RenderTable([]string{"METRIC", "VALUE", "UNIT"}, planRows))

	if len(report.Results) > 0 && len(report.Results[0].Beams) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Beam metrics"))
		b.WriteString("\n")
		beamRows := make([][]string, 0)
		for _, res := range report.Results {
			for _, bv := range res.Beams {
				beamRows = append(beamRows, []string{
					bv.Beam,
					StyleBlue.Render(res.Metric),
					FormatValue(bv.Value),
					FormatValue(bv.MU),
				})
			}
		}
		b.WriteString(RenderTable([]string{"BEAM", "METRIC", "VALUE", "MU"}, beamRows))
	}

	if len(report.ModulationIndices) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Modulation indices"))
		b.WriteString("\n")
		miRows := make([][]string, 0, len(report.ModulationIndices))
		for _, mi := range report.ModulationIndices {
			miRows = append(miRows, []string{
				mi.Beam,
				FormatValue(mi.Result.Speed),
				FormatValue(mi.Result.Acceleration),
				FormatValue(mi.Result.Total),
			})
		}
		b.WriteString(RenderTable([]string{"BEAM", "SPEED", "ACCEL", "TOTAL"}, miRows))
	}

	return b.String()
}

// FormatValue renders a float compactly: up to four decimals, trailing
// zeros trimmed.
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return s
}
