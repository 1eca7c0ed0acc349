package formatter

import (
	"strings"
	"time"

	"github.com/planqa/aperture/internal/domain"
)

// FormatRuns renders the run history list.
func FormatRuns(runs []*domain.Run) string {
	if len(runs) == 0 {
		return Dim("No runs recorded.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			Dim(run.ID),
			StyleBlue.Render(run.PlanLabel),
			run.SourceFile,
			run.CreatedAt.Local().Format(time.RFC3339),
		})
	}
	return RenderTable([]string{"RUN", "PLAN", "SOURCE", "WHEN"}, rows)
}

// FormatRun renders a single stored run with its metric rows.
func FormatRun(run *domain.Run) string {
	var b strings.Builder

	b.WriteString(Header("Run " + run.ID))
	b.WriteString("\n")
	b.WriteString(Dim("plan:") + " " + run.PlanLabel + "\n")
	if run.SourceFile != "" {
		b.WriteString(Dim("source:") + " " + run.SourceFile + "\n")
	}
	b.WriteString(Dim("when:") + " " + run.CreatedAt.Local().Format(time.RFC3339) + "\n")
	b.WriteString("\n")

	planRows := make([][]string, 0, len(run.PlanMetrics))
	for _, pm := range run.PlanMetrics {
		planRows = append(planRows, []string{
			StyleBlue.Render(pm.Metric),
			FormatValue(pm.Value),
			Dim(pm.Unit),
		})
	}
	b.WriteString(RenderTable([]string{"METRIC", "VALUE", "UNIT"}, planRows))

	if len(run.BeamMetrics) > 0 {
		b.WriteString("\n")
		beamRows := make([][]string, 0, len(run.BeamMetrics))
		for _, bm := range run.BeamMetrics {
			beamRows = append(beamRows, []string{
				bm.BeamName,
				StyleBlue.Render(bm.Metric),
				FormatValue(bm.Value),
				FormatValue(bm.BeamMU),
			})
		}
		b.WriteString(RenderTable([]string{"BEAM", "METRIC", "VALUE", "MU"}, beamRows))
	}

	return b.String()
}
