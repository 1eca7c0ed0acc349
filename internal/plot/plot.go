// Package plot renders per-control-point metric series to image files for
// visual plan review.
package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveBeamSeries writes one PNG per beam under dir, named
// <metric>_<beam>.png. The X axis is the control point index.
func SaveBeamSeries(dir, metric, unit string, series map[string][]float64) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating plot directory: %w", err)
	}

	beams := make([]string, 0, len(series))
	for beam := range series {
		beams = append(beams, beam)
	}
	sort.Strings(beams)

	var written []string
	for _, beam := range beams {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", metric, sanitize(beam)))
		if err := saveSeries(path, metric, unit, beam, series[beam]); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func saveSeries(path, metric, unit, beam string, values []float64) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, beam %s", metric, beam)
	p.X.Label.Text = "control point"
	p.Y.Label.Text = metric
	if unit != "" {
		p.Y.Label.Text = fmt.Sprintf("%s [%s]", metric, unit)
	}

	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building line for beam %s: %w", beam, err)
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot %s: %w", path, err)
	}
	return nil
}

// sanitize keeps beam names usable as file name components.
func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
