// Package service orchestrates a metric run: load the plan, evaluate the
// requested strategies, assemble the report and optionally persist it.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/planqa/aperture/internal/aperture"
	"github.com/planqa/aperture/internal/domain"
	"github.com/planqa/aperture/internal/importer"
	"github.com/planqa/aperture/internal/metrics"
	"github.com/planqa/aperture/internal/repository"
)

// Options selects what a run computes.
type Options struct {
	// Metrics are the strategy names to evaluate; empty means all
	// registered strategies.
	Metrics []string
	// PerControlPoint additionally collects the per-control-point series
	// of every treatment beam, for plotting and review.
	PerControlPoint bool
	// ModulationIndex additionally computes the Park modulation indices
	// per beam (beam-level only; they have no per-control-point form).
	ModulationIndex bool
	// ModulationIndexK bounds the threshold-fraction integral; 0 means
	// the default of 1.
	ModulationIndexK float64
}

// MetricResult is one strategy evaluated over the whole plan.
type MetricResult struct {
	Metric    string
	Unit      string
	PlanValue float64
	Beams     []metrics.BeamValue
	// Series maps beam name to the per-control-point values, present only
	// when Options.PerControlPoint is set.
	Series map[string][]float64
}

// BeamModulationIndex is the Park index triple for one beam.
type BeamModulationIndex struct {
	Beam   string
	Result metrics.ModulationIndexResult
}

// Report is the outcome of one computation run.
type Report struct {
	Plan              *domain.Plan
	SourceFile        string
	Results           []MetricResult
	ModulationIndices []BeamModulationIndex
}

// ComputeService evaluates complexity metrics over loaded plans.
type ComputeService struct {
	cfg domain.Config
	log *logrus.Logger
}

// NewComputeService creates a ComputeService with the given geometry
// configuration.
func NewComputeService(cfg domain.Config, log *logrus.Logger) *ComputeService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ComputeService{cfg: cfg, log: log}
}

// ComputeFile loads a plan file and computes the requested metrics.
func (s *ComputeService) ComputeFile(path string, opts Options) (*Report, error) {
	plan, err := importer.LoadPlan(path)
	if err != nil {
		return nil, err
	}
	report, err := s.ComputePlan(plan, opts)
	if err != nil {
		return nil, err
	}
	report.SourceFile = path
	return report, nil
}

// ComputePlan evaluates the requested strategies over an already loaded
// plan. A geometry error in any control point aborts the run: partial
// scalars would be clinically misleading.
func (s *ComputeService) ComputePlan(plan *domain.Plan, opts Options) (*Report, error) {
	strategies, err := s.resolveStrategies(opts.Metrics)
	if err != nil {
		return nil, err
	}

	s.warnShieldedLeaves(plan)

	report := &Report{Plan: plan}
	for _, strat := range strategies {
		result := MetricResult{
			Metric: strat.Name(),
			Unit:   strat.Unit(s.cfg.LengthUnit),
		}

		result.PlanValue, err = metrics.ForPlan(plan, strat, s.cfg)
		if err != nil {
			return nil, fmt.Errorf("computing %s: %w", strat.Name(), err)
		}
		result.Beams, err = metrics.ForPlanPerBeam(plan, strat, s.cfg)
		if err != nil {
			return nil, fmt.Errorf("computing %s per beam: %w", strat.Name(), err)
		}

		if opts.PerControlPoint {
			result.Series = make(map[string][]float64)
			for _, b := range plan.TreatmentBeams() {
				series, err := metrics.PerControlPoint(b, strat, s.cfg)
				if err != nil {
					return nil, fmt.Errorf("computing %s series: %w", strat.Name(), err)
				}
				result.Series[b.Name] = series
			}
		}

		s.log.WithFields(logrus.Fields{
			"metric": strat.Name(),
			"value":  result.PlanValue,
			"unit":   result.Unit,
		}).Debug("plan metric computed")

		report.Results = append(report.Results, result)
	}

	if opts.ModulationIndex {
		k := opts.ModulationIndexK
		if k == 0 {
			k = 1
		}
		for _, b := range plan.TreatmentBeams() {
			mi, err := metrics.ModulationIndexForBeam(b, s.cfg, k)
			if err != nil {
				return nil, fmt.Errorf("computing modulation index: %w", err)
			}
			report.ModulationIndices = append(report.ModulationIndices, BeamModulationIndex{Beam: b.Name, Result: mi})
		}
	}

	return report, nil
}

// warnShieldedLeaves logs open leaf pairs sitting behind the X jaws. The
// geometry is valid and the metrics handle it, but it usually means the
// upstream plan export deserves a look.
func (s *ComputeService) warnShieldedLeaves(plan *domain.Plan) {
	for _, b := range plan.TreatmentBeams() {
		apertures, err := aperture.FromBeam(b, s.cfg)
		if err != nil {
			// ComputePlan reports the error with full context.
			return
		}
		for i, ap := range apertures {
			if ap.HasOpenLeafBehindJaws() {
				s.log.WithFields(logrus.Fields{
					"beam":          b.Name,
					"control_point": i,
				}).Warn("open leaf pair behind X jaws")
			}
		}
	}
}

func (s *ComputeService) resolveStrategies(names []string) ([]metrics.Strategy, error) {
	if len(names) == 0 {
		return metrics.All(), nil
	}
	out := make([]metrics.Strategy, 0, len(names))
	for _, name := range names {
		strat, err := metrics.ByName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, strat)
	}
	return out, nil
}

// BuildRun converts a report into the persistable run record.
func BuildRun(report *Report) *domain.Run {
	run := &domain.Run{
		ID:         uuid.New().String(),
		PlanLabel:  report.Plan.Label,
		SourceFile: report.SourceFile,
		CreatedAt:  time.Now().UTC(),
	}
	for _, res := range report.Results {
		run.PlanMetrics = append(run.PlanMetrics, domain.PlanMetricValue{
			Metric: res.Metric,
			Unit:   res.Unit,
			Value:  res.PlanValue,
		})
		for _, bv := range res.Beams {
			run.BeamMetrics = append(run.BeamMetrics, domain.BeamMetricValue{
				BeamName:     bv.Beam,
				DeliveryType: domain.DeliveryTreatment,
				BeamMU:       bv.MU,
				Metric:       res.Metric,
				Value:        bv.Value,
			})
		}
	}
	return run
}

// SaveReport persists a report as a new run.
func SaveReport(ctx context.Context, repo repository.ResultRepo, report *Report) (*domain.Run, error) {
	run := BuildRun(report)
	if err := repo.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("saving run: %w", err)
	}
	return run, nil
}
