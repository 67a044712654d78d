// Package app wires the analysis stages into a linear pipeline:
// load -> statistics -> charts -> segmentation -> report.
package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kstrelnikov/salesanalyzer/internal/loader"
	"github.com/kstrelnikov/salesanalyzer/internal/models"
	"github.com/kstrelnikov/salesanalyzer/internal/report"
	"github.com/kstrelnikov/salesanalyzer/internal/segment"
	"github.com/kstrelnikov/salesanalyzer/internal/stats"
	"github.com/kstrelnikov/salesanalyzer/internal/viz"
)

// Config supplies the two paths the pipeline needs.
type Config interface {
	InputPath() string
	OutputDir() string
}

// Log interface for logging
type Log interface {
	Info(string, ...zap.Field)
	Warn(string, ...zap.Field)
	Error(string, ...zap.Field)
}

// Pipeline runs the full analysis. Each stage returns its result explicitly;
// the only table mutation is attaching cluster labels after segmentation.
type Pipeline struct {
	cfg Config
	log Log
}

// New creates a Pipeline instance.
func New(cfg Config, log Log) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes the stages in order. A data-format or segmentation error
// halts the pipeline; a failed chart artifact is reported and the remaining
// independent artifacts are still attempted. Files already written stay on
// disk either way.
func (p *Pipeline) Run() error {
	table, err := loader.Load(p.cfg.InputPath())
	if err != nil {
		p.log.Error("loading failed", zap.String("kind", kindOf(err)), zap.Error(err))
		return err
	}
	p.log.Info("data loaded", zap.String("path", p.cfg.InputPath()), zap.Int("rows", len(table)))

	summary := stats.Summarize(table)
	p.log.Info("statistics computed",
		zap.Float64("total_revenue", summary.TotalRevenue),
		zap.Int("transactions", summary.Count))

	var failedArtifacts int
	renderers := []struct {
		file   string
		render func(string) error
	}{
		{viz.DashboardFile, func(path string) error { return viz.RenderDashboard(table, summary, path) }},
		{viz.SunburstFile, func(path string) error { return viz.RenderSunburst(table, path) }},
		{viz.ScatterFile, func(path string) error { return viz.RenderScatter(table, path) }},
	}
	for _, r := range renderers {
		path := filepath.Join(p.cfg.OutputDir(), r.file)
		if err := r.render(path); err != nil {
			failedArtifacts++
			p.log.Warn("artifact failed", zap.String("kind", kindOf(err)), zap.String("file", r.file), zap.Error(err))
			continue
		}
		p.log.Info("artifact written", zap.String("file", r.file))
	}

	labels, clusters, err := segment.Cluster(table)
	if err != nil {
		p.log.Error("segmentation failed", zap.String("kind", kindOf(err)), zap.Error(err))
		return err
	}
	for i := range table {
		table[i].Segment = labels[i]
	}
	p.log.Info("segmentation complete", zap.Int("clusters", segment.ClusterCount))

	if err := report.Write(p.cfg.OutputDir(), summary, clusters); err != nil {
		p.log.Error("report failed", zap.String("kind", kindOf(err)), zap.Error(err))
		return err
	}
	p.log.Info("artifact written", zap.String("file", report.FileName))

	if failedArtifacts > 0 {
		return fmt.Errorf("%w: %d chart artifact(s) failed", models.ErrArtifact, failedArtifacts)
	}
	return nil
}

// kindOf maps an error to its pipeline error kind for log output.
func kindOf(err error) string {
	switch {
	case errors.Is(err, models.ErrDataFormat):
		return "DataFormatError"
	case errors.Is(err, models.ErrSegmentation):
		return "SegmentationError"
	case errors.Is(err, models.ErrArtifact):
		return "IOError"
	default:
		return "InternalError"
	}
}
