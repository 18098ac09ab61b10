// Package pipeline runs the load, merge, aggregate and render stages end to end.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/vaxviz-cli/internal/aggregate"
	"github.com/KaramelBytes/vaxviz-cli/internal/config"
	"github.com/KaramelBytes/vaxviz-cli/internal/dataset"
	"github.com/KaramelBytes/vaxviz-cli/internal/export"
	"github.com/KaramelBytes/vaxviz-cli/internal/logging"
	"github.com/KaramelBytes/vaxviz-cli/internal/render"
	"github.com/rs/zerolog"
)

// Result describes a finished run.
type Result struct {
	Manifest  *export.Manifest
	Merged    []dataset.MergedRecord
	Artifacts []string // paths, in the order they were written
}

// Run executes the whole pipeline with cfg. Confirmation lines for the HTML
// charts go to out; diagnostics go to log. The first failing stage aborts the
// run and files already written stay on disk.
func Run(ctx context.Context, cfg *config.Global, log zerolog.Logger, out io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}
	man := export.NewManifest(time.Now())
	log = log.With().Str("run_id", man.RunID).Logger()
	res := &Result{Manifest: man}
	cols := Columns(cfg.Columns)
	lopt := dataset.LoadOptions{Sheet: cfg.Sheet}

	// load
	loadLog := logging.Component(log, "loader")
	start := time.Now()
	ind, indStats, err := loadIndicators(cfg.IndicatorPath, lopt, cols)
	if err != nil {
		return nil, err
	}
	meta, metaStats, err := loadMetadata(cfg.MetadataPath, lopt, cols)
	if err != nil {
		return nil, err
	}
	loadLog.Info().
		Int("indicator_rows", len(ind)).
		Int("metadata_rows", len(meta)).
		Dur("took", time.Since(start)).
		Msg("inputs loaded")
	if indStats.MissingCode > 0 || metaStats.MissingCode > 0 {
		loadLog.Warn().
			Int("indicator_rows", indStats.MissingCode).
			Int("metadata_rows", metaStats.MissingCode).
			Msg("rows without a country code kept; they are not joined, mapped or ranked")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// merge
	mergeLog := logging.Component(log, "merge")
	merged, ms := dataset.Merge(ind, meta, dataset.MergeOptions{DedupeMetadata: cfg.DedupeMetadata})
	res.Merged = merged
	mergeLog.Info().Int("rows", ms.Rows).Int("matched", ms.Matched).Int("unmatched", ms.Unmatched).Msg("tables joined")
	if ms.DuplicateKeys > 0 {
		mergeLog.Warn().
			Int("keys", ms.DuplicateKeys).
			Bool("dedupe", cfg.DedupeMetadata).
			Msg("duplicate metadata keys")
	}
	man.Inputs = export.ManifestInputs{Indicator: cfg.IndicatorPath, Metadata: cfg.MetadataPath, Sheet: cfg.Sheet}
	man.Rows = export.ManifestRows{
		Indicator:     len(ind),
		Metadata:      len(meta),
		Merged:        ms.Rows,
		Unmatched:     ms.Unmatched,
		DuplicateKeys: ms.DuplicateKeys,
		MissingCode:   indStats.MissingCode,
	}

	// aggregate
	aggLog := logging.Component(log, "aggregate")
	series := aggregate.TimeSeries(merged)
	snap := aggregate.Latest(merged)
	scatter := aggregate.Scatter(merged)
	growth, err := aggregate.Growth(merged, aggregate.GrowthOptions{
		TopN:     cfg.TopN,
		ZeroBase: aggregate.ZeroBasePolicy(cfg.ZeroBase),
	})
	if err != nil {
		return nil, fmt.Errorf("growth: %w", err)
	}
	if scatter.Fit == nil {
		aggLog.Warn().Err(scatter.FitErr).Int("points", len(scatter.Points)).Msg("regression undefined, trend line skipped")
	} else {
		aggLog.Debug().
			Float64("slope", scatter.Fit.Slope).
			Float64("intercept", scatter.Fit.Intercept).
			Float64("r2", scatter.Fit.RSquared).
			Msg("regression fitted")
	}
	if len(growth.ZeroBase) > 0 {
		aggLog.Warn().Strs("countries", growth.ZeroBase).Msg("zero first observation, left out of growth ranking")
	}
	if len(growth.NoData) > 0 {
		aggLog.Debug().Strs("countries", growth.NoData).Msg("no observations for growth")
	}
	man.LatestYear = snap.Year
	man.Regression = export.FitSummary(scatter)
	man.Growth = export.ManifestGrowth{
		TopN:               cfg.TopN,
		Ranked:             len(growth.Top),
		ZeroBasePolicy:     cfg.ZeroBase,
		ZeroBaseSkipped:    growth.ZeroBase,
		WithoutObservation: growth.NoData,
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// render
	renderLog := logging.Component(log, "render")
	ropt := render.Options{OutputDir: cfg.OutputDir, AssetsHost: cfg.AssetsHost}
	emit := func(path string) {
		res.Artifacts = append(res.Artifacts, path)
		man.Artifacts = append(man.Artifacts, filepath.Base(path))
	}
	charts := []struct {
		name string
		draw func() (string, error)
	}{
		{render.TimeSeriesFile, func() (string, error) { return render.TimeSeries(series, ropt) }},
		{render.MapFile, func() (string, error) {
			path, unmapped, err := render.Choropleth(snap, ropt)
			if len(unmapped) > 0 {
				renderLog.Warn().Strs("codes", unmapped).Msg("country codes without a map region")
				man.Unmapped = unmapped
			}
			return path, err
		}},
		{render.ScatterFile, func() (string, error) { return render.Scatter(scatter, ropt) }},
		{render.BarFile, func() (string, error) { return render.Bar(growth.Top, cfg.TopN, ropt) }},
	}
	for _, c := range charts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		start := time.Now()
		path, err := c.draw()
		if err != nil {
			return res, fmt.Errorf("%s: %w", c.name, err)
		}
		emit(path)
		renderLog.Debug().Str("path", path).Dur("took", time.Since(start)).Msg("chart written")
		fmt.Fprintf(out, "✓ %s generated\n", c.name)
	}

	if cfg.Snapshots {
		paths, err := render.Snapshots(series, scatter, growth.Top, cfg.TopN, ropt)
		for _, p := range paths {
			emit(p)
		}
		if err != nil {
			return res, fmt.Errorf("snapshots: %w", err)
		}
		renderLog.Info().Int("files", len(paths)).Msg("png snapshots written")
	}

	if cfg.Workbook != "" {
		path := cfg.Workbook
		if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
			path = ropt.Path(path)
		}
		err := export.WriteWorkbook(path, export.Summary{
			TimeSeries: series,
			Snapshot:   snap,
			Scatter:    scatter,
			Growth:     growth,
		})
		if err != nil {
			return res, err
		}
		emit(path)
		expLog := logging.Component(log, "export")
		expLog.Info().Str("path", path).Msg("summary workbook written")
	}

	if err := export.WriteManifest(ropt.Path(export.ManifestFile), man); err != nil {
		return res, err
	}
	log.Info().Int("artifacts", len(res.Artifacts)).Msg("run complete")
	return res, nil
}

// Columns converts configured column names into the loader's form.
func Columns(c config.Columns) dataset.Columns {
	return dataset.Columns{
		CountryCode:    c.CountryCode,
		TimePeriod:     c.TimePeriod,
		ObsValue:       c.ObsValue,
		LifeExpectancy: c.LifeExpectancy,
		GDPPerCapita:   c.GDPPerCapita,
	}
}

func loadIndicators(path string, opt dataset.LoadOptions, cols dataset.Columns) ([]dataset.IndicatorRecord, dataset.ParseStats, error) {
	t, err := dataset.Load(path, opt)
	if err != nil {
		return nil, dataset.ParseStats{}, fmt.Errorf("load indicator: %w", err)
	}
	recs, st, err := dataset.ParseIndicators(t, cols)
	if err != nil {
		return nil, st, fmt.Errorf("parse indicator: %w", err)
	}
	return recs, st, nil
}

func loadMetadata(path string, opt dataset.LoadOptions, cols dataset.Columns) ([]dataset.MetadataRecord, dataset.ParseStats, error) {
	t, err := dataset.Load(path, opt)
	if err != nil {
		return nil, dataset.ParseStats{}, fmt.Errorf("load metadata: %w", err)
	}
	recs, st, err := dataset.ParseMetadata(t, cols)
	if err != nil {
		return nil, st, fmt.Errorf("parse metadata: %w", err)
	}
	return recs, st, nil
}
