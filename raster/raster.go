// Package raster produces the cost grid from parsed Features and an
// ObstacleConfig, via the two-pass algorithm of §4.3: Bresenham boundary
// rasterization, then scanline polygon area fill. Features are processed in
// caller-supplied layer order (then document order within a layer); that
// same order resolves precedence when more than one feature covers a cell.
package raster

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arlojensen/terracore/gridmodel"
	"github.com/arlojensen/terracore/internal/terraerr"
	"github.com/arlojensen/terracore/mapreader"
)

// Options configures one Rasterize call.
type Options struct {
	// Workers bounds the row-band worker pool. Zero selects a default based
	// on GOMAXPROCS.
	Workers int
	Logger  zerolog.Logger
}

// Rasterize builds a W×H cost grid from features, ordered by the caller into
// the precedence order spec.md's Rasterizer requires (layer order, then
// document order within a layer). cfg supplies the per-symbol cost
// multiplier; unconfigured symbol codes default to open terrain and are
// reported as a Warning.
func Rasterize(ctx context.Context, features []mapreader.Feature, cfg gridmodel.ObstacleConfig, norm gridmodel.NormalizationRecord, w, h int, logCellM float32, opts Options) (*gridmodel.Grid, []mapreader.Warning, error) {
	builder, err := gridmodel.NewBuilder(w, h, logCellM)
	if err != nil {
		return nil, nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
		if workers < 1 {
			workers = 1
		}
	}

	idx := newSpatialIndex(features, norm)

	warnings, err := rasterizeBands(ctx, builder, idx, cfg, norm, w, h, workers, opts.Logger)
	if err != nil {
		return nil, nil, err
	}

	return builder.Grid(), warnings, nil
}

// rasterizeBands partitions the grid's rows into disjoint bands and
// processes each band in its own goroutine, bounded by workers and
// cancellable via ctx (checked once per feature, per §5). Bands never share
// a row, so writes across goroutines never race; within a band, features
// are applied strictly in their global layer/document order so the
// precedence rule holds regardless of how many bands run in parallel — the
// testable serial/parallel equivalence of §5.
func rasterizeBands(ctx context.Context, builder *gridmodel.Builder, idx *spatialIndex, cfg gridmodel.ObstacleConfig, norm gridmodel.NormalizationRecord, w, h, workers int, logger zerolog.Logger) ([]mapreader.Warning, error) {
	bandHeight := (h + workers - 1) / workers
	if bandHeight < 1 {
		bandHeight = 1
	}

	var warningsCh = make(chan []mapreader.Warning, workers+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for yStart := 0; yStart < h; yStart += bandHeight {
		yStart := yStart
		yEnd := yStart + bandHeight
		if yEnd > h {
			yEnd = h
		}

		g.Go(func() error {
			ws, err := rasterizeBand(gctx, builder, idx, cfg, norm, w, yStart, yEnd)
			if err != nil {
				return err
			}
			warningsCh <- ws
			return nil
		})
	}

	err := g.Wait()
	close(warningsCh)
	if err != nil {
		if err == context.Canceled || err == context.DeadlineExceeded {
			return nil, terraerr.Cancelled()
		}
		return nil, err
	}

	var warnings []mapreader.Warning
	for ws := range warningsCh {
		warnings = append(warnings, ws...)
	}
	logger.Debug().Int("warnings", len(warnings)).Msg("rasterize complete")
	return warnings, nil
}

// rasterizeBand runs Pass 1 then Pass 2 over the features touching rows
// [yStart, yEnd), writing only into that row range.
func rasterizeBand(ctx context.Context, builder *gridmodel.Builder, idx *spatialIndex, cfg gridmodel.ObstacleConfig, norm gridmodel.NormalizationRecord, w, yStart, yEnd int) ([]mapreader.Warning, error) {
	band := idx.queryRowBand(yStart, yEnd)

	var warnings []mapreader.Warning
	for _, of := range band {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cell, warn := resolveMultiplier(cfg, of.feature.SymbolCode)
		cell.Layer = of.feature.Layer
		if warn != nil {
			warnings = append(warnings, *warn)
		}

		warnings = append(warnings, applyFeatureBoundary(builder, of.feature, norm, w, yStart, yEnd, cell)...)
		warnings = append(warnings, applyFeatureFill(builder, of.feature, norm, w, yStart, yEnd, cell)...)
	}

	return warnings, nil
}

func resolveMultiplier(cfg gridmodel.ObstacleConfig, symbolCode string) (gridmodel.Cell, *mapreader.Warning) {
	if m, ok := cfg.Lookup(symbolCode); ok {
		return gridmodel.Cell{Multiplier: m, SymbolCode: symbolCode}, nil
	}
	return gridmodel.Cell{Multiplier: gridmodel.DefaultMultiplier, SymbolCode: symbolCode},
		&mapreader.Warning{SymbolCode: symbolCode, Message: "unconfigured symbol code; defaulting to open terrain"}
}
