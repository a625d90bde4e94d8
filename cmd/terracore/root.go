package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arlojensen/terracore/elevation"
	"github.com/arlojensen/terracore/gridmodel"
	"github.com/arlojensen/terracore/mapreader"
	"github.com/arlojensen/terracore/orchestrate"
	"github.com/arlojensen/terracore/pathfind"
	"github.com/arlojensen/terracore/raster"
)

func newRootCmd(logger zerolog.Logger) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "terracore",
		Short: "Rasterize an orienteering map and find a route across its cost grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, logger)
		},
	}

	flags := cmd.Flags()
	flags.String("map", "", "path to the ISOM-2017-2 XML map document")
	flags.StringSlice("layers", nil, "layer names to include, in precedence order")
	flags.String("obstacle-config", "", "path to the obstacle config text file")
	flags.Int("width", 256, "grid width in cells")
	flags.Int("height", 256, "grid height in cells")
	flags.Float32("log-cell-m", 1.0, "real-world size of one grid cell, in meters")
	flags.Float32("uniform-elevation-m", 100.0, "elevation to use when the map has no elevation field")
	flags.String("algorithm", "astar", "pathfinding algorithm: astar|dijkstra|bfs|theta_star|lazy_theta_star")
	flags.String("heuristic", "octile", "heuristic: euclidean|manhattan|octile|min_cost")
	flags.String("waypoints", "", "semicolon-separated x,y cell waypoints, e.g. \"0,0;10,10;20,5\"")
	flags.Int("workers", 0, "bounded worker pool size for rasterization (0 = GOMAXPROCS)")

	for _, name := range []string{"map", "layers", "obstacle-config", "width", "height", "log-cell-m", "uniform-elevation-m", "algorithm", "heuristic", "waypoints", "workers"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	v.SetEnvPrefix("terracore")
	v.AutomaticEnv()

	return cmd
}

func run(ctx context.Context, v *viper.Viper, logger zerolog.Logger) error {
	waypoints, err := parseWaypoints(v.GetString("waypoints"))
	if err != nil {
		return err
	}
	if len(waypoints) < 2 {
		return fmt.Errorf("terracore: at least two --waypoints are required")
	}

	algo, ok := pathfind.GetAlgorithmByName(v.GetString("algorithm"))
	if !ok {
		return fmt.Errorf("terracore: unknown algorithm %q", v.GetString("algorithm"))
	}
	heuristic, ok := pathfind.GetHeuristicByName(v.GetString("heuristic"))
	if !ok {
		return fmt.Errorf("terracore: unknown heuristic %q", v.GetString("heuristic"))
	}

	features, warnings, geo, err := mapreader.Read(v.GetString("map"), v.GetStringSlice("layers"))
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn().Str("symbol", w.SymbolCode).Msg(w.Message)
	}

	w, h := v.GetInt("width"), v.GetInt("height")
	logCellM := float32(v.GetFloat64("log-cell-m"))

	norm, err := gridmodel.Normalize(geo.Bounds.Min[0], geo.Bounds.Min[1], geo.Bounds.Max[0], geo.Bounds.Max[1], w, h)
	if err != nil {
		return err
	}

	var cfg gridmodel.ObstacleConfig
	if path := v.GetString("obstacle-config"); path != "" {
		cfg, err = loadObstacleConfig(path)
		if err != nil {
			return err
		}
	} else {
		cfg = gridmodel.ObstacleConfig{}
	}

	grid, rasterWarnings, err := raster.Rasterize(ctx, features, cfg, norm, w, h, logCellM, raster.Options{
		Workers: v.GetInt("workers"),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	for _, rw := range rasterWarnings {
		logger.Warn().Str("symbol", rw.SymbolCode).Msg(rw.Message)
	}

	field := elevation.NewUniformField(float32(v.GetFloat64("uniform-elevation-m")), float64(logCellM))
	sampler := elevation.NewSampler(field, logCellM, 0, 0)

	route, err := orchestrate.Run(ctx, grid, sampler, waypoints, pathfind.Options{Algorithm: algo, Heuristic: heuristic}, logger)
	if err != nil {
		return err
	}

	logger.Info().
		Int("cells", len(route.Cells)).
		Float32("cost", route.Cost).
		Msg("route found")
	for _, c := range route.Cells {
		fmt.Printf("%d,%d\n", c.X, c.Y)
	}

	return nil
}

func parseWaypoints(raw string) ([]pathfind.Cell, error) {
	if raw == "" {
		return nil, nil
	}
	var cells []pathfind.Cell
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("terracore: malformed waypoint %q", pair)
		}
		x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("terracore: malformed waypoint %q: %w", pair, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("terracore: malformed waypoint %q: %w", pair, err)
		}
		cells = append(cells, pathfind.Cell{X: x, Y: y})
	}
	return cells, nil
}

func loadObstacleConfig(path string) (gridmodel.ObstacleConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gridmodel.ParseObstacleConfig(f)
}
