// Command terracore wires the full pathfinding pipeline — map load, grid
// normalization, rasterization, elevation sampling, and pathfinding — over
// local files, as a minimal runnable demonstration of the core packages.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/arlojensen/terracore/internal/obslog"
)

func main() {
	logger := obslog.New(os.Stderr, zerolog.InfoLevel)

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error().Err(err).Msg("terracore failed")
		os.Exit(1)
	}
}
