package gridmodel

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/arlojensen/terracore/cost"
	"github.com/arlojensen/terracore/internal/terraerr"
)

// ObstacleConfig maps a feature's symbol code to the cost multiplier the
// rasterizer should stamp for it, overriding the open-terrain default.
type ObstacleConfig map[string]cost.Multiplier

// Lookup returns the configured multiplier for a symbol code, or
// (DefaultMultiplier, false) if the code has no override.
func (c ObstacleConfig) Lookup(symbolCode string) (cost.Multiplier, bool) {
	m, ok := c[symbolCode]
	if !ok {
		return DefaultMultiplier, false
	}
	return m, true
}

// ParseObstacleConfig reads the text wire form specified for callers: one
// mapping per line, "SYMBOL_CODE: MULTIPLIER", where MULTIPLIER is a finite
// positive float or -1 for impassable. Lines starting with '#' or blank
// lines are ignored; whitespace around the colon is insignificant.
func ParseObstacleConfig(r io.Reader) (ObstacleConfig, error) {
	cfg := make(ObstacleConfig)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return nil, terraerr.BadConfig(lineNo, raw, nil)
		}

		symbol := strings.TrimSpace(line[:idx])
		valueStr := strings.TrimSpace(line[idx+1:])
		if symbol == "" || valueStr == "" {
			return nil, terraerr.BadConfig(lineNo, raw, nil)
		}

		value, err := strconv.ParseFloat(valueStr, 32)
		if err != nil {
			return nil, terraerr.BadConfig(lineNo, raw, err)
		}

		if value == -1 {
			cfg[symbol] = cost.Impassable
		} else if value > 0 {
			cfg[symbol] = cost.Multiplier(value)
		} else {
			return nil, terraerr.BadConfig(lineNo, raw, nil)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, terraerr.BadConfig(lineNo, "", err)
	}
	return cfg, nil
}
