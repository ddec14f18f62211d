package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagShape  = flag.String("shape", "", "Base shape (box, torus, sphere, icosahedron, cylinder, octahedron)")
	flagLevel  = flag.Int("level", -1, "Refinement level (0-4)")
	flagSpans  = flag.String("spans", "", "Lattice spans as nx,ny,nz")
	flagFactor = flag.Float64("factor", -1, "Region blend factor (0-1)")
	flagScript = flag.String("script", "", "Edit script to replay")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ScriptPath returns the edit script path if provided via --script flag.
func ScriptPath() string {
	return *flagScript
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagShape != "" {
		cfg.Model.Shape = *flagShape
	}
	if *flagLevel >= 0 {
		cfg.Model.Level = *flagLevel
	}
	if *flagSpans != "" {
		spans, err := ParseSpans(*flagSpans)
		if err != nil {
			return err
		}
		cfg.Lattice.Spans = spans
	}
	if *flagFactor >= 0 {
		cfg.Blend.Factor = *flagFactor
	}
	return nil
}

// ParseSpans parses "nx,ny,nz". A single value applies to all three axes.
func ParseSpans(s string) ([3]int, error) {
	var spans [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 1 && len(parts) != 3 {
		return spans, fmt.Errorf("spans %q: want 1 or 3 values: %w", s, ErrInvalidConfig)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return spans, fmt.Errorf("spans %q: %w", s, err)
		}
		spans[i] = n
	}
	if len(parts) == 1 {
		spans[1], spans[2] = spans[0], spans[0]
	}
	return spans, nil
}
