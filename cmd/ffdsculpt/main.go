// Package main is the entry point for the headless lattice sculpting tool.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/latticeforge/internal/config"
	"github.com/Faultbox/latticeforge/internal/edits"
	"github.com/Faultbox/latticeforge/internal/engine/ffd"
	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/internal/engine/mesh"
	"github.com/Faultbox/latticeforge/internal/logger"
	"github.com/Faultbox/latticeforge/internal/session"
	"github.com/Faultbox/latticeforge/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Latticeforge ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("sculpt failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	kind, err := mesh.ParseKind(cfg.Model.Shape)
	if err != nil {
		return err
	}
	entry, err := mesh.Lookup(kind)
	if err != nil {
		return err
	}

	s, err := session.New(session.Settings{
		Spans:   lattice.Spans(cfg.Lattice.Spans),
		Factor:  cfg.Blend.Factor,
		Radius:  ffd.DefaultRadius,
		Density: cfg.Guide.Density,
	})
	if err != nil {
		return err
	}
	if err := s.LoadShape(entry, cfg.Model.Level); err != nil {
		return err
	}

	if path := config.ScriptPath(); path != "" {
		script, err := edits.Load(path)
		if err != nil {
			return err
		}
		if _, err := edits.Apply(s, script); err != nil {
			return err
		}
	}

	summarize(s.Snapshot())
	return nil
}

// summarize logs the final session state.
func summarize(snap session.Snapshot) {
	deformed := math.BoxFromPoints(snap.Deformed)
	logger.Info("session summary",
		zap.Uint64("revision", snap.Revision),
		zap.Int("vertices", len(snap.Rest)),
		zap.Int("triangles", len(snap.Indices)/3),
		zap.Ints("spans", snap.Spans[:]),
		zap.Int("control_points", len(snap.ControlPoints)),
		zap.Int("lattice_edges", len(snap.Edges)),
		zap.Any("deformed_min", deformed.Min),
		zap.Any("deformed_max", deformed.Max),
		zap.Int("guide_samples", len(snap.GuideSamples)),
		zap.Int("blended", snap.BlendedCount))
}
