// File: internal/render/pipeline.go
// Description: Runs the fixed clear-import-render sequence against a host
// session. The session is injected through the host.Session interface,
// keeping the pipeline decoupled from the Blender process and testable.

package render

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Cabbache/meshtransform/internal/config"
	"github.com/Cabbache/meshtransform/internal/host"
)

// OutputSuffix is appended to the input path to derive the render output.
// The original extension is kept: foo.stl renders to foo.stl.png.
const OutputSuffix = ".png"

// Pipeline executes one render run: scene cleanup, STL import, still render.
type Pipeline struct {
	cfg     *config.Config
	logger  *zap.Logger
	session host.Session
}

// New creates a Pipeline with its dependencies injected.
func New(cfg *config.Config, logger *zap.Logger, session host.Session) (*Pipeline, error) {
	if cfg == nil || logger == nil || session == nil {
		return nil, fmt.Errorf("cannot initialize render pipeline with nil dependencies")
	}
	return &Pipeline{
		cfg:     cfg,
		logger:  logger.Named("render"),
		session: session,
	}, nil
}

// Run performs the four-step sequence against the live session and returns
// the derived output path. Execution is strictly sequential with no retries;
// the first failing step aborts the run and no render is triggered after an
// import failure.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (string, error) {
	outputPath := inputPath + OutputSuffix
	pred := host.Predicate{Type: host.ObjectMesh, NamePrefix: p.cfg.Host.CleanupPrefix}

	p.logger.Info("Starting render run",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.String("cleanup_prefix", pred.NamePrefix),
	)

	if err := p.session.Select(pred); err != nil {
		return "", fmt.Errorf("scene selection failed: %w", err)
	}
	if err := p.session.DeleteSelected(); err != nil {
		return "", fmt.Errorf("scene cleanup failed: %w", err)
	}
	if err := p.session.ImportSTL(inputPath); err != nil {
		return "", fmt.Errorf("mesh import failed: %w", err)
	}
	if err := p.session.SetOutputPath(outputPath); err != nil {
		return "", fmt.Errorf("setting render output path failed: %w", err)
	}
	if err := p.session.Render(ctx); err != nil {
		return "", fmt.Errorf("still render failed: %w", err)
	}

	p.logger.Info("Render run finished", zap.String("output", outputPath))
	return outputPath, nil
}
