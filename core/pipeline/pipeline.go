package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stubgen/stubgen/core/config"
	"github.com/stubgen/stubgen/core/generator"
	"github.com/stubgen/stubgen/core/logger"
	"github.com/stubgen/stubgen/core/models"
	"github.com/stubgen/stubgen/core/patch"
	"github.com/stubgen/stubgen/core/prune"
	"github.com/stubgen/stubgen/core/scan"
	"github.com/stubgen/stubgen/core/spec"
	"github.com/stubgen/stubgen/core/walker"
)

// Pipeline wires the stub maintenance stages together: fetch the upstream
// spec, filter it down to the endpoints we serve, run the external generator,
// copy and patch its output, then prune generated files nothing references.
type Pipeline struct {
	cfg *config.Config
	wd  string
}

type RunOptions struct {
	SkipFetch bool
	Refresh   bool
	DryRun    bool
}

func New(cfg *config.Config, wd string) *Pipeline {
	return &Pipeline{cfg: cfg, wd: wd}
}

func (p *Pipeline) specPath() string {
	return filepath.Join(p.wd, p.cfg.Spec.File)
}

// Fetch downloads the configured spec URL and writes it to the spec file.
func (p *Pipeline) Fetch(ctx context.Context, refresh bool) error {
	if p.cfg.Spec.URL == "" {
		return fmt.Errorf("no spec url configured")
	}

	cache := spec.NewCache(spec.DefaultCacheDir())
	data, err := spec.Fetch(ctx, p.cfg.Spec.URL, cache, refresh)
	if err != nil {
		return err
	}

	dest := p.specPath()
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create spec directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("failed to write spec file %s: %w", dest, err)
	}

	logger.Info("Fetched spec to %s (%d bytes)", p.cfg.Spec.File, len(data))
	return nil
}

// Filter reduces the spec file to the configured path allowlist, in place.
// With no paths configured the stage is a no-op.
func (p *Pipeline) Filter() error {
	if len(p.cfg.Spec.Paths) == 0 {
		logger.Debug("No path allowlist configured, skipping filter stage")
		return nil
	}

	data, err := os.ReadFile(p.specPath())
	if err != nil {
		return fmt.Errorf("failed to read spec file: %w", err)
	}

	filtered, err := spec.Filter(data, p.cfg.Spec.Paths)
	if err != nil {
		return err
	}

	if err := os.WriteFile(p.specPath(), filtered, 0644); err != nil {
		return fmt.Errorf("failed to write filtered spec: %w", err)
	}
	return nil
}

// Generate runs the external generator, copies its output into the project
// tree, and applies the configured patches to the copied files.
func (p *Pipeline) Generate(ctx context.Context) error {
	gen := generator.New(p.cfg, p.wd)

	if err := gen.Run(ctx, p.specPath()); err != nil {
		return err
	}

	if _, err := gen.CopyOutputs(); err != nil {
		return err
	}

	patched, err := patch.Apply(p.wd, p.cfg.Patches)
	if err != nil {
		return err
	}
	logger.Info("Patched %d files", len(patched))
	return nil
}

// Prune expands the configured entry and prune globs and runs the reachability
// pruner over them.
func (p *Pipeline) Prune(dryRun bool) (*models.PruneReport, error) {
	entries, err := walker.ExpandGlobs(p.globsIn(p.cfg.Prune.EntryGlobs))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entry files matched %v", p.cfg.Prune.EntryGlobs)
	}

	candidates, err := walker.ExpandGlobs(p.globsIn(p.cfg.Prune.PruneGlobs))
	if err != nil {
		return nil, err
	}

	pruner := prune.NewPruner(scan.NewExtractor())
	return pruner.Prune(entries, candidates, dryRun)
}

// Run executes the full pipeline, stopping at the first stage error.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*models.PruneReport, error) {
	if !opts.SkipFetch {
		if err := p.Fetch(ctx, opts.Refresh); err != nil {
			return nil, fmt.Errorf("fetch stage: %w", err)
		}
	}
	if err := p.Filter(); err != nil {
		return nil, fmt.Errorf("filter stage: %w", err)
	}
	if err := p.Generate(ctx); err != nil {
		return nil, fmt.Errorf("generate stage: %w", err)
	}
	report, err := p.Prune(opts.DryRun)
	if err != nil {
		return nil, fmt.Errorf("prune stage: %w", err)
	}
	return report, nil
}

func (p *Pipeline) globsIn(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if filepath.IsAbs(pattern) {
			out = append(out, pattern)
			continue
		}
		out = append(out, filepath.Join(p.wd, pattern))
	}
	return out
}
