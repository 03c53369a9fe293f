package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/stubgen/stubgen/core/config"
	"github.com/stubgen/stubgen/core/logger"
)

// Generator invokes the external code generator binary and copies the files
// it produced into the project tree. The generator itself is an external
// collaborator; stubgen only owns the invocation contract and the file set
// that comes out.
type Generator struct {
	cfg *config.Config
	wd  string
}

func New(cfg *config.Config, wd string) *Generator {
	return &Generator{cfg: cfg, wd: wd}
}

// OutputDir is the scratch directory the external generator writes into.
func (g *Generator) OutputDir() string {
	return filepath.Join(g.wd, g.cfg.Generator.Output)
}

// Run executes the configured generator command against the given spec file.
// The configured args are passed through as-is, with the input spec and
// output directory appended.
func (g *Generator) Run(ctx context.Context, specPath string) error {
	if g.cfg.Generator.Command == "" {
		return fmt.Errorf("no generator command configured")
	}

	outDir := g.OutputDir()
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create generator output dir: %w", err)
	}

	args := append([]string{}, g.cfg.Generator.Args...)
	args = append(args, "-i", specPath, "-o", outDir)

	logger.Info("Running %s %v", g.cfg.Generator.Command, args)

	cmd := exec.CommandContext(ctx, g.cfg.Generator.Command, args...)
	cmd.Dir = g.wd
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("generator failed: %w\n%s", err, stderr.String())
	}
	return nil
}
