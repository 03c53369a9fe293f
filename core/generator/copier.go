package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stubgen/stubgen/core/logger"
)

// CopyOutputs copies the configured from/to pairs out of the generator's
// scratch directory into the project tree, creating target directories as
// needed. Returns the copied file paths.
func (g *Generator) CopyOutputs() ([]string, error) {
	var copied []string

	for _, rule := range g.cfg.Generator.Copy {
		sourcePath := filepath.Join(g.OutputDir(), rule.From)
		targetPath := filepath.Join(g.wd, rule.To)

		files, err := g.copyPath(sourcePath, targetPath)
		if err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", rule.From, err)
		}
		copied = append(copied, files...)
	}

	logger.Info("Copied %d generated files into the project tree", len(copied))
	return copied, nil
}

func (g *Generator) copyPath(sourcePath, targetPath string) ([]string, error) {
	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		return nil, err
	}

	if !sourceInfo.IsDir() {
		if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create target parent directory: %w", err)
		}
		if err := copyFile(sourcePath, targetPath); err != nil {
			return nil, err
		}
		return []string{targetPath}, nil
	}

	if err := os.MkdirAll(targetPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create target directory %s: %w", targetPath, err)
	}

	entries, err := os.ReadDir(sourcePath)
	if err != nil {
		return nil, err
	}

	var copied []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		sourceFile := filepath.Join(sourcePath, name)
		targetFile := filepath.Join(targetPath, name)

		if entry.IsDir() {
			files, err := g.copyPath(sourceFile, targetFile)
			if err != nil {
				return nil, err
			}
			copied = append(copied, files...)
			continue
		}

		logger.Debug("Copying file: %s -> %s", sourceFile, targetFile)
		if err := copyFile(sourceFile, targetFile); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", name, err)
		}
		copied = append(copied, targetFile)
	}

	return copied, nil
}

func copyFile(sourcePath, targetPath string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return err
	}
	return os.WriteFile(targetPath, src, 0644)
}
