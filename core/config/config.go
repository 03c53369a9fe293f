package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stubgen/stubgen/core/logger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Spec      Spec        `yaml:"spec"`
	Generator Generator   `yaml:"generator"`
	Patches   []PatchRule `yaml:"patches"`
	Prune     Prune       `yaml:"prune"`
}

type Spec struct {
	URL   string   `yaml:"url"`
	File  string   `yaml:"file"`
	Paths []string `yaml:"paths"`
}

type Generator struct {
	Command string     `yaml:"command"`
	Args    []string   `yaml:"args"`
	Output  string     `yaml:"output"`
	Copy    []CopyRule `yaml:"copy"`
}

type CopyRule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type PatchRule struct {
	Glob    string `yaml:"glob"`
	Find    string `yaml:"find"`
	Replace string `yaml:"replace"`
	Regex   bool   `yaml:"regex"`
}

type Prune struct {
	EntryGlobs []string `yaml:"entry_globs"`
	PruneGlobs []string `yaml:"prune_globs"`
	Exclude    []string `yaml:"exclude"`
}

func Default() *Config {
	return &Config{
		Spec: Spec{
			File: "api/openapi.yaml",
		},
		Generator: Generator{
			Command: "openapi-generator",
			Args:    []string{"generate", "-g", "python-fastapi"},
			Output:  ".stubgen/generated",
		},
		Prune: Prune{
			Exclude: []string{".git", ".stubgen"},
		},
	}
}

func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working dir: %w", err)
	}
	return LoadFrom(wd)
}

func LoadFrom(dir string) (*Config, error) {
	paths := []string{
		filepath.Join(dir, "stubgen.yaml"),
		filepath.Join(dir, "stubgen.yml"),
	}

	var filePath string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			filePath = p
			break
		}
	}

	if filePath == "" {
		logger.Debug("No config file found, using default config")
		return Default(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	logger.Debug("Config file found: %s", filePath)

	return cfg, nil
}

// Write marshals the config to the given path, used by `stubgen init`.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
