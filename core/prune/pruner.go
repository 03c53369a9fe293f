package prune

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/stubgen/stubgen/core/graph"
	"github.com/stubgen/stubgen/core/logger"
	"github.com/stubgen/stubgen/core/models"
	"github.com/stubgen/stubgen/core/scan"
)

// Pruner deletes generated files that are not reachable from a set of entry
// files. Reachability is computed over a reference graph built fresh from the
// current file contents on every call.
type Pruner struct {
	extractor scan.Extractor
}

func NewPruner(extractor scan.Extractor) *Pruner {
	return &Pruner{extractor: extractor}
}

// Prune scans the entry and candidate files, computes the transitive closure
// of candidates referenced from the entry set, and removes the rest. With
// dryRun the unreachable set is only reported.
//
// A file appearing in both sets is treated as an entry and never deleted. An
// unreadable entry file is a fatal error: deleting based on a partial graph
// could remove files that are still needed. A candidate that no longer exists
// is skipped. Deletion failures are collected per file and do not abort the
// remaining batch.
func (p *Pruner) Prune(entryFiles, pruneFiles []string, dryRun bool) (*models.PruneReport, error) {
	entries := dedupe(entryFiles)
	entrySet := make(map[string]bool, len(entries))
	for _, e := range entries {
		entrySet[e] = true
	}

	var candidates []string
	for _, c := range dedupe(pruneFiles) {
		if entrySet[c] {
			logger.Debug("Candidate %s is also an entry file, keeping", c)
			continue
		}
		candidates = append(candidates, c)
	}

	entryModules := make([]*models.Module, 0, len(entries))
	for _, path := range entries {
		module, err := p.scanFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry file: %w", err)
		}
		entryModules = append(entryModules, module)
	}

	candidateModules := make(map[string]*models.Module, len(candidates))
	for _, path := range candidates {
		module, err := p.scanFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Candidate %s no longer exists, skipping", path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate file: %w", err)
		}
		candidateModules[path] = module
	}

	// Index every name defined by a candidate. A name defined by multiple
	// candidates maps to all of them, which errs toward retention.
	definedBy := make(map[string][]string)
	for path, module := range candidateModules {
		for _, name := range module.Defines {
			definedBy[name] = append(definedBy[name], path)
		}
	}

	rg := graph.NewReferenceGraph()
	for path := range candidateModules {
		rg.AddNode(path)
	}
	for path, module := range candidateModules {
		for _, ref := range module.References {
			for _, target := range definedBy[ref] {
				rg.AddEdge(path, target)
			}
		}
	}

	// Seed reachability with the entry files' direct references into the
	// candidate set. Reachability must originate here: self-loops and cycles
	// among candidates never count on their own.
	seedSet := make(map[string]bool)
	for _, module := range entryModules {
		for _, ref := range module.References {
			for _, target := range definedBy[ref] {
				seedSet[target] = true
			}
		}
	}
	seeds := make([]string, 0, len(seedSet))
	for s := range seedSet {
		seeds = append(seeds, s)
	}
	sort.Strings(seeds)

	reachable := rg.ReachableFrom(seeds)

	report := &models.PruneReport{
		Candidates: len(candidateModules),
		Reachable:  len(reachable),
		Failed:     make(map[string]string),
	}
	for path := range candidateModules {
		if !reachable[path] {
			report.Unreferenced = append(report.Unreferenced, path)
		}
	}
	sort.Strings(report.Unreferenced)

	if dryRun {
		return report, nil
	}

	for _, path := range report.Unreferenced {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Error("Failed to remove %s: %v", path, err)
			report.Failed[path] = err.Error()
			continue
		}
		logger.Debug("Removed %s", path)
		report.Deleted = append(report.Deleted, path)
	}

	return report, nil
}

func (p *Pruner) scanFile(path string) (*models.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.extractor.Extract(path, src)
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
