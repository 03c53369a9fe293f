package prune

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stubgen/stubgen/core/scan"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// The canonical scenario: api.impl references model_a, model_a references
// model_b, model_c is referenced by nothing.
func setupScenario(t *testing.T) (entries, candidates []string, dir string) {
	t.Helper()
	dir = t.TempDir()

	entry := writeFile(t, dir, "api.impl", "from models.model_a import ModelA\n")
	a := writeFile(t, dir, "models/model_a.py", "from models.model_b import ModelB\n\nclass ModelA:\n    pass\n")
	b := writeFile(t, dir, "models/model_b.py", "class ModelB:\n    pass\n")
	c := writeFile(t, dir, "models/model_c.py", "class ModelC:\n    pass\n")

	return []string{entry}, []string{a, b, c}, dir
}

func TestPruneDeletesUnreachable(t *testing.T) {
	entries, candidates, dir := setupScenario(t)

	pruner := NewPruner(scan.NewExtractor())
	report, err := pruner.Prune(entries, candidates, false)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "models/model_c.py")}, report.Unreferenced)
	assert.Equal(t, report.Unreferenced, report.Deleted)
	assert.Empty(t, report.Failed)

	assert.True(t, fileExists(candidates[0]), "model_a is referenced by the entry file")
	assert.True(t, fileExists(candidates[1]), "model_b is referenced transitively")
	assert.False(t, fileExists(candidates[2]), "model_c should be deleted")
}

func TestPruneDryRunLeavesFilesOnDisk(t *testing.T) {
	entries, candidates, dir := setupScenario(t)

	pruner := NewPruner(scan.NewExtractor())
	report, err := pruner.Prune(entries, candidates, true)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "models/model_c.py")}, report.Unreferenced)
	assert.Empty(t, report.Deleted)

	for _, c := range candidates {
		assert.True(t, fileExists(c), "dry run must not delete %s", c)
	}
}

func TestPruneIsIdempotent(t *testing.T) {
	entries, candidates, _ := setupScenario(t)

	pruner := NewPruner(scan.NewExtractor())
	first, err := pruner.Prune(entries, candidates, false)
	require.NoError(t, err)
	require.Len(t, first.Deleted, 1)

	// Second run over the same input lists: the deleted candidate is gone
	// from disk and must be a no-op, not an error.
	second, err := pruner.Prune(entries, candidates, false)
	require.NoError(t, err)
	assert.Empty(t, second.Unreferenced)
	assert.Empty(t, second.Deleted)
	assert.Equal(t, 2, second.Candidates)
}

func TestPruneSelfReferenceDoesNotRetain(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "api.impl", "import nothing\n")
	selfRef := writeFile(t, dir, "models/loner.py", "loner = Loner()\n\nclass Loner:\n    pass\n")

	pruner := NewPruner(scan.NewExtractor())
	report, err := pruner.Prune([]string{entry}, []string{selfRef}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{selfRef}, report.Deleted)
	assert.False(t, fileExists(selfRef))
}

func TestPruneCycleUnreachableFromEntriesIsDeleted(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "api.impl", "import nothing\n")
	left := writeFile(t, dir, "models/orbit_left.py", "from models.orbit_right import OrbitRight\n")
	right := writeFile(t, dir, "models/orbit_right.py", "from models.orbit_left import OrbitLeft\n")

	pruner := NewPruner(scan.NewExtractor())
	report, err := pruner.Prune([]string{entry}, []string{left, right}, false)
	require.NoError(t, err)

	assert.Len(t, report.Deleted, 2)
	assert.False(t, fileExists(left))
	assert.False(t, fileExists(right))
}

func TestPruneCycleReachableFromEntryIsKept(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "api.impl", "from models.orbit_left import OrbitLeft\n")
	left := writeFile(t, dir, "models/orbit_left.py", "from models.orbit_right import OrbitRight\n")
	right := writeFile(t, dir, "models/orbit_right.py", "from models.orbit_left import OrbitLeft\n")

	pruner := NewPruner(scan.NewExtractor())
	report, err := pruner.Prune([]string{entry}, []string{left, right}, false)
	require.NoError(t, err)

	assert.Empty(t, report.Unreferenced)
	assert.True(t, fileExists(left))
	assert.True(t, fileExists(right))
}

func TestPruneEntryAndCandidateOverlapIsNeverDeleted(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "models/handwritten.py", "class Handwritten:\n    pass\n")

	pruner := NewPruner(scan.NewExtractor())
	report, err := pruner.Prune([]string{entry}, []string{entry}, false)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Candidates)
	assert.Empty(t, report.Deleted)
	assert.True(t, fileExists(entry))
}

func TestPruneUnreadableEntryFailsBeforeDeleting(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "api.impl")
	candidate := writeFile(t, dir, "models/model_c.py", "class ModelC:\n    pass\n")

	pruner := NewPruner(scan.NewExtractor())
	_, err := pruner.Prune([]string{missing}, []string{candidate}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry file")

	assert.True(t, fileExists(candidate), "nothing may be deleted when an entry is unreadable")
}

func TestPruneMissingCandidateIsSkipped(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "api.impl", "import nothing\n")
	ghost := filepath.Join(dir, "models/ghost.py")

	pruner := NewPruner(scan.NewExtractor())
	report, err := pruner.Prune([]string{entry}, []string{ghost}, false)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Candidates)
	assert.Empty(t, report.Unreferenced)
}

func TestPruneGoCandidates(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "impl.go", `package impl

import "example.com/stub/models"

func Handle() models.Pet { return models.Pet{} }
`)
	pet := writeFile(t, dir, "models/model_pet.go", `package models

type Pet struct {
	Tag PetTag
}
`)
	tag := writeFile(t, dir, "models/model_pet_tag.go", `package models

type PetTag struct{}
`)
	stray := writeFile(t, dir, "models/model_stray.go", `package models

type Stray struct{}
`)

	pruner := NewPruner(scan.NewExtractor())
	report, err := pruner.Prune([]string{entry}, []string{pet, tag, stray}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{stray}, report.Deleted)
	assert.True(t, fileExists(pet))
	assert.True(t, fileExists(tag))
	assert.False(t, fileExists(stray))
}
