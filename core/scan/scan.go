package scan

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/stubgen/stubgen/core/models"
	"github.com/stubgen/stubgen/core/shared"
)

// Extractor turns a file into a Module: the names it defines and the names its
// source text references. Implementations must err toward reporting more
// references rather than fewer, since missed references can lead to deleting a
// file that is still in use.
type Extractor interface {
	Extract(path string, src []byte) (*models.Module, error)
}

// ModuleName returns the stable name of the module a file holds: the file
// stem, e.g. "api/models/pet_tag.py" -> "pet_tag".
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// baseDefines is the minimal define set every module carries: its stem and the
// PascalCase type name generators derive from it.
func baseDefines(name string) []string {
	defines := []string{name}
	if pascal := shared.ToPascal(name); pascal != "" && pascal != name {
		defines = append(defines, pascal)
	}
	return defines
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// tokenize splits source text into identifier-like words. Splitting on every
// non-word rune means dotted references like "models.pet_tag" surface as the
// tokens "models" and "pet_tag".
func tokenize(src []byte) []string {
	words := strings.FieldsFunc(string(src), func(r rune) bool {
		return !isWordRune(r)
	})

	seen := make(map[string]bool, len(words))
	var tokens []string
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			tokens = append(tokens, w)
		}
	}
	sort.Strings(tokens)
	return tokens
}

// TokenExtractor is the conservative fallback for generated code in any
// language. Every identifier-like word in the file counts as a reference, so a
// module is only ever considered unreferenced when none of its defined names
// appear anywhere in the referencing file.
type TokenExtractor struct{}

func (TokenExtractor) Extract(path string, src []byte) (*models.Module, error) {
	name := ModuleName(path)
	return &models.Module{
		Path:       path,
		Name:       name,
		Defines:    baseDefines(name),
		References: tokenize(src),
	}, nil
}

type autoExtractor struct {
	golang GoExtractor
	tokens TokenExtractor
}

func (a autoExtractor) Extract(path string, src []byte) (*models.Module, error) {
	if filepath.Ext(path) == ".go" {
		return a.golang.Extract(path, src)
	}
	return a.tokens.Extract(path, src)
}

// NewExtractor returns the default extractor: AST-based for Go files, token
// scan for everything else.
func NewExtractor() Extractor {
	return autoExtractor{}
}
