package scan

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"sort"
	"strings"

	"github.com/stubgen/stubgen/core/models"
)

// GoExtractor scans Go files with go/parser. Defined names come from top-level
// declarations, references from import paths and every identifier in the file.
type GoExtractor struct{}

func (g GoExtractor) Extract(filePath string, src []byte) (*models.Module, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filePath, src, parser.AllErrors)
	if err != nil {
		// Generated files are not always valid Go (partial templates, known
		// generator bugs). Fall back to the token scan rather than failing.
		return TokenExtractor{}.Extract(filePath, src)
	}

	name := ModuleName(filePath)
	defines := baseDefines(name)

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				defines = append(defines, d.Name.Name)
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					defines = append(defines, s.Name.Name)
				case *ast.ValueSpec:
					for _, n := range s.Names {
						defines = append(defines, n.Name)
					}
				}
			}
		}
	}

	refs := make(map[string]bool)
	for _, imp := range f.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		refs[path.Base(importPath)] = true
	}
	ast.Inspect(f, func(n ast.Node) bool {
		if ident, ok := n.(*ast.Ident); ok {
			refs[ident.Name] = true
		}
		return true
	})

	references := make([]string, 0, len(refs))
	for r := range refs {
		references = append(references, r)
	}
	sort.Strings(references)

	return &models.Module{
		Path:       filePath,
		Name:       name,
		Defines:    defines,
		References: references,
	}, nil
}
