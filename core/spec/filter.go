package spec

import (
	"errors"
	"fmt"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/bundler"
	"github.com/pb33f/libopenapi/orderedmap"

	"github.com/stubgen/stubgen/core/logger"
)

// Filter reduces an OpenAPI document to the allowlisted paths, drops path
// items left with no operations, and renders the result back to bytes. An
// allowlisted path missing from the document is an error: a typo here would
// silently produce a stub with no endpoints.
func Filter(data []byte, keepPaths []string) ([]byte, error) {
	doc, err := libopenapi.NewDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}

	model, errs := doc.BuildV3Model()
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to build openapi model: %w", errors.Join(errs...))
	}

	if model.Model.Paths == nil || model.Model.Paths.PathItems == nil {
		return nil, fmt.Errorf("spec has no paths")
	}
	pathItems := model.Model.Paths.PathItems

	keep := make(map[string]bool, len(keepPaths))
	for _, p := range keepPaths {
		if pathItems.GetOrZero(p) == nil {
			return nil, fmt.Errorf("path %s not found in spec", p)
		}
		keep[p] = true
	}

	var pathsToDelete []string
	for pathPair := orderedmap.First(pathItems); pathPair != nil; pathPair = pathPair.Next() {
		path := pathPair.Key()
		pathVal := pathPair.Value()
		if len(keep) > 0 && !keep[path] {
			pathsToDelete = append(pathsToDelete, path)
			continue
		}
		if pathVal.GetOperations().Len() == 0 {
			pathsToDelete = append(pathsToDelete, path)
		}
	}

	for _, path := range pathsToDelete {
		logger.Debug("Dropping path %s", path)
		pathItems.Delete(path)
	}

	out, err := bundler.BundleDocument(&model.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to render filtered spec: %w", err)
	}

	logger.Info("Filtered spec: kept %d of %d paths", pathItems.Len(), pathItems.Len()+len(pathsToDelete))
	return out, nil
}
