package models

// Module is one logical unit of generated code: a single file, identified by
// its file stem. Defines holds the identifiers the file introduces, References
// the identifiers its source text mentions.
type Module struct {
	Path       string
	Name       string
	Defines    []string
	References []string
}

// GraphNode represents a candidate file in the reference graph.
type GraphNode struct {
	Path         string
	References   []string // candidate files this file references
	ReferencedBy []string // candidate files that reference this file
}

// PruneReport is the outcome of a prune pass.
type PruneReport struct {
	Candidates   int
	Reachable    int
	Unreferenced []string // unreachable candidates, sorted
	Deleted      []string // actually removed (empty on dry run)
	Failed       map[string]string
}
