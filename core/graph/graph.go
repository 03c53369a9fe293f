package graph

import (
	"sync"

	"github.com/stubgen/stubgen/core/logger"
	"github.com/stubgen/stubgen/core/models"
)

// ReferenceGraph is a directed graph over candidate files. An edge A -> B
// means A's source text references a name defined by B. The graph is rebuilt
// from scratch on every prune pass; nothing is persisted.
type ReferenceGraph struct {
	nodes map[string]*models.GraphNode
	mutex sync.RWMutex
}

func NewReferenceGraph() *ReferenceGraph {
	return &ReferenceGraph{
		nodes: make(map[string]*models.GraphNode),
	}
}

// AddNode registers a candidate file. Adding an existing node is a no-op.
func (rg *ReferenceGraph) AddNode(path string) {
	rg.mutex.Lock()
	defer rg.mutex.Unlock()
	rg.ensureNode(path)
}

// AddEdge records that `from` references `to`. Self-edges are dropped: a file
// referencing only itself must not become reachable through that edge.
func (rg *ReferenceGraph) AddEdge(from, to string) {
	if from == to {
		return
	}

	rg.mutex.Lock()
	defer rg.mutex.Unlock()

	fromNode := rg.ensureNode(from)
	toNode := rg.ensureNode(to)

	for _, existing := range fromNode.References {
		if existing == to {
			return
		}
	}
	fromNode.References = append(fromNode.References, to)
	toNode.ReferencedBy = append(toNode.ReferencedBy, from)
}

func (rg *ReferenceGraph) HasNode(path string) bool {
	rg.mutex.RLock()
	defer rg.mutex.RUnlock()
	_, exists := rg.nodes[path]
	return exists
}

func (rg *ReferenceGraph) Len() int {
	rg.mutex.RLock()
	defer rg.mutex.RUnlock()
	return len(rg.nodes)
}

// References returns the direct outgoing edges of a node.
func (rg *ReferenceGraph) References(path string) []string {
	rg.mutex.RLock()
	defer rg.mutex.RUnlock()

	node, exists := rg.nodes[path]
	if !exists {
		return nil
	}
	refs := make([]string, len(node.References))
	copy(refs, node.References)
	return refs
}

// ReachableFrom computes the transitive closure over reference edges starting
// from the seed nodes, breadth-first. Seeds that are not nodes are ignored.
func (rg *ReferenceGraph) ReachableFrom(seeds []string) map[string]bool {
	rg.mutex.RLock()
	defer rg.mutex.RUnlock()

	reachable := make(map[string]bool)
	queue := make([]string, 0, len(seeds))

	for _, seed := range seeds {
		if _, exists := rg.nodes[seed]; exists && !reachable[seed] {
			reachable[seed] = true
			queue = append(queue, seed)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, ref := range rg.nodes[current].References {
			if !reachable[ref] {
				reachable[ref] = true
				queue = append(queue, ref)
			}
		}
	}

	logger.Debug("ReferenceGraph: %d of %d nodes reachable from %d seeds",
		len(reachable), len(rg.nodes), len(seeds))
	return reachable
}

func (rg *ReferenceGraph) ensureNode(path string) *models.GraphNode {
	node, exists := rg.nodes[path]
	if !exists {
		node = &models.GraphNode{Path: path}
		rg.nodes[path] = node
	}
	return node
}
