package engine

import (
	"strings"

	"go.uber.org/zap"
)

type color uint8

// white is the zero value: a cell absent from the colors map is unvisited
const (
	white color = iota
	gray
	black
)

const cyclePathSeparator = " → "

type CycleResult struct {
	HasCycle bool
	// CyclePath starts and ends with the repeated cell
	CyclePath []string
	// Dependencies is every cell the start cell transitively reads from, in discovery order
	Dependencies []string
}

func (r CycleResult) Describe() string {
	return strings.Join(r.CyclePath, cyclePathSeparator)
}

type CycleDetector struct {
	resolver *DependencyResolver
	logger   *zap.SugaredLogger
}

func NewCycleDetector(resolver *DependencyResolver, logger *zap.SugaredLogger) *CycleDetector {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CycleDetector{
		resolver: resolver,
		logger:   logger,
	}
}

func (d *CycleDetector) Detect(store *CellStore, start string) CycleResult {
	search := cycleSearch{
		store:    store,
		resolver: d.resolver,
		colors:   make(map[string]color),
		seen:     make(map[string]bool),
	}

	hasCycle := search.visit(start, nil)

	result := CycleResult{
		HasCycle:     hasCycle,
		Dependencies: search.dependencies,
	}
	if hasCycle {
		result.CyclePath = search.cyclePath
	}
	return result
}

// CellDependencies unions the transitive dependencies of names. Cells taking part in a
// cycle contribute nothing.
func (d *CycleDetector) CellDependencies(store *CellStore, names []string) []string {
	all := make([]string, 0)
	seen := make(map[string]bool)

	for _, name := range names {
		result := d.Detect(store, name)
		if result.HasCycle {
			d.logger.Warnw("circular dependency", "cell", name, "path", result.Describe())
			continue
		}

		for _, dep := range result.Dependencies {
			if !seen[dep] {
				seen[dep] = true
				all = append(all, dep)
			}
		}
	}
	return all
}

type cycleSearch struct {
	store        *CellStore
	resolver     *DependencyResolver
	colors       map[string]color
	seen         map[string]bool
	dependencies []string
	cyclePath    []string
}

func (s *cycleSearch) visit(cell string, path []string) bool {
	switch s.colors[cell] {
	case gray:
		start := indexOf(path, cell)
		s.cyclePath = append(append(make([]string, 0, len(path)-start+1), path[start:]...), cell)
		return true
	case black:
		return false
	}

	s.colors[cell] = gray
	path = append(path, cell)

	for _, dep := range s.resolver.DirectDependencies(s.store, cell) {
		if !s.seen[dep] {
			s.seen[dep] = true
			s.dependencies = append(s.dependencies, dep)
		}
		if s.visit(dep, path[:len(path):len(path)]) {
			return true
		}
	}

	s.colors[cell] = black
	return false
}

func indexOf(items []string, item string) int {
	for i, candidate := range items {
		if candidate == item {
			return i
		}
	}
	return -1
}
