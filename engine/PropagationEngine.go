package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/tiendc/go-deepcopy"
	"go.uber.org/zap"

	"formSheet/cellname"
	"formSheet/contracts"
)

var displayReplacer = strings.NewReplacer("{{", "[[", "}}", "]]")

// State is one immutable snapshot of the engine
type State struct {
	Cells      *CellStore
	DirtyCells []string
	// FocusedCell shows its raw text on the next flush
	FocusedCell     string
	LastFocusedCell string
	BlurredCell     string
	Initialized     bool
	InitialUpdate   bool
}

func (s *State) with(fn func(next *State)) *State {
	next := *s
	next.DirtyCells = append(make([]string, 0, len(s.DirtyCells)), s.DirtyCells...)
	fn(&next)
	return &next
}

// Engine keeps the cells of one form consistent with their text. It is not safe for
// concurrent use.
type Engine struct {
	translator contracts.Translator
	surface    contracts.DocumentSurface
	notifier   contracts.HostNotifier

	resolver  *DependencyResolver
	detector  *CycleDetector
	evaluator *Evaluator
	formatter *Formatter
	scorer    *Scorer

	validation *contracts.Validation
	columns    map[string]contracts.CellAttrs
	rows       map[string]contracts.CellAttrs
	now        func() time.Time
	logger     *zap.SugaredLogger

	state *State
}

type Option func(e *Engine)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithValidation(validation *contracts.Validation) Option {
	return func(e *Engine) {
		e.validation = validation
	}
}

// WithAttributes sets the attributes inherited by cells of a column (keyed by letters) or
// of a row (keyed by row number)
func WithAttributes(columns map[string]contracts.CellAttrs, rows map[string]contracts.CellAttrs) Option {
	return func(e *Engine) {
		e.columns = columns
		e.rows = rows
	}
}

func NewEngine(translator contracts.Translator, surface contracts.DocumentSurface, notifier contracts.HostNotifier, options ...Option) *Engine {
	e := &Engine{
		translator: translator,
		surface:    surface,
		notifier:   notifier,
		now:        time.Now,
		logger:     zap.NewNop().Sugar(),
		state:      &State{Cells: NewCellStore()},
	}
	for _, option := range options {
		option(e)
	}

	normalizer := NewValueNormalizer(e.now)
	e.resolver = NewDependencyResolver(translator, e.logger)
	e.detector = NewCycleDetector(e.resolver, e.logger)
	e.evaluator = NewEvaluator(translator, e.detector, normalizer, e.logger)
	e.formatter = NewFormatter(translator, e.logger)
	e.scorer = NewScorer(translator, normalizer, e.logger)
	return e
}

// Init builds the cells from the surface, links every cell to the cells it reads from and
// evaluates all non-empty cells
func (e *Engine) Init() error {
	cells := make([]contracts.Cell, 0)
	dirty := make([]string, 0)

	for _, node := range e.surface.Nodes() {
		switch n := node.(type) {
		case contracts.HeaderNode:
			continue
		case contracts.DataNode:
			if !cellname.IsData(n.Name) {
				e.logger.Warnw("skipping node with invalid cell name", "cell", n.Name)
				continue
			}
			attrs := e.resolveAttrs(n)
			cells = append(cells, contracts.Cell{
				Name:    n.Name,
				Text:    n.Text,
				Formula: n.Text,
				Val:     n.Text,
				Type:    contracts.CellTypeText,
				Format:  attrs.Format,
				Assess:  attrs.Assess,
				Deps:    []string{},
			})
			if n.Text != "" {
				dirty = append(dirty, n.Name)
			}
		}
	}

	store := NewCellStore(cells...)
	for _, name := range store.Order {
		store = e.link(store, name, e.detector.CellDependencies(store, []string{name}))
	}

	evaluated := make(map[string]bool, len(dirty))
	for _, name := range dirty {
		store = e.evaluateAfterDependencies(store, name, evaluated)
	}

	e.state = &State{
		Cells:       store,
		DirtyCells:  dirty,
		Initialized: true,
	}
	e.logger.Debugw("engine initialized", "cells", store.Len(), "dirty", len(dirty))
	return nil
}

// resolveAttrs merges cell, column and row attributes; the cell wins, then the column
func (e *Engine) resolveAttrs(node contracts.DataNode) contracts.CellAttrs {
	attrs := node.Attrs
	column, row, _ := cellname.Split(node.Name)

	inherited := make([]contracts.CellAttrs, 0, 2)
	if columnAttrs, ok := e.columns[column]; ok && row != cellname.HeaderRow {
		inherited = append(inherited, columnAttrs)
	}
	if rowAttrs, ok := e.rows[strconv.Itoa(row)]; ok {
		inherited = append(inherited, rowAttrs)
	}

	for _, parent := range inherited {
		if attrs.Format == "" {
			attrs.Format = parent.Format
		}
		if attrs.Assess == nil {
			attrs.Assess = parent.Assess
		}
		attrs.Protected = attrs.Protected || parent.Protected
	}
	return attrs
}

func (e *Engine) evaluateAfterDependencies(store *CellStore, name string, evaluated map[string]bool) *CellStore {
	if evaluated[name] || !store.Has(name) {
		return store
	}
	evaluated[name] = true

	for _, dep := range e.resolver.DirectDependencies(store, name) {
		store = e.evaluateAfterDependencies(store, dep, evaluated)
	}
	return e.evaluate(store, name)
}

func (e *Engine) evaluate(store *CellStore, name string) *CellStore {
	result := e.evaluator.Evaluate(store, name)
	return store.Update(name, result.Apply)
}

// link registers name, and the cells depending on it, as dependents of each of deps
func (e *Engine) link(store *CellStore, name string, deps []string) *CellStore {
	cell, ok := store.Get(name)
	if !ok {
		return store
	}
	dependents := append([]string{name}, cell.Deps...)

	for _, dep := range deps {
		if !store.Has(dep) {
			continue
		}
		store = store.Update(dep, func(depCell *contracts.Cell) {
			for _, dependent := range dependents {
				if dependent != dep && !depCell.HasDependant(dependent) {
					depCell.Deps = append(depCell.Deps, dependent)
				}
			}
		})
	}
	return store
}

// unlink drops name from the dependents of cells it no longer reads from
func (e *Engine) unlink(store *CellStore, name string, deps []string) *CellStore {
	reads := make(map[string]bool, len(deps))
	for _, dep := range deps {
		reads[dep] = true
	}

	for _, other := range store.Order {
		if reads[other] || !store.Cells[other].HasDependant(name) {
			continue
		}
		store = store.Update(other, func(cell *contracts.Cell) {
			cell.Deps = remove(cell.Deps, name)
		})
	}
	return store
}

// Dispatch applies one surface transaction
func (e *Engine) Dispatch(tr contracts.Transaction) error {
	if tr.Meta.Updated {
		e.state = e.state.with(func(next *State) {
			next.DirtyCells = []string{}
			next.FocusedCell = ""
		})
	}

	if tr.Meta.Synthetic {
		if tr.Selection != "" && tr.Meta.MoveCursor {
			e.state = e.state.with(func(next *State) {
				next.FocusedCell = tr.Selection
			})
		}
		return nil
	}

	var err error
	if tr.Edit != nil {
		err = e.edit(*tr.Edit)
	}

	if tr.Selection != e.state.LastFocusedCell {
		e.changeFocus(tr.Selection)
	}
	return err
}

func (e *Engine) edit(edit contracts.CellEdit) error {
	if cellname.IsHeader(edit.Name) {
		return errors.Wrapf(contracts.ReadOnlyCellError, "cell `%s`", edit.Name)
	}
	cell, ok := e.state.Cells.Get(edit.Name)
	if !ok {
		return errors.Wrapf(contracts.CellNotFoundError, "cell `%s`", edit.Name)
	}
	if node, err := e.nodeOf(edit.Name); err == nil {
		if dataNode, ok := node.(contracts.DataNode); ok && e.resolveAttrs(dataNode).Protected {
			return errors.Wrapf(contracts.ReadOnlyCellError, "cell `%s` is protected", edit.Name)
		}
	}

	cell.Text = edit.Text
	cell.Formula = edit.Text
	e.state = e.state.with(func(next *State) {
		next.Cells = next.Cells.With(cell)
	})
	return nil
}

// changeFocus runs the blur cascade of the previously focused cell
func (e *Engine) changeFocus(selection string) {
	blurred := e.state.LastFocusedCell
	store := e.state.Cells
	dirty := e.state.DirtyCells
	changed := make([]string, 0)

	if _, ok := store.Get(blurred); ok {
		store = e.evaluate(store, blurred)

		cycle := e.detector.Detect(store, blurred)
		if cycle.HasCycle {
			e.logger.Warnw("circular dependency", "cell", blurred, "path", cycle.Describe())
		} else {
			deps := e.detector.CellDependencies(store, []string{blurred})
			store = e.link(store, blurred, deps)
			store = e.unlink(store, blurred, deps)
		}

		dependents := store.Cells[blurred].Deps
		store = e.recompute(store, blurred, dependents)

		changed = append([]string{blurred}, dependents...)
		dirty = appendUnique(dirty, changed...)
	}

	e.state = e.state.with(func(next *State) {
		next.Cells = store
		next.DirtyCells = dirty
		next.BlurredCell = blurred
		next.LastFocusedCell = selection
		next.FocusedCell = selection
	})

	e.notifyResponses()
	if blurred != "" {
		e.notifyUpdate(changed)
	}
	if selection != "" {
		e.notifier.Notify(contracts.HostMessage{
			Type:  contracts.HostMessageFocus,
			Name:  selection,
			Value: e.state.Cells.Text(selection),
		})
	}
}

// recompute evaluates dependents in registration order, then, until stable, those which
// were evaluated before one of their own dependencies changed
func (e *Engine) recompute(store *CellStore, source string, dependents []string) *CellStore {
	seq := 0
	changedAt := map[string]int{source: seq}
	evaluatedAt := make(map[string]int, len(dependents))

	evaluate := func(name string) {
		before := store.Cells[name]
		store = e.evaluate(store, name)
		after := store.Cells[name]

		seq++
		evaluatedAt[name] = seq
		if before.Val != after.Val || before.Type != after.Type {
			changedAt[name] = seq
		}
	}

	for _, name := range dependents {
		if name != source && store.Has(name) {
			evaluate(name)
		}
	}

	for sweep := 0; sweep < len(dependents); sweep++ {
		stale := false
		for _, name := range dependents {
			at, ok := evaluatedAt[name]
			if !ok {
				continue
			}
			for _, dep := range e.resolver.DirectDependencies(store, name) {
				if changed, ok := changedAt[dep]; ok && changed > at {
					evaluate(name)
					stale = true
					break
				}
			}
		}
		if !stale {
			break
		}
	}
	return store
}

// Flush renders dirty cells onto the surface. The focused cell shows its raw text.
func (e *Engine) Flush() error {
	state := e.state
	meta := contracts.TransactionMeta{Synthetic: true, SystemFormatting: true}
	var errs error

	for _, name := range uniqueNames(state.DirtyCells) {
		cell, ok := state.Cells.Get(name)
		if !ok || name == state.FocusedCell {
			continue
		}
		display := e.Display(cell)
		if err := e.replace(cell, display, meta); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}

	if cell, ok := state.Cells.Get(state.FocusedCell); ok {
		focusMeta := meta
		focusMeta.MoveCursor = true
		if err := e.replace(cell, displayReplacer.Replace(cell.Text), focusMeta); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}

	e.state = e.state.with(func(next *State) {
		next.DirtyCells = []string{}
		next.FocusedCell = ""
		next.InitialUpdate = true
	})

	if !state.InitialUpdate && e.state.Cells.Len() > 0 {
		e.notifyUpdate(e.state.Cells.Names())
	}
	return errs
}

// Display is the text a cell shows when it is not being edited
func (e *Engine) Display(cell contracts.Cell) string {
	return displayReplacer.Replace(e.formatter.Format(cell))
}

func (e *Engine) replace(cell contracts.Cell, text string, meta contracts.TransactionMeta) error {
	r, ok := e.surface.CellRange(cell.Name)
	if !ok {
		return errors.Wrapf(contracts.CellNotFoundError, "cell `%s` is not on the surface", cell.Name)
	}
	node, err := e.surface.NodeAt(r.From)
	if err != nil {
		return err
	}
	dataNode, ok := node.(contracts.DataNode)
	if !ok || dataNode.Text == text {
		return nil
	}

	dataNode.Text = text
	return e.surface.ReplaceContent(r, dataNode, meta)
}

func (e *Engine) nodeOf(name string) (contracts.Node, error) {
	r, ok := e.surface.CellRange(name)
	if !ok {
		return nil, errors.Wrapf(contracts.CellNotFoundError, "cell `%s` is not on the surface", name)
	}
	return e.surface.NodeAt(r.From)
}

func (e *Engine) notifyUpdate(names []string) {
	cells := make(map[string]contracts.CellUpdate, len(names))
	for _, name := range names {
		cell, ok := e.state.Cells.Get(name)
		if !ok {
			continue
		}
		cells[name] = contracts.CellUpdate{
			Text:           cell.Text,
			FormattedValue: e.formatter.Format(cell),
		}
	}
	e.notifier.Notify(contracts.HostMessage{Type: contracts.HostMessageUpdate, Cells: cells})
}

func (e *Engine) notifyResponses() {
	responses := make(map[string]contracts.CellResponse)
	for _, name := range e.state.Cells.Order {
		cell := e.state.Cells.Cells[name]
		if cell.Assess == nil {
			continue
		}
		responses[name] = contracts.CellResponse{Text: cell.Text, Val: cell.Val, Formula: cell.Formula}
	}
	e.notifier.Notify(contracts.HostMessage{Type: contracts.HostMessageResponse, Responses: responses})
}

// Snapshot returns a deep copy of the current state
func (e *Engine) Snapshot() *State {
	out := &State{}
	if err := deepcopy.Copy(out, e.state); err != nil {
		e.logger.Warnw("snapshot copy failed", "error", err)
		copied := *e.state
		copied.Cells = e.state.Cells.Copy()
		copied.DirtyCells = append([]string{}, e.state.DirtyCells...)
		return &copied
	}
	return out
}

func (e *Engine) Cell(name string) (contracts.Cell, bool) {
	cell, ok := e.state.Cells.Get(name)
	if !ok {
		return contracts.Cell{}, false
	}
	return cell.Clone(), true
}

func (e *Engine) Score() map[string]contracts.Score {
	return e.scorer.Score(e.state.Cells, e.validation)
}

func (e *Engine) Summary() contracts.ScoreSummary {
	return e.scorer.Summary(e.state.Cells, e.validation)
}

func remove(items []string, item string) []string {
	out := make([]string, 0, len(items))
	for _, candidate := range items {
		if candidate != item {
			out = append(out, candidate)
		}
	}
	return out
}

func appendUnique(items []string, more ...string) []string {
	out := append(make([]string, 0, len(items)+len(more)), items...)
	seen := make(map[string]bool, len(out))
	for _, item := range out {
		seen[item] = true
	}
	for _, item := range more {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

func uniqueNames(names []string) []string {
	return appendUnique(nil, names...)
}
