package engine

import (
	"github.com/tiendc/go-deepcopy"

	"formSheet/contracts"
)

// CellStore is an immutable-by-convention map of cells. Every write returns a new store
// sharing untouched cells with its parent.
type CellStore struct {
	Cells map[string]contracts.Cell
	// Order is the document order of cell names
	Order []string
}

func NewCellStore(cells ...contracts.Cell) *CellStore {
	store := &CellStore{
		Cells: make(map[string]contracts.Cell, len(cells)),
		Order: make([]string, 0, len(cells)),
	}
	for _, cell := range cells {
		if _, exists := store.Cells[cell.Name]; !exists {
			store.Order = append(store.Order, cell.Name)
		}
		store.Cells[cell.Name] = cell.Clone()
	}
	return store
}

func (s *CellStore) Get(name string) (contracts.Cell, bool) {
	cell, ok := s.Cells[name]
	return cell, ok
}

func (s *CellStore) Has(name string) bool {
	_, ok := s.Cells[name]
	return ok
}

// Text is the raw text of the cell, empty for a missing one
func (s *CellStore) Text(name string) string {
	return s.Cells[name].Text
}

func (s *CellStore) Len() int {
	return len(s.Order)
}

func (s *CellStore) Names() []string {
	return append(make([]string, 0, len(s.Order)), s.Order...)
}

// With returns a store in which cell replaces the cell of the same name
func (s *CellStore) With(cell contracts.Cell) *CellStore {
	return s.WithAll([]contracts.Cell{cell})
}

func (s *CellStore) WithAll(cells []contracts.Cell) *CellStore {
	next := &CellStore{
		Cells: make(map[string]contracts.Cell, len(s.Cells)+len(cells)),
		Order: s.Order,
	}
	for name, cell := range s.Cells {
		next.Cells[name] = cell
	}

	appended := false
	for _, cell := range cells {
		if _, exists := next.Cells[cell.Name]; !exists {
			if !appended {
				next.Order = append(make([]string, 0, len(s.Order)+len(cells)), s.Order...)
				appended = true
			}
			next.Order = append(next.Order, cell.Name)
		}
		next.Cells[cell.Name] = cell.Clone()
	}
	return next
}

// Update applies fn to a copy of the named cell; a missing cell leaves the store as is
func (s *CellStore) Update(name string, fn func(cell *contracts.Cell)) *CellStore {
	cell, ok := s.Cells[name]
	if !ok {
		return s
	}
	cell = cell.Clone()
	fn(&cell)
	return s.With(cell)
}

// Copy returns a deep copy sharing nothing with s
func (s *CellStore) Copy() *CellStore {
	out := &CellStore{}
	if err := deepcopy.Copy(out, s); err != nil {
		return NewCellStore(s.ordered()...)
	}
	return out
}

func (s *CellStore) ordered() []contracts.Cell {
	cells := make([]contracts.Cell, 0, len(s.Order))
	for _, name := range s.Order {
		cells = append(cells, s.Cells[name])
	}
	return cells
}
