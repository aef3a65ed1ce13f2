package surface

import (
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"

	"formSheet/cellname"
	"formSheet/contracts"
)

var PositionOutOfRangeError = errors.New("position is outside of any cell")

var RangeMismatchError = errors.New("range does not match the replaced cell")

// every cell occupies its text plus an opening and a closing token
const cellOverhead = 2

type Listener func(tr contracts.Transaction)

// GridSurface is an in-memory table: header row 0, header column `_` and the data cells
// of a form definition. Each cell occupies a range of positions in document order.
type GridSurface struct {
	nodes     []contracts.Node
	ranges    []contracts.Range
	index     map[string]int
	selection string
	listener  Listener
}

func NewGridSurface(definition contracts.FormDefinition) *GridSurface {
	maxColumn, maxRow := 0, 0
	extend := func(column string, row int) {
		if number := cellname.ColumnNumber(column); number > maxColumn {
			maxColumn = number
		}
		if row > maxRow {
			maxRow = row
		}
	}

	for name := range definition.Cells {
		if column, row, err := cellname.Split(name); err == nil {
			extend(column, row)
		}
	}
	for column := range definition.Columns {
		extend(column, 0)
	}
	for row := range definition.Rows {
		if number, err := strconv.Atoi(row); err == nil {
			extend(cellname.HeaderColumn, number)
		}
	}

	s := &GridSurface{index: make(map[string]int)}
	for row := 0; row <= maxRow; row++ {
		for column := 0; column <= maxColumn; column++ {
			name := cellname.Join(cellname.ColumnName(column), row)
			spec := definition.Cells[name]

			if row == cellname.HeaderRow || column == 0 {
				text := spec.Text
				if text == "" {
					text = headerText(column, row)
				}
				s.append(contracts.HeaderNode{Name: name, Text: text})
			} else {
				attrs := spec.Attrs
				attrs.Protected = attrs.Protected ||
					definition.Columns[cellname.ColumnName(column)].Protected ||
					definition.Rows[strconv.Itoa(row)].Protected
				s.append(contracts.DataNode{Name: name, Text: spec.Text, Attrs: attrs})
			}
		}
	}
	s.layout()
	return s
}

func headerText(column int, row int) string {
	switch {
	case column == 0 && row == 0:
		return ""
	case row == 0:
		return cellname.ColumnName(column)
	default:
		return strconv.Itoa(row)
	}
}

func (s *GridSurface) append(node contracts.Node) {
	s.index[node.NodeName()] = len(s.nodes)
	s.nodes = append(s.nodes, node)
}

func (s *GridSurface) layout() {
	s.ranges = make([]contracts.Range, len(s.nodes))
	position := contracts.Position(0)
	for i, node := range s.nodes {
		size := contracts.Position(len(node.NodeText()) + cellOverhead)
		s.ranges[i] = contracts.Range{From: position, To: position + size}
		position += size
	}
}

// OnTransaction registers the listener every transaction of the surface is sent to
func (s *GridSurface) OnTransaction(listener Listener) {
	s.listener = listener
}

func (s *GridSurface) Nodes() []contracts.Node {
	return append(make([]contracts.Node, 0, len(s.nodes)), s.nodes...)
}

func (s *GridSurface) Resolve(pos contracts.Position) (contracts.Node, error) {
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].To > pos
	})
	if i == len(s.ranges) || !s.ranges[i].Contains(pos) {
		return nil, errors.Wrapf(PositionOutOfRangeError, "position %d", pos)
	}
	return s.nodes[i], nil
}

func (s *GridSurface) NodeAt(pos contracts.Position) (contracts.Node, error) {
	node, err := s.Resolve(pos)
	if err != nil {
		return nil, err
	}
	if s.ranges[s.index[node.NodeName()]].From != pos {
		return nil, errors.Wrapf(PositionOutOfRangeError, "no cell starts at position %d", pos)
	}
	return node, nil
}

func (s *GridSurface) CellRange(name string) (contracts.Range, bool) {
	i, ok := s.index[name]
	if !ok {
		return contracts.Range{}, false
	}
	return s.ranges[i], true
}

// Text is the content a cell currently shows
func (s *GridSurface) Text(name string) string {
	i, ok := s.index[name]
	if !ok {
		return ""
	}
	return s.nodes[i].NodeText()
}

func (s *GridSurface) Selection() string {
	return s.selection
}

// ReplaceContent swaps the text of the cell at r. Only system formatting may write into
// header or protected cells.
func (s *GridSurface) ReplaceContent(r contracts.Range, node contracts.Node, meta contracts.TransactionMeta) error {
	i, ok := s.index[node.NodeName()]
	if !ok {
		return errors.Wrapf(contracts.CellNotFoundError, "cell `%s`", node.NodeName())
	}
	if s.ranges[i] != r {
		return errors.Wrapf(RangeMismatchError, "cell `%s`", node.NodeName())
	}

	switch current := s.nodes[i].(type) {
	case contracts.HeaderNode:
		if !meta.SystemFormatting {
			return errors.Wrapf(contracts.ReadOnlyCellError, "cell `%s`", current.Name)
		}
		current.Text = node.NodeText()
		s.nodes[i] = current
	case contracts.DataNode:
		if current.Attrs.Protected && !meta.SystemFormatting {
			return errors.Wrapf(contracts.ReadOnlyCellError, "cell `%s` is protected", current.Name)
		}
		current.Text = node.NodeText()
		s.nodes[i] = current
	}
	s.layout()

	if meta.MoveCursor {
		s.selection = node.NodeName()
	}
	s.emit(contracts.Transaction{Selection: s.selection, Meta: meta})
	return nil
}

// Select moves the cursor into the named cell; an empty name leaves the table
func (s *GridSurface) Select(name string) error {
	if _, ok := s.index[name]; name != "" && !ok {
		return errors.Wrapf(contracts.CellNotFoundError, "cell `%s`", name)
	}
	s.selection = name
	s.emit(contracts.Transaction{Selection: name})
	return nil
}

// Type replaces the text of the named cell as a user edit and moves the cursor into it
func (s *GridSurface) Type(name string, text string) error {
	i, ok := s.index[name]
	if !ok {
		return errors.Wrapf(contracts.CellNotFoundError, "cell `%s`", name)
	}

	switch current := s.nodes[i].(type) {
	case contracts.HeaderNode:
		return errors.Wrapf(contracts.ReadOnlyCellError, "cell `%s`", name)
	case contracts.DataNode:
		if current.Attrs.Protected {
			return errors.Wrapf(contracts.ReadOnlyCellError, "cell `%s` is protected", name)
		}
		current.Text = text
		s.nodes[i] = current
	}
	s.layout()

	s.selection = name
	s.emit(contracts.Transaction{Selection: name, Edit: &contracts.CellEdit{Name: name, Text: text}})
	return nil
}

func (s *GridSurface) emit(tr contracts.Transaction) {
	if s.listener != nil {
		s.listener(tr)
	}
}
