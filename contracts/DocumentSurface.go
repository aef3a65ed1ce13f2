package contracts

type Position int

type Range struct {
	From Position
	To   Position
}

func (r Range) Contains(pos Position) bool {
	return pos >= r.From && pos < r.To
}

// Node is a table cell of the document surface: either a HeaderNode or a DataNode
type Node interface {
	NodeName() string
	NodeText() string
	isNode()
}

type HeaderNode struct {
	Name string
	Text string
}

func (n HeaderNode) NodeName() string { return n.Name }
func (n HeaderNode) NodeText() string { return n.Text }
func (HeaderNode) isNode()            {}

type DataNode struct {
	Name  string
	Text  string
	Attrs CellAttrs
}

func (n DataNode) NodeName() string { return n.Name }
func (n DataNode) NodeText() string { return n.Text }
func (DataNode) isNode()            {}

// TransactionMeta tags a surface transaction
type TransactionMeta struct {
	// Synthetic marks changes produced by the engine itself
	Synthetic bool
	// SystemFormatting marks content replaced with a formatted value
	SystemFormatting bool
	// MoveCursor places the cursor at the end of the replaced content
	MoveCursor bool
	// Updated marks the transaction which closes a dirty-cell flush
	Updated bool
}

type CellEdit struct {
	Name string
	Text string
}

// Transaction describes one change of the document surface as seen by the engine.
// Selection is the name of the cell which holds the cursor after the change.
type Transaction struct {
	Selection string
	Edit      *CellEdit
	Meta      TransactionMeta
}

type DocumentSurface interface {
	// Nodes lists every table cell in document order
	Nodes() []Node
	// Resolve returns the cell node containing pos
	Resolve(pos Position) (Node, error)
	// NodeAt returns the cell node starting at pos
	NodeAt(pos Position) (Node, error)
	CellRange(name string) (Range, bool)
	ReplaceContent(r Range, node Node, meta TransactionMeta) error
}
