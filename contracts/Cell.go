package contracts

import (
	"github.com/cockroachdb/errors"
)

type CellType string

const (
	CellTypeText   CellType = "text"
	CellTypeNumber CellType = "number"
	CellTypeDate   CellType = "date"
	CellTypeError  CellType = "error"
)

const FormulaPrefix = "="

// Error markers shown in place of a value
const (
	NameErrorValue  = "#NAME!"
	CycleErrorValue = "#CYCLE!"
)

type Cell struct {
	Name      string      `json:"name"`
	Text      string      `json:"text"`
	Formula   string      `json:"formula"`
	Val       string      `json:"val"`
	Type      CellType    `json:"type"`
	Format    string      `json:"format,omitempty"`
	Deps      []string    `json:"deps"`
	Error     string      `json:"error,omitempty"`
	CyclePath []string    `json:"cyclePath,omitempty"`
	Assess    *AssessSpec `json:"assess,omitempty"`
}

func (c Cell) IsFormula() bool {
	return IsFormula(c.Text)
}

func (c Cell) HasDependant(name string) bool {
	for _, dep := range c.Deps {
		if dep == name {
			return true
		}
	}
	return false
}

// Clone returns a copy which does not share the Deps backing array
func (c Cell) Clone() Cell {
	c.Deps = append(make([]string, 0, len(c.Deps)), c.Deps...)
	if c.CyclePath != nil {
		c.CyclePath = append(make([]string, 0, len(c.CyclePath)), c.CyclePath...)
	}
	return c
}

func IsFormula(text string) bool {
	return len(text) > 0 && text[:1] == FormulaPrefix
}

// CellAttrs are the authored attributes a cell inherits from its column, row or itself
type CellAttrs struct {
	Format    string      `json:"format,omitempty" yaml:"format,omitempty"`
	Assess    *AssessSpec `json:"assess,omitempty" yaml:"assess,omitempty"`
	Protected bool        `json:"protected,omitempty" yaml:"protected,omitempty"`
}

var CellNotFoundError = errors.New("cell not found")

var InvalidCellNameError = errors.New("cell name should match ^[A-Z]+[0-9]+$")

var ReadOnlyCellError = errors.New("header cells are read-only")
