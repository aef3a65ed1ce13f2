package contracts

import "github.com/cockroachdb/errors"

// FormDefinition is the authored form a session is built from
type FormDefinition struct {
	Title      string               `json:"title,omitempty"`
	Cells      map[string]CellSpec  `json:"cells"`
	Columns    map[string]CellAttrs `json:"columns,omitempty"`
	Rows       map[string]CellAttrs `json:"rows,omitempty"`
	Validation *Validation          `json:"validation,omitempty"`
}

type CellSpec struct {
	Text  string    `json:"text"`
	Attrs CellAttrs `json:"attrs"`
}

type FormRepository interface {
	CreateForm(definition FormDefinition) (formId string, err error)
	GetForm(formId string) (*FormDefinition, error)
	// SaveCellTexts stores the current text of the given cells
	SaveCellTexts(formId string, texts map[string]string) error
	GetCellTexts(formId string) (map[string]string, error)
}

var FormNotFoundError = errors.New("form not found")
