package contracts

import (
	"encoding/json"

	"github.com/bytedance/sonic"
)

type AssessMethod string

const (
	AssessMethodValue   AssessMethod = "value"
	AssessMethodFormula AssessMethod = "formula"
)

type RowOrder string

const (
	RowOrderExpected RowOrder = "expected"
	RowOrderActual   RowOrder = "actual"
	RowOrderAsc      RowOrder = "asc"
	RowOrderDesc     RowOrder = "desc"
)

const DefaultAssessPoints = 1

type AssessSpec struct {
	Method   AssessMethod `json:"method" yaml:"method"`
	Expected any          `json:"expected" yaml:"expected"`
	Points   *float64     `json:"points,omitempty" yaml:"points,omitempty"`
}

func (a AssessSpec) PointsOrDefault() float64 {
	if a.Points == nil {
		return DefaultAssessPoints
	}
	return *a.Points
}

type Score struct {
	Points  float64 `json:"points"`
	IsValid bool    `json:"isValid"`
}

type ScoreSummary struct {
	Cells          map[string]Score `json:"cells"`
	Points         float64          `json:"points"`
	PossiblePoints float64          `json:"possiblePoints"`
	IsValid        bool             `json:"isValid"`
}

type Validation struct {
	Regions map[string]Region `json:"regions"`
}

// UnmarshalJSON accepts `ranges` as an alias of `regions`
func (v *Validation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Regions map[string]Region `json:"regions"`
		Ranges  map[string]Region `json:"ranges"`
	}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}

	v.Regions = raw.Regions
	if v.Regions == nil {
		v.Regions = raw.Ranges
	}
	return nil
}

type Region struct {
	PrimaryColumn string   `json:"primaryColumn"`
	Order         RowOrder `json:"order"`
	Rows          []Row    `json:"rows"`
}

type RowCell struct {
	Text   string      `json:"text,omitempty"`
	Assess *AssessSpec `json:"assess,omitempty"`
}

// Row maps column letters to their expectations. ID, when set, is the row number the
// expectations apply to; otherwise the row position decides.
type Row struct {
	ID    int
	Cells map[string]RowCell
}

const rowIdKey = "id"

func (r *Row) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Cells = make(map[string]RowCell, len(raw))
	for key, value := range raw {
		if key == rowIdKey {
			var id float64
			if err := sonic.Unmarshal(value, &id); err == nil {
				r.ID = int(id)
			}
			continue
		}

		var cell RowCell
		if err := sonic.Unmarshal(value, &cell); err != nil {
			// non-object entries carry no expectation
			continue
		}
		r.Cells[key] = cell
	}
	return nil
}

func (r Row) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(r.Cells)+1)
	for key, cell := range r.Cells {
		raw[key] = cell
	}
	if r.ID != 0 {
		raw[rowIdKey] = r.ID
	}
	return sonic.Marshal(raw)
}
