package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"formSheet/contracts"
	"formSheet/translator"
)

func _makeScorer() *Scorer {
	return NewScorer(translator.NewExprTranslator(), NewValueNormalizer(_fixedClock()), nil)
}

func _valueAssess(expected any) *contracts.AssessSpec {
	return &contracts.AssessSpec{Method: contracts.AssessMethodValue, Expected: expected}
}

func _evaluated(name string, text string, val string, cellType contracts.CellType) contracts.Cell {
	return contracts.Cell{Name: name, Text: text, Formula: text, Val: val, Type: cellType}
}

func TestScorer_ScoreCell(t *testing.T) {
	scorer := _makeScorer()
	points := 3.0

	t.Run("value", func(t *testing.T) {
		cell := _evaluated("A1", "42", "42", contracts.CellTypeNumber)

		assert.Equal(t, contracts.Score{Points: 1, IsValid: true}, scorer.ScoreCell(*_valueAssess(42.0), cell))
		assert.Equal(t, contracts.Score{Points: 0, IsValid: false}, scorer.ScoreCell(*_valueAssess(43.0), cell))
		assert.Equal(t, contracts.Score{Points: 1, IsValid: true}, scorer.ScoreCell(*_valueAssess("42"), cell))

		spec := contracts.AssessSpec{Method: contracts.AssessMethodValue, Expected: 42.0, Points: &points}
		assert.Equal(t, contracts.Score{Points: 3, IsValid: true}, scorer.ScoreCell(spec, cell))
	})

	t.Run("value types must agree", func(t *testing.T) {
		date := _evaluated("A1", "2024-01-01", "43831", contracts.CellTypeDate)
		number := _evaluated("A1", "43831", "43831", contracts.CellTypeNumber)

		assert.True(t, scorer.ScoreCell(*_valueAssess("1/1/2024"), date).IsValid)
		assert.False(t, scorer.ScoreCell(*_valueAssess("1/1/2024"), number).IsValid)
	})

	t.Run("text value", func(t *testing.T) {
		cell := _evaluated("A1", "apples", "apples", contracts.CellTypeText)

		assert.True(t, scorer.ScoreCell(*_valueAssess("apples"), cell).IsValid)
		assert.False(t, scorer.ScoreCell(*_valueAssess("pears"), cell).IsValid)
	})

	t.Run("empty never matches", func(t *testing.T) {
		cell := _evaluated("A1", "", "", contracts.CellTypeText)
		assert.False(t, scorer.ScoreCell(*_valueAssess(nil), cell).IsValid)
	})

	t.Run("formula", func(t *testing.T) {
		spec := contracts.AssessSpec{Method: contracts.AssessMethodFormula, Expected: "=SUM(A1:A2)"}

		assert.True(t, scorer.ScoreCell(spec, _evaluated("A3", "=sum(a1:a2)", "3", contracts.CellTypeNumber)).IsValid)
		assert.True(t, scorer.ScoreCell(spec, _evaluated("A3", "=A2+A1", "3", contracts.CellTypeNumber)).IsValid)
		assert.False(t, scorer.ScoreCell(spec, _evaluated("A3", "=A1-A2", "-1", contracts.CellTypeNumber)).IsValid)
		assert.False(t, scorer.ScoreCell(spec, _evaluated("A3", "3", "3", contracts.CellTypeNumber)).IsValid)
	})
}

func TestScorer_Expectations(t *testing.T) {
	scorer := _makeScorer()

	t.Run("region rows map to cells", func(t *testing.T) {
		store := NewCellStore(_makeCell("B1", "1"), _makeCell("B2", "2"))
		validation := &contracts.Validation{Regions: map[string]contracts.Region{
			"totals": {Rows: []contracts.Row{
				{Cells: map[string]contracts.RowCell{"B": {Assess: _valueAssess(1.0)}}},
				{ID: 5, Cells: map[string]contracts.RowCell{"B": {Assess: _valueAssess(2.0)}, "A": {Text: "label"}}},
			}},
		}}

		expectations := scorer.Expectations(store, validation)
		assert.Len(t, expectations, 2)
		assert.Equal(t, 1.0, expectations["B1"].Expected)
		assert.Equal(t, 2.0, expectations["B5"].Expected)
	})

	t.Run("first region wins and cell attributes fill in", func(t *testing.T) {
		own := _makeCell("C1", "x")
		own.Assess = _valueAssess("x")
		claimed := _makeCell("B1", "1")
		claimed.Assess = _valueAssess("ignored")
		store := NewCellStore(claimed, own)

		validation := &contracts.Validation{Regions: map[string]contracts.Region{
			"b": {Rows: []contracts.Row{{Cells: map[string]contracts.RowCell{"B": {Assess: _valueAssess("second")}}}}},
			"a": {Rows: []contracts.Row{{Cells: map[string]contracts.RowCell{"B": {Assess: _valueAssess("first")}}}}},
		}}

		expectations := scorer.Expectations(store, validation)
		assert.Equal(t, "first", expectations["B1"].Expected)
		assert.Equal(t, "x", expectations["C1"].Expected)
	})

	t.Run("actual order follows the primary column", func(t *testing.T) {
		store := NewCellStore(
			_evaluated("A1", "pears", "pears", contracts.CellTypeText),
			_evaluated("A2", "apples", "apples", contracts.CellTypeText),
			_evaluated("A3", "pears", "pears", contracts.CellTypeText),
			_evaluated("A4", "", "", contracts.CellTypeText),
		)
		validation := &contracts.Validation{Regions: map[string]contracts.Region{
			"fruit": {
				PrimaryColumn: "A",
				Order:         contracts.RowOrderActual,
				Rows: []contracts.Row{
					{Cells: map[string]contracts.RowCell{"A": {Text: "apples"}, "B": {Assess: _valueAssess(1.0)}}},
					{Cells: map[string]contracts.RowCell{"A": {Text: "pears"}, "B": {Assess: _valueAssess(2.0)}}},
				},
			},
		}}

		assert.Equal(t, []string{"pears", "apples"}, ActualOrder(store, "A"))

		expectations := scorer.Expectations(store, validation)
		assert.Equal(t, 2.0, expectations["B1"].Expected)
		assert.Equal(t, 1.0, expectations["B2"].Expected)
	})

	t.Run("sorted orders", func(t *testing.T) {
		rows := []contracts.Row{
			{Cells: map[string]contracts.RowCell{"A": {Assess: _valueAssess(10.0)}}},
			{Cells: map[string]contracts.RowCell{"A": {Assess: _valueAssess(9.0)}}},
			{Cells: map[string]contracts.RowCell{"A": {Assess: _valueAssess(100.0)}}},
		}
		store := NewCellStore()

		asc := scorer.Expectations(store, &contracts.Validation{Regions: map[string]contracts.Region{
			"r": {PrimaryColumn: "A", Order: contracts.RowOrderAsc, Rows: rows},
		}})
		assert.Equal(t, 9.0, asc["A1"].Expected)
		assert.Equal(t, 10.0, asc["A2"].Expected)
		assert.Equal(t, 100.0, asc["A3"].Expected)

		desc := scorer.Expectations(store, &contracts.Validation{Regions: map[string]contracts.Region{
			"r": {PrimaryColumn: "A", Order: contracts.RowOrderDesc, Rows: rows},
		}})
		assert.Equal(t, 100.0, desc["A1"].Expected)
		assert.Equal(t, 9.0, desc["A3"].Expected)
	})

	t.Run("no validation", func(t *testing.T) {
		assert.Empty(t, scorer.Expectations(NewCellStore(_makeCell("A1", "1")), nil))
	})
}

func TestScorer_Summary(t *testing.T) {
	scorer := _makeScorer()
	points := 2.0
	store := NewCellStore(
		_evaluated("A1", "42", "42", contracts.CellTypeNumber),
		_evaluated("A2", "7", "7", contracts.CellTypeNumber),
	)
	validation := &contracts.Validation{Regions: map[string]contracts.Region{
		"r": {Rows: []contracts.Row{
			{Cells: map[string]contracts.RowCell{"A": {Assess: &contracts.AssessSpec{Method: contracts.AssessMethodValue, Expected: 42.0, Points: &points}}}},
			{Cells: map[string]contracts.RowCell{"A": {Assess: _valueAssess(8.0)}}},
			{Cells: map[string]contracts.RowCell{"A": {Assess: _valueAssess(1.0)}}},
		}},
	}}

	summary := scorer.Summary(store, validation)

	assert.Len(t, summary.Cells, 2)
	assert.Equal(t, 2.0, summary.Points)
	assert.Equal(t, 3.0, summary.PossiblePoints)
	assert.False(t, summary.IsValid)

	t.Run("vacuously valid", func(t *testing.T) {
		assert.True(t, scorer.Summary(store, nil).IsValid)
	})
}
