package main

import (
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"go.etcd.io/bbolt"

	"formSheet/contracts"
)

func _createTmpDb() (*bbolt.DB, func()) {
	f, _ := os.CreateTemp("", "db_*.db")
	os.Remove(f.Name())

	db, dbErr := bbolt.Open(f.Name(), 0600, nil)
	if dbErr != nil {
		panic(dbErr)
	}

	return db, func() {
		db.Close()
		os.Remove(f.Name())
	}
}

func _makeFormDefinition() contracts.FormDefinition {
	points := 2.0
	return contracts.FormDefinition{
		Title: "Groceries",
		Cells: map[string]contracts.CellSpec{
			"A0": {Text: "Item"},
			"A1": {Text: "apples"},
			"B1": {Text: "3"},
			"B2": {Text: "4"},
			"B3": {Text: "", Attrs: contracts.CellAttrs{
				Assess: &contracts.AssessSpec{Method: contracts.AssessMethodFormula, Expected: "=SUM(B1:B2)", Points: &points},
			}},
		},
		Columns: map[string]contracts.CellAttrs{"B": {Format: "0.00"}},
		Rows:    map[string]contracts.CellAttrs{"1": {Protected: true}},
		Validation: &contracts.Validation{Regions: map[string]contracts.Region{
			"totals": {Rows: []contracts.Row{{ID: 3, Cells: map[string]contracts.RowCell{
				"B": {Assess: &contracts.AssessSpec{Method: contracts.AssessMethodValue, Expected: 7.0}},
			}}}},
		}},
	}
}

func TestFormRepository_CreateForm(t *testing.T) {
	db, dbClose := _createTmpDb()
	defer dbClose()

	repository := NewFormRepository(db, NewCellBinarySerializer())

	t.Run("round trip", func(t *testing.T) {
		formId, err := repository.CreateForm(_makeFormDefinition())
		assert.NoError(t, err)
		assert.Len(t, formId, 36)

		definition, err := repository.GetForm(formId)
		assert.NoError(t, err)
		assert.Equal(t, "Groceries", definition.Title)
		assert.Equal(t, "apples", definition.Cells["A1"].Text)
		assert.Equal(t, "0.00", definition.Columns["B"].Format)
		assert.True(t, definition.Rows["1"].Protected)
		assert.Equal(t, "=SUM(B1:B2)", definition.Cells["B3"].Attrs.Assess.Expected)
		assert.Equal(t, 2.0, definition.Cells["B3"].Attrs.Assess.PointsOrDefault())
		assert.Equal(t, 3, definition.Validation.Regions["totals"].Rows[0].ID)
		assert.Equal(t, 7.0, definition.Validation.Regions["totals"].Rows[0].Cells["B"].Assess.Expected)
	})

	t.Run("ids are unique", func(t *testing.T) {
		first, _ := repository.CreateForm(_makeFormDefinition())
		second, _ := repository.CreateForm(_makeFormDefinition())
		assert.NotEqual(t, first, second)
	})

	t.Run("invalid cell name", func(t *testing.T) {
		definition := _makeFormDefinition()
		definition.Cells["b4"] = contracts.CellSpec{Text: "1"}

		_, err := repository.CreateForm(definition)
		assert.True(t, errors.Is(err, contracts.InvalidCellNameError))
	})

	t.Run("invalid column", func(t *testing.T) {
		definition := _makeFormDefinition()
		definition.Columns["9"] = contracts.CellAttrs{}

		_, err := repository.CreateForm(definition)
		assert.True(t, errors.Is(err, contracts.InvalidCellNameError))
	})

	t.Run("empty form", func(t *testing.T) {
		_, err := repository.CreateForm(contracts.FormDefinition{})
		assert.True(t, errors.Is(err, EmptyFormError))
	})
}

func TestFormRepository_GetForm(t *testing.T) {
	db, dbClose := _createTmpDb()
	defer dbClose()

	repository := NewFormRepository(db, NewCellBinarySerializer())

	definition, err := repository.GetForm("missing")
	assert.Nil(t, definition)
	assert.True(t, errors.Is(err, contracts.FormNotFoundError))
}

func TestFormRepository_CellTexts(t *testing.T) {
	db, dbClose := _createTmpDb()
	defer dbClose()

	repository := NewFormRepository(db, NewCellBinarySerializer())
	repository.newId = func() string {
		return "form1"
	}

	formId, err := repository.CreateForm(_makeFormDefinition())
	assert.NoError(t, err)
	assert.Equal(t, "form1", formId)

	t.Run("nothing typed yet", func(t *testing.T) {
		texts, err := repository.GetCellTexts(formId)
		assert.NoError(t, err)
		assert.Empty(t, texts)
	})

	t.Run("save and overwrite", func(t *testing.T) {
		assert.NoError(t, repository.SaveCellTexts(formId, map[string]string{"B3": "=B1+B2", "B2": "5"}))
		assert.NoError(t, repository.SaveCellTexts(formId, map[string]string{"B2": "6"}))

		texts, err := repository.GetCellTexts(formId)
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"B3": "=B1+B2", "B2": "6"}, texts)
	})

	t.Run("unknown form", func(t *testing.T) {
		err := repository.SaveCellTexts("missing", map[string]string{"A1": "1"})
		assert.True(t, errors.Is(err, contracts.FormNotFoundError))

		_, err = repository.GetCellTexts("missing")
		assert.True(t, errors.Is(err, contracts.FormNotFoundError))
	})
}
