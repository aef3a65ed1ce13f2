package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"formSheet/contracts"
	"formSheet/translator"
)

const _yamlForm = `
title: Groceries
cells:
  A1: {text: apples}
  B1: {text: "3"}
  B2: {text: "4"}
  B3:
    text: ""
    attrs:
      assess: {method: formula, expected: "=SUM(B1:B2)", points: 2}
columns:
  B: {format: "0.00"}
rows:
  1: {protected: true}
validation:
  ranges:
    totals:
      primaryColumn: A
      order: expected
      rows:
        - id: 3
          B: {assess: {method: value, expected: 7}}
`

func TestParseFormDefinition(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		definition, err := ParseFormDefinition([]byte(_yamlForm))

		assert.NoError(t, err)
		assert.Equal(t, "Groceries", definition.Title)
		assert.Equal(t, "3", definition.Cells["B1"].Text)
		assert.Equal(t, "0.00", definition.Columns["B"].Format)
		assert.True(t, definition.Rows["1"].Protected)

		assess := definition.Cells["B3"].Attrs.Assess
		if assert.NotNil(t, assess) {
			assert.Equal(t, contracts.AssessMethodFormula, assess.Method)
			assert.Equal(t, "=SUM(B1:B2)", assess.Expected)
			assert.Equal(t, float64(2), assess.PointsOrDefault())
		}

		if assert.NotNil(t, definition.Validation) {
			region := definition.Validation.Regions["totals"]
			assert.Equal(t, "A", region.PrimaryColumn)
			if assert.Len(t, region.Rows, 1) {
				assert.Equal(t, 3, region.Rows[0].ID)
				assert.Equal(t, contracts.AssessMethodValue, region.Rows[0].Cells["B"].Assess.Method)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		definition, err := ParseFormDefinition([]byte(`{"cells":{"A1":{"text":"=1+1"}},"rows":{"2":{"format":"0%"}}}`))

		assert.NoError(t, err)
		assert.Equal(t, "=1+1", definition.Cells["A1"].Text)
		assert.Equal(t, "0%", definition.Rows["2"].Format)
		assert.Nil(t, definition.Validation)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseFormDefinition([]byte("cells: [unclosed"))

		assert.Error(t, err)
	})
}

func TestLoadFormDefinition(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "form.yaml")
		assert.NoError(t, os.WriteFile(path, []byte(_yamlForm), 0600))

		definition, err := LoadFormDefinition(path)

		assert.NoError(t, err)
		assert.Len(t, definition.Cells, 4)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFormDefinition(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestEvaluateDefinition(t *testing.T) {
	definition, err := ParseFormDefinition([]byte(_yamlForm))
	assert.NoError(t, err)

	cell := definition.Cells["B3"]
	cell.Text = "=B1+B2"
	definition.Cells["B3"] = cell

	cellsEngine, err := EvaluateDefinition(*definition, translator.NewExprTranslator(), nil)

	assert.NoError(t, err)
	b3, _ := cellsEngine.Cell("B3")
	assert.Equal(t, "7", b3.Val)

	summary := cellsEngine.Summary()
	assert.True(t, summary.IsValid)
	assert.Equal(t, float64(1), summary.Points)
	assert.Equal(t, float64(1), summary.PossiblePoints)
}
