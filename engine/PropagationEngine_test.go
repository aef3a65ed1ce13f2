package engine

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"formSheet/contracts"
	"formSheet/mocks"
	"formSheet/surface"
	"formSheet/translator"
)

// _countingTranslator counts evaluations per formula text
type _countingTranslator struct {
	contracts.Translator
	evaluations map[string]int
}

func (c *_countingTranslator) Translate(rules contracts.RuleSet, text string, env contracts.TranslationEnv) (string, error) {
	if rules == contracts.RuleSetEval {
		c.evaluations[text]++
	}
	return c.Translator.Translate(rules, text, env)
}

func _makeEngine(t *testing.T, definition contracts.FormDefinition, options ...Option) (*Engine, *surface.GridSurface, *mocks.HostNotifier) {
	notifier := mocks.NewHostNotifier(t)
	notifier.On("Notify", mock.Anything).Return().Maybe()

	grid := surface.NewGridSurface(definition)
	options = append([]Option{
		WithClock(_fixedClock()),
		WithValidation(definition.Validation),
		WithAttributes(definition.Columns, definition.Rows),
	}, options...)

	e := NewEngine(translator.NewExprTranslator(), grid, notifier, options...)
	grid.OnTransaction(func(tr contracts.Transaction) {
		_ = e.Dispatch(tr)
	})

	assert.NoError(t, e.Init())
	return e, grid, notifier
}

func _messages(notifier *mocks.HostNotifier, messageType contracts.HostMessageType) []contracts.HostMessage {
	messages := make([]contracts.HostMessage, 0)
	for _, call := range notifier.Calls {
		if message := call.Arguments.Get(0).(contracts.HostMessage); message.Type == messageType {
			messages = append(messages, message)
		}
	}
	return messages
}

func _lastMessage(t *testing.T, notifier *mocks.HostNotifier, messageType contracts.HostMessageType) contracts.HostMessage {
	messages := _messages(notifier, messageType)
	if !assert.NotEmpty(t, messages) {
		return contracts.HostMessage{}
	}
	return messages[len(messages)-1]
}

func _cellVal(t *testing.T, e *Engine, name string) string {
	cell, ok := e.Cell(name)
	assert.True(t, ok, name)
	return cell.Val
}

func _sumDefinition() contracts.FormDefinition {
	return contracts.FormDefinition{
		Cells: map[string]contracts.CellSpec{
			"A1": {Text: "1"},
			"B1": {Text: "2"},
			"C1": {Text: "=A1+B1"},
			"D1": {Text: "=C1*2"},
		},
		Columns: map[string]contracts.CellAttrs{
			"D": {Format: "0.00"},
		},
	}
}

func TestEngine_Init(t *testing.T) {
	e, _, _ := _makeEngine(t, _sumDefinition())

	t.Run("evaluates every cell", func(t *testing.T) {
		assert.Equal(t, "1", _cellVal(t, e, "A1"))
		assert.Equal(t, "3", _cellVal(t, e, "C1"))
		assert.Equal(t, "6", _cellVal(t, e, "D1"))
	})

	t.Run("registers dependents transitively", func(t *testing.T) {
		a1, _ := e.Cell("A1")
		c1, _ := e.Cell("C1")
		assert.ElementsMatch(t, []string{"C1", "D1"}, a1.Deps)
		assert.Equal(t, []string{"D1"}, c1.Deps)
	})

	t.Run("inherits column format", func(t *testing.T) {
		d1, _ := e.Cell("D1")
		assert.Equal(t, "0.00", d1.Format)
	})

	t.Run("marks non-empty cells dirty", func(t *testing.T) {
		state := e.Snapshot()
		assert.True(t, state.Initialized)
		assert.ElementsMatch(t, []string{"A1", "B1", "C1", "D1"}, state.DirtyCells)
	})

	t.Run("formula before its dependency", func(t *testing.T) {
		e, _, _ := _makeEngine(t, contracts.FormDefinition{Cells: map[string]contracts.CellSpec{
			"A1": {Text: "=A2*10"},
			"A2": {Text: "=B2+1"},
			"B2": {Text: "4"},
		}})
		assert.Equal(t, "50", _cellVal(t, e, "A1"))
	})
}

func TestEngine_Flush(t *testing.T) {
	e, grid, notifier := _makeEngine(t, _sumDefinition())

	assert.NoError(t, e.Flush())

	t.Run("renders formatted values", func(t *testing.T) {
		assert.Equal(t, "1", grid.Text("A1"))
		assert.Equal(t, "3", grid.Text("C1"))
		assert.Equal(t, "6.00", grid.Text("D1"))
	})

	t.Run("first flush announces every cell", func(t *testing.T) {
		update := _lastMessage(t, notifier, contracts.HostMessageUpdate)
		assert.Len(t, update.Cells, 4)
		assert.Equal(t, contracts.CellUpdate{Text: "=C1*2", FormattedValue: "6.00"}, update.Cells["D1"])
	})

	t.Run("clears dirty cells", func(t *testing.T) {
		state := e.Snapshot()
		assert.Empty(t, state.DirtyCells)
		assert.True(t, state.InitialUpdate)
	})

	t.Run("later flushes do not announce", func(t *testing.T) {
		updates := len(_messages(notifier, contracts.HostMessageUpdate))
		assert.NoError(t, e.Flush())
		assert.Len(t, _messages(notifier, contracts.HostMessageUpdate), updates)
	})
}

func TestEngine_FlushSurfaceErrors(t *testing.T) {
	replaceError := errors.New("surface is gone")
	b1Range := contracts.Range{From: 5, To: 11}

	documentSurface := mocks.NewDocumentSurface(t)
	documentSurface.On("Nodes").Return([]contracts.Node{
		contracts.HeaderNode{Name: "_0"},
		contracts.DataNode{Name: "A1", Text: "x"},
		contracts.DataNode{Name: "B1", Text: "=1+1"},
		contracts.DataNode{Name: "C1", Text: "3"},
	})
	documentSurface.On("CellRange", "A1").Return(contracts.Range{}, false)
	documentSurface.On("CellRange", "B1").Return(b1Range, true)
	documentSurface.On("NodeAt", b1Range.From).Return(contracts.DataNode{Name: "B1", Text: "=1+1"}, nil)
	documentSurface.On("ReplaceContent", b1Range, contracts.DataNode{Name: "B1", Text: "2"},
		contracts.TransactionMeta{Synthetic: true, SystemFormatting: true}).Return(replaceError)
	documentSurface.On("CellRange", "C1").Return(contracts.Range{From: 11, To: 14}, true)
	documentSurface.On("NodeAt", contracts.Position(11)).Return(nil, contracts.CellNotFoundError)

	notifier := mocks.NewHostNotifier(t)
	notifier.On("Notify", mock.Anything).Return().Maybe()

	e := NewEngine(translator.NewExprTranslator(), documentSurface, notifier)
	assert.NoError(t, e.Init())

	err := e.Flush()

	assert.Error(t, err)
	assert.True(t, errors.Is(err, contracts.CellNotFoundError))
	assert.Contains(t, err.Error(), "cell `A1` is not on the surface")
	assert.Contains(t, fmt.Sprintf("%+v", err), replaceError.Error())

	t.Run("state is still flushed", func(t *testing.T) {
		assert.Empty(t, e.Snapshot().DirtyCells)
		assert.Equal(t, "2", _cellVal(t, e, "B1"))
		assert.Len(t, _lastMessage(t, notifier, contracts.HostMessageUpdate).Cells, 3)
	})
}

func TestEngine_BlurCascade(t *testing.T) {
	t.Run("edit propagates on blur", func(t *testing.T) {
		e, grid, notifier := _makeEngine(t, _sumDefinition())
		assert.NoError(t, e.Flush())

		assert.NoError(t, grid.Select("A1"))
		focus := _lastMessage(t, notifier, contracts.HostMessageFocus)
		assert.Equal(t, contracts.HostMessage{Type: contracts.HostMessageFocus, Name: "A1", Value: "1"}, focus)

		assert.NoError(t, grid.Type("A1", "5"))
		assert.Equal(t, "3", _cellVal(t, e, "C1"))

		assert.NoError(t, grid.Select(""))
		assert.Equal(t, "5", _cellVal(t, e, "A1"))
		assert.Equal(t, "7", _cellVal(t, e, "C1"))
		assert.Equal(t, "14", _cellVal(t, e, "D1"))

		update := _lastMessage(t, notifier, contracts.HostMessageUpdate)
		assert.Len(t, update.Cells, 3)
		assert.Equal(t, "14.00", update.Cells["D1"].FormattedValue)

		state := e.Snapshot()
		assert.Equal(t, "A1", state.BlurredCell)
		assert.Equal(t, "", state.LastFocusedCell)
		assert.Equal(t, []string{"A1", "C1", "D1"}, state.DirtyCells)

		assert.NoError(t, e.Flush())
		assert.Equal(t, "7", grid.Text("C1"))
		assert.Equal(t, "14.00", grid.Text("D1"))
	})

	t.Run("each dependent is evaluated once", func(t *testing.T) {
		counting := &_countingTranslator{Translator: translator.NewExprTranslator(), evaluations: map[string]int{}}
		notifier := mocks.NewHostNotifier(t)
		notifier.On("Notify", mock.Anything).Return()

		grid := surface.NewGridSurface(contracts.FormDefinition{Cells: map[string]contracts.CellSpec{
			"A1": {Text: "1"},
			"B1": {Text: "=A1+1"},
			"C1": {Text: "=A1*2"},
			"D1": {Text: "=B1+C1"},
		}})
		e := NewEngine(counting, grid, notifier)
		grid.OnTransaction(func(tr contracts.Transaction) {
			_ = e.Dispatch(tr)
		})
		assert.NoError(t, e.Init())
		assert.Equal(t, "4", _cellVal(t, e, "D1"))

		counting.evaluations = map[string]int{}
		assert.NoError(t, grid.Select("A1"))
		assert.NoError(t, grid.Type("A1", "10"))
		assert.NoError(t, grid.Select(""))

		assert.Equal(t, "31", _cellVal(t, e, "D1"))
		assert.Equal(t, 1, counting.evaluations["=B1+C1"])
	})

	t.Run("dependent registered before its dependency converges", func(t *testing.T) {
		e, grid, _ := _makeEngine(t, contracts.FormDefinition{Cells: map[string]contracts.CellSpec{
			"A1": {Text: "=B1*2"},
			"B1": {Text: "=C1+1"},
			"C1": {Text: "1"},
		}})
		assert.Equal(t, "4", _cellVal(t, e, "A1"))

		assert.NoError(t, grid.Select("C1"))
		assert.NoError(t, grid.Type("C1", "4"))
		assert.NoError(t, grid.Select(""))

		assert.Equal(t, "5", _cellVal(t, e, "B1"))
		assert.Equal(t, "10", _cellVal(t, e, "A1"))
	})

	t.Run("new reference is linked", func(t *testing.T) {
		e, grid, _ := _makeEngine(t, _sumDefinition())

		assert.NoError(t, grid.Select("C1"))
		assert.NoError(t, grid.Type("C1", "=B1*10"))
		assert.NoError(t, grid.Select(""))
		assert.Equal(t, "20", _cellVal(t, e, "C1"))
		assert.Equal(t, "40", _cellVal(t, e, "D1"))

		a1, _ := e.Cell("A1")
		assert.NotContains(t, a1.Deps, "C1")

		assert.NoError(t, grid.Select("B1"))
		assert.NoError(t, grid.Type("B1", "3"))
		assert.NoError(t, grid.Select(""))
		assert.Equal(t, "60", _cellVal(t, e, "D1"))
	})

	t.Run("cycle is reported", func(t *testing.T) {
		e, grid, _ := _makeEngine(t, _sumDefinition())

		assert.NoError(t, grid.Select("C1"))
		assert.NoError(t, grid.Type("C1", "=D1"))
		assert.NoError(t, grid.Select(""))

		c1, _ := e.Cell("C1")
		assert.Equal(t, contracts.CycleErrorValue, c1.Val)
		assert.Equal(t, contracts.CellTypeError, c1.Type)
		assert.Equal(t, []string{"C1", "D1", "C1"}, c1.CyclePath)
		assert.Equal(t, contracts.CycleErrorValue, _cellVal(t, e, "D1"))

		assert.NoError(t, e.Flush())
		assert.Equal(t, contracts.CycleErrorValue, grid.Text("C1"))
	})

	t.Run("focused cell keeps its text", func(t *testing.T) {
		e, grid, _ := _makeEngine(t, _sumDefinition())
		assert.NoError(t, e.Flush())

		assert.NoError(t, grid.Select("C1"))
		assert.NoError(t, grid.Select("D1"))

		assert.Equal(t, "D1", e.Snapshot().FocusedCell)
		assert.NoError(t, e.Flush())
		assert.Equal(t, "=C1*2", grid.Text("D1"))
		assert.Equal(t, "3", grid.Text("C1"))
	})
}

func TestEngine_Dispatch(t *testing.T) {
	definition := _sumDefinition()
	definition.Rows = map[string]contracts.CellAttrs{"2": {Protected: true}}
	definition.Cells["A2"] = contracts.CellSpec{Text: "locked"}

	t.Run("read only cells", func(t *testing.T) {
		e, _, _ := _makeEngine(t, definition)

		err := e.Dispatch(contracts.Transaction{Edit: &contracts.CellEdit{Name: "A2", Text: "x"}})
		assert.ErrorIs(t, err, contracts.ReadOnlyCellError)

		err = e.Dispatch(contracts.Transaction{Edit: &contracts.CellEdit{Name: "A0", Text: "x"}})
		assert.ErrorIs(t, err, contracts.ReadOnlyCellError)

		err = e.Dispatch(contracts.Transaction{Edit: &contracts.CellEdit{Name: "Q9", Text: "x"}})
		assert.ErrorIs(t, err, contracts.CellNotFoundError)

		cell, _ := e.Cell("A2")
		assert.Equal(t, "locked", cell.Text)
	})

	t.Run("synthetic transactions", func(t *testing.T) {
		e, _, notifier := _makeEngine(t, definition)
		calls := len(notifier.Calls)

		assert.NoError(t, e.Dispatch(contracts.Transaction{Selection: "B1", Meta: contracts.TransactionMeta{Synthetic: true}}))
		assert.Equal(t, "", e.Snapshot().FocusedCell)

		assert.NoError(t, e.Dispatch(contracts.Transaction{Selection: "B1", Meta: contracts.TransactionMeta{Synthetic: true, MoveCursor: true}}))
		assert.Equal(t, "B1", e.Snapshot().FocusedCell)
		assert.Equal(t, "", e.Snapshot().LastFocusedCell)
		assert.Len(t, notifier.Calls, calls)

		assert.NoError(t, e.Dispatch(contracts.Transaction{Meta: contracts.TransactionMeta{Synthetic: true, Updated: true}}))
		state := e.Snapshot()
		assert.Equal(t, "", state.FocusedCell)
		assert.Empty(t, state.DirtyCells)
	})
}

func TestEngine_Responses(t *testing.T) {
	expected := &contracts.AssessSpec{Method: contracts.AssessMethodValue, Expected: 3.0}
	definition := _sumDefinition()
	definition.Cells["C1"] = contracts.CellSpec{Text: "=A1+B1", Attrs: contracts.CellAttrs{Assess: expected}}

	e, grid, notifier := _makeEngine(t, definition)
	assert.NoError(t, grid.Select("A1"))

	responses := _lastMessage(t, notifier, contracts.HostMessageResponse)
	assert.Equal(t, map[string]contracts.CellResponse{
		"C1": {Text: "=A1+B1", Val: "3", Formula: "=A1+B1"},
	}, responses.Responses)

	assert.Equal(t, map[string]contracts.Score{"C1": {Points: 1, IsValid: true}}, e.Score())

	assert.NoError(t, grid.Type("A1", "2"))
	assert.NoError(t, grid.Select(""))

	summary := e.Summary()
	assert.False(t, summary.IsValid)
	assert.Equal(t, 0.0, summary.Points)
	assert.Equal(t, 1.0, summary.PossiblePoints)
}

func TestEngine_Snapshot(t *testing.T) {
	e, _, _ := _makeEngine(t, _sumDefinition())

	snapshot := e.Snapshot()
	snapshot.DirtyCells[0] = "Z9"
	snapshot.Cells.Cells["A1"].Deps[0] = "Z9"

	state := e.Snapshot()
	assert.NotContains(t, state.DirtyCells, "Z9")
	assert.NotContains(t, state.Cells.Cells["A1"].Deps, "Z9")
}
