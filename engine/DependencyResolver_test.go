package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"formSheet/contracts"
	"formSheet/mocks"
	"formSheet/translator"
)

func _makeStore(texts ...string) *CellStore {
	cells := make([]contracts.Cell, 0, len(texts)/2)
	for i := 0; i+1 < len(texts); i += 2 {
		cells = append(cells, _makeCell(texts[i], texts[i+1]))
	}
	return NewCellStore(cells...)
}

func TestDependencyResolver_DirectDependencies(t *testing.T) {
	resolver := NewDependencyResolver(translator.NewExprTranslator(), nil)
	store := _makeStore(
		"A1", "=B1+C1+B1",
		"A2", "=sum(c1:c3)",
		"A3", "plain text",
		"A4", "=1+",
	)

	assert.Equal(t, []string{"B1", "C1"}, resolver.DirectDependencies(store, "A1"))
	assert.Equal(t, []string{"C1", "C2", "C3"}, resolver.DirectDependencies(store, "A2"))
	assert.Empty(t, resolver.DirectDependencies(store, "A3"))
	assert.Empty(t, resolver.DirectDependencies(store, "A4"))
	assert.Empty(t, resolver.DirectDependencies(store, "Z9"))
}

func TestDependencyResolver_References(t *testing.T) {
	t.Run("splits translator output", func(t *testing.T) {
		translatorMock := mocks.NewTranslator(t)
		translatorMock.On("Translate", contracts.RuleSetCellNames, "=x", mock.Anything).Return("b1, A1,,B1", nil)

		resolver := NewDependencyResolver(translatorMock, nil)
		assert.Equal(t, []string{"B1", "A1"}, resolver.References(NewCellStore(), "=x"))
	})

	t.Run("translator failure", func(t *testing.T) {
		translatorMock := mocks.NewTranslator(t)
		translatorMock.On("Translate", contracts.RuleSetCellNames, "=x", mock.Anything).
			Return("", contracts.NewTranslationError(contracts.RuleSetCellNames, "=x", "boom"))

		resolver := NewDependencyResolver(translatorMock, nil)
		assert.Equal(t, []string{}, resolver.References(NewCellStore(), "=x"))
	})
}
