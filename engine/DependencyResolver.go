package engine

import (
	"strings"

	"go.uber.org/zap"

	"formSheet/contracts"
)

const referencesSeparator = ","

// DependencyResolver asks the translator which cells a formula reads from
type DependencyResolver struct {
	translator contracts.Translator
	logger     *zap.SugaredLogger
}

func NewDependencyResolver(translator contracts.Translator, logger *zap.SugaredLogger) *DependencyResolver {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DependencyResolver{
		translator: translator,
		logger:     logger,
	}
}

// DirectDependencies lists, in first-seen order, the cells named by the formula of cell
// `name`. Literal text and missing cells have none.
func (r *DependencyResolver) DirectDependencies(store *CellStore, name string) []string {
	return r.References(store, store.Text(name))
}

func (r *DependencyResolver) References(store *CellStore, text string) []string {
	if !contracts.IsFormula(text) {
		return []string{}
	}

	out, err := r.translator.Translate(contracts.RuleSetCellNames, text, contracts.TranslationEnv{Cells: store.Cells})
	if err != nil {
		r.logger.Warnw("dependency extraction failed", "formula", text, "error", err)
		return []string{}
	}

	return splitReferences(out)
}

func splitReferences(out string) []string {
	references := make([]string, 0)
	seen := make(map[string]bool)
	for _, reference := range strings.Split(out, referencesSeparator) {
		reference = strings.ToUpper(strings.TrimSpace(reference))
		if reference == "" || seen[reference] {
			continue
		}
		seen[reference] = true
		references = append(references, reference)
	}
	return references
}
