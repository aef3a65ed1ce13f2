package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"formSheet/cellname"
	"formSheet/contracts"
)

var namePattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9_]*`)

// logical literals are names every formula may use
var logicalNames = map[string]bool{"true": true, "false": true}

// Result is what evaluation derives from a cell's text
type Result struct {
	Formula   string
	Val       string
	Format    string
	Type      contracts.CellType
	Error     string
	CyclePath []string
}

// Apply copies the derived fields onto cell
func (r Result) Apply(cell *contracts.Cell) {
	cell.Formula = r.Formula
	cell.Val = r.Val
	cell.Type = r.Type
	cell.Error = r.Error
	cell.CyclePath = r.CyclePath
}

type Evaluator struct {
	translator    contracts.Translator
	canonicalizer *Canonicalizer
	detector      *CycleDetector
	normalizer    *ValueNormalizer
	functions     map[string]bool
	logger        *zap.SugaredLogger
}

func NewEvaluator(translator contracts.Translator, detector *CycleDetector, normalizer *ValueNormalizer, logger *zap.SugaredLogger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	functions := make(map[string]bool)
	for _, name := range translator.Functions() {
		functions[strings.ToLower(name)] = true
	}

	return &Evaluator{
		translator:    translator,
		canonicalizer: NewCanonicalizer(),
		detector:      detector,
		normalizer:    normalizer,
		functions:     functions,
		logger:        logger,
	}
}

func (e *Evaluator) Evaluate(store *CellStore, name string) Result {
	cell, _ := store.Get(name)
	result := Result{
		Formula: cell.Text,
		Val:     cell.Text,
		Format:  cell.Format,
		Type:    contracts.CellTypeText,
	}

	if cell.Text == "" {
		return result
	}

	if !cell.IsFormula() {
		result.Val, result.Type = e.normalizer.Normalize(cell.Text)
		return result
	}

	if undefined := e.UndefinedNames(cell.Text); len(undefined) > 0 {
		result.Val = contracts.NameErrorValue
		result.Type = contracts.CellTypeError
		result.Error = undefinedNamesMessage(undefined)
		return result
	}

	if cycle := e.detector.Detect(store, name); cycle.HasCycle {
		result.Val = contracts.CycleErrorValue
		result.Type = contracts.CellTypeError
		result.Error = "Circular dependency: " + cycle.Describe()
		result.CyclePath = cycle.CyclePath
		return result
	}

	out, err := e.translator.Translate(
		contracts.RuleSetEval,
		e.canonicalizer.Canonicalize(cell.Text),
		contracts.TranslationEnv{Cells: store.Cells, Format: cell.Format},
	)
	if err != nil {
		e.logger.Warnw("evaluation failed", "cell", name, "rules", contracts.RuleSetEval.String(), "error", err)
		return result
	}

	result.Val = out
	switch {
	case isNumeric(out) && IsDateFormat(cell.Format):
		result.Type = contracts.CellTypeDate
	case isNumeric(out):
		result.Type = contracts.CellTypeNumber
	default:
		result.Type = contracts.CellTypeText
	}
	return result
}

// UndefinedNames lists, unique and in first-seen order, the names of a formula that are
// neither cell names nor supported functions. String literals are not scanned.
func (e *Evaluator) UndefinedNames(formula string) []string {
	undefined := make([]string, 0)
	seen := make(map[string]bool)

	forEachUnquoted(strings.ReplaceAll(formula, "$", ""), func(part string) {
		for _, loc := range namePattern.FindAllStringIndex(part, -1) {
			// exponent of a number literal such as 1.5E3
			if loc[0] > 0 && isNumberChar(part[loc[0]-1]) {
				continue
			}

			name := part[loc[0]:loc[1]]
			lower := strings.ToLower(name)
			if cellname.LooksLikeCellName(name) || e.functions[lower] || logicalNames[lower] {
				continue
			}
			if !seen[name] {
				seen[name] = true
				undefined = append(undefined, name)
			}
		}
	})
	return undefined
}

func undefinedNamesMessage(names []string) string {
	label := "Undefined name"
	if len(names) > 1 {
		label += "s"
	}
	return label + ": " + strings.Join(names, ", ")
}

func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

func isNumeric(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	return err == nil && !math.IsInf(v, 0) && !math.IsNaN(v)
}
