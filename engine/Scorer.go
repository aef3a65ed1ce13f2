package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"formSheet/cellname"
	"formSheet/contracts"
)

const expansionSeparator = ","

// Scorer grades cells against the expectations of a validation spec
type Scorer struct {
	translator    contracts.Translator
	normalizer    *ValueNormalizer
	canonicalizer *Canonicalizer
	logger        *zap.SugaredLogger
}

func NewScorer(translator contracts.Translator, normalizer *ValueNormalizer, logger *zap.SugaredLogger) *Scorer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Scorer{
		translator:    translator,
		normalizer:    normalizer,
		canonicalizer: NewCanonicalizer(),
		logger:        logger,
	}
}

// Expectations maps cell names to the assess spec that applies to them. Regions are
// visited in name order and the first region to claim a cell wins; cells carrying their
// own assess attribute keep it when no region claims them.
func (s *Scorer) Expectations(store *CellStore, validation *contracts.Validation) map[string]contracts.AssessSpec {
	expectations := make(map[string]contracts.AssessSpec)

	if validation != nil {
		regionNames := make([]string, 0, len(validation.Regions))
		for name := range validation.Regions {
			regionNames = append(regionNames, name)
		}
		sort.Strings(regionNames)

		for _, regionName := range regionNames {
			for name, spec := range s.regionExpectations(store, validation.Regions[regionName]) {
				if _, claimed := expectations[name]; !claimed {
					expectations[name] = spec
				}
			}
		}
	}

	for _, name := range store.Order {
		cell := store.Cells[name]
		if _, claimed := expectations[name]; !claimed && cell.Assess != nil {
			expectations[name] = *cell.Assess
		}
	}
	return expectations
}

func (s *Scorer) regionExpectations(store *CellStore, region contracts.Region) map[string]contracts.AssessSpec {
	expectations := make(map[string]contracts.AssessSpec)

	for index, row := range s.orderedRows(store, region) {
		if row == nil {
			continue
		}
		rowNumber := row.ID
		if rowNumber == 0 {
			rowNumber = index + 1
		}

		for column, rowCell := range row.Cells {
			name := cellname.Join(column, rowNumber)
			if rowCell.Assess == nil || !cellname.IsData(name) {
				continue
			}
			expectations[name] = *rowCell.Assess
		}
	}
	return expectations
}

// orderedRows applies the region's order policy; nil entries are holes
func (s *Scorer) orderedRows(store *CellStore, region contracts.Region) []*contracts.Row {
	rows := make([]*contracts.Row, 0, len(region.Rows))
	for i := range region.Rows {
		rows = append(rows, &region.Rows[i])
	}

	switch region.Order {
	case contracts.RowOrderActual:
		return s.matchActualOrder(store, region.PrimaryColumn, rows)
	case contracts.RowOrderAsc, contracts.RowOrderDesc:
		descending := region.Order == contracts.RowOrderDesc
		sort.SliceStable(rows, func(i, j int) bool {
			a := expectedValue(rows[i].Cells[region.PrimaryColumn])
			b := expectedValue(rows[j].Cells[region.PrimaryColumn])
			if descending {
				return lessValue(b, a)
			}
			return lessValue(a, b)
		})
		return rows
	default:
		return rows
	}
}

func (s *Scorer) matchActualOrder(store *CellStore, primaryColumn string, rows []*contracts.Row) []*contracts.Row {
	byExpected := make(map[string]*contracts.Row, len(rows))
	for _, row := range rows {
		key := expectedValue(row.Cells[primaryColumn])
		// a later row with the same key replaces an earlier one
		byExpected[key] = row
	}

	order := ActualOrder(store, primaryColumn)
	matched := make([]*contracts.Row, 0, len(order))
	for _, value := range order {
		matched = append(matched, byExpected[value])
	}
	return matched
}

// ActualOrder lists the values of a column from top to bottom, first seen wins and
// empty cells are dropped
func ActualOrder(store *CellStore, column string) []string {
	names := make([]string, 0)
	for _, name := range store.Order {
		if cellname.Column(name) == column && cellname.IsData(name) {
			names = append(names, name)
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		return cellname.Row(names[i]) < cellname.Row(names[j])
	})

	order := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		cell := store.Cells[name]
		value := cell.Text
		if value == "" {
			value = cell.Val
		}
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		order = append(order, value)
	}
	return order
}

func expectedValue(rowCell contracts.RowCell) string {
	if rowCell.Text != "" {
		return rowCell.Text
	}
	if rowCell.Assess != nil {
		return stringify(rowCell.Assess.Expected)
	}
	return ""
}

func lessValue(a string, b string) bool {
	aNumber, aErr := strconv.ParseFloat(a, 64)
	bNumber, bErr := strconv.ParseFloat(b, 64)
	if aErr == nil && bErr == nil {
		return aNumber < bNumber
	}
	return a < b
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return FormatNumber(v)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// Score grades every cell having an expectation
func (s *Scorer) Score(store *CellStore, validation *contracts.Validation) map[string]contracts.Score {
	scores := make(map[string]contracts.Score)
	for name, spec := range s.Expectations(store, validation) {
		if cell, ok := store.Get(name); ok {
			scores[name] = s.ScoreCell(spec, cell)
		}
	}
	return scores
}

func (s *Scorer) Summary(store *CellStore, validation *contracts.Validation) contracts.ScoreSummary {
	expectations := s.Expectations(store, validation)
	scores := s.Score(store, validation)

	summary := contracts.ScoreSummary{Cells: scores, IsValid: true}
	for name, score := range scores {
		spec := expectations[name]
		summary.Points += score.Points
		summary.PossiblePoints += spec.PointsOrDefault()
		summary.IsValid = summary.IsValid && score.IsValid
	}
	return summary
}

func (s *Scorer) ScoreCell(spec contracts.AssessSpec, cell contracts.Cell) contracts.Score {
	points := spec.PointsOrDefault()

	switch spec.Method {
	case contracts.AssessMethodValue:
		expectedVal, expectedType := s.expectedTyped(spec.Expected)
		if equivValue(cell.Val, expectedVal, cell.Type, expectedType) {
			return contracts.Score{Points: points, IsValid: true}
		}
	case contracts.AssessMethodFormula:
		if s.equivFormula(cell.Formula, stringify(spec.Expected)) {
			return contracts.Score{Points: points, IsValid: true}
		}
	}
	return contracts.Score{Points: 0, IsValid: false}
}

// expectedTyped infers the type of an expected literal: date wins over number
func (s *Scorer) expectedTyped(expected any) (string, contracts.CellType) {
	if expected == nil {
		return "", contracts.CellTypeText
	}
	text := stringify(expected)
	if serial, ok := s.normalizer.NormalizeDate(text); ok {
		return strconv.Itoa(serial), contracts.CellTypeDate
	}
	if number, ok := s.normalizer.NormalizeNumber(text); ok {
		return FormatNumber(number), contracts.CellTypeNumber
	}
	return text, contracts.CellTypeText
}

func equivValue(actual string, expected string, actualType contracts.CellType, expectedType contracts.CellType) bool {
	if actualType != "" && expectedType != "" && actualType != expectedType {
		return false
	}
	return actual != "" && actual == expected
}

func (s *Scorer) equivFormula(actual string, expected string) bool {
	actualTokens := s.expansion(actual)
	expectedTokens := s.expansion(expected)
	if len(actualTokens) != len(expectedTokens) {
		return false
	}
	for i := range actualTokens {
		if actualTokens[i] != expectedTokens[i] {
			return false
		}
	}
	return true
}

// expansion is the normalized token list of a formula; a text that cannot be normalized
// is its own single token
func (s *Scorer) expansion(text string) []string {
	if text == "" {
		return []string{""}
	}
	if contracts.IsFormula(text) {
		text = s.canonicalizer.Canonicalize(text)
	}

	out, err := s.translator.Translate(contracts.RuleSetNormalize, text, contracts.TranslationEnv{})
	if err != nil {
		s.logger.Warnw("normalization failed", "rules", contracts.RuleSetNormalize.String(), "text", text, "error", err)
		return []string{text}
	}
	if !contracts.IsFormula(text) {
		return []string{out}
	}
	return strings.Split(out, expansionSeparator)
}
