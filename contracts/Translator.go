package contracts

import (
	"strings"
)

// RuleSet selects which rewrite rules the translator applies to a text
type RuleSet uint8

const (
	// RuleSetCellNames returns the comma separated cell names a formula reads from
	RuleSetCellNames RuleSet = iota
	// RuleSetEval returns the value of a formula
	RuleSetEval
	// RuleSetFormat renders a value according to TranslationEnv.Format
	RuleSetFormat
	// RuleSetNormalize returns the comma separated canonical expansion of a formula
	RuleSetNormalize
)

func (r RuleSet) String() string {
	switch r {
	case RuleSetCellNames:
		return "cellNames"
	case RuleSetEval:
		return "eval"
	case RuleSetFormat:
		return "format"
	case RuleSetNormalize:
		return "normalize"
	default:
		return "unknown"
	}
}

type TranslationEnv struct {
	Cells  map[string]Cell
	Format string
}

type Translator interface {
	Translate(rules RuleSet, text string, env TranslationEnv) (string, error)
	// Functions lists the supported function names in lower case
	Functions() []string
}

// TranslationError carries every problem the translator reported for one text
type TranslationError struct {
	Rules  RuleSet
	Text   string
	Errors []string
}

func (e *TranslationError) Error() string {
	return "translation " + e.Rules.String() + " `" + e.Text + "`: " + strings.Join(e.Errors, "; ")
}

func NewTranslationError(rules RuleSet, text string, errs ...string) *TranslationError {
	return &TranslationError{Rules: rules, Text: text, Errors: errs}
}
