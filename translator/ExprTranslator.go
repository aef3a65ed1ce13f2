package translator

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	"formSheet/contracts"
)

const referencesSeparator = ","

// ExprTranslator implements the formula rule sets on top of efp tokens and the expr VM
type ExprTranslator struct {
	compilerOptions []expr.Option
	vmPool          sync.Pool
}

func NewExprTranslator() *ExprTranslator {
	return &ExprTranslator{
		compilerOptions: []expr.Option{
			expr.Env(map[string]any{}),
			expr.AllowUndefinedVariables(),
			expr.DisableAllBuiltins(),
			maxFunction,
			minFunction,
			sumFunction,
			mulFunction,
			avgFunction,
			roundFunction,
			ifFunction,
		},

		vmPool: sync.Pool{
			New: func() any {
				return new(vm.VM)
			},
		},
	}
}

func (t *ExprTranslator) Functions() []string {
	return append(make([]string, 0, len(supportedFunctions)), supportedFunctions...)
}

func (t *ExprTranslator) Translate(rules contracts.RuleSet, text string, env contracts.TranslationEnv) (string, error) {
	switch rules {
	case contracts.RuleSetCellNames:
		return t.cellNames(text)
	case contracts.RuleSetEval:
		return t.evaluate(text, env)
	case contracts.RuleSetNormalize:
		return t.normalize(text)
	case contracts.RuleSetFormat:
		return formatValue(text, env.Format), nil
	default:
		return "", contracts.NewTranslationError(rules, text, "unknown rule set")
	}
}

func (t *ExprTranslator) parse(rules contracts.RuleSet, formula string) (ast.Node, string, error) {
	code, err := rewrite(formula)
	if err != nil {
		return nil, "", contracts.NewTranslationError(rules, formula, err.Error())
	}

	tree, err := parser.Parse(code)
	if err != nil {
		return nil, "", contracts.NewTranslationError(rules, formula, err.Error())
	}
	return tree.Node, code, nil
}

func (t *ExprTranslator) cellNames(formula string) (string, error) {
	if !contracts.IsFormula(formula) {
		return "", nil
	}

	node, _, err := t.parse(contracts.RuleSetCellNames, formula)
	if err != nil {
		return "", err
	}

	visitor := NewFindCellRefsVisitor()
	ast.Walk(&node, visitor)
	return strings.Join(visitor.CellRefs(), referencesSeparator), nil
}

func (t *ExprTranslator) normalize(text string) (string, error) {
	if !contracts.IsFormula(text) {
		return text, nil
	}

	node, _, err := t.parse(contracts.RuleSetNormalize, text)
	if err != nil {
		return "", err
	}

	tokens, err := expand(node)
	if err != nil {
		return "", contracts.NewTranslationError(contracts.RuleSetNormalize, text, err.Error())
	}
	return strings.Join(tokens, referencesSeparator), nil
}

func (t *ExprTranslator) evaluate(formula string, env contracts.TranslationEnv) (string, error) {
	if !contracts.IsFormula(formula) {
		return formula, nil
	}

	node, code, err := t.parse(contracts.RuleSetEval, formula)
	if err != nil {
		return "", err
	}

	visitor := NewFindCellRefsVisitor()
	ast.Walk(&node, visitor)

	vars, err := t.variables(formula, visitor.CellRefs(), env)
	if err != nil {
		return "", err
	}

	program, err := expr.Compile(code, t.compilerOptions...)
	if err != nil {
		return "", contracts.NewTranslationError(contracts.RuleSetEval, formula, err.Error())
	}

	v := t.vmPool.Get().(*vm.VM)
	out, err := v.Run(program, vars)
	t.vmPool.Put(v)
	if err != nil {
		return "", contracts.NewTranslationError(contracts.RuleSetEval, formula, err.Error())
	}

	return toString(out), nil
}

// variables binds every referenced cell: numbers and dates as float64, text as string,
// empty or missing cells as 0. A referenced error cell fails the whole formula.
func (t *ExprTranslator) variables(formula string, refs []string, env contracts.TranslationEnv) (map[string]any, error) {
	vars := make(map[string]any, len(refs))
	errs := make([]string, 0)

	for _, ref := range refs {
		cell, ok := env.Cells[ref]
		if !ok || cell.Val == "" {
			vars[ref] = 0.0
			continue
		}

		switch cell.Type {
		case contracts.CellTypeError:
			errs = append(errs, ref+": "+cell.Val)
		case contracts.CellTypeNumber, contracts.CellTypeDate:
			number, err := strconv.ParseFloat(cell.Val, 64)
			if err != nil {
				vars[ref] = cell.Val
			} else {
				vars[ref] = number
			}
		default:
			vars[ref] = cell.Val
		}
	}

	if len(errs) > 0 {
		return nil, contracts.NewTranslationError(contracts.RuleSetEval, formula, errs...)
	}
	return vars, nil
}

func toString(input any) string {
	switch value := input.(type) {
	case nil:
		return ""
	case bool:
		if value {
			return logicalTrue
		}
		return logicalFalse
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		if math.IsInf(value, 0) || math.IsNaN(value) {
			return DivisionByZeroError.Error()
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case string:
		return value
	case []any:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			parts = append(parts, toString(item))
		}
		return strings.Join(parts, referencesSeparator)
	default:
		return ""
	}
}
