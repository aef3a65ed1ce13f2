package translator

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm/runtime"
)

var DivisionByZeroError = errors.New("#DIV/0!")

var ArgumentsError = errors.New("wrong number of arguments")

// numbers flattens range arguments and drops everything that is not a number, the way
// spreadsheet aggregates ignore text cells
func numbers(args []any) []any {
	out := make([]any, 0, len(args))
	for _, arg := range args {
		switch value := arg.(type) {
		case []any:
			out = append(out, numbers(value)...)
		case int, int64, float64:
			out = append(out, value)
		}
	}
	return out
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	default:
		return toFloat(v) != 0
	}
}

var calculateMax = func(args ...any) (any, error) {
	var maxValue any
	for _, arg := range numbers(args) {
		if maxValue == nil || runtime.Less(maxValue, arg) {
			maxValue = arg
		}
	}
	if maxValue == nil {
		return 0, nil
	}
	return maxValue, nil
}

var calculateMin = func(args ...any) (any, error) {
	var minValue any
	for _, arg := range numbers(args) {
		if minValue == nil || runtime.More(minValue, arg) {
			minValue = arg
		}
	}
	if minValue == nil {
		return 0, nil
	}
	return minValue, nil
}

var calculateSum = func(args ...any) (any, error) {
	var sum any = 0
	for _, arg := range numbers(args) {
		sum = runtime.Add(sum, arg)
	}
	return sum, nil
}

var calculateMul = func(args ...any) (any, error) {
	values := numbers(args)
	if len(values) == 0 {
		return 0, nil
	}

	product := values[0]
	for _, arg := range values[1:] {
		product = runtime.Multiply(product, arg)
	}
	return product, nil
}

var calculateAvg = func(args ...any) (any, error) {
	values := numbers(args)
	if len(values) == 0 {
		return nil, DivisionByZeroError
	}

	sum, err := calculateSum(values...)
	if err != nil {
		return nil, err
	}
	return runtime.Divide(sum, len(values)), nil
}

// calculateRound rounds half away from zero
var calculateRound = func(args ...any) (any, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, errors.Wrapf(ArgumentsError, "ROUND expects 1 or 2 arguments, got %d", len(args))
	}

	digits := 0.0
	if len(args) == 2 {
		digits = math.Trunc(toFloat(args[1]))
	}

	scale := math.Pow(10, digits)
	return math.Round(toFloat(args[0])*scale) / scale, nil
}

var calculateIf = func(args ...any) (any, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, errors.Wrapf(ArgumentsError, "IF expects 2 or 3 arguments, got %d", len(args))
	}

	if truthy(args[0]) {
		return args[1], nil
	}
	if len(args) == 3 {
		return args[2], nil
	}
	return false, nil
}

var maxFunction = expr.Function("MAX", calculateMax)
var minFunction = expr.Function("MIN", calculateMin)
var sumFunction = expr.Function("SUM", calculateSum)
var mulFunction = expr.Function("MUL", calculateMul)
var avgFunction = expr.Function("AVERAGE", calculateAvg)
var roundFunction = expr.Function("ROUND", calculateRound)
var ifFunction = expr.Function("IF", calculateIf)

// supportedFunctions are the lower case names of the functions above
var supportedFunctions = []string{"average", "if", "max", "min", "mul", "round", "sum"}
