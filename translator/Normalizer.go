package translator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr/ast"
)

var binaryOperatorNames = map[string]string{
	"-":  "SUB",
	"/":  "DIV",
	"**": "POW",
	"^":  "POW",
	"==": "EQ",
	"!=": "NE",
	"<":  "LT",
	"<=": "LE",
	">":  "GT",
	">=": "GE",
	"%":  "MOD",
}

const (
	sumToken = "SUM"
	mulToken = "MUL"
	negToken = "NEG"
)

// commutativeCalls fold into the same token stream as their operator form
var commutativeCalls = map[string]string{
	sumToken: "+",
	mulToken: "*",
}

// expand renders node as prefix tokens in which the operands of `+` and `*` (and of SUM
// and MUL) are sorted, so that equivalent formulas written in different orders compare
// equal.
func expand(node ast.Node) ([]string, error) {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		return []string{strings.ToUpper(n.Value)}, nil

	case *ast.IntegerNode:
		return []string{strconv.Itoa(n.Value)}, nil

	case *ast.FloatNode:
		return []string{strconv.FormatFloat(n.Value, 'f', -1, 64)}, nil

	case *ast.StringNode:
		return []string{strconv.Quote(n.Value)}, nil

	case *ast.BoolNode:
		if n.Value {
			return []string{logicalTrue}, nil
		}
		return []string{logicalFalse}, nil

	case *ast.ArrayNode:
		return expandEach(n.Nodes)

	case *ast.UnaryNode:
		operand, err := expand(n.Node)
		if err != nil {
			return nil, err
		}
		if n.Operator == "-" {
			return append([]string{negToken}, operand...), nil
		}
		return operand, nil

	case *ast.BinaryNode:
		switch n.Operator {
		case "+":
			return expandCommutative(sumToken, "+", n)
		case "*":
			return expandCommutative(mulToken, "*", n)
		}

		name, ok := binaryOperatorNames[n.Operator]
		if !ok {
			name = n.Operator
		}
		left, err := expand(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := expand(n.Right)
		if err != nil {
			return nil, err
		}
		return append(append([]string{name}, left...), right...), nil

	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			return nil, errors.Newf("unsupported callee %T", n.Callee)
		}
		name := strings.ToUpper(callee.Value)
		if operator, ok := commutativeCalls[name]; ok {
			return expandCommutative(name, operator, n)
		}

		args, err := expandEach(n.Arguments)
		if err != nil {
			return nil, err
		}
		return append([]string{name}, args...), nil

	default:
		return nil, errors.Newf("unsupported node %T", node)
	}
}

func expandEach(nodes []ast.Node) ([]string, error) {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		tokens, err := expand(node)
		if err != nil {
			return nil, err
		}
		out = append(out, tokens...)
	}
	return out, nil
}

func expandCommutative(name string, operator string, node ast.Node) ([]string, error) {
	operands := make([][]string, 0)
	for _, operand := range flattenOperands(name, operator, node) {
		tokens, err := expand(operand)
		if err != nil {
			return nil, err
		}
		operands = append(operands, tokens)
	}

	sort.SliceStable(operands, func(i, j int) bool {
		return strings.Join(operands[i], ",") < strings.Join(operands[j], ",")
	})

	out := []string{name}
	for _, tokens := range operands {
		out = append(out, tokens...)
	}
	return out, nil
}

// flattenOperands unnests `a + (b + c)`, SUM(a, SUM(b)) and range arrays into one operand list
func flattenOperands(name string, operator string, node ast.Node) []ast.Node {
	switch n := node.(type) {
	case *ast.BinaryNode:
		if n.Operator == operator {
			return append(flattenOperands(name, operator, n.Left), flattenOperands(name, operator, n.Right)...)
		}
	case *ast.CallNode:
		if callee, ok := n.Callee.(*ast.IdentifierNode); ok && strings.ToUpper(callee.Value) == name {
			operands := make([]ast.Node, 0, len(n.Arguments))
			for _, arg := range n.Arguments {
				operands = append(operands, flattenOperands(name, operator, arg)...)
			}
			return operands
		}
	case *ast.ArrayNode:
		operands := make([]ast.Node, 0, len(n.Nodes))
		for _, element := range n.Nodes {
			operands = append(operands, flattenOperands(name, operator, element)...)
		}
		return operands
	}
	return []ast.Node{node}
}
