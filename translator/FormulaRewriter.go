package translator

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/efp"

	"formSheet/cellname"
)

var UnsupportedTokenError = errors.New("unsupported formula token")

var infixOperators = map[string]string{
	"=":  "==",
	"<>": "!=",
	"^":  "**",
	"&":  "+",
}

const (
	logicalTrue  = "TRUE"
	logicalFalse = "FALSE"
)

// rewrite tokenizes a spreadsheet formula and renders it as an expr expression: cell
// references stay identifiers, ranges become arrays of cell names.
func rewrite(formula string) (string, error) {
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}

	parser := efp.ExcelParser()
	tokens := parser.Parse(formula)

	var builder strings.Builder
	for _, token := range tokens {
		switch token.TType {
		case efp.TokenTypeOperand:
			operand, err := rewriteOperand(token)
			if err != nil {
				return "", err
			}
			builder.WriteString(operand)

		case efp.TokenTypeFunction:
			if token.TSubType == efp.TokenSubTypeStart {
				builder.WriteString(strings.ToUpper(token.TValue))
				builder.WriteString("(")
			} else {
				builder.WriteString(")")
			}

		case efp.TokenTypeSubexpression:
			if token.TSubType == efp.TokenSubTypeStart {
				builder.WriteString("(")
			} else {
				builder.WriteString(")")
			}

		case efp.TokenTypeArgument:
			builder.WriteString(", ")

		case efp.TokenTypeOperatorPrefix:
			builder.WriteString(token.TValue)

		case efp.TokenTypeOperatorInfix:
			operator, ok := infixOperators[token.TValue]
			if !ok {
				operator = token.TValue
			}
			builder.WriteString(" " + operator + " ")

		case efp.TokenTypeOperatorPostfix:
			if token.TValue != "%" {
				return "", errors.Wrapf(UnsupportedTokenError, "postfix `%s`", token.TValue)
			}
			builder.WriteString(" / 100")

		case efp.TokenTypeWhitespace, efp.TokenTypeNoop:
			continue

		default:
			return "", errors.Wrapf(UnsupportedTokenError, "`%s` (%s)", token.TValue, token.TType)
		}
	}

	return builder.String(), nil
}

func rewriteOperand(token efp.Token) (string, error) {
	switch token.TSubType {
	case efp.TokenSubTypeText:
		return strconv.Quote(token.TValue), nil

	case efp.TokenSubTypeNumber:
		return token.TValue, nil

	case efp.TokenSubTypeLogical:
		if strings.EqualFold(token.TValue, logicalTrue) {
			return "true", nil
		}
		return "false", nil

	case efp.TokenSubTypeRange:
		return rewriteReference(token.TValue)

	default:
		return "", errors.Wrapf(UnsupportedTokenError, "operand `%s` (%s)", token.TValue, token.TSubType)
	}
}

func rewriteReference(reference string) (string, error) {
	reference = strings.ToUpper(strings.ReplaceAll(reference, "$", ""))
	if strings.Contains(reference, "!") {
		return "", errors.Wrapf(UnsupportedTokenError, "cross sheet reference `%s`", reference)
	}

	if strings.EqualFold(reference, logicalTrue) || strings.EqualFold(reference, logicalFalse) {
		return strings.ToLower(reference), nil
	}

	from, to, isRange := strings.Cut(reference, ":")
	if !isRange {
		return reference, nil
	}

	names, err := cellname.ExpandRange(from, to)
	if err != nil {
		return "", err
	}
	return "[" + strings.Join(names, ", ") + "]", nil
}
