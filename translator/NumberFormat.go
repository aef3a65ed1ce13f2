package translator

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/nfp"
)

const (
	generalFormat = "general"
	textFormat    = "@"
)

// numberSection is one `;` separated part of a number format code
type numberSection struct {
	items []nfp.Token

	integerZeros     int
	fractionZeros    int
	fractionHashes   int
	thousands        bool
	percent          bool
	general          bool
	textPlaceholders bool
}

func analyzeSection(section nfp.Section) numberSection {
	out := numberSection{items: section.Items}
	afterPoint := false
	seenPlaceholder := false

	for _, item := range section.Items {
		switch item.TType {
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder, nfp.TokenTypeDigitalPlaceHolder:
			seenPlaceholder = true
			zeros := strings.Count(item.TValue, "0")
			others := len(item.TValue) - zeros
			if afterPoint {
				out.fractionZeros += zeros
				out.fractionHashes += others
			} else {
				out.integerZeros += zeros
			}
		case nfp.TokenTypeDecimalPoint:
			afterPoint = true
		case nfp.TokenTypeThousandsSeparator:
			if seenPlaceholder && !afterPoint {
				out.thousands = true
			}
		case nfp.TokenTypePercent:
			out.percent = true
		case nfp.TokenTypeGeneral:
			out.general = true
		case nfp.TokenTypeTextPlaceHolder:
			out.textPlaceholders = true
		}
	}
	return out
}

func (s numberSection) isNumeric(item nfp.Token) bool {
	switch item.TType {
	case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder, nfp.TokenTypeDigitalPlaceHolder,
		nfp.TokenTypeDecimalPoint, nfp.TokenTypeThousandsSeparator, nfp.TokenTypeGeneral:
		return true
	}
	return false
}

// render writes literals in place and the digits at the first numeric token
func (s numberSection) render(value float64, sign string) string {
	if s.percent {
		value *= 100
	}

	digits := s.digits(value)

	var builder strings.Builder
	builder.WriteString(sign)
	written := false
	for _, item := range s.items {
		if s.isNumeric(item) {
			if !written {
				builder.WriteString(digits)
				written = true
			}
			continue
		}

		switch item.TType {
		case nfp.TokenTypeLiteral:
			builder.WriteString(item.TValue)
		case nfp.TokenTypePercent:
			builder.WriteString("%")
		case nfp.TokenTypeTextPlaceHolder:
			builder.WriteString(digits)
		}
	}
	if !written && !s.textPlaceholders {
		builder.WriteString(digits)
	}
	return builder.String()
}

func (s numberSection) digits(value float64) string {
	if s.general {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}

	decimals := s.fractionZeros + s.fractionHashes
	formatted := strconv.FormatFloat(math.Abs(value), 'f', decimals, 64)

	integer, fraction, _ := strings.Cut(formatted, ".")
	for len(fraction) > s.fractionZeros && strings.HasSuffix(fraction, "0") {
		fraction = fraction[:len(fraction)-1]
	}

	if integer == "0" && s.integerZeros == 0 {
		integer = ""
	}
	for len(integer) < s.integerZeros {
		integer = "0" + integer
	}
	if s.thousands {
		integer = groupThousands(integer)
	}

	if fraction == "" {
		return integer
	}
	return integer + "." + fraction
}

func groupThousands(integer string) string {
	if len(integer) <= 3 {
		return integer
	}

	var builder strings.Builder
	head := len(integer) % 3
	if head > 0 {
		builder.WriteString(integer[:head])
	}
	for i := head; i < len(integer); i += 3 {
		if builder.Len() > 0 {
			builder.WriteString(",")
		}
		builder.WriteString(integer[i : i+3])
	}
	return builder.String()
}

// formatValue applies a number format code to value; text values only use a text section
func formatValue(value string, format string) string {
	trimmed := strings.TrimSpace(format)
	if trimmed == "" || strings.EqualFold(trimmed, generalFormat) || trimmed == textFormat {
		return value
	}

	parser := nfp.NumberFormatParser()
	sections := parser.Parse(trimmed)
	if len(sections) == 0 {
		return value
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return formatText(value, sections)
	}

	switch {
	case number < 0 && len(sections) >= 2:
		return analyzeSection(sections[1]).render(math.Abs(number), "")
	case number == 0 && len(sections) >= 3:
		return analyzeSection(sections[2]).render(number, "")
	case number < 0:
		return analyzeSection(sections[0]).render(math.Abs(number), "-")
	default:
		return analyzeSection(sections[0]).render(number, "")
	}
}

func formatText(value string, sections []nfp.Section) string {
	if len(sections) < 4 {
		return value
	}

	var builder strings.Builder
	for _, item := range sections[3].Items {
		switch item.TType {
		case nfp.TokenTypeTextPlaceHolder:
			builder.WriteString(value)
		case nfp.TokenTypeLiteral:
			builder.WriteString(item.TValue)
		}
	}
	return builder.String()
}
