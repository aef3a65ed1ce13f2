package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"formSheet/contracts"
)

// Serial dates count days in the 1904 date system: 1904-01-01 is day 1
var serialEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

const secondsPerDay = 24 * 60 * 60

const twoDigitYearPivot = 50

var (
	percentWithTextPattern = regexp.MustCompile(`%\s+\S`)
	numberWithTextPattern  = regexp.MustCompile(`^[\d,.$€£¥₹₽-]+\s+[a-zA-Z]{4,}`)
	negativeParenPattern   = regexp.MustCompile(`^\s*\([^)]+\)\s*$`)
	decimalPattern         = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	whitespacePattern      = regexp.MustCompile(`\s`)

	pureNumberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	currencyPattern   = regexp.MustCompile(`^[$€£¥₹₽]?\s*-?\d{1,3}([,.]?\d{3})*([,.]\d+)?$|^-?\d{1,3}([,.]?\d{3})*([,.]\d+)?\s*[$€£¥₹₽%]?$`)

	isoDatePattern      = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	fullDatePattern     = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})$`)
	shortYearPattern    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`)
	partialDatePattern  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})$`)
	monthNameDateLayout = []string{"Jan 2, 2006", "January 2, 2006", "2 Jan 2006", "2 January 2006"}
)

// compound symbols go first so `R$` does not leave a stray `R` behind
var currencySymbols = []string{"NZ$", "HK$", "R$", "C$", "A$", "S$", "$", "€", "£", "¥", "₹", "₽"}

// ValueNormalizer turns literal (non formula) text into a typed value
type ValueNormalizer struct {
	now func() time.Time
}

func NewValueNormalizer(now func() time.Time) *ValueNormalizer {
	if now == nil {
		now = time.Now
	}
	return &ValueNormalizer{now: now}
}

// Normalize tries a date first, then a number; anything else is text
func (n *ValueNormalizer) Normalize(text string) (string, contracts.CellType) {
	if serial, ok := n.NormalizeDate(text); ok {
		return strconv.Itoa(serial), contracts.CellTypeDate
	}
	if number, ok := n.NormalizeNumber(text); ok {
		return FormatNumber(number), contracts.CellTypeNumber
	}
	return text, contracts.CellTypeText
}

func (n *ValueNormalizer) NormalizeNumber(text string) (float64, bool) {
	normalized := strings.TrimSpace(text)
	if normalized == "" {
		return 0, false
	}

	if percentWithTextPattern.MatchString(normalized) || numberWithTextPattern.MatchString(normalized) {
		return 0, false
	}

	original := normalized
	for _, symbol := range currencySymbols {
		normalized = strings.ReplaceAll(normalized, symbol, "")
	}

	isPercentage := strings.Contains(normalized, "%")
	normalized = strings.ReplaceAll(normalized, "%", "")

	isNegativeParen := negativeParenPattern.MatchString(original) && strings.ContainsAny(original, "0123456789")
	if isNegativeParen {
		normalized = strings.NewReplacer("(", "", ")", "").Replace(normalized)
	}

	normalized = whitespacePattern.ReplaceAllString(normalized, "")

	isNegative := strings.HasPrefix(normalized, "-")
	normalized = strings.TrimPrefix(normalized, "-")

	cleaned, ok := resolveSeparators(normalized)
	if !ok || !decimalPattern.MatchString(cleaned) {
		return 0, false
	}

	number, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}

	if isNegative || isNegativeParen {
		number = -math.Abs(number)
	}
	if isPercentage {
		number = number / 100
	}
	if number == 0 {
		number = 0
	}
	return number, true
}

func resolveSeparators(s string) (string, bool) {
	commas := strings.Count(s, ",")
	periods := strings.Count(s, ".")
	lastComma := strings.LastIndex(s, ",")
	lastPeriod := strings.LastIndex(s, ".")

	switch {
	case commas == 0 && periods <= 1:
		return s, true
	case commas == 1 && periods == 0:
		if len(s)-lastComma-1 == 3 && len(s) > 4 {
			return strings.ReplaceAll(s, ",", ""), true
		}
		return strings.Replace(s, ",", ".", 1), true
	case periods == 0:
		return strings.ReplaceAll(s, ",", ""), true
	case commas == 0:
		return strings.ReplaceAll(s, ".", ""), true
	case lastComma > lastPeriod:
		return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1), true
	default:
		return strings.ReplaceAll(s, ",", ""), true
	}
}

// NormalizeDate returns the serial of a recognized date
func (n *ValueNormalizer) NormalizeDate(text string) (int, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}

	today := n.today()
	switch strings.ToLower(trimmed) {
	case "today":
		return DateToSerial(today), true
	case "tomorrow":
		return DateToSerial(today.AddDate(0, 0, 1)), true
	case "yesterday":
		return DateToSerial(today.AddDate(0, 0, -1)), true
	}

	if pureNumberPattern.MatchString(trimmed) || currencyPattern.MatchString(trimmed) {
		return 0, false
	}

	if match := isoDatePattern.FindStringSubmatch(trimmed); match != nil {
		return serialOf(atoi(match[1]), atoi(match[2]), atoi(match[3]))
	}

	if match := fullDatePattern.FindStringSubmatch(trimmed); match != nil {
		first, second, year := atoi(match[1]), atoi(match[2]), atoi(match[3])
		if first <= 12 {
			return serialOf(year, first, second)
		}
		// day first only when it cannot be a month
		return serialOf(year, second, first)
	}

	if match := shortYearPattern.FindStringSubmatch(trimmed); match != nil {
		year := atoi(match[3])
		if year < twoDigitYearPivot {
			year += 2000
		} else {
			year += 1900
		}
		return serialOf(year, atoi(match[1]), atoi(match[2]))
	}

	if match := partialDatePattern.FindStringSubmatch(trimmed); match != nil {
		return serialOf(today.Year(), atoi(match[1]), atoi(match[2]))
	}

	for _, layout := range monthNameDateLayout {
		if date, err := time.Parse(layout, trimmed); err == nil {
			return DateToSerial(date), true
		}
	}

	return 0, false
}

func (n *ValueNormalizer) today() time.Time {
	year, month, day := n.now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// serialOf rejects days the calendar does not have, e.g. February 30
func serialOf(year int, month int, day int) (int, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return 0, false
	}
	return DateToSerial(date), true
}

func DateToSerial(date time.Time) int {
	year, month, day := date.Date()
	civil := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return int((civil.Unix()-serialEpoch.Unix())/secondsPerDay) + 1
}

// SerialToDate is the inverse of DateToSerial; fractional days are dropped
func SerialToDate(serial float64) time.Time {
	return serialEpoch.AddDate(0, 0, int(math.Floor(serial))-1)
}

// FormatNumber renders the shortest decimal that parses back to v
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
