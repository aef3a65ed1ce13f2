package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"formSheet/contracts"
)

var dateFormatPatterns = []string{
	"MM/DD/YYYY", "DD/MM/YYYY", "YYYY-MM-DD",
	"MM-DD-YYYY", "DD-MM-YYYY", "M/D/YY", "D/M/YY",
	"MMM DD, YYYY", "DD MMM YYYY", "date",
}

// serials outside years 1..9999 have no calendar date
var (
	minDateSerial = float64(DateToSerial(time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)))
	maxDateSerial = float64(DateToSerial(time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)))
)

var shortMonthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func IsDateFormat(format string) bool {
	if format == "" {
		return false
	}
	lower := strings.ToLower(format)
	for _, pattern := range dateFormatPatterns {
		if strings.Contains(lower, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// Formatter renders a cell value for display
type Formatter struct {
	translator contracts.Translator
	logger     *zap.SugaredLogger
}

func NewFormatter(translator contracts.Translator, logger *zap.SugaredLogger) *Formatter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Formatter{
		translator: translator,
		logger:     logger,
	}
}

func (f *Formatter) Format(cell contracts.Cell) string {
	if cell.Type == contracts.CellTypeDate || IsDateFormat(cell.Format) {
		if serial, ok := dateSerial(cell.Val); ok {
			return formatSerial(serial, cell.Format)
		}
		if IsDateFormat(cell.Format) {
			return cell.Val
		}
	}

	if cell.Format == "" || cell.Val == "" {
		return cell.Val
	}

	out, err := f.translator.Translate(contracts.RuleSetFormat, cell.Val, contracts.TranslationEnv{Format: cell.Format})
	if err != nil {
		f.logger.Warnw("format failed", "cell", cell.Name, "rules", contracts.RuleSetFormat.String(), "format", cell.Format, "error", err)
		return cell.Val
	}
	return out
}

func dateSerial(val string) (float64, bool) {
	if !isNumeric(val) {
		return 0, false
	}
	serial, _ := strconv.ParseFloat(strings.TrimSpace(val), 64)
	return serial, serial >= minDateSerial && serial < maxDateSerial+1
}

// formatSerial picks the first named pattern contained in format, MM/DD/YYYY otherwise
func formatSerial(serial float64, format string) string {
	date := SerialToDate(serial)
	year, month, day := date.Year(), int(date.Month()), date.Day()
	shortYear := fmt.Sprintf("%02d", year%100)
	monthName := shortMonthNames[month-1]

	switch {
	case strings.Contains(format, "DD/MM/YYYY"):
		return fmt.Sprintf("%02d/%02d/%d", day, month, year)
	case strings.Contains(format, "DD-MM-YYYY"):
		return fmt.Sprintf("%02d-%02d-%d", day, month, year)
	case strings.Contains(format, "YYYY-MM-DD"):
		return fmt.Sprintf("%d-%02d-%02d", year, month, day)
	case strings.Contains(format, "MM-DD-YYYY"):
		return fmt.Sprintf("%02d-%02d-%d", month, day, year)
	case strings.Contains(format, "M/D/YY"):
		return fmt.Sprintf("%d/%d/%s", month, day, shortYear)
	case strings.Contains(format, "D/M/YY"):
		return fmt.Sprintf("%d/%d/%s", day, month, shortYear)
	case strings.Contains(format, "MMM DD, YYYY"):
		return fmt.Sprintf("%s %02d, %d", monthName, day, year)
	case strings.Contains(format, "DD MMM YYYY"):
		return fmt.Sprintf("%02d %s %d", day, monthName, year)
	default:
		return fmt.Sprintf("%02d/%02d/%d", month, day, year)
	}
}
