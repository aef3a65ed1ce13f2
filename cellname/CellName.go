package cellname

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"formSheet/contracts"
)

// HeaderColumn is the column of row headers (`_1`, `_2`, ...); row 0 holds column headers
const HeaderColumn = "_"

const HeaderRow = 0

// MaxRangeCells bounds the number of cells a single range reference may span
const MaxRangeCells = 10000

var RangeTooLargeError = errors.Newf("range should not span more than %d cells", MaxRangeCells)

var pattern = regexp.MustCompile(`^[A-Z]+[0-9]+$`)

// looser form used when scanning formula text, where names may be lower case
var identifierPattern = regexp.MustCompile(`^[A-Za-z]+[0-9]+$`)

func IsCellName(name string) bool {
	return pattern.MatchString(name)
}

func LooksLikeCellName(identifier string) bool {
	return identifierPattern.MatchString(identifier)
}

// Split returns column letters and row number. Header names (row 0 or column `_`) are
// accepted as well.
func Split(name string) (column string, row int, err error) {
	if strings.HasPrefix(name, HeaderColumn) {
		row, err = strconv.Atoi(name[len(HeaderColumn):])
		if err != nil || row < 0 {
			return "", -1, errors.Wrapf(contracts.InvalidCellNameError, "cell `%s`", name)
		}
		return HeaderColumn, row, nil
	}

	if !IsCellName(name) {
		return "", -1, errors.Wrapf(contracts.InvalidCellNameError, "cell `%s`", name)
	}

	letters := strings.TrimRight(name, "0123456789")
	if number, _ := strconv.Atoi(name[len(letters):]); number == HeaderRow {
		return letters, HeaderRow, nil
	}

	column, row, err = excelize.SplitCellName(name)
	if err != nil {
		return "", -1, errors.Wrapf(contracts.InvalidCellNameError, "cell `%s`: %s", name, err.Error())
	}
	return column, row, nil
}

func Join(column string, row int) string {
	if column == HeaderColumn || row == HeaderRow {
		return column + strconv.Itoa(row)
	}

	name, err := excelize.JoinCellName(column, row)
	if err != nil {
		return column + strconv.Itoa(row)
	}
	return name
}

func IsHeader(name string) bool {
	column, row, err := Split(name)
	return err == nil && (column == HeaderColumn || row == HeaderRow)
}

// IsData reports whether name is a valid, non-header cell name
func IsData(name string) bool {
	column, row, err := Split(name)
	return err == nil && column != HeaderColumn && row != HeaderRow
}

func Column(name string) string {
	column, _, _ := Split(name)
	return column
}

func Row(name string) int {
	_, row, _ := Split(name)
	return row
}

// ColumnNumber is 1 for `A`; the header column is 0
func ColumnNumber(column string) int {
	if column == HeaderColumn {
		return 0
	}
	number, err := excelize.ColumnNameToNumber(column)
	if err != nil {
		return -1
	}
	return number
}

func ColumnName(number int) string {
	if number == 0 {
		return HeaderColumn
	}
	name, err := excelize.ColumnNumberToName(number)
	if err != nil {
		return ""
	}
	return name
}

// ExpandRange lists the cells of `from:to` row by row
func ExpandRange(from string, to string) ([]string, error) {
	fromColumn, fromRow, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return nil, errors.Wrapf(contracts.InvalidCellNameError, "range start `%s`", from)
	}
	toColumn, toRow, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return nil, errors.Wrapf(contracts.InvalidCellNameError, "range end `%s`", to)
	}

	if fromColumn > toColumn {
		fromColumn, toColumn = toColumn, fromColumn
	}
	if fromRow > toRow {
		fromRow, toRow = toRow, fromRow
	}

	columns, rows := toColumn-fromColumn+1, toRow-fromRow+1
	if columns > MaxRangeCells || rows > MaxRangeCells || columns*rows > MaxRangeCells {
		return nil, errors.Wrapf(RangeTooLargeError, "range `%s:%s`", from, to)
	}

	names := make([]string, 0, columns*rows)
	for row := fromRow; row <= toRow; row++ {
		for column := fromColumn; column <= toColumn; column++ {
			name, err := excelize.CoordinatesToCellName(column, row)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		}
	}
	return names, nil
}

// Less orders names row-major: by row number, then by column number
func Less(a string, b string) bool {
	aColumn, aRow, _ := Split(a)
	bColumn, bRow, _ := Split(b)
	if aRow != bRow {
		return aRow < bRow
	}
	return ColumnNumber(aColumn) < ColumnNumber(bColumn)
}
