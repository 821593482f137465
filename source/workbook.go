package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// workbook is the minimal read access the loaders need.
type workbook interface {
	SheetCount() int
	SheetName(index int) string
	Rows(index int) ([][]string, error)
	Close() error
}

// openWorkbook picks a reader by file extension.
func openWorkbook(path string) (workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", path, err)
		}
		return &excelWorkbook{file: f, sheets: f.GetSheetList()}, nil
	case ".xls":
		return openXLS(path)
	case ".csv":
		return openCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

type excelWorkbook struct {
	file   *excelize.File
	sheets []string
}

func (w *excelWorkbook) SheetCount() int { return len(w.sheets) }

func (w *excelWorkbook) SheetName(index int) string { return w.sheets[index] }

func (w *excelWorkbook) Rows(index int) ([][]string, error) {
	return w.file.GetRows(w.sheets[index])
}

func (w *excelWorkbook) Close() error { return w.file.Close() }

// xlsMaxCols is the BIFF8 column limit.
const xlsMaxCols = 256

// xlsWorkbook reads legacy BIFF workbooks. Sheets are parsed lazily from
// the open file, so it stays open until Close.
type xlsWorkbook struct {
	file *os.File
	book *xls.WorkBook
}

func openXLS(path string) (*xlsWorkbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	book, err := xls.OpenReader(f, "utf-8")
	if err == nil && book == nil {
		err = errors.New("no workbook stream")
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &xlsWorkbook{file: f, book: book}, nil
}

func (w *xlsWorkbook) SheetCount() int { return w.book.NumSheets() }

func (w *xlsWorkbook) SheetName(index int) (name string) {
	defer func() {
		if recover() != nil {
			name = fmt.Sprintf("sheet %d", index+1)
		}
	}()
	return w.book.GetSheet(index).Name
}

func (w *xlsWorkbook) Rows(index int) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("parse sheet %d: %v", index, r)
		}
	}()

	sheet := w.book.GetSheet(index)
	if sheet == nil {
		return nil, fmt.Errorf("%w: no sheet %d", ErrTooFewSheets, index)
	}
	for i := 0; i <= int(sheet.MaxRow); i++ {
		rows = append(rows, xlsCells(sheet, i))
	}
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

func (w *xlsWorkbook) Close() error { return w.file.Close() }

// xlsCells returns the cells of row i with trailing empty cells dropped.
// WorkSheet.Row panics on rows missing from the file; those read as empty.
func xlsCells(sheet *xls.WorkSheet, i int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()

	row := sheet.Row(i)
	width := row.LastCol()
	if width <= 0 {
		// cells written without a ROW record leave the bounds unset
		width = xlsMaxCols
	}
	cells = make([]string, width)
	for c := range cells {
		cells[c] = row.Col(c)
	}
	for len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// csvWorkbook holds a whole CSV file as one sheet.
type csvWorkbook struct {
	name string
	rows [][]string
}

func openCSV(path string) (*csvWorkbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, record)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return &csvWorkbook{name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), rows: rows}, nil
}

func (w *csvWorkbook) SheetCount() int { return 1 }

func (w *csvWorkbook) SheetName(int) string { return w.name }

func (w *csvWorkbook) Rows(int) ([][]string, error) { return w.rows, nil }

func (w *csvWorkbook) Close() error { return nil }

// isCSV reports whether w came from a CSV file.
func isCSV(w workbook) bool {
	_, ok := w.(*csvWorkbook)
	return ok
}

// cell returns the cleaned value at column col of row, or "" when the row
// is short or the column is absent.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return cleanCell(row[col])
}

// cleanCell trims a cell and treats spreadsheet "nan" placeholders as empty.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// blankRow reports whether every cell of row is empty after cleaning.
func blankRow(row []string) bool {
	for _, c := range row {
		if cleanCell(c) != "" {
			return false
		}
	}
	return true
}
