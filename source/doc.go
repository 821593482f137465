// Package source loads the two tables the matcher works from.
//
// The reference table is the second worksheet of the terminology workbook
// and supplies the records scored semantically. The mapping table is the
// first worksheet of a separate workbook and supplies the curated rows used
// for exact lookup. Workbooks are read with excelize (.xlsx, .xlsm) or
// extrame/xls (legacy .xls); a .csv
// file is read as a workbook with a single sheet.
package source
