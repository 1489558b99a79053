// Package report renders aggregated cost/revenue figures into an xlsx
// workbook. It is persistence-free: callers compute the rows, this package
// only lays them out.
package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet titles are fixed; the frontend the reports feed is Polish.
const (
	WorkplaceSheet = "Miejsca pracy"
	EmployeeSheet  = "Pracownicy"
)

// Kind selects which sheets a report contains.
type Kind string

const (
	KindEmployee  Kind = "employee"
	KindWorkplace Kind = "workplace"
	KindAll       Kind = "all"
)

func (k Kind) Valid() bool {
	return k == KindEmployee || k == KindWorkplace || k == KindAll
}

func (k Kind) IncludesEmployees() bool {
	return k == KindEmployee || k == KindAll
}

func (k Kind) IncludesWorkplaces() bool {
	return k == KindWorkplace || k == KindAll
}

// WorkplaceRow is one data row of the workplace sheet.
type WorkplaceRow struct {
	Name          string
	EmployeeCount int64
	Costs         decimal.Decimal
	Revenues      decimal.Decimal
	Profit        decimal.Decimal
}

// EmployeeRow is one data row of the employee sheet. Revenue is decomposed
// into the workplace-attributed and direct components.
type EmployeeRow struct {
	Name             string
	Workplaces       []string
	Costs            decimal.Decimal
	WorkplaceRevenue decimal.Decimal
	DirectRevenue    decimal.Decimal
	TotalRevenue     decimal.Decimal
	Profit           decimal.Decimal
}

var workplaceHeaders = []string{
	"Miejsce pracy",
	"Liczba pracowników",
	"Koszty",
	"Przychody",
	"Zysk",
}

var employeeHeaders = []string{
	"Pracownik",
	"Miejsce pracy",
	"Koszty",
	"Przychody z miejsc pracy",
	"Przychody bezpośrednie",
	"Łączne przychody",
	"Zysk",
}

// Build assembles the workbook for the requested kind. Empty row slices
// still yield a valid header-only sheet.
func Build(kind Kind, workplaces []WorkplaceRow, employees []EmployeeRow) (*excelize.File, error) {
	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
	})
	if err != nil {
		return nil, err
	}

	if kind.IncludesWorkplaces() {
		if err := f.SetSheetName("Sheet1", WorkplaceSheet); err != nil {
			return nil, err
		}
		if err := writeHeader(f, WorkplaceSheet, workplaceHeaders, headerStyle, 15); err != nil {
			return nil, err
		}
		for i, row := range workplaces {
			values := []any{
				row.Name,
				row.EmployeeCount,
				FormatCurrency(row.Costs),
				FormatCurrency(row.Revenues),
				FormatCurrency(row.Profit),
			}
			if err := writeRow(f, WorkplaceSheet, i+2, values); err != nil {
				return nil, err
			}
		}
	}

	if kind.IncludesEmployees() {
		sheet := EmployeeSheet
		if kind == KindEmployee {
			if err := f.SetSheetName("Sheet1", EmployeeSheet); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(EmployeeSheet); err != nil {
				return nil, err
			}
		}
		if err := writeHeader(f, sheet, employeeHeaders, headerStyle, 20); err != nil {
			return nil, err
		}
		for i, row := range employees {
			names := "-"
			if len(row.Workplaces) > 0 {
				names = strings.Join(row.Workplaces, ", ")
			}
			values := []any{
				row.Name,
				names,
				FormatCurrency(row.Costs),
				FormatCurrency(row.WorkplaceRevenue),
				FormatCurrency(row.DirectRevenue),
				FormatCurrency(row.TotalRevenue),
				FormatCurrency(row.Profit),
			}
			if err := writeRow(f, sheet, i+2, values); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int, width float64) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// FormatCurrency renders an amount as "1,234.50 zł".
func FormatCurrency(v decimal.Decimal) string {
	s := v.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + b.String() + "." + fracPart + " zł"
}
