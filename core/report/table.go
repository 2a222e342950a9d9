package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const notAvailable = "N/A"

type Column struct {
	Name  string `json:"name"`
	Width int    `json:"-"`
	// Format is the fmt verb used for the cells of the column, "%v" when empty.
	Format string `json:"-"`
}

// Table is a rendered report: rows of cells under fixed width columns.
// A nil cell is printed as N/A.
type Table struct {
	Title     string          `json:"title"`
	Columns   []Column        `json:"columns"`
	Rows      [][]interface{} `json:"rows"`
	Empty     string          `json:"empty,omitempty"`
	RuleWidth int             `json:"-"`
}

func (c Column) format(v interface{}) string {
	if v == nil {
		return notAvailable
	}
	if c.Format == "" {
		return fmt.Sprint(v)
	}
	return fmt.Sprintf(c.Format, v)
}

// Text renders the table as a fixed width text block: title, rule, header, rule, then rows or the empty message.
func (t Table) Text() string {
	var b strings.Builder
	rule := strings.Repeat("-", t.RuleWidth)

	b.WriteString(t.Title + "\n")
	b.WriteString(rule + "\n")
	for _, col := range t.Columns {
		fmt.Fprintf(&b, "%-*s", col.Width, col.Name)
	}
	b.WriteString("\n" + rule + "\n")

	if len(t.Rows) == 0 && t.Empty != "" {
		b.WriteString(t.Empty + "\n")
		return b.String()
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			col := t.Columns[i]
			fmt.Fprintf(&b, "%-*s", col.Width, col.format(cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteXLSX exports the table as a single sheet spreadsheet: the title, a bold header row, then the rows.
// Numbers stay numbers.
func (t Table) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	if err = f.SetCellStr(sheet, "A1", t.Title); err != nil {
		return errors.Wrap(err, "writing title")
	}
	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Name
	}
	if err = f.SetSheetRow(sheet, "A2", &header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if len(t.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 2)
		if err = f.SetCellStyle(sheet, "A2", last, bold); err != nil {
			return errors.Wrap(err, "styling header")
		}
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			if cell == nil {
				cell = notAvailable
			}
			cells[j] = cell
		}
		axis, _ := excelize.CoordinatesToCellName(1, i+3)
		if err = f.SetSheetRow(sheet, axis, &cells); err != nil {
			return errors.Wrapf(err, "writing row %d", i+1)
		}
	}
	if len(t.Rows) == 0 && t.Empty != "" {
		if err = f.SetCellStr(sheet, "A3", t.Empty); err != nil {
			return errors.Wrap(err, "writing empty message")
		}
	}

	_, err = f.WriteTo(w)
	return errors.Wrap(err, "writing spreadsheet")
}
