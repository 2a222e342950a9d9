// Package pdfreport renders the marks of a student as a PDF document.
package pdfreport

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/academic"
	"github.com/saraswati/sdms/core/student"
)

// ErrNoMarks is returned when the student has no marks to report; no document is produced.
var ErrNoMarks = errors.New("no marks found for this student")

const title = "Student Marks Report"

var columns = []struct {
	name  string
	width float64
	align string
}{
	{"Subject", 60, "L"},
	{"Semester", 25, "C"},
	{"Marks Obtained", 35, "C"},
	{"Max Marks", 30, "C"},
	{"Grade", 25, "C"},
}

// Fonts are the TrueType faces the report is typeset with. Text is embedded as UTF-8, so names in any
// script the faces cover come out intact.
type Fonts struct {
	Regular []byte
	Bold    []byte
}

// GoFonts are the embedded Go fonts (Latin, Greek and Cyrillic).
var GoFonts = Fonts{Regular: goregular.TTF, Bold: gobold.TTF}

const fontFamily = "report"

type Generator struct {
	students *student.Service
	marks    *academic.Service
	fonts    Fonts
}

// NewGenerator typesets reports with the configured asset fonts, falling back to GoFonts per face.
func NewGenerator(conf *core.Config, studentSvc *student.Service, academicSvc *academic.Service) *Generator {
	return &Generator{
		students: studentSvc,
		marks:    academicSvc,
		fonts: Fonts{
			Regular: loadFont(conf.Path(conf.Assets.Font), GoFonts.Regular),
			Bold:    loadFont(conf.Path(conf.Assets.FontBold), GoFonts.Bold),
		},
	}
}

func loadFont(path string, fallback []byte) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	if _, err := opentype.Parse(data); err != nil {
		return fallback
	}
	return data
}

// DefaultFilename is the file name offered when saving the report of a student.
func DefaultFilename(roll string) string {
	return roll + "_marks_report.pdf"
}

func (g *Generator) load(ctx context.Context, studentID int) (student.Student, []academic.Mark, error) {
	s, err := g.students.Get(ctx, studentID)
	if err != nil {
		return s, nil, err
	}
	marks, err := g.marks.MarksForStudent(ctx, s.ID)
	if err != nil {
		return s, nil, err
	}
	if len(marks) == 0 {
		return s, nil, ErrNoMarks
	}
	return s, marks, nil
}

// Generate writes the marks report of the student with the given id to w.
func (g *Generator) Generate(ctx context.Context, w io.Writer, studentID int) (student.Student, error) {
	s, marks, err := g.load(ctx, studentID)
	if err != nil {
		return s, err
	}
	return s, g.fonts.Render(w, s, marks)
}

// GenerateFile is Generate writing to path. The file is only created when there are marks.
func (g *Generator) GenerateFile(ctx context.Context, path string, studentID int) (student.Student, error) {
	s, marks, err := g.load(ctx, studentID)
	if err != nil {
		return s, err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return s, errors.Wrapf(err, "creating %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return s, errors.Wrapf(err, "creating %s", path)
	}
	if err := g.fonts.Render(f, s, marks); err != nil {
		f.Close()
		os.Remove(path)
		return s, err
	}
	return s, errors.Wrapf(f.Close(), "closing %s", path)
}

// Render draws the report: title, student name and roll number, then one grid table of marks.
func (fonts Fonts) Render(w io.Writer, s student.Student, marks []academic.Mark) error {
	if fonts.Regular == nil {
		fonts.Regular = GoFonts.Regular
	}
	if fonts.Bold == nil {
		fonts.Bold = GoFonts.Bold
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", fonts.Regular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fonts.Bold)
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont(fontFamily, "", 11)
	pdf.Cell(0, 6, "Student Name: "+s.Name)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Roll Number: "+s.RollNumber)
	pdf.Ln(10)

	// header
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetDrawColor(0, 0, 0)
	for _, col := range columns {
		pdf.CellFormat(col.width, 8, col.name, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 10)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, m := range marks {
		cells := []string{
			m.SubjectName,
			strconv.Itoa(m.Semester),
			formatMarks(m.MarksObtained),
			formatMarks(m.MaxMarks),
			m.Grade,
		}
		for i, col := range columns {
			pdf.CellFormat(col.width, 7, cells[i], "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "writing marks report")
	}
	return nil
}

func formatMarks(f float64) string {
	return fmt.Sprint(f)
}
