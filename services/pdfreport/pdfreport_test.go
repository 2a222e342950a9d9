package pdfreport_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/academic"
	"github.com/saraswati/sdms/core/student"
	"github.com/saraswati/sdms/services/pdfreport"
	"github.com/saraswati/sdms/tests"
)

func TestGenerator(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()
	asha := testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-001", "Asha Patil"))
	ravi := testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-002", "Ravi Patil"))
	testutil.AddMark(t, svcs.Academic, "BCA-001", "Bachelor of Computer Applications", "1", "Maths", "37.5", "50", "B")
	dir := t.TempDir()

	t.Run("generate", func(t *testing.T) {
		var buf bytes.Buffer
		s, err := svcs.PDFReport.Generate(ctx, &buf, asha.ID)
		require.NoError(t, err)
		assert.Equal(t, asha.RollNumber, s.RollNumber)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		assert.Contains(t, buf.String(), "%%EOF")
	})
	t.Run("generate file", func(t *testing.T) {
		path := filepath.Join(dir, "reports", pdfreport.DefaultFilename(asha.RollNumber))
		_, err := svcs.PDFReport.GenerateFile(ctx, path, asha.ID)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		assert.Equal(t, "BCA-001_marks_report.pdf", filepath.Base(path))
	})
	t.Run("no marks", func(t *testing.T) {
		path := filepath.Join(dir, pdfreport.DefaultFilename(ravi.RollNumber))
		_, err := svcs.PDFReport.GenerateFile(ctx, path, ravi.ID)
		assert.Equal(t, pdfreport.ErrNoMarks, errors.Cause(err))
		assert.NoFileExists(t, path)

		var buf bytes.Buffer
		_, err = svcs.PDFReport.Generate(ctx, &buf, ravi.ID)
		assert.Equal(t, pdfreport.ErrNoMarks, errors.Cause(err))
		assert.Zero(t, buf.Len())
	})
	t.Run("unknown student", func(t *testing.T) {
		_, err := svcs.PDFReport.Generate(ctx, &bytes.Buffer{}, 999)
		assert.True(t, core.IsNotFound(err), "got %v", err)
	})
}

func TestFonts_Render(t *testing.T) {
	s := student.Student{Name: "Renée Čapková", RollNumber: "BCA-007"}
	marks := []academic.Mark{{SubjectName: "Économie", Semester: 1, MarksObtained: 40, MaxMarks: 50, Grade: "A"}}

	tests := []struct {
		name  string
		fonts pdfreport.Fonts
	}{
		{"embedded Go fonts", pdfreport.GoFonts},
		{"zero value", pdfreport.Fonts{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.fonts.Render(&buf, s, marks))
			out := buf.String()
			assert.Contains(t, out, "/Subtype /Type0", "text must be set in an embedded unicode font")
			assert.Contains(t, out, "/Encoding /Identity-H")
			assert.NotContains(t, out, "/Helvetica")
		})
	}
}

func TestNewGenerator_badFontAsset(t *testing.T) {
	svcs, _ := testutil.Services(t)
	conf := svcs.Conf
	require.NoError(t, os.MkdirAll(filepath.Dir(conf.Path(conf.Assets.Font)), 0o755))
	require.NoError(t, os.WriteFile(conf.Path(conf.Assets.Font), []byte("not a font"), 0o644))

	gen := pdfreport.NewGenerator(conf, svcs.Student, svcs.Academic)
	s := testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-001", "Asha Patil"))
	testutil.AddMark(t, svcs.Academic, "BCA-001", "Bachelor of Computer Applications", "1", "Maths", "45", "50", "A")

	var buf bytes.Buffer
	_, err := gen.Generate(context.Background(), &buf, s.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
