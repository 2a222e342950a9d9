package report_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saraswati/sdms/core/report"
	"github.com/saraswati/sdms/tests"
)

const (
	bca = "Bachelor of Computer Applications"
	mca = "Master of Computer Applications"
)

func TestService_emptyDatabase(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		wantEmpty string
		wantRows  int
	}{
		{name: report.Payments, wantEmpty: "No payment records found."},
		{name: report.AverageMarks, wantEmpty: "No marks data available for courses."},
		{name: report.Enrollment},
		{name: report.EnrollmentStatus},
		{name: report.StudentsPerCourse, wantRows: 6},
		{name: report.FacultyPerformance, wantRows: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := svcs.Report.Generate(ctx, tt.name, report.Params{})
			require.NoError(t, err)
			assert.Len(t, tbl.Rows, tt.wantRows)
			if tt.wantEmpty != "" {
				assert.Contains(t, tbl.Text(), tt.wantEmpty)
			}
		})
	}
}

func TestService_Generate_unknown(t *testing.T) {
	svcs, _ := testutil.Services(t)
	_, err := svcs.Report.Generate(context.Background(), "lol", report.Params{})
	assert.Equal(t, report.ErrUnknownReport, errors.Cause(err))
	assert.EqualError(t, err, "lol: unknown report")
}

func TestService_reports(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()

	asha := testutil.StudentForm("BCA-001", "Asha Patil")
	asha.TenthPercent, asha.TwelfthPercent = "85.5", "70"
	testutil.CreateStudent(t, svcs.Student, asha)

	ravi := testutil.StudentForm("BCA-002", "Ravi Patil")
	ravi.TenthPercent, ravi.TwelfthPercent, ravi.EnrollmentStatus = "75.5", "", "No"
	testutil.CreateStudent(t, svcs.Student, ravi)

	meena := testutil.StudentForm("MCA-001", "Meena Joshi")
	meena.CourseName, meena.FacultyName, meena.EnrollmentDate = mca, "MCA", "2024-07-01"
	testutil.CreateStudent(t, svcs.Student, meena)

	testutil.AddMark(t, svcs.Academic, "BCA-001", bca, "1", "Maths", "40", "50", "A")
	testutil.AddMark(t, svcs.Academic, "BCA-002", bca, "1", "Maths", "30", "50", "B")
	testutil.RecordPayment(t, svcs.Finance, "BCA-001", "1500", "")

	t.Run("enrollment", func(t *testing.T) {
		tbl, err := svcs.Report.Enrollment(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Student Enrollment Report", tbl.Title)
		assert.Equal(t, [][]interface{}{
			{"MCA-001", "Meena Joshi", "2024-07-01", mca, "First Year", "MCA", "Active"},
			{"BCA-002", "Ravi Patil", "2023-07-01", bca, "First Year", "BCA", "Inactive"},
			{"BCA-001", "Asha Patil", "2023-07-01", bca, "First Year", "BCA", "Active"},
		}, tbl.Rows)
	})
	t.Run("average marks", func(t *testing.T) {
		tbl, err := svcs.Report.AverageMarks(ctx)
		require.NoError(t, err)
		assert.Equal(t, [][]interface{}{{bca, 70.0}}, tbl.Rows, "courses without marks are left out")
		assert.Contains(t, tbl.Text(), "70.00%")
	})
	t.Run("students per course", func(t *testing.T) {
		tbl, err := svcs.Report.StudentsPerCourse(ctx)
		require.NoError(t, err)
		require.Len(t, tbl.Rows, 6)
		assert.Equal(t, []interface{}{bca, 2}, tbl.Rows[0])
		assert.Equal(t, []interface{}{mca, 1}, tbl.Rows[1])
		assert.Equal(t, 0, tbl.Rows[5][1])
	})
	t.Run("enrollment status", func(t *testing.T) {
		tbl, err := svcs.Report.EnrollmentStatus(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, [][]interface{}{{"Active", 2}, {"Inactive", 1}}, tbl.Rows)
	})
	t.Run("faculty performance", func(t *testing.T) {
		tbl, err := svcs.Report.FacultyPerformance(ctx)
		require.NoError(t, err)
		require.Len(t, tbl.Rows, 5)
		assert.Equal(t, []interface{}{"MCA", 85.5, 78.0, 1}, tbl.Rows[0])
		assert.Equal(t, []interface{}{"BCA", 80.5, 70.0, 2}, tbl.Rows[1])
		assert.Equal(t, []interface{}{"BBA", nil, nil, 0}, tbl.Rows[2])
		assert.Contains(t, tbl.Text(), "N/A")
	})
	t.Run("marks", func(t *testing.T) {
		tbl, err := svcs.Report.Generate(ctx, report.Marks, report.Params{Course: " " + bca, Semester: "1"})
		require.NoError(t, err)
		assert.Equal(t, "Marks Report for "+bca+", Semester 1", tbl.Title)
		assert.Equal(t, [][]interface{}{
			{"BCA-001", "Asha Patil", "Maths", 40.0, 50.0, "A"},
			{"BCA-002", "Ravi Patil", "Maths", 30.0, 50.0, "B"},
		}, tbl.Rows)

		tbl, err = svcs.Report.Generate(ctx, report.Marks, report.Params{Course: bca, Semester: "2"})
		require.NoError(t, err)
		assert.Contains(t, tbl.Text(), "No marks found for the selected criteria.")
	})
	t.Run("payments", func(t *testing.T) {
		tbl, err := svcs.Report.Payments(ctx)
		require.NoError(t, err)
		require.Len(t, tbl.Rows, 1)
		assert.Equal(t, "N/A", tbl.Rows[0][6])
		assert.Equal(t, 1500.0, tbl.Rows[0][2])
	})
}
