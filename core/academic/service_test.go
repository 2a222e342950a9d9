package academic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saraswati/sdms/apps"
	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/academic"
	"github.com/saraswati/sdms/tests"
)

const bca = "Bachelor of Computer Applications"

func TestService_AddMark(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()
	s := testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-001", "Asha Patil"))

	t.Run("unknown roll", func(t *testing.T) {
		mf := academic.MarkForm{
			RollNumber: "lol", CourseName: bca, Semester: "1", SubjectName: "Maths",
			MarksObtained: "10", MaxMarks: "50", Grade: "C",
		}
		_, err := svcs.Academic.AddMark(ctx, mf)
		if assert.True(t, core.IsReferenceNotFound(err), "got %v", err) {
			assert.Contains(t, err.Error(), `student "lol" not found`)
		}
	})
	t.Run("unknown course", func(t *testing.T) {
		mf := academic.MarkForm{
			RollNumber: "BCA-001", CourseName: "Astrology", Semester: "1", SubjectName: "Maths",
			MarksObtained: "10", MaxMarks: "50", Grade: "C",
		}
		_, err := svcs.Academic.AddMark(ctx, mf)
		assert.True(t, core.IsReferenceNotFound(err), "got %v", err)
	})
	t.Run("above max rejected by default", func(t *testing.T) {
		mf := academic.MarkForm{
			RollNumber: "BCA-001", CourseName: bca, Semester: "1", SubjectName: "Maths",
			MarksObtained: "51", MaxMarks: "50", Grade: "A+",
		}
		_, err := svcs.Academic.AddMark(ctx, mf)
		fields, ok := core.FieldErrors(err)
		assert.True(t, ok)
		assert.Contains(t, fields, "marks_obtained")
	})

	// inserted out of order on purpose
	testutil.AddMark(t, svcs.Academic, "BCA-001", bca, "2", "Networks", "30", "50", "B")
	testutil.AddMark(t, svcs.Academic, "BCA-001", bca, "1", "Physics", "40", "50", "A")
	m := testutil.AddMark(t, svcs.Academic, " BCA-001 ", bca, "1", "Maths", "45", "50", "A")
	assert.Equal(t, s.ID, m.StudentID)
	assert.Equal(t, bca, m.CourseName)
	assert.NotZero(t, m.ID)

	marks, err := svcs.Academic.MarksFor(ctx, "BCA-001")
	require.NoError(t, err)
	var subjects []string
	for _, m := range marks {
		subjects = append(subjects, m.SubjectName)
		assert.False(t, m.Orphaned)
	}
	assert.Equal(t, []string{"Maths", "Physics", "Networks"}, subjects)

	_, err = svcs.Academic.MarksFor(ctx, "BCA-404")
	assert.True(t, core.IsReferenceNotFound(err))
}

func TestService_AddMark_allowBonus(t *testing.T) {
	conf := testutil.Config(t)
	conf.AllowBonusMarks = true
	db := testutil.PrepareDB(t, conf)
	svcs := apps.NewServices(db, conf, testutil.Logger(conf))

	testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-001", "Asha Patil"))
	m := testutil.AddMark(t, svcs.Academic, "BCA-001", bca, "1", "Maths", "55", "50", "O")
	assert.Equal(t, 110.0, m.Percentage())
}

func TestService_MarksReport(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()
	testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-002", "Ravi Patil"))
	testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-001", "Asha Patil"))
	testutil.AddMark(t, svcs.Academic, "BCA-002", bca, "1", "Maths", "20", "50", "D")
	testutil.AddMark(t, svcs.Academic, "BCA-001", bca, "1", "Physics", "40", "50", "A")
	testutil.AddMark(t, svcs.Academic, "BCA-001", bca, "1", "Maths", "45", "50", "A")
	testutil.AddMark(t, svcs.Academic, "BCA-001", bca, "2", "Networks", "30", "50", "B")

	rows, err := svcs.Academic.MarksReport(ctx, academic.ReportQuery{CourseName: bca, Semester: "1"})
	require.NoError(t, err)
	assert.Equal(t, []academic.ReportRow{
		{RollNumber: "BCA-001", Name: "Asha Patil", SubjectName: "Maths", MarksObtained: 45, MaxMarks: 50, Grade: "A"},
		{RollNumber: "BCA-001", Name: "Asha Patil", SubjectName: "Physics", MarksObtained: 40, MaxMarks: 50, Grade: "A"},
		{RollNumber: "BCA-002", Name: "Ravi Patil", SubjectName: "Maths", MarksObtained: 20, MaxMarks: 50, Grade: "D"},
	}, rows)

	rows, err = svcs.Academic.MarksReport(ctx, academic.ReportQuery{CourseName: bca, Semester: "5"})
	assert.NoError(t, err)
	assert.Empty(t, rows)

	_, err = svcs.Academic.MarksReport(ctx, academic.ReportQuery{CourseName: "Astrology", Semester: "1"})
	assert.True(t, core.IsReferenceNotFound(err))
}
