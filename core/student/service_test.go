package student_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/student"
	"github.com/saraswati/sdms/tests"
)

func TestService_Create(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()

	form := testutil.StudentForm("BCA-001", "Asha Patil")
	form.AadhaarNo = "1234 5678 9012"
	created := testutil.CreateStudent(t, svcs.Student, form)

	t.Run("list returns identical values", func(t *testing.T) {
		students, err := svcs.Student.List(ctx)
		require.NoError(t, err)
		require.Len(t, students, 1)
		assert.Equal(t, created, students[0])

		assert.Equal(t, "BCA-001", created.RollNumber)
		assert.Equal(t, "student@test.in", created.Email)
		assert.Equal(t, "2003-05-14", created.DateOfBirth.String)
		assert.Equal(t, 85.5, created.TenthPercent.Float64)
		assert.Equal(t, 78.0, created.TwelfthPercent.Float64)
		assert.True(t, created.EnrollmentStatus)
		assert.Equal(t, "Bachelor of Computer Applications", created.CourseName)
		assert.Equal(t, "First Year", created.AcademicYearName)
		assert.Equal(t, "BCA", created.FacultyName)
		assert.Equal(t, form, student.FormFrom(created))
	})

	optional := testutil.StudentForm("BCA-002", "Ravi")
	optional.DateOfBirth, optional.TenthPercent, optional.TwelfthPercent, optional.EnrollmentStatus = "", "", "", ""

	dupAadhaar := testutil.StudentForm("BCA-003", "Meena")
	dupAadhaar.AadhaarNo = "1234 5678 9012"

	tests := []struct {
		name      string
		form      func() student.Form
		wantField string
		wantRef   bool
		wantDup   string
	}{
		{name: "roll required", form: func() student.Form { return testutil.StudentForm("  ", "X") }, wantField: "roll_number"},
		{name: "name required", form: func() student.Form { return testutil.StudentForm("X-1", "") }, wantField: "name"},
		{
			name: "bad date of birth", wantField: "date_of_birth",
			form: func() student.Form { f := testutil.StudentForm("X-1", "X"); f.DateOfBirth = "14-05-2003"; return f },
		},
		{
			name: "bad enrollment date", wantField: "enrollment_date",
			form: func() student.Form { f := testutil.StudentForm("X-1", "X"); f.EnrollmentDate = "2023/07/01"; return f },
		},
		{
			name: "tenth not numeric", wantField: "tenth_percent",
			form: func() student.Form { f := testutil.StudentForm("X-1", "X"); f.TenthPercent = "eighty"; return f },
		},
		{
			name: "bad status", wantField: "enrollment_status",
			form: func() student.Form { f := testutil.StudentForm("X-1", "X"); f.EnrollmentStatus = "Maybe"; return f },
		},
		{
			name: "unknown year", wantRef: true,
			form: func() student.Form { f := testutil.StudentForm("X-1", "X"); f.AcademicYearName = "Sixth Year"; return f },
		},
		{
			name: "unknown faculty", wantRef: true,
			form: func() student.Form { f := testutil.StudentForm("X-1", "X"); f.FacultyName = "Arts"; return f },
		},
		{
			name: "unknown user", wantRef: true,
			form: func() student.Form { f := testutil.StudentForm("X-1", "X"); f.UserID = "ghost"; return f },
		},
		{
			name: "duplicate roll", wantDup: "roll_number",
			form: func() student.Form { return testutil.StudentForm(" BCA-001 ", "Someone Else") },
		},
		{name: "duplicate aadhaar", wantDup: "aadhaar_no", form: func() student.Form { return dupAadhaar }},
		{name: "optional fields left blank", form: func() student.Form { return optional }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := svcs.Student.Create(ctx, tt.form())
			switch {
			case tt.wantField != "":
				fields, ok := core.FieldErrors(err)
				if assert.True(t, ok, "want a validation error, got %v", err) {
					assert.Contains(t, fields, tt.wantField)
				}
			case tt.wantRef:
				assert.True(t, core.IsReferenceNotFound(err), "want a reference error, got %v", err)
			case tt.wantDup != "":
				if assert.True(t, core.IsDuplicateKey(err), "want a duplicate key error, got %v", err) {
					assert.Contains(t, err.Error(), tt.wantDup)
				}
			default:
				if assert.NoError(t, err) {
					assert.False(t, s.DateOfBirth.Valid)
					assert.False(t, s.TenthPercent.Valid)
					assert.True(t, s.EnrollmentStatus, "blank status means enrolled")
				}
			}
		})
	}

	// a failed create leaves the existing row untouched
	s, err := svcs.Student.GetByRoll(ctx, "BCA-001")
	if assert.NoError(t, err) {
		assert.Equal(t, created, s)
	}
}

func TestService_Update(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()

	asha := testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-001", "Asha Patil"))
	testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-002", "Ravi Deshmukh"))

	t.Run("unknown id", func(t *testing.T) {
		_, err := svcs.Student.Update(ctx, 999, testutil.StudentForm("BCA-009", "X"))
		assert.True(t, core.IsNotFound(err), "got %v", err)
	})
	t.Run("roll taken by another row", func(t *testing.T) {
		_, err := svcs.Student.Update(ctx, asha.ID, testutil.StudentForm("BCA-002", "Asha Patil"))
		assert.True(t, core.IsDuplicateKey(err), "got %v", err)
	})
	t.Run("own roll is not a duplicate", func(t *testing.T) {
		f := student.FormFrom(asha)
		f.Name, f.CourseName, f.EnrollmentStatus = "Asha P.", "Master of Computer Applications", "No"
		s, err := svcs.Student.Update(ctx, asha.ID, f)
		if assert.NoError(t, err) {
			assert.Equal(t, "Asha P.", s.Name)
			assert.Equal(t, "Master of Computer Applications", s.CourseName)
			assert.Equal(t, student.StatusInactive, s.Status())
		}
	})
}

func TestService_Search(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()

	s1 := testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-001", "Asha Patil"))
	s2 := testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BBA-002", "Ravi Patil"))
	s3 := testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("MCA-003", "Meena Joshi"))

	tests := []struct {
		term      string
		orderings []core.DBOrdering
		want      []student.Student
	}{
		{term: "", want: []student.Student{s3, s2, s1}},
		{term: "patil", want: []student.Student{s2, s1}},
		{term: "MCA", want: []student.Student{s3}},
		{term: "  00  ", want: []student.Student{s3, s2, s1}},
		{term: "lol", want: nil},
		{term: "", orderings: []core.DBOrdering{{Field: "name", Ascending: true}}, want: []student.Student{s1, s3, s2}},
		{term: "", orderings: []core.DBOrdering{{Field: "password; DROP TABLE students"}}, want: []student.Student{s3, s2, s1}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := svcs.Student.Search(ctx, tt.term, tt.orderings...)
			if !assert.NoError(t, err) {
				return
			}
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	svcs, db := testutil.Services(t)
	ctx := context.Background()

	s := testutil.CreateStudent(t, svcs.Student, testutil.StudentForm("BCA-001", "Asha Patil"))
	testutil.AddMark(t, svcs.Academic, "BCA-001", "Bachelor of Computer Applications", "1", "Maths", "45", "50", "A")
	testutil.RecordPayment(t, svcs.Finance, "BCA-001", "1500", "Term 1")

	require.NoError(t, svcs.Student.Delete(ctx, s.ID))

	students, err := svcs.Student.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, students)
	_, err = svcs.Student.Get(ctx, s.ID)
	assert.True(t, core.IsNotFound(err))

	marks, err := svcs.Academic.MarksForStudent(ctx, s.ID)
	if assert.NoError(t, err) && assert.Len(t, marks, 1) {
		assert.True(t, marks[0].Orphaned)
	}
	tbl, err := svcs.Report.Payments(ctx)
	if assert.NoError(t, err) {
		assert.Empty(t, tbl.Rows, "history lists the payments of existing students only")
	}

	var kept int
	err = db.GetContext(ctx, &kept, db.Rebind("SELECT COUNT(*) FROM payments WHERE student_id = ? AND orphaned"), s.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, 1, kept, "the payment row stays behind, flagged as orphaned")
	}

	assert.True(t, core.IsNotFound(svcs.Student.Delete(ctx, s.ID)))
}
