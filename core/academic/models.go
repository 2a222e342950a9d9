package academic

import (
	"strconv"

	"github.com/saraswati/sdms/core"
)

type Mark struct {
	ID            int     `db:"mark_id" json:"mark_id"`
	StudentID     int     `db:"student_id" json:"student_id"`
	CourseID      int     `db:"course_id" json:"course_id"`
	CourseName    string  `db:"course_name" json:"course_name"`
	SubjectName   string  `db:"subject_name" json:"subject_name"`
	Semester      int     `db:"semester" json:"semester"`
	MarksObtained float64 `db:"marks_obtained" json:"marks_obtained"`
	MaxMarks      float64 `db:"max_marks" json:"max_marks"`
	Grade         string  `db:"grade" json:"grade"`
	Orphaned      bool    `db:"orphaned" json:"orphaned"`
}

func (m Mark) Percentage() float64 {
	if m.MaxMarks == 0 {
		return 0
	}
	return m.MarksObtained / m.MaxMarks * 100
}

// ReportRow is one line of the per course/semester marks report.
type ReportRow struct {
	RollNumber    string  `db:"roll_number" json:"roll_number"`
	Name          string  `db:"name" json:"name"`
	SubjectName   string  `db:"subject_name" json:"subject_name"`
	MarksObtained float64 `db:"marks_obtained" json:"marks_obtained"`
	MaxMarks      float64 `db:"max_marks" json:"max_marks"`
	Grade         string  `db:"grade" json:"grade"`
}

// MarkForm mirrors the marks entry form; all of its fields are required.
type MarkForm struct {
	RollNumber    string `json:"roll_number" validate:"required,notblank"`
	CourseName    string `json:"course_name" validate:"required,notblank"`
	Semester      string `json:"semester" validate:"required,number"`
	SubjectName   string `json:"subject_name" validate:"required,notblank"`
	MarksObtained string `json:"marks_obtained" validate:"required,numeric"`
	MaxMarks      string `json:"max_marks" validate:"required,numeric"`
	Grade         string `json:"grade" validate:"required,notblank"`
}

// Validate checks the form; allowBonus lets marks_obtained exceed max_marks.
func (mf *MarkForm) Validate(allowBonus bool) error {
	for _, fld := range []*string{
		&mf.RollNumber, &mf.CourseName, &mf.Semester, &mf.SubjectName, &mf.MarksObtained, &mf.MaxMarks, &mf.Grade,
	} {
		*fld = core.CleanString(*fld)
	}
	if err := core.Validate.Struct(mf); err != nil {
		return err
	}

	m, flds := mf.mark()
	if len(flds) > 0 {
		return core.NewValidationError(errInvalidMarks, flds...)
	}
	if m.Semester < 1 {
		flds = append(flds, core.FieldError{Field: "semester", Error: "semester must be at least 1"})
	}
	if m.MaxMarks <= 0 {
		flds = append(flds, core.FieldError{Field: "max_marks", Error: "max marks must be greater than 0"})
	}
	if m.MarksObtained < 0 {
		flds = append(flds, core.FieldError{Field: "marks_obtained", Error: "marks obtained cannot be negative"})
	} else if !allowBonus && m.MaxMarks > 0 && m.MarksObtained > m.MaxMarks {
		flds = append(flds, core.FieldError{Field: "marks_obtained", Error: "marks obtained cannot exceed max marks"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(errInvalidMarks, flds...)
	}
	return nil
}

// mark parses the form once its tags have passed. Numbers that overflow their type come back as field errors.
func (mf MarkForm) mark() (Mark, []core.FieldError) {
	var flds []core.FieldError
	sem, err := strconv.Atoi(mf.Semester)
	if err != nil {
		flds = append(flds, core.FieldError{Field: "semester", Error: "semester is out of range"})
	}
	obtained, _, err := core.ParseFloat(mf.MarksObtained)
	if err != nil {
		flds = append(flds, core.FieldError{Field: "marks_obtained", Error: "marks obtained is out of range"})
	}
	maxMarks, _, err := core.ParseFloat(mf.MaxMarks)
	if err != nil {
		flds = append(flds, core.FieldError{Field: "max_marks", Error: "max marks is out of range"})
	}
	return Mark{
		CourseName:    mf.CourseName,
		SubjectName:   mf.SubjectName,
		Semester:      sem,
		MarksObtained: obtained,
		MaxMarks:      maxMarks,
		Grade:         mf.Grade,
	}, flds
}

// ReportQuery selects the marks report; both fields come straight from the form.
type ReportQuery struct {
	CourseName string `json:"course" query:"course" validate:"required,notblank"`
	Semester   string `json:"semester" query:"semester" validate:"required,number"`
}

func (rq *ReportQuery) Validate() (semester int, err error) {
	rq.CourseName = core.CleanString(rq.CourseName)
	rq.Semester = core.CleanString(rq.Semester)
	if err = core.Validate.Struct(rq); err != nil {
		return 0, err
	}
	semester, err = strconv.Atoi(rq.Semester)
	if err != nil {
		return 0, core.NewFieldError("semester", "semester is out of range")
	}
	if semester < 1 {
		return 0, core.NewFieldError("semester", "semester must be at least 1")
	}
	return semester, nil
}
