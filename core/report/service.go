package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/academic"
	"github.com/saraswati/sdms/core/finance"
)

// Report names
const (
	Enrollment         = "enrollment"
	Marks              = "marks"
	Payments           = "payments"
	StudentsPerCourse  = "students-per-course"
	AverageMarks       = "average-marks"
	EnrollmentStatus   = "enrollment-status"
	FacultyPerformance = "faculty-performance"
)

var (
	Names = []string{
		Enrollment, Marks, Payments, StudentsPerCourse, AverageMarks, EnrollmentStatus, FacultyPerformance,
	}

	ErrUnknownReport = errors.New("unknown report")
)

type (
	Repository interface {
		// QueryEnrollment lists students, latest enrollment first.
		QueryEnrollment(ctx context.Context, exec core.DBExecutor) ([]EnrollmentRow, error)
		// QueryStudentsPerCourse counts students of every course, most populated first.
		QueryStudentsPerCourse(ctx context.Context, exec core.DBExecutor) ([]CourseCount, error)
		// QueryAverageMarks averages marks percentages of the courses having marks, best first.
		QueryAverageMarks(ctx context.Context, exec core.DBExecutor) ([]CourseAverage, error)
		QueryEnrollmentStatus(ctx context.Context, exec core.DBExecutor) ([]StatusCount, error)
		// QueryFacultyPerformance averages 10th/12th percentages of every faculty, best first.
		QueryFacultyPerformance(ctx context.Context, exec core.DBExecutor) ([]FacultyPerformanceRow, error)
	}

	Service struct {
		db       core.DB
		repo     Repository
		academic *academic.Service
		finance  *finance.Service
	}
)

func NewService(db core.DB, repo Repository, academicSvc *academic.Service, financeSvc *finance.Service) *Service {
	return &Service{db: db, repo: repo, academic: academicSvc, finance: financeSvc}
}

// Generate builds the named report.
func (svc *Service) Generate(ctx context.Context, name string, params Params) (Table, error) {
	switch name {
	case Enrollment:
		return svc.Enrollment(ctx)
	case Marks:
		return svc.Marks(ctx, academic.ReportQuery{CourseName: params.Course, Semester: params.Semester})
	case Payments:
		return svc.Payments(ctx)
	case StudentsPerCourse:
		return svc.StudentsPerCourse(ctx)
	case AverageMarks:
		return svc.AverageMarks(ctx)
	case EnrollmentStatus:
		return svc.EnrollmentStatus(ctx)
	case FacultyPerformance:
		return svc.FacultyPerformance(ctx)
	}
	return Table{}, errors.Wrap(ErrUnknownReport, name)
}

func (svc *Service) Enrollment(ctx context.Context) (Table, error) {
	rows, err := svc.repo.QueryEnrollment(ctx, svc.db)
	if err != nil {
		return Table{}, errors.Wrap(err, "querying enrollment")
	}
	t := Table{
		Title: "Student Enrollment Report",
		Columns: []Column{
			{Name: "Roll No", Width: 10},
			{Name: "Name", Width: 25},
			{Name: "Enroll Date", Width: 15},
			{Name: "Course", Width: 20},
			{Name: "Acad Year", Width: 15},
			{Name: "Faculty", Width: 15},
			{Name: "Status", Width: 10},
		},
		RuleWidth: 100,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{
			r.RollNumber, r.Name, r.EnrollmentDate, r.CourseName, r.AcademicYearName, r.FacultyName, r.Status,
		})
	}
	return t, nil
}

func (svc *Service) Marks(ctx context.Context, rq academic.ReportQuery) (Table, error) {
	rq.CourseName, rq.Semester = core.CleanString(rq.CourseName), core.CleanString(rq.Semester)
	rows, err := svc.academic.MarksReport(ctx, rq)
	if err != nil {
		return Table{}, err
	}
	semester, _ := strconv.Atoi(rq.Semester)
	t := Table{
		Title: fmt.Sprintf("Marks Report for %s, Semester %d", rq.CourseName, semester),
		Columns: []Column{
			{Name: "Roll No", Width: 10},
			{Name: "Name", Width: 20},
			{Name: "Subject", Width: 25},
			{Name: "Marks", Width: 8, Format: "%.2f"},
			{Name: "Max", Width: 8, Format: "%.2f"},
			{Name: "Grade", Width: 8},
		},
		Empty:     "No marks found for the selected criteria.",
		RuleWidth: 70,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.RollNumber, r.Name, r.SubjectName, r.MarksObtained, r.MaxMarks, r.Grade})
	}
	return t, nil
}

func (svc *Service) Payments(ctx context.Context) (Table, error) {
	rows, err := svc.finance.History(ctx)
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Title: "Payment History Report",
		Columns: []Column{
			{Name: "Roll No", Width: 10},
			{Name: "Student Name", Width: 25},
			{Name: "Amount", Width: 10, Format: "%.2f"},
			{Name: "Date", Width: 15},
			{Name: "Type", Width: 15},
			{Name: "Receipt No", Width: 15},
			{Name: "Description", Width: 25},
		},
		Empty:     "No payment records found.",
		RuleWidth: 100,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{
			r.RollNumber, r.StudentName, r.AmountPaid, r.PaymentDate, r.PaymentType,
			orNA(r.ReceiptNumber), orNA(r.Description),
		})
	}
	return t, nil
}

func (svc *Service) StudentsPerCourse(ctx context.Context) (Table, error) {
	rows, err := svc.repo.QueryStudentsPerCourse(ctx, svc.db)
	if err != nil {
		return Table{}, errors.Wrap(err, "querying students per course")
	}
	t := Table{
		Title:     "Students Enrolled Per Course",
		Columns:   []Column{{Name: "Course", Width: 25}, {Name: "Total Students", Width: 15}},
		RuleWidth: 40,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.CourseName, r.TotalStudents})
	}
	return t, nil
}

func (svc *Service) AverageMarks(ctx context.Context) (Table, error) {
	rows, err := svc.repo.QueryAverageMarks(ctx, svc.db)
	if err != nil {
		return Table{}, errors.Wrap(err, "querying average marks")
	}
	t := Table{
		Title: "Average Marks Percentage Per Course",
		Columns: []Column{
			{Name: "Course", Width: 25},
			{Name: "Average Percentage", Width: 20, Format: "%.2f%%"},
		},
		Empty:     "No marks data available for courses.",
		RuleWidth: 48,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.CourseName, r.AveragePercentage})
	}
	return t, nil
}

func (svc *Service) EnrollmentStatus(ctx context.Context) (Table, error) {
	rows, err := svc.repo.QueryEnrollmentStatus(ctx, svc.db)
	if err != nil {
		return Table{}, errors.Wrap(err, "querying enrollment status")
	}
	t := Table{
		Title:     "Student Enrollment Status Breakdown",
		Columns:   []Column{{Name: "Status", Width: 15}, {Name: "Total Students", Width: 15}},
		RuleWidth: 35,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.Status, r.TotalStudents})
	}
	return t, nil
}

func (svc *Service) FacultyPerformance(ctx context.Context) (Table, error) {
	rows, err := svc.repo.QueryFacultyPerformance(ctx, svc.db)
	if err != nil {
		return Table{}, errors.Wrap(err, "querying faculty performance")
	}
	t := Table{
		Title: "Faculty Academic Performance (Avg 10th/12th %)",
		Columns: []Column{
			{Name: "Faculty", Width: 15},
			{Name: "Avg 10th %", Width: 15, Format: "%.2f"},
			{Name: "Avg 12th %", Width: 15, Format: "%.2f"},
			{Name: "Total Students", Width: 15},
		},
		RuleWidth: 64,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.FacultyName, nullable(r.AvgTenth), nullable(r.AvgTwelfth), r.TotalStudents})
	}
	return t, nil
}

func nullable(f null.Float64) interface{} {
	if !f.Valid {
		return nil
	}
	return f.Float64
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
