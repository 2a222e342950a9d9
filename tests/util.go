package testutil

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/saraswati/sdms/apps"
	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/academic"
	"github.com/saraswati/sdms/core/finance"
	"github.com/saraswati/sdms/core/student"
	"github.com/saraswati/sdms/core/user"
	"github.com/saraswati/sdms/services/logger"
	"github.com/saraswati/sdms/storage/database"
)

// Config returns a test configuration rooted in a fresh temporary directory.
func Config(t *testing.T) *core.Config {
	t.Helper()
	conf, err := core.NewConfig()
	if err != nil {
		t.Fatalf("core.NewConfig() failed: %v", err)
	}
	conf.TestMode = true
	conf.WorkDir = t.TempDir()
	conf.Database.Engine = database.EngineSQLite
	conf.Database.Path = filepath.Join("data", "sdms.db")
	conf.RollbarToken = ""
	return conf
}

func Logger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(ioutil.Discard, conf)
}

// PrepareDB opens a migrated and seeded sqlite database, closed when the test ends.
func PrepareDB(t *testing.T, confs ...*core.Config) *sqlx.DB {
	t.Helper()
	var conf *core.Config
	if len(confs) > 0 {
		conf = confs[0]
	} else {
		conf = Config(t)
	}

	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Initialize(context.Background(), db, conf, Logger(conf)); err != nil {
		t.Fatalf("database.Initialize() failed: %v", err)
	}
	return db
}

// Services wires every service on a fresh database.
func Services(t *testing.T) (*apps.Services, *sqlx.DB) {
	t.Helper()
	conf := Config(t)
	db := PrepareDB(t, conf)
	return apps.NewServices(db, conf, Logger(conf)), db
}

// StudentForm returns a valid student form; course, year and faculty are seeded rows.
func StudentForm(roll, name string) student.Form {
	return student.Form{
		RollNumber:       roll,
		Name:             name,
		ContactNumber:    "9876543210",
		Email:            "student@test.in",
		Address:          "Shegaon",
		DateOfBirth:      "2003-05-14",
		Gender:           "Female",
		TenthPercent:     "85.5",
		TwelfthPercent:   "78",
		BloodGroup:       "B+",
		MotherName:       "Sunita",
		EnrollmentStatus: "Yes",
		EnrollmentDate:   "2023-07-01",
		CourseName:       "Bachelor of Computer Applications",
		AcademicYearName: "First Year",
		FacultyName:      "BCA",
	}
}

func CreateStudent(t *testing.T, svc *student.Service, f student.Form) student.Student {
	t.Helper()
	s, err := svc.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func AddMark(t *testing.T, svc *academic.Service, roll, course, semester, subject, obtained, maxMarks, grade string) academic.Mark {
	t.Helper()
	m, err := svc.AddMark(context.Background(), academic.MarkForm{
		RollNumber:    roll,
		CourseName:    course,
		Semester:      semester,
		SubjectName:   subject,
		MarksObtained: obtained,
		MaxMarks:      maxMarks,
		Grade:         grade,
	})
	if err != nil {
		t.Fatalf("AddMark() failed: %v", err)
	}
	return m
}

func RecordPayment(t *testing.T, svc *finance.Service, roll, amount, desc string) finance.Receipt {
	t.Helper()
	r, err := svc.RecordPayment(context.Background(), finance.PaymentForm{RollNumber: roll, Amount: amount, Description: desc})
	if err != nil {
		t.Fatalf("RecordPayment() failed: %v", err)
	}
	return r
}

func CreateUser(t *testing.T, svc *user.Service, id, name, pwd string) user.User {
	t.Helper()
	usr, err := svc.Register(context.Background(), user.NewUser{UserID: id, Name: name, Password: pwd, PasswordConfirm: pwd})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
