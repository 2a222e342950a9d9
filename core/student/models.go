package student

import (
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/saraswati/sdms/core"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Student struct {
	ID                 int          `db:"student_id" json:"student_id"`
	RollNumber         string       `db:"roll_number" json:"roll_number"`
	UserID             null.String  `db:"user_id" json:"user_id"`
	Name               string       `db:"name" json:"name"`
	ContactNumber      string       `db:"contact_number" json:"contact_number"`
	Email              string       `db:"email" json:"email"`
	Address            string       `db:"address" json:"address"`
	AadhaarNo          null.String  `db:"aadhaar_no" json:"aadhaar_no"`
	DateOfBirth        null.String  `db:"date_of_birth" json:"date_of_birth"`
	Gender             string       `db:"gender" json:"gender"`
	TenthPercent       null.Float64 `db:"tenth_percent" json:"tenth_percent"`
	TwelfthPercent     null.Float64 `db:"twelfth_percent" json:"twelfth_percent"`
	BloodGroup         string       `db:"blood_group" json:"blood_group"`
	MotherName         string       `db:"mother_name" json:"mother_name"`
	EnrollmentStatus   bool         `db:"enrollment_status" json:"enrollment_status"`
	EnrollmentDate     string       `db:"enrollment_date" json:"enrollment_date"`
	CourseID           int          `db:"course_id" json:"course_id"`
	AcademicYearID     int          `db:"academic_year_id" json:"academic_year_id"`
	FacultyID          int          `db:"faculty_id" json:"faculty_id"`
	ProfilePicturePath string       `db:"profile_picture_path" json:"profile_picture_path"`

	// resolved names
	CourseName       string `db:"course_name" json:"course_name"`
	AcademicYearName string `db:"year_name" json:"academic_year_name"`
	FacultyName      string `db:"faculty_name" json:"faculty_name"`
}

func (s Student) Status() string {
	if s.EnrollmentStatus {
		return StatusActive
	}
	return StatusInactive
}

// GetFilter selects a single Student; the first non-zero field wins.
type GetFilter struct {
	ID         int
	RollNumber string
}

// Form mirrors the student entry form. Every field is the raw text typed by the user.
type Form struct {
	RollNumber         string `json:"roll_number" validate:"required,notblank"`
	UserID             string `json:"user_id"`
	Name               string `json:"name" validate:"required,notblank"`
	ContactNumber      string `json:"contact_number"`
	Email              string `json:"email" validate:"omitempty,email"`
	Address            string `json:"address"`
	AadhaarNo          string `json:"aadhaar_no"`
	DateOfBirth        string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender             string `json:"gender"`
	TenthPercent       string `json:"tenth_percent" validate:"omitempty,numeric"`
	TwelfthPercent     string `json:"twelfth_percent" validate:"omitempty,numeric"`
	BloodGroup         string `json:"blood_group"`
	MotherName         string `json:"mother_name"`
	EnrollmentStatus   string `json:"enrollment_status" validate:"omitempty,oneof=Yes No"` // blank means Yes
	EnrollmentDate     string `json:"enrollment_date" validate:"required,datetime=2006-01-02"`
	CourseName         string `json:"course_name" validate:"required"`
	AcademicYearName   string `json:"academic_year_name" validate:"required"`
	FacultyName        string `json:"faculty_name" validate:"required"`
	ProfilePicturePath string `json:"profile_picture_path"`
}

func (f *Form) Validate() error {
	for _, fld := range []*string{
		&f.RollNumber, &f.UserID, &f.Name, &f.ContactNumber, &f.Email, &f.Address, &f.AadhaarNo,
		&f.DateOfBirth, &f.Gender, &f.TenthPercent, &f.TwelfthPercent, &f.BloodGroup, &f.MotherName,
		&f.EnrollmentStatus, &f.EnrollmentDate, &f.CourseName, &f.AcademicYearName, &f.FacultyName,
		&f.ProfilePicturePath,
	} {
		*fld = core.CleanString(*fld)
	}
	return core.Validate.Struct(f)
}

// student builds the row values; the caller fills in the resolved ids.
func (f Form) student() Student {
	s := Student{
		RollNumber:         f.RollNumber,
		UserID:             null.NewString(f.UserID, f.UserID != ""),
		Name:               f.Name,
		ContactNumber:      f.ContactNumber,
		Email:              f.Email,
		Address:            f.Address,
		AadhaarNo:          null.NewString(f.AadhaarNo, f.AadhaarNo != ""),
		DateOfBirth:        null.NewString(f.DateOfBirth, f.DateOfBirth != ""),
		Gender:             f.Gender,
		BloodGroup:         f.BloodGroup,
		MotherName:         f.MotherName,
		EnrollmentStatus:   f.EnrollmentStatus != "No",
		EnrollmentDate:     f.EnrollmentDate,
		ProfilePicturePath: f.ProfilePicturePath,
		CourseName:         f.CourseName,
		AcademicYearName:   f.AcademicYearName,
		FacultyName:        f.FacultyName,
	}
	if v, ok, _ := core.ParseFloat(f.TenthPercent); ok {
		s.TenthPercent = null.Float64From(v)
	}
	if v, ok, _ := core.ParseFloat(f.TwelfthPercent); ok {
		s.TwelfthPercent = null.Float64From(v)
	}
	return s
}

// FormFrom fills a Form from an existing Student, e.g. to edit it.
func FormFrom(s Student) Form {
	f := Form{
		RollNumber:         s.RollNumber,
		UserID:             s.UserID.String,
		Name:               s.Name,
		ContactNumber:      s.ContactNumber,
		Email:              s.Email,
		Address:            s.Address,
		AadhaarNo:          s.AadhaarNo.String,
		DateOfBirth:        s.DateOfBirth.String,
		Gender:             s.Gender,
		BloodGroup:         s.BloodGroup,
		MotherName:         s.MotherName,
		EnrollmentStatus:   "No",
		EnrollmentDate:     s.EnrollmentDate,
		CourseName:         s.CourseName,
		AcademicYearName:   s.AcademicYearName,
		FacultyName:        s.FacultyName,
		ProfilePicturePath: s.ProfilePicturePath,
	}
	if s.EnrollmentStatus {
		f.EnrollmentStatus = "Yes"
	}
	if s.TenthPercent.Valid {
		f.TenthPercent = strconv.FormatFloat(s.TenthPercent.Float64, 'f', -1, 64)
	}
	if s.TwelfthPercent.Valid {
		f.TwelfthPercent = strconv.FormatFloat(s.TwelfthPercent.Float64, 'f', -1, 64)
	}
	return f
}
