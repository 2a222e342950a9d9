package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/user"
)

type seedCourse struct {
	name, code, duration, department string
}

var (
	seedFaculties = []string{"BCA", "BBA", "MCA", "IBCA", "IMCA"}
	seedYears     = []string{"First Year", "Second Year", "Third Year", "Fourth Year", "Fifth Year"}
	seedCourses   = []seedCourse{
		{"Master of Computer Applications", "MCA", "2 Years", "Computer Science"},
		{"Master of Business Administration", "MBA", "2 Years", "Management"},
		{"Bachelor of Science", "B.Sc", "3 Years", "Science"},
		{"Bachelor of Computer Applications", "BCA", "3 Years", "Computer Science"},
		{"Integrated Bachelor of Computer Applications", "IBCA", "5 Years", "Computer Science"},
		{"Integrated Master of Computer Applications", "IMCA", "5 Years", "Computer Science"},
	}
)

// Seed inserts the lookup rows and the default administrator unless they already exist.
func Seed(ctx context.Context, db *sqlx.DB, conf *core.Config) error {
	hasher := user.NewHasher(conf.SecretKey)

	return core.WithTx(ctx, db, func(tx core.DBExecutor) error {
		insert := func(query string, args ...interface{}) error {
			_, err := tx.ExecContext(ctx, tx.Rebind(query+" ON CONFLICT DO NOTHING"), args...)
			return err
		}

		err := insert(
			"INSERT INTO users (user_id, password_hash, name, role) VALUES (?, ?, ?, ?)",
			"admin", hasher.Hash("admin"), "Administrator", user.RoleAdmin,
		)
		if err != nil {
			return errors.Wrap(err, "seeding administrator")
		}
		for _, name := range seedFaculties {
			if err = insert("INSERT INTO faculties (faculty_name) VALUES (?)", name); err != nil {
				return errors.Wrapf(err, "seeding faculty %s", name)
			}
		}
		for _, name := range seedYears {
			if err = insert("INSERT INTO academic_years (year_name) VALUES (?)", name); err != nil {
				return errors.Wrapf(err, "seeding academic year %s", name)
			}
		}
		for _, c := range seedCourses {
			err = insert(
				"INSERT INTO courses (course_name, course_code, duration, department) VALUES (?, ?, ?, ?)",
				c.name, c.code, c.duration, c.department,
			)
			if err != nil {
				return errors.Wrapf(err, "seeding course %s", c.code)
			}
		}
		return nil
	})
}
