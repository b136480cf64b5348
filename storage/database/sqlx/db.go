// Package sqlxrepos implements the domain repositories against PostgreSQL.
// Nested references (a cohort's teacher, a student's cohort) are hydrated by
// follow-up primary-key lookups; at this scale that beats hand-maintaining
// wide join scans.
package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/cohort"
	"github.com/fullstack-education/academico/core/course"
	"github.com/fullstack-education/academico/core/student"
	"github.com/fullstack-education/academico/core/subject"
	"github.com/fullstack-education/academico/core/teacher"
)

type teacherRow struct {
	teacher.Teacher
	Subjects  pq.StringArray `db:"subjects"`
	AccountID int            `db:"account_id"`
}

func (r teacherRow) toTeacher() teacher.Teacher {
	tch := r.Teacher
	tch.Subjects = []string(r.Subjects)
	return tch
}

type cohortRow struct {
	ID        int    `db:"id"`
	Name      string `db:"name"`
	TeacherID int    `db:"teacher_id"`
	CourseID  int    `db:"course_id"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
	Schedule  string `db:"schedule"`
}

type studentRow struct {
	student.Student
	AccountID int `db:"account_id"`
	CohortID  int `db:"cohort_id"`
}

type gradeRow struct {
	ID        int    `db:"id"`
	StudentID int    `db:"student_id"`
	TeacherID int    `db:"teacher_id"`
	SubjectID int    `db:"subject_id"`
	Value     string `db:"value"`
}

type subjectRow struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	CourseID *int   `db:"course_id"`
}

func getAccountByID(db *sqlx.DB, id int) (account.Account, error) {
	var acct account.Account
	err := db.Get(&acct, `SELECT id, login, secret_hash, role FROM account WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return account.Account{}, core.NewNotFoundError("account not found")
	}
	if err != nil {
		return account.Account{}, errors.Wrap(err, "getting account")
	}
	return acct, nil
}

func getCourseByID(db *sqlx.DB, id int) (course.Course, error) {
	var crs course.Course
	err := db.Get(&crs, `SELECT id, name FROM course WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return course.Course{}, core.NewNotFoundError("course not found")
	}
	if err != nil {
		return course.Course{}, errors.Wrap(err, "getting course")
	}
	return crs, nil
}

func hydrateSubject(db *sqlx.DB, row subjectRow) (subject.Subject, error) {
	sub := subject.Subject{ID: row.ID, Name: row.Name}
	if row.CourseID != nil {
		crs, err := getCourseByID(db, *row.CourseID)
		if err != nil {
			return subject.Subject{}, err
		}
		sub.Course = &crs
	}
	return sub, nil
}

func getSubjectByID(db *sqlx.DB, id int) (subject.Subject, error) {
	var row subjectRow
	err := db.Get(&row, `SELECT id, name, course_id FROM subject WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return subject.Subject{}, core.NewNotFoundError("subject not found")
	}
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "getting subject")
	}
	return hydrateSubject(db, row)
}

const teacherColumns = `id, name, birth_date, gender, cpf, rg, marital_status, phone, email, birthplace,
	cep, city, state, street, number, complement, district, landmark, subjects, joined_at, account_id`

func hydrateTeacher(db *sqlx.DB, row teacherRow) (teacher.Teacher, error) {
	acct, err := getAccountByID(db, row.AccountID)
	if err != nil {
		return teacher.Teacher{}, err
	}
	tch := row.toTeacher()
	tch.Account = acct
	return tch, nil
}

func getTeacherByID(db *sqlx.DB, id int) (teacher.Teacher, error) {
	var row teacherRow
	err := db.Get(&row, `SELECT `+teacherColumns+` FROM teacher WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return teacher.Teacher{}, core.NewNotFoundError("teacher not found")
	}
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	return hydrateTeacher(db, row)
}

func hydrateCohort(db *sqlx.DB, row cohortRow) (cohort.Cohort, error) {
	tch, err := getTeacherByID(db, row.TeacherID)
	if err != nil {
		return cohort.Cohort{}, err
	}
	crs, err := getCourseByID(db, row.CourseID)
	if err != nil {
		return cohort.Cohort{}, err
	}
	return cohort.Cohort{
		ID:        row.ID,
		Name:      row.Name,
		Teacher:   tch,
		Course:    crs,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		Schedule:  row.Schedule,
	}, nil
}

func getCohortByID(db *sqlx.DB, id int) (cohort.Cohort, error) {
	var row cohortRow
	err := db.Get(&row, `SELECT id, name, teacher_id, course_id, start_date, end_date, schedule FROM cohort WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return cohort.Cohort{}, core.NewNotFoundError("cohort not found")
	}
	if err != nil {
		return cohort.Cohort{}, errors.Wrap(err, "getting cohort")
	}
	return hydrateCohort(db, row)
}

const studentColumns = `id, name, email, birth_date, gender, cpf, rg, marital_status, phone, birthplace,
	cep, city, state, street, number, complement, district, landmark, account_id, cohort_id`

func hydrateStudent(db *sqlx.DB, row studentRow) (student.Student, error) {
	acct, err := getAccountByID(db, row.AccountID)
	if err != nil {
		return student.Student{}, err
	}
	coh, err := getCohortByID(db, row.CohortID)
	if err != nil {
		return student.Student{}, err
	}
	std := row.Student
	std.Account = acct
	std.Cohort = coh
	return std, nil
}

func getStudentByID(db *sqlx.DB, id int) (student.Student, error) {
	var row studentRow
	err := db.Get(&row, `SELECT `+studentColumns+` FROM student WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return student.Student{}, core.NewNotFoundError("student not found")
	}
	if err != nil {
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return hydrateStudent(db, row)
}

func checkUniqueness(db *sqlx.DB, query, value string, exclIDs []int, existsErr error) error {
	if exclIDs == nil {
		exclIDs = []int{}
	}
	var count int
	if err := db.Get(&count, query, value, pq.Array(exclIDs)); err != nil {
		return errors.Wrap(err, "checking uniqueness")
	}
	if count > 0 {
		return existsErr
	}
	return nil
}
