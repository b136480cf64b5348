package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/grade"
)

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *sqlx.DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) CreateGrade(grd grade.Grade) (grade.Grade, error) {
	err := repo.db.Get(&grd.ID,
		`INSERT INTO grade (student_id, teacher_id, subject_id, value) VALUES ($1, $2, $3, $4) RETURNING id`,
		grd.Student.ID, grd.Teacher.ID, grd.Subject.ID, grd.Value)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "creating grade")
	}
	return grd, nil
}

func (repo *gradeRepository) QueryAllGrades() ([]grade.Grade, error) {
	return repo.queryGrades(`SELECT id, student_id, teacher_id, subject_id, value FROM grade ORDER BY id`)
}

func (repo *gradeRepository) QueryGradesByStudentID(studentID int) ([]grade.Grade, error) {
	return repo.queryGrades(
		`SELECT id, student_id, teacher_id, subject_id, value FROM grade WHERE student_id = $1 ORDER BY id`,
		studentID)
}

func (repo *gradeRepository) QueryGradesByTeacherID(teacherID int) ([]grade.Grade, error) {
	return repo.queryGrades(
		`SELECT id, student_id, teacher_id, subject_id, value FROM grade WHERE teacher_id = $1 ORDER BY id`,
		teacherID)
}

func (repo *gradeRepository) queryGrades(query string, args ...interface{}) ([]grade.Grade, error) {
	rows := []gradeRow{}
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	grades := make([]grade.Grade, 0, len(rows))
	for _, row := range rows {
		grd, err := repo.hydrate(row)
		if err != nil {
			return nil, err
		}
		grades = append(grades, grd)
	}
	return grades, nil
}

func (repo *gradeRepository) hydrate(row gradeRow) (grade.Grade, error) {
	std, err := getStudentByID(repo.db, row.StudentID)
	if err != nil {
		return grade.Grade{}, err
	}
	tch, err := getTeacherByID(repo.db, row.TeacherID)
	if err != nil {
		return grade.Grade{}, err
	}
	sub, err := getSubjectByID(repo.db, row.SubjectID)
	if err != nil {
		return grade.Grade{}, err
	}
	return grade.Grade{ID: row.ID, Student: std, Teacher: tch, Subject: sub, Value: row.Value}, nil
}

func (repo *gradeRepository) GetGradeByID(id int) (grade.Grade, error) {
	var row gradeRow
	err := repo.db.Get(&row, `SELECT id, student_id, teacher_id, subject_id, value FROM grade WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return grade.Grade{}, core.NewNotFoundError("grade not found")
	}
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "getting grade")
	}
	return repo.hydrate(row)
}

func (repo *gradeRepository) UpdateGrade(grd grade.Grade) (grade.Grade, error) {
	res, err := repo.db.Exec(
		`UPDATE grade SET student_id = $1, teacher_id = $2, subject_id = $3, value = $4 WHERE id = $5`,
		grd.Student.ID, grd.Teacher.ID, grd.Subject.ID, grd.Value, grd.ID)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "updating grade")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return grade.Grade{}, core.NewNotFoundError("grade not found")
	}
	return grd, nil
}

func (repo *gradeRepository) DeleteGradeByID(id int) error {
	res, err := repo.db.Exec(`DELETE FROM grade WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NewNotFoundError("grade not found")
	}
	return nil
}
