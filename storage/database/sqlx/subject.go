package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/subject"
)

type subjectRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*subjectRepository)(nil)

func NewSubjectRepository(db *sqlx.DB) subject.Repository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) CreateSubject(sub subject.Subject) (subject.Subject, error) {
	var courseID *int
	if sub.Course != nil {
		courseID = &sub.Course.ID
	}
	err := repo.db.Get(&sub.ID,
		`INSERT INTO subject (name, course_id) VALUES ($1, $2) RETURNING id`,
		sub.Name, courseID)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "creating subject")
	}
	return sub, nil
}

func (repo *subjectRepository) QueryAllSubjects() ([]subject.Subject, error) {
	return repo.querySubjects(`SELECT id, name, course_id FROM subject ORDER BY id`)
}

func (repo *subjectRepository) QuerySubjectsByCourseID(courseID int) ([]subject.Subject, error) {
	return repo.querySubjects(`SELECT id, name, course_id FROM subject WHERE course_id = $1 ORDER BY id`, courseID)
}

func (repo *subjectRepository) querySubjects(query string, args ...interface{}) ([]subject.Subject, error) {
	rows := []subjectRow{}
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subjects := make([]subject.Subject, 0, len(rows))
	for _, row := range rows {
		sub, err := hydrateSubject(repo.db, row)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, sub)
	}
	return subjects, nil
}

func (repo *subjectRepository) GetSubjectByID(id int) (subject.Subject, error) {
	return getSubjectByID(repo.db, id)
}

func (repo *subjectRepository) UpdateSubject(sub subject.Subject) (subject.Subject, error) {
	var courseID *int
	if sub.Course != nil {
		courseID = &sub.Course.ID
	}
	res, err := repo.db.Exec(`UPDATE subject SET name = $1, course_id = $2 WHERE id = $3`,
		sub.Name, courseID, sub.ID)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return subject.Subject{}, core.NewNotFoundError("subject not found")
	}
	return sub, nil
}

func (repo *subjectRepository) DeleteSubjectByID(id int) error {
	res, err := repo.db.Exec(`DELETE FROM subject WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NewNotFoundError("subject not found")
	}
	return nil
}
