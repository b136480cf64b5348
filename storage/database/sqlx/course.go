package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CheckNameUniqueness(name string, excluded ...course.Course) error {
	ids := make([]int, 0, len(excluded))
	for _, crs := range excluded {
		ids = append(ids, crs.ID)
	}
	return checkUniqueness(repo.db,
		`SELECT COUNT(*) FROM course WHERE name = $1 AND id != ALL($2)`,
		name, ids, course.ErrNameExists)
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	err := repo.db.Get(&crs.ID, `INSERT INTO course (name) VALUES ($1) RETURNING id`, crs.Name)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	courses := []course.Course{}
	if err := repo.db.Select(&courses, `SELECT id, name FROM course ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(id int) (course.Course, error) {
	return getCourseByID(repo.db, id)
}

func (repo *courseRepository) UpdateCourse(crs course.Course) (course.Course, error) {
	res, err := repo.db.Exec(`UPDATE course SET name = $1 WHERE id = $2`, crs.Name, crs.ID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.Course{}, core.NewNotFoundError("course not found")
	}
	return crs, nil
}

func (repo *courseRepository) DeleteCourseByID(id int) error {
	res, err := repo.db.Exec(`DELETE FROM course WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NewNotFoundError("course not found")
	}
	return nil
}
