package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/cohort"
)

type cohortRepository struct {
	db *sqlx.DB
}

var _ cohort.Repository = (*cohortRepository)(nil)

func NewCohortRepository(db *sqlx.DB) cohort.Repository {
	return &cohortRepository{db: db}
}

func (repo *cohortRepository) CheckNameUniqueness(name string, excluded ...cohort.Cohort) error {
	ids := make([]int, 0, len(excluded))
	for _, coh := range excluded {
		ids = append(ids, coh.ID)
	}
	return checkUniqueness(repo.db,
		`SELECT COUNT(*) FROM cohort WHERE name = $1 AND id != ALL($2)`,
		name, ids, cohort.ErrNameExists)
}

func (repo *cohortRepository) CreateCohort(coh cohort.Cohort) (cohort.Cohort, error) {
	err := repo.db.Get(&coh.ID,
		`INSERT INTO cohort (name, teacher_id, course_id, start_date, end_date, schedule)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		coh.Name, coh.Teacher.ID, coh.Course.ID, coh.StartDate, coh.EndDate, coh.Schedule)
	if err != nil {
		return cohort.Cohort{}, errors.Wrap(err, "creating cohort")
	}
	return coh, nil
}

func (repo *cohortRepository) QueryAllCohorts() ([]cohort.Cohort, error) {
	rows := []cohortRow{}
	err := repo.db.Select(&rows,
		`SELECT id, name, teacher_id, course_id, start_date, end_date, schedule FROM cohort ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying cohorts")
	}
	cohorts := make([]cohort.Cohort, 0, len(rows))
	for _, row := range rows {
		coh, err := hydrateCohort(repo.db, row)
		if err != nil {
			return nil, err
		}
		cohorts = append(cohorts, coh)
	}
	return cohorts, nil
}

func (repo *cohortRepository) GetCohortByID(id int) (cohort.Cohort, error) {
	return getCohortByID(repo.db, id)
}

func (repo *cohortRepository) UpdateCohort(coh cohort.Cohort) (cohort.Cohort, error) {
	res, err := repo.db.Exec(
		`UPDATE cohort SET name = $1, teacher_id = $2, course_id = $3, start_date = $4, end_date = $5, schedule = $6
		WHERE id = $7`,
		coh.Name, coh.Teacher.ID, coh.Course.ID, coh.StartDate, coh.EndDate, coh.Schedule, coh.ID)
	if err != nil {
		return cohort.Cohort{}, errors.Wrap(err, "updating cohort")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return cohort.Cohort{}, core.NewNotFoundError("cohort not found")
	}
	return coh, nil
}

func (repo *cohortRepository) DeleteCohortByID(id int) error {
	res, err := repo.db.Exec(`DELETE FROM cohort WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting cohort")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NewNotFoundError("cohort not found")
	}
	return nil
}

func (repo *cohortRepository) CountCohorts() (int, error) {
	var count int
	if err := repo.db.Get(&count, `SELECT COUNT(*) FROM cohort`); err != nil {
		return 0, errors.Wrap(err, "counting cohorts")
	}
	return count, nil
}
