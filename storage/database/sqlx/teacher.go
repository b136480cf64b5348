package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/teacher"
)

type teacherRepository struct {
	db *sqlx.DB
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *sqlx.DB) teacher.Repository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) CheckNameUniqueness(name string, excluded ...teacher.Teacher) error {
	return checkUniqueness(repo.db,
		`SELECT COUNT(*) FROM teacher WHERE name = $1 AND id != ALL($2)`,
		name, teacherIDs(excluded), teacher.ErrNameExists)
}

func (repo *teacherRepository) CheckEmailUniqueness(email string, excluded ...teacher.Teacher) error {
	return checkUniqueness(repo.db,
		`SELECT COUNT(*) FROM teacher WHERE email = $1 AND id != ALL($2)`,
		email, teacherIDs(excluded), teacher.ErrEmailExists)
}

func (repo *teacherRepository) CreateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	err := repo.db.Get(&tch.ID,
		`INSERT INTO teacher (name, birth_date, gender, cpf, rg, marital_status, phone, email, birthplace,
			cep, city, state, street, number, complement, district, landmark, subjects, joined_at, account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id`,
		tch.Name, tch.BirthDate, tch.Gender, tch.CPF, tch.RG, tch.MaritalStatus, tch.Phone, tch.Email,
		tch.Birthplace, tch.CEP, tch.City, tch.State, tch.Street, tch.Number, tch.Complement, tch.District,
		tch.Landmark, pq.StringArray(tch.Subjects), tch.JoinedAt, tch.Account.ID)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "creating teacher")
	}
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	return repo.queryTeachers(`SELECT ` + teacherColumns + ` FROM teacher ORDER BY id`)
}

func (repo *teacherRepository) QueryTeachersByAccountRole(role string) ([]teacher.Teacher, error) {
	return repo.queryTeachers(`SELECT `+teacherColumns+` FROM teacher
		WHERE account_id IN (SELECT id FROM account WHERE role = $1) ORDER BY id`, role)
}

func (repo *teacherRepository) queryTeachers(query string, args ...interface{}) ([]teacher.Teacher, error) {
	rows := []teacherRow{}
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	teachers := make([]teacher.Teacher, 0, len(rows))
	for _, row := range rows {
		tch, err := hydrateTeacher(repo.db, row)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, tch)
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(id int) (teacher.Teacher, error) {
	return getTeacherByID(repo.db, id)
}

func (repo *teacherRepository) UpdateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	res, err := repo.db.Exec(
		`UPDATE teacher SET name = $1, birth_date = $2, gender = $3, cpf = $4, rg = $5, marital_status = $6,
			phone = $7, email = $8, birthplace = $9, cep = $10, city = $11, state = $12, street = $13,
			number = $14, complement = $15, district = $16, landmark = $17, subjects = $18
		WHERE id = $19`,
		tch.Name, tch.BirthDate, tch.Gender, tch.CPF, tch.RG, tch.MaritalStatus, tch.Phone, tch.Email,
		tch.Birthplace, tch.CEP, tch.City, tch.State, tch.Street, tch.Number, tch.Complement, tch.District,
		tch.Landmark, pq.StringArray(tch.Subjects), tch.ID)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "updating teacher")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return teacher.Teacher{}, core.NewNotFoundError("teacher not found")
	}
	return tch, nil
}

func (repo *teacherRepository) DeleteTeacherByID(id int) error {
	res, err := repo.db.Exec(`DELETE FROM teacher WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NewNotFoundError("teacher not found")
	}
	return nil
}

func (repo *teacherRepository) CountTeachers() (int, error) {
	var count int
	if err := repo.db.Get(&count, `SELECT COUNT(*) FROM teacher`); err != nil {
		return 0, errors.Wrap(err, "counting teachers")
	}
	return count, nil
}

func teacherIDs(teachers []teacher.Teacher) []int {
	ids := make([]int, 0, len(teachers))
	for _, tch := range teachers {
		ids = append(ids, tch.ID)
	}
	return ids
}
