package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CheckNameUniqueness(name string, excluded ...student.Student) error {
	ids := make([]int, 0, len(excluded))
	for _, std := range excluded {
		ids = append(ids, std.ID)
	}
	return checkUniqueness(repo.db,
		`SELECT COUNT(*) FROM student WHERE name = $1 AND id != ALL($2)`,
		name, ids, student.ErrNameExists)
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	err := repo.db.Get(&std.ID,
		`INSERT INTO student (name, email, birth_date, gender, cpf, rg, marital_status, phone, birthplace,
			cep, city, state, street, number, complement, district, landmark, account_id, cohort_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`,
		std.Name, std.Email, std.BirthDate, std.Gender, std.CPF, std.RG, std.MaritalStatus, std.Phone,
		std.Birthplace, std.CEP, std.City, std.State, std.Street, std.Number, std.Complement, std.District,
		std.Landmark, std.Account.ID, std.Cohort.ID)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return std, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	rows := []studentRow{}
	if err := repo.db.Select(&rows, `SELECT `+studentColumns+` FROM student ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		std, err := hydrateStudent(repo.db, row)
		if err != nil {
			return nil, err
		}
		students = append(students, std)
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	return getStudentByID(repo.db, id)
}

func (repo *studentRepository) UpdateStudent(std student.Student) (student.Student, error) {
	res, err := repo.db.Exec(
		`UPDATE student SET name = $1, email = $2, birth_date = $3, gender = $4, cpf = $5, rg = $6,
			marital_status = $7, phone = $8, birthplace = $9, cep = $10, city = $11, state = $12,
			street = $13, number = $14, complement = $15, district = $16, landmark = $17, cohort_id = $18
		WHERE id = $19`,
		std.Name, std.Email, std.BirthDate, std.Gender, std.CPF, std.RG, std.MaritalStatus, std.Phone,
		std.Birthplace, std.CEP, std.City, std.State, std.Street, std.Number, std.Complement, std.District,
		std.Landmark, std.Cohort.ID, std.ID)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.Student{}, core.NewNotFoundError("student not found")
	}
	return std, nil
}

func (repo *studentRepository) DeleteStudentByID(id int) error {
	res, err := repo.db.Exec(`DELETE FROM student WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NewNotFoundError("student not found")
	}
	return nil
}

func (repo *studentRepository) CountStudents() (int, error) {
	var count int
	if err := repo.db.Get(&count, `SELECT COUNT(*) FROM student`); err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return count, nil
}
