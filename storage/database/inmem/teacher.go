package inmemdb

import (
	"sort"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/teacher"
)

type teacherRepository struct {
	db *DB
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db}
}

func teacherIDs(tchs []teacher.Teacher) []int {
	ids := make([]int, 0, len(tchs))
	for _, tch := range tchs {
		ids = append(ids, tch.ID)
	}
	return ids
}

func (repo *teacherRepository) CheckNameUniqueness(name string, excluded ...teacher.Teacher) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	exclIDs := teacherIDs(excluded)
	for _, tch := range repo.db.teachers {
		if tch.Name == name && !isExcludedID(tch.ID, exclIDs) {
			return teacher.ErrNameExists
		}
	}
	return nil
}

func (repo *teacherRepository) CheckEmailUniqueness(email string, excluded ...teacher.Teacher) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	exclIDs := teacherIDs(excluded)
	for _, tch := range repo.db.teachers {
		if tch.Email == email && !isExcludedID(tch.ID, exclIDs) {
			return teacher.ErrEmailExists
		}
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.teacherPK++
	tch.ID = repo.db.teacherPK
	repo.db.teachers[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(repo.db.teachers))
	for _, tch := range repo.db.teachers {
		teachers = append(teachers, *tch)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })
	return teachers, nil
}

func (repo *teacherRepository) QueryTeachersByAccountRole(role string) ([]teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	teachers := make([]teacher.Teacher, 0)
	for _, tch := range repo.db.teachers {
		// reflect role changes made directly on the account row
		if acct, ok := repo.db.accounts[tch.Account.ID]; ok && acct.Role == role {
			teachers = append(teachers, *tch)
		}
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(id int) (teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tch, ok := repo.db.teachers[id]
	if !ok {
		return teacher.Teacher{}, core.NewNotFoundError("teacher not found")
	}
	out := *tch
	if acct, ok := repo.db.accounts[tch.Account.ID]; ok {
		out.Account = *acct
	}
	return out, nil
}

func (repo *teacherRepository) UpdateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.teachers[tch.ID]; !ok {
		return teacher.Teacher{}, core.NewNotFoundError("teacher not found")
	}
	repo.db.teachers[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) DeleteTeacherByID(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.teachers[id]; !ok {
		return core.NewNotFoundError("teacher not found")
	}
	delete(repo.db.teachers, id)
	return nil
}

func (repo *teacherRepository) CountTeachers() (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return len(repo.db.teachers), nil
}
