package inmemdb

import (
	"sort"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/cohort"
)

type cohortRepository struct {
	db *DB
}

var _ cohort.Repository = (*cohortRepository)(nil)

func NewCohortRepository(db *DB) cohort.Repository {
	return &cohortRepository{db: db}
}

func (repo *cohortRepository) CheckNameUniqueness(name string, excluded ...cohort.Cohort) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	exclIDs := make([]int, 0, len(excluded))
	for _, coh := range excluded {
		exclIDs = append(exclIDs, coh.ID)
	}
	for _, coh := range repo.db.cohorts {
		if coh.Name == name && !isExcludedID(coh.ID, exclIDs) {
			return cohort.ErrNameExists
		}
	}
	return nil
}

func (repo *cohortRepository) CreateCohort(coh cohort.Cohort) (cohort.Cohort, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.cohortPK++
	coh.ID = repo.db.cohortPK
	repo.db.cohorts[coh.ID] = &coh
	return coh, nil
}

func (repo *cohortRepository) QueryAllCohorts() ([]cohort.Cohort, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	cohorts := make([]cohort.Cohort, 0, len(repo.db.cohorts))
	for _, coh := range repo.db.cohorts {
		cohorts = append(cohorts, *coh)
	}
	sort.Slice(cohorts, func(i, j int) bool { return cohorts[i].ID < cohorts[j].ID })
	return cohorts, nil
}

func (repo *cohortRepository) GetCohortByID(id int) (cohort.Cohort, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if coh, ok := repo.db.cohorts[id]; ok {
		return *coh, nil
	}
	return cohort.Cohort{}, core.NewNotFoundError("cohort not found")
}

func (repo *cohortRepository) UpdateCohort(coh cohort.Cohort) (cohort.Cohort, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.cohorts[coh.ID]; !ok {
		return cohort.Cohort{}, core.NewNotFoundError("cohort not found")
	}
	repo.db.cohorts[coh.ID] = &coh
	return coh, nil
}

func (repo *cohortRepository) DeleteCohortByID(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.cohorts[id]; !ok {
		return core.NewNotFoundError("cohort not found")
	}
	delete(repo.db.cohorts, id)
	return nil
}

func (repo *cohortRepository) CountCohorts() (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return len(repo.db.cohorts), nil
}
