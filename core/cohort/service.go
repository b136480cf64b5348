package cohort

import (
	"errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
	"github.com/fullstack-education/academico/core/course"
	"github.com/fullstack-education/academico/core/teacher"
)

var (
	// errors
	ErrNameExists     = errors.New("a cohort with this name already exists")
	errTeacherNotProf = errors.New("only a teacher holding the professor role can be assigned to a cohort")

	permRead   = auth.Allow(account.RoleAdmin, account.RolePedagogico)
	permCreate = auth.Allow(account.RoleAdmin, account.RolePedagogico, account.RoleProfessor)
	permUpdate = auth.Allow(account.RoleAdmin, account.RolePedagogico)
	permDelete = auth.Allow(account.RoleAdmin)
)

type (
	Repository interface {
		CheckNameUniqueness(name string, excluded ...Cohort) error
		CreateCohort(coh Cohort) (Cohort, error)
		QueryAllCohorts() ([]Cohort, error)
		GetCohortByID(id int) (Cohort, error)
		UpdateCohort(coh Cohort) (Cohort, error)
		DeleteCohortByID(id int) error
		CountCohorts() (int, error)
	}

	Service struct {
		repo     Repository
		courses  course.Repository
		teachers teacher.Repository
		claims   auth.ClaimReader
		logger   core.Logger
	}
)

func NewService(repo Repository, courses course.Repository, teachers teacher.Repository, claims auth.ClaimReader, logger core.Logger) *Service {
	return &Service{repo: repo, courses: courses, teachers: teachers, claims: claims, logger: logger}
}

func (svc *Service) checkUniqueness(name string, excluded ...Cohort) error {
	if err := svc.repo.CheckNameUniqueness(name, excluded...); err != nil {
		if errors.Is(err, ErrNameExists) {
			return core.NewValidationError(err, core.FieldError{Field: "nome", Error: err.Error()})
		}
		return err
	}
	return nil
}

// resolveRefs loads the referenced course and teacher, and rejects a teacher
// whose linked account does not hold the professor role.
func (svc *Service) resolveRefs(courseID, teacherID int) (course.Course, teacher.Teacher, error) {
	crs, err := svc.courses.GetCourseByID(courseID)
	if err != nil {
		return course.Course{}, teacher.Teacher{}, err
	}
	tch, err := svc.teachers.GetTeacherByID(teacherID)
	if err != nil {
		return course.Course{}, teacher.Teacher{}, err
	}
	if tch.Account.Role != account.RoleProfessor {
		svc.logger.Warn("cohort rejected: assigned teacher is not a professor")
		return course.Course{}, teacher.Teacher{}, core.NewValidationError(errTeacherNotProf,
			core.FieldError{Field: "docente", Error: errTeacherNotProf.Error()})
	}
	return crs, tch, nil
}

// ListAll returns every cohort; an empty registry is NotFound, not an empty list.
func (svc *Service) ListAll(token string) ([]Cohort, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return nil, err
	}
	if err := permRead.Check(role); err != nil {
		svc.logger.Warn("cohort list denied for role " + role)
		return nil, err
	}

	cohorts, err := svc.repo.QueryAllCohorts()
	if err != nil {
		return nil, err
	}
	if len(cohorts) == 0 {
		return nil, core.NewNotFoundError("no cohorts found")
	}
	return cohorts, nil
}

func (svc *Service) GetByID(id int, token string) (Cohort, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Cohort{}, err
	}
	if err := permRead.Check(role); err != nil {
		return Cohort{}, err
	}
	return svc.repo.GetCohortByID(id)
}

func (svc *Service) Create(nc NewCohort, token string) (Cohort, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Cohort{}, err
	}
	if err := permCreate.Check(role); err != nil {
		svc.logger.Warn("cohort create denied for role " + role)
		return Cohort{}, err
	}

	if err := nc.Validate(); err != nil {
		return Cohort{}, err
	}
	if err := svc.checkUniqueness(nc.Name); err != nil {
		return Cohort{}, err
	}
	crs, tch, err := svc.resolveRefs(nc.CourseID, nc.TeacherID)
	if err != nil {
		return Cohort{}, err
	}

	coh := Cohort{
		Name:      nc.Name,
		Teacher:   tch,
		Course:    crs,
		StartDate: nc.StartDate,
		EndDate:   nc.EndDate,
		Schedule:  nc.Schedule,
	}
	coh, err = svc.repo.CreateCohort(coh)
	if err != nil {
		return Cohort{}, err
	}
	svc.logger.Info("cohort created: " + coh.Name)
	return coh, nil
}

func (svc *Service) Update(id int, uc UpdateCohort, token string) (Cohort, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Cohort{}, err
	}
	if err := permUpdate.Check(role); err != nil {
		svc.logger.Warn("cohort update denied for role " + role)
		return Cohort{}, err
	}

	coh, err := svc.repo.GetCohortByID(id)
	if err != nil {
		return Cohort{}, err
	}
	if err := uc.Validate(); err != nil {
		return Cohort{}, err
	}
	if err := svc.checkUniqueness(uc.Name, coh); err != nil {
		return Cohort{}, err
	}
	crs, tch, err := svc.resolveRefs(uc.CourseID, uc.TeacherID)
	if err != nil {
		return Cohort{}, err
	}

	coh.Name = uc.Name
	coh.StartDate = uc.StartDate
	coh.EndDate = uc.EndDate
	coh.Schedule = uc.Schedule
	coh.Teacher = tch
	coh.Course = crs

	svc.logger.Info("cohort updated: " + coh.Name)
	return svc.repo.UpdateCohort(coh)
}

func (svc *Service) Delete(id int, token string) error {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return err
	}
	if err := permDelete.Check(role); err != nil {
		svc.logger.Warn("cohort delete denied for role " + role)
		return err
	}

	if err := svc.repo.DeleteCohortByID(id); err != nil {
		return err
	}
	svc.logger.Info("cohort deleted")
	return nil
}
