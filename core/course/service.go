package course

import (
	"errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
)

var (
	// errors
	ErrNameExists = errors.New("a course with this name already exists")

	permRead   = auth.Allow(account.RoleAdmin, account.RolePedagogico)
	permWrite  = auth.Allow(account.RoleAdmin, account.RolePedagogico)
	permDelete = auth.Allow(account.RoleAdmin)
)

type (
	Repository interface {
		CheckNameUniqueness(name string, excluded ...Course) error
		CreateCourse(crs Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id int) (Course, error)
		UpdateCourse(crs Course) (Course, error)
		DeleteCourseByID(id int) error
	}

	Service struct {
		repo   Repository
		claims auth.ClaimReader
		logger core.Logger
	}
)

func NewService(repo Repository, claims auth.ClaimReader, logger core.Logger) *Service {
	return &Service{repo: repo, claims: claims, logger: logger}
}

func (svc *Service) checkUniqueness(name string, excluded ...Course) error {
	if err := svc.repo.CheckNameUniqueness(name, excluded...); err != nil {
		if errors.Is(err, ErrNameExists) {
			return core.NewValidationError(err, core.FieldError{Field: "nome", Error: err.Error()})
		}
		return err
	}
	return nil
}

// ListAll returns every course. An empty registry is an error, not an empty list.
func (svc *Service) ListAll(token string) ([]Course, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return nil, err
	}
	if err := permRead.Check(role); err != nil {
		svc.logger.Warn("course list denied for role " + role)
		return nil, err
	}

	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, core.NewNotFoundError("no courses found")
	}
	return courses, nil
}

func (svc *Service) GetByID(id int, token string) (Course, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Course{}, err
	}
	if err := permRead.Check(role); err != nil {
		return Course{}, err
	}
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) Create(nc NewCourse, token string) (Course, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Course{}, err
	}
	if err := permWrite.Check(role); err != nil {
		svc.logger.Warn("course create denied for role " + role)
		return Course{}, err
	}

	if err := nc.Validate(); err != nil {
		return Course{}, err
	}
	if err := svc.checkUniqueness(nc.Name); err != nil {
		return Course{}, err
	}

	crs, err := svc.repo.CreateCourse(Course{Name: nc.Name})
	if err != nil {
		return Course{}, err
	}
	svc.logger.Info("course created: " + crs.Name)
	return crs, nil
}

func (svc *Service) Update(id int, uc UpdateCourse, token string) (Course, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Course{}, err
	}
	if err := permWrite.Check(role); err != nil {
		return Course{}, err
	}

	crs, err := svc.repo.GetCourseByID(id)
	if err != nil {
		return Course{}, err
	}
	if err := uc.Validate(); err != nil {
		return Course{}, err
	}
	if err := svc.checkUniqueness(uc.Name, crs); err != nil {
		return Course{}, err
	}

	crs.Name = uc.Name
	return svc.repo.UpdateCourse(crs)
}

func (svc *Service) Delete(id int, token string) error {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return err
	}
	if err := permDelete.Check(role); err != nil {
		svc.logger.Warn("course delete denied for role " + role)
		return err
	}

	if err := svc.repo.DeleteCourseByID(id); err != nil {
		return err
	}
	svc.logger.Info("course deleted")
	return nil
}
