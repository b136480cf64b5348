package subject

import (
	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
	"github.com/fullstack-education/academico/core/course"
)

var (
	permRead   = auth.Allow(account.RoleAdmin, account.RolePedagogico)
	permWrite  = auth.Allow(account.RoleAdmin, account.RolePedagogico)
	permDelete = auth.Allow(account.RoleAdmin)
)

type (
	Repository interface {
		CreateSubject(sub Subject) (Subject, error)
		QueryAllSubjects() ([]Subject, error)
		QuerySubjectsByCourseID(courseID int) ([]Subject, error)
		GetSubjectByID(id int) (Subject, error)
		UpdateSubject(sub Subject) (Subject, error)
		DeleteSubjectByID(id int) error
	}

	Service struct {
		repo    Repository
		courses course.Repository
		claims  auth.ClaimReader
		logger  core.Logger
	}
)

func NewService(repo Repository, courses course.Repository, claims auth.ClaimReader, logger core.Logger) *Service {
	return &Service{repo: repo, courses: courses, claims: claims, logger: logger}
}

// resolveCourse validates the optional course reference; a missing course propagates NotFound.
func (svc *Service) resolveCourse(courseID *int) (*course.Course, error) {
	if courseID == nil {
		return nil, nil
	}
	crs, err := svc.courses.GetCourseByID(*courseID)
	if err != nil {
		return nil, err
	}
	return &crs, nil
}

func (svc *Service) ListAll(token string) ([]Subject, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return nil, err
	}
	if err := permRead.Check(role); err != nil {
		svc.logger.Warn("subject list denied for role " + role)
		return nil, err
	}

	subjects, err := svc.repo.QueryAllSubjects()
	if err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return nil, core.NewNotFoundError("no subjects found")
	}
	return subjects, nil
}

func (svc *Service) ListByCourse(courseID int, token string) ([]Subject, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return nil, err
	}
	if err := permRead.Check(role); err != nil {
		return nil, err
	}

	if _, err := svc.courses.GetCourseByID(courseID); err != nil {
		return nil, err
	}
	subjects, err := svc.repo.QuerySubjectsByCourseID(courseID)
	if err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return nil, core.NewNotFoundError("no subjects found for course")
	}
	return subjects, nil
}

func (svc *Service) GetByID(id int, token string) (Subject, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Subject{}, err
	}
	if err := permRead.Check(role); err != nil {
		return Subject{}, err
	}
	return svc.repo.GetSubjectByID(id)
}

func (svc *Service) Create(ns NewSubject, token string) (Subject, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Subject{}, err
	}
	if err := permWrite.Check(role); err != nil {
		svc.logger.Warn("subject create denied for role " + role)
		return Subject{}, err
	}

	if err := ns.Validate(); err != nil {
		return Subject{}, err
	}
	crs, err := svc.resolveCourse(ns.CourseID)
	if err != nil {
		return Subject{}, err
	}

	sub, err := svc.repo.CreateSubject(Subject{Name: ns.Name, Course: crs})
	if err != nil {
		return Subject{}, err
	}
	svc.logger.Info("subject created: " + sub.Name)
	return sub, nil
}

func (svc *Service) Update(id int, us UpdateSubject, token string) (Subject, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Subject{}, err
	}
	if err := permWrite.Check(role); err != nil {
		return Subject{}, err
	}

	sub, err := svc.repo.GetSubjectByID(id)
	if err != nil {
		return Subject{}, err
	}
	if err := us.Validate(); err != nil {
		return Subject{}, err
	}
	crs, err := svc.resolveCourse(us.CourseID)
	if err != nil {
		return Subject{}, err
	}

	sub.Name = us.Name
	sub.Course = crs
	return svc.repo.UpdateSubject(sub)
}

func (svc *Service) Delete(id int, token string) error {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return err
	}
	if err := permDelete.Check(role); err != nil {
		svc.logger.Warn("subject delete denied for role " + role)
		return err
	}

	if err := svc.repo.DeleteSubjectByID(id); err != nil {
		return err
	}
	svc.logger.Info("subject deleted")
	return nil
}
