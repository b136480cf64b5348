package student

import (
	"errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
	"github.com/fullstack-education/academico/core/cohort"
)

var (
	// errors
	ErrNameExists = errors.New("a student with this name already exists")

	permRead   = auth.Allow(account.RoleAdmin, account.RolePedagogico)
	permWrite  = auth.Allow(account.RoleAdmin, account.RolePedagogico)
	permDelete = auth.Allow(account.RoleAdmin)
)

type (
	Repository interface {
		CheckNameUniqueness(name string, excluded ...Student) error
		CreateStudent(std Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		UpdateStudent(std Student) (Student, error)
		DeleteStudentByID(id int) error
		CountStudents() (int, error)
	}

	Service struct {
		repo     Repository
		cohorts  cohort.Repository
		accounts *account.Service
		claims   auth.ClaimReader
		logger   core.Logger
	}
)

func NewService(repo Repository, cohorts cohort.Repository, accounts *account.Service, claims auth.ClaimReader, logger core.Logger) *Service {
	return &Service{repo: repo, cohorts: cohorts, accounts: accounts, claims: claims, logger: logger}
}

func (svc *Service) checkUniqueness(name string, excluded ...Student) error {
	if err := svc.repo.CheckNameUniqueness(name, excluded...); err != nil {
		if errors.Is(err, ErrNameExists) {
			return core.NewValidationError(err, core.FieldError{Field: "nome", Error: err.Error()})
		}
		return err
	}
	return nil
}

// ListAll returns every student; an empty registry is NotFound, not an empty list.
func (svc *Service) ListAll(token string) ([]Student, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return nil, err
	}
	if err := permRead.Check(role); err != nil {
		svc.logger.Warn("student list denied for role " + role)
		return nil, err
	}

	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, core.NewNotFoundError("no students found")
	}
	return students, nil
}

func (svc *Service) GetByID(id int, token string) (Student, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Student{}, err
	}
	if err := permRead.Check(role); err != nil {
		return Student{}, err
	}
	return svc.repo.GetStudentByID(id)
}

// Create enrolls a Student in a Cohort and registers its linked student Account
// using the student's email and secret.
func (svc *Service) Create(ns NewStudent, token string) (Response, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Response{}, err
	}
	if err := permWrite.Check(role); err != nil {
		svc.logger.Warn("student create denied for role " + role)
		return Response{}, err
	}

	if err := ns.Validate(); err != nil {
		return Response{}, err
	}
	if err := svc.checkUniqueness(ns.Name); err != nil {
		return Response{}, err
	}
	coh, err := svc.cohorts.GetCohortByID(ns.CohortID)
	if err != nil {
		return Response{}, err
	}

	acct, err := svc.accounts.Create(account.NewAccount{
		Login:  ns.Email,
		Secret: ns.Secret,
		Role:   account.RoleAluno,
	}, token)
	if err != nil {
		return Response{}, err
	}

	std := Student{
		Name:          ns.Name,
		Email:         ns.Email,
		BirthDate:     ns.BirthDate,
		Gender:        ns.Gender,
		CPF:           ns.CPF,
		RG:            ns.RG,
		MaritalStatus: ns.MaritalStatus,
		Phone:         ns.Phone,
		Birthplace:    ns.Birthplace,
		CEP:           ns.CEP,
		City:          ns.City,
		State:         ns.State,
		Street:        ns.Street,
		Number:        ns.Number,
		Complement:    ns.Complement,
		District:      ns.District,
		Landmark:      ns.Landmark,
		Account:       acct,
		Cohort:        coh,
	}
	std, err = svc.repo.CreateStudent(std)
	if err != nil {
		return Response{}, err
	}

	svc.logger.Info("student created: " + std.Name)
	return Response{
		ID:        std.ID,
		Name:      std.Name,
		BirthDate: std.BirthDate,
		Account:   std.Account,
		Cohort:    std.Cohort,
	}, nil
}

// Update re-validates the cohort reference and moves the linked Account's
// login/secret in lockstep with the Student's own fields.
func (svc *Service) Update(id int, us UpdateStudent, token string) (Student, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Student{}, err
	}
	if err := permWrite.Check(role); err != nil {
		svc.logger.Warn("student update denied for role " + role)
		return Student{}, err
	}

	std, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	if err := us.Validate(); err != nil {
		return Student{}, err
	}
	if err := svc.checkUniqueness(us.Name, std); err != nil {
		return Student{}, err
	}
	coh, err := svc.cohorts.GetCohortByID(us.CohortID)
	if err != nil {
		return Student{}, err
	}

	std.Name = us.Name
	std.Email = us.Email
	std.BirthDate = us.BirthDate
	std.Cohort = coh

	acct, err := svc.accounts.Update(std.Account.ID, account.UpdateAccount{
		Login:  us.Email,
		Secret: us.Secret,
	})
	if err != nil {
		return Student{}, err
	}
	std.Account = acct

	svc.logger.Info("student updated: " + std.Name)
	return svc.repo.UpdateStudent(std)
}

// Delete removes the Student and then its linked Account, as one logical unit.
func (svc *Service) Delete(id int, token string) error {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return err
	}
	if err := permDelete.Check(role); err != nil {
		svc.logger.Warn("student delete denied for role " + role)
		return err
	}

	std, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return err
	}
	if err := svc.repo.DeleteStudentByID(id); err != nil {
		return err
	}
	svc.logger.Info("student deleted, cascading to linked account")
	return svc.accounts.Delete(std.Account.ID)
}
