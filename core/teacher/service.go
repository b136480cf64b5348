package teacher

import (
	"errors"
	"time"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
)

var (
	// errors
	ErrNameExists  = errors.New("a teacher with this name already exists")
	ErrEmailExists = errors.New("a teacher with this email already exists")

	permRead   = auth.Allow(account.RoleAdmin, account.RolePedagogico, account.RoleRecruiter)
	permWrite  = auth.Allow(account.RoleAdmin, account.RolePedagogico, account.RoleRecruiter)
	permDelete = auth.Allow(account.RoleAdmin)

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		CheckNameUniqueness(name string, excluded ...Teacher) error
		CheckEmailUniqueness(email string, excluded ...Teacher) error
		CreateTeacher(tch Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		// QueryTeachersByAccountRole returns teachers whose linked account holds
		// exactly the given role.
		QueryTeachersByAccountRole(role string) ([]Teacher, error)
		GetTeacherByID(id int) (Teacher, error)
		UpdateTeacher(tch Teacher) (Teacher, error)
		DeleteTeacherByID(id int) error
		CountTeachers() (int, error)
	}

	Service struct {
		repo     Repository
		accounts *account.Service
		claims   auth.ClaimReader
		logger   core.Logger
	}
)

func NewService(repo Repository, accounts *account.Service, claims auth.ClaimReader, logger core.Logger) *Service {
	return &Service{repo: repo, accounts: accounts, claims: claims, logger: logger}
}

func (svc *Service) checkUniqueness(name, email string, excluded ...Teacher) error {
	if err := svc.repo.CheckNameUniqueness(name, excluded...); err != nil {
		if errors.Is(err, ErrNameExists) {
			return core.NewValidationError(err, core.FieldError{Field: "nome", Error: err.Error()})
		}
		return err
	}
	if err := svc.repo.CheckEmailUniqueness(email, excluded...); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// ListAll returns every teacher for an admin. Pedagogical staff and recruiters
// only see teachers whose linked account still holds the professor role; an
// empty result either way is NotFound.
func (svc *Service) ListAll(token string) ([]Teacher, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return nil, err
	}
	if err := permRead.Check(role); err != nil {
		svc.logger.Warn("teacher list denied for role " + role)
		return nil, err
	}

	var teachers []Teacher
	if role == account.RoleAdmin {
		teachers, err = svc.repo.QueryAllTeachers()
	} else {
		teachers, err = svc.repo.QueryTeachersByAccountRole(account.RoleProfessor)
	}
	if err != nil {
		return nil, err
	}
	if len(teachers) == 0 {
		return nil, core.NewNotFoundError("no teachers found")
	}
	return teachers, nil
}

// GetByID applies the same visibility rule as ListAll, but a non-admin asking
// for a teacher whose account role moved away from professor is denied, not
// told the teacher does not exist.
func (svc *Service) GetByID(id int, token string) (Teacher, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Teacher{}, err
	}
	if err := permRead.Check(role); err != nil {
		return Teacher{}, err
	}

	tch, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		return Teacher{}, err
	}
	if role != account.RoleAdmin && tch.Account.Role != account.RoleProfessor {
		svc.logger.Warn("teacher get denied: account role is not professor")
		return Teacher{}, core.NewAuthorizationError("only teachers holding the professor role are visible")
	}
	return tch, nil
}

// Create registers a Teacher and its linked professor Account.
func (svc *Service) Create(nt NewTeacher, token string) (Teacher, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Teacher{}, err
	}
	if err := permWrite.Check(role); err != nil {
		svc.logger.Warn("teacher create denied for role " + role)
		return Teacher{}, err
	}

	if err := nt.Validate(); err != nil {
		return Teacher{}, err
	}
	if err := svc.checkUniqueness(nt.Name, nt.Email); err != nil {
		return Teacher{}, err
	}

	acct, err := svc.accounts.Create(account.NewAccount{
		Login:  nt.Email,
		Secret: nt.Secret,
		Role:   account.RoleProfessor,
	}, token)
	if err != nil {
		return Teacher{}, err
	}

	tch := Teacher{
		Name:          nt.Name,
		BirthDate:     nt.BirthDate,
		Gender:        nt.Gender,
		CPF:           nt.CPF,
		RG:            nt.RG,
		MaritalStatus: nt.MaritalStatus,
		Phone:         nt.Phone,
		Email:         nt.Email,
		Birthplace:    nt.Birthplace,
		CEP:           nt.CEP,
		City:          nt.City,
		State:         nt.State,
		Street:        nt.Street,
		Number:        nt.Number,
		Complement:    nt.Complement,
		District:      nt.District,
		Landmark:      nt.Landmark,
		Subjects:      nt.Subjects,
		JoinedAt:      NowFunc().UTC().Format("2006-01-02"),
		Account:       acct,
	}
	tch, err = svc.repo.CreateTeacher(tch)
	if err != nil {
		return Teacher{}, err
	}
	svc.logger.Info("teacher created: " + tch.Name)
	return tch, nil
}

// Update replaces the Teacher's mutable fields and moves the linked Account's
// login and secret in lockstep.
func (svc *Service) Update(id int, ut UpdateTeacher, token string) (Teacher, error) {
	tch, err := svc.GetByID(id, token)
	if err != nil {
		return Teacher{}, err
	}

	if err := ut.Validate(); err != nil {
		return Teacher{}, err
	}
	if err := svc.checkUniqueness(ut.Name, ut.Email, tch); err != nil {
		return Teacher{}, err
	}

	tch.Name = ut.Name
	tch.BirthDate = ut.BirthDate
	tch.Gender = ut.Gender
	tch.CPF = ut.CPF
	tch.RG = ut.RG
	tch.MaritalStatus = ut.MaritalStatus
	tch.Phone = ut.Phone
	tch.Email = ut.Email
	tch.Birthplace = ut.Birthplace
	tch.CEP = ut.CEP
	tch.City = ut.City
	tch.State = ut.State
	tch.Street = ut.Street
	tch.Number = ut.Number
	tch.Complement = ut.Complement
	tch.District = ut.District
	tch.Landmark = ut.Landmark
	tch.Subjects = ut.Subjects

	acct, err := svc.accounts.Update(tch.Account.ID, account.UpdateAccount{
		Login:  ut.Email,
		Secret: ut.Secret,
	})
	if err != nil {
		return Teacher{}, err
	}
	tch.Account = acct

	svc.logger.Info("teacher updated: " + tch.Name)
	return svc.repo.UpdateTeacher(tch)
}

// Delete removes the Teacher and then its linked Account, as one logical unit.
func (svc *Service) Delete(id int, token string) error {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return err
	}
	if err := permDelete.Check(role); err != nil {
		svc.logger.Warn("teacher delete denied for role " + role)
		return err
	}

	tch, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		return err
	}
	if err := svc.repo.DeleteTeacherByID(id); err != nil {
		return err
	}
	svc.logger.Info("teacher deleted, cascading to linked account")
	return svc.accounts.Delete(tch.Account.ID)
}
