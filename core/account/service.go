package account

import (
	"errors"
	"net/mail"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/auth"
)

var (
	// errors
	ErrLoginExists = errors.New("an account with this login already exists")

	permCreate = auth.Allow(RoleAdmin, RolePedagogico, RoleRecruiter)
)

type (
	Repository interface {
		CheckLoginUniqueness(login string, excluded ...Account) error
		CreateAccount(acct Account) (Account, error)
		GetAccountByID(id int) (Account, error)
		GetAccountByLogin(login string) (Account, error)
		UpdateAccount(acct Account) (Account, error)
		DeleteAccountByID(id int) error
	}

	Service struct {
		repo    Repository
		claims  auth.ClaimReader
		mailSvc core.EmailService
		logger  core.Logger
	}
)

func NewService(repo Repository, claims auth.ClaimReader, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{repo: repo, claims: claims, mailSvc: mailSvc, logger: logger}
}

func (svc *Service) checkUniqueness(login string, excluded ...Account) error {
	if err := svc.repo.CheckLoginUniqueness(login, excluded...); err != nil {
		if errors.Is(err, ErrLoginExists) {
			return core.NewValidationError(err, core.FieldError{Field: "nomeLogin", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Create registers a new login. The raw secret is never stored; only its hash.
func (svc *Service) Create(na NewAccount, token string) (Account, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Account{}, err
	}
	if err := permCreate.Check(role); err != nil {
		svc.logger.Warn("account create denied for role " + role)
		return Account{}, err
	}

	if err := na.Validate(); err != nil {
		return Account{}, err
	}
	roleName, err := ResolveRole(na.Role)
	if err != nil {
		return Account{}, err
	}
	if err := svc.checkUniqueness(na.Login); err != nil {
		return Account{}, err
	}

	acct := Account{Login: na.Login, Role: roleName}
	if err := acct.SetSecret(na.Secret); err != nil {
		return Account{}, err
	}
	acct, err = svc.repo.CreateAccount(acct)
	if err != nil {
		return Account{}, err
	}

	svc.logger.Info("account created for login " + acct.Login)
	svc.sendWelcomeEmail(acct)
	return acct, nil
}

func (svc *Service) GetByID(id int) (Account, error) {
	return svc.repo.GetAccountByID(id)
}

func (svc *Service) GetByLogin(login string) (Account, error) {
	return svc.repo.GetAccountByLogin(core.CleanString(login, true /* lower */))
}

// Update moves a login's credentials; only the owning Student/Teacher manager calls it.
func (svc *Service) Update(id int, ua UpdateAccount) (Account, error) {
	acct, err := svc.repo.GetAccountByID(id)
	if err != nil {
		return Account{}, err
	}

	login := core.CleanString(ua.Login, true /* lower */)
	if login != "" && login != acct.Login {
		if err := svc.checkUniqueness(login, acct); err != nil {
			return Account{}, err
		}
		acct.Login = login
	}
	if ua.Secret != "" {
		if err := acct.SetSecret(ua.Secret); err != nil {
			return Account{}, err
		}
	}
	return svc.repo.UpdateAccount(acct)
}

// Delete removes a login; only the owning Student/Teacher manager calls it,
// as the cascading half of the entity's own deletion.
func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteAccountByID(id)
}

// Authenticate checks a login/secret pair for token issuance.
func (svc *Service) Authenticate(login, secret string) (Account, error) {
	acct, err := svc.GetByLogin(login)
	if err != nil {
		return Account{}, core.NewAuthenticationError("authentication failed")
	}
	if err := acct.CheckSecret(secret); err != nil {
		return Account{}, core.NewAuthenticationError("authentication failed")
	}
	return acct, nil
}

func (svc *Service) sendWelcomeEmail(acct Account) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: acct.Login}},
		Subject: "Welcome",
		Body:    "Your " + acct.Role + " account is ready. Log in with " + acct.Login + ".",
	})
}
