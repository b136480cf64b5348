package account

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/fullstack-education/academico/core"
)

// Roles (closed set, case-sensitive)
const (
	RoleAdmin      = "admin"
	RolePedagogico = "pedagogico"
	RoleRecruiter  = "recruiter"
	RoleProfessor  = "professor"
	RoleAluno      = "aluno"
)

var AllRoles = []string{RoleAdmin, RolePedagogico, RoleRecruiter, RoleProfessor, RoleAluno}

// english aliases accepted on account registration
var roleAliases = map[string]string{
	"teacher": RoleProfessor,
	"student": RoleAluno,
}

// ResolveRole resolves a role name (case-insensitive, english aliases accepted)
// against the closed role set, failing with NotFound for anything else.
func ResolveRole(name string) (string, error) {
	name = core.CleanString(name, true /* lower */)
	if alias, ok := roleAliases[name]; ok {
		return alias, nil
	}
	for _, role := range AllRoles {
		if role == name {
			return role, nil
		}
	}
	return "", core.NewNotFoundError("role not found: " + name)
}

// Account is a login identity, independent of the Student/Teacher that owns it.
type Account struct {
	ID         int    `json:"id" db:"id"`
	Login      string `json:"login" db:"login"`
	SecretHash []byte `json:"-" db:"secret_hash"`
	Role       string `json:"papel" db:"role"`
}

func (a *Account) SetSecret(secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.SecretHash = hash
	return nil
}

func (a *Account) CheckSecret(secret string) error {
	return bcrypt.CompareHashAndPassword(a.SecretHash, []byte(secret))
}

// NewAccount contains information needed to register a new login.
type NewAccount struct {
	Login  string `json:"nomeLogin" validate:"required"`
	Secret string `json:"senha" validate:"required"`
	Role   string `json:"nomePapel" validate:"required"`
}

func (na *NewAccount) Validate() error {
	na.Login = core.CleanString(na.Login, true /* lower */)
	na.Role = core.CleanString(na.Role)
	return core.Validate.Struct(na)
}

// UpdateAccount is used by the owning Student/Teacher to move the login
// credentials in lockstep with its own fields. An empty Secret keeps the
// stored hash.
type UpdateAccount struct {
	Login  string
	Secret string
}
