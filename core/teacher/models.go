package teacher

import (
	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
)

// Teacher owns its linked Account (1:1); deleting the Teacher deletes the Account.
// Subjects is a flat name list, intentionally not a relation to the Subject registry.
type Teacher struct {
	ID            int             `json:"id" db:"id"`
	Name          string          `json:"nome" db:"name"`
	BirthDate     string          `json:"dataNascimento" db:"birth_date"`
	Gender        string          `json:"genero" db:"gender"`
	CPF           string          `json:"cpf" db:"cpf"`
	RG            string          `json:"rg" db:"rg"`
	MaritalStatus string          `json:"estadoCivil" db:"marital_status"`
	Phone         string          `json:"telefone" db:"phone"`
	Email         string          `json:"email" db:"email"`
	Birthplace    string          `json:"naturalidade" db:"birthplace"`
	CEP           string          `json:"cep" db:"cep"`
	City          string          `json:"cidade" db:"city"`
	State         string          `json:"estado" db:"state"`
	Street        string          `json:"logradouro" db:"street"`
	Number        string          `json:"numero" db:"number"`
	Complement    string          `json:"complemento" db:"complement"`
	District      string          `json:"bairro" db:"district"`
	Landmark      string          `json:"pontoReferencia" db:"landmark"`
	Subjects      []string        `json:"materias"`
	JoinedAt      string          `json:"dataEntrada" db:"joined_at"`
	Account       account.Account `json:"usuario"`
}

// NewTeacher contains information needed to register a new Teacher.
type NewTeacher struct {
	Name          string   `json:"nome" validate:"required"`
	BirthDate     string   `json:"dataNascimento"`
	Gender        string   `json:"genero"`
	CPF           string   `json:"cpf"`
	RG            string   `json:"rg"`
	MaritalStatus string   `json:"estadoCivil"`
	Phone         string   `json:"telefone"`
	Email         string   `json:"email" validate:"required,email"`
	Secret        string   `json:"senha" validate:"required"`
	Birthplace    string   `json:"naturalidade"`
	CEP           string   `json:"cep"`
	City          string   `json:"cidade"`
	State         string   `json:"estado"`
	Street        string   `json:"logradouro"`
	Number        string   `json:"numero"`
	Complement    string   `json:"complemento"`
	District      string   `json:"bairro"`
	Landmark      string   `json:"pontoReferencia"`
	Subjects      []string `json:"materias"`
}

func (nt *NewTeacher) Validate() error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	return core.Validate.Struct(nt)
}

// UpdateTeacher defines what may be modified on an existing Teacher; the linked
// Account's login and secret move in lockstep with the email/secret here.
type UpdateTeacher struct {
	Name          string   `json:"nome" validate:"required"`
	BirthDate     string   `json:"dataNascimento"`
	Gender        string   `json:"genero"`
	CPF           string   `json:"cpf"`
	RG            string   `json:"rg"`
	MaritalStatus string   `json:"estadoCivil"`
	Phone         string   `json:"telefone"`
	Email         string   `json:"email" validate:"required,email"`
	Secret        string   `json:"senha" validate:"required"`
	Birthplace    string   `json:"naturalidade"`
	CEP           string   `json:"cep"`
	City          string   `json:"cidade"`
	State         string   `json:"estado"`
	Street        string   `json:"logradouro"`
	Number        string   `json:"numero"`
	Complement    string   `json:"complemento"`
	District      string   `json:"bairro"`
	Landmark      string   `json:"pontoReferencia"`
	Subjects      []string `json:"materias"`
}

func (ut *UpdateTeacher) Validate() error {
	ut.Name = core.CleanString(ut.Name)
	ut.Email = core.CleanString(ut.Email, true /* lower */)
	return core.Validate.Struct(ut)
}
