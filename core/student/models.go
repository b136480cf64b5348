package student

import (
	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/cohort"
)

// Student owns its linked Account (1:1) and belongs to exactly one Cohort.
// Deleting the Student deletes the Account.
type Student struct {
	ID            int             `json:"id" db:"id"`
	Name          string          `json:"nome" db:"name"`
	Email         string          `json:"email" db:"email"`
	BirthDate     string          `json:"dataNascimento" db:"birth_date"`
	Gender        string          `json:"genero" db:"gender"`
	CPF           string          `json:"cpf" db:"cpf"`
	RG            string          `json:"rg" db:"rg"`
	MaritalStatus string          `json:"estadoCivil" db:"marital_status"`
	Phone         string          `json:"telefone" db:"phone"`
	Birthplace    string          `json:"naturalidade" db:"birthplace"`
	CEP           string          `json:"cep" db:"cep"`
	City          string          `json:"cidade" db:"city"`
	State         string          `json:"estado" db:"state"`
	Street        string          `json:"logradouro" db:"street"`
	Number        string          `json:"numero" db:"number"`
	Complement    string          `json:"complemento" db:"complement"`
	District      string          `json:"bairro" db:"district"`
	Landmark      string          `json:"pontoReferencia" db:"landmark"`
	Account       account.Account `json:"usuario"`
	Cohort        cohort.Cohort   `json:"turma"`
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name          string `json:"nome" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Secret        string `json:"senha" validate:"required"`
	BirthDate     string `json:"dataNascimento"`
	Gender        string `json:"genero"`
	CPF           string `json:"cpf"`
	RG            string `json:"rg"`
	MaritalStatus string `json:"estadoCivil"`
	Phone         string `json:"telefone"`
	Birthplace    string `json:"naturalidade"`
	CEP           string `json:"cep"`
	City          string `json:"cidade"`
	State         string `json:"estado"`
	Street        string `json:"logradouro"`
	Number        string `json:"numero"`
	Complement    string `json:"complemento"`
	District      string `json:"bairro"`
	Landmark      string `json:"pontoReferencia"`
	CohortID      int    `json:"turma" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what may be modified on an existing Student; the linked
// Account's login and secret move in lockstep with the email/secret here.
type UpdateStudent struct {
	Name      string `json:"nome" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Secret    string `json:"senha"`
	BirthDate string `json:"dataNascimento"`
	CohortID  int    `json:"turma" validate:"required"`
}

func (us *UpdateStudent) Validate() error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	return core.Validate.Struct(us)
}

// Response projects what the transport returns on create: id, name, birth
// date, account and cohort. No demographic echo, never the secret hash.
type Response struct {
	ID        int             `json:"id"`
	Name      string          `json:"nome"`
	BirthDate string          `json:"dataNascimento"`
	Account   account.Account `json:"usuario"`
	Cohort    cohort.Cohort   `json:"turma"`
}
