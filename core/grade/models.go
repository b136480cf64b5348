package grade

import (
	"errors"
	"math/big"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/student"
	"github.com/fullstack-education/academico/core/subject"
	"github.com/fullstack-education/academico/core/teacher"
)

var errBadValue = errors.New("valor must be a decimal number")

// Grade ties a student, the teacher who graded, a subject and a value.
// Value is kept as exact decimal text to avoid float rounding.
type Grade struct {
	ID      int             `json:"id" db:"id"`
	Student student.Student `json:"aluno"`
	Teacher teacher.Teacher `json:"docente"`
	Subject subject.Subject `json:"materia"`
	Value   string          `json:"valor" db:"value"`
}

// NewGrade contains information needed to record a new Grade.
type NewGrade struct {
	StudentID int    `json:"aluno" validate:"required"`
	TeacherID int    `json:"docente" validate:"required"`
	SubjectID int    `json:"materia" validate:"required"`
	Value     string `json:"valor" validate:"required"`
}

func (ng *NewGrade) Validate() error {
	ng.Value = core.CleanDecimal(ng.Value)
	if err := core.Validate.Struct(ng); err != nil {
		return err
	}
	return validateValue(ng.Value)
}

// UpdateGrade replaces the recorded value only; the student/teacher/subject
// references are immutable.
type UpdateGrade struct {
	Value string `json:"valor" validate:"required"`
}

func (ug *UpdateGrade) Validate() error {
	ug.Value = core.CleanDecimal(ug.Value)
	if err := core.Validate.Struct(ug); err != nil {
		return err
	}
	return validateValue(ug.Value)
}

func validateValue(val string) error {
	if _, ok := new(big.Rat).SetString(val); !ok {
		return core.NewValidationError(errBadValue, core.FieldError{Field: "valor", Error: errBadValue.Error()})
	}
	return nil
}
