package cohort

import (
	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/course"
	"github.com/fullstack-education/academico/core/teacher"
)

// Cohort binds a course and a professor-role teacher to a schedule window.
// The enrolled student list is derived by the Student manager, not owned here.
type Cohort struct {
	ID        int             `json:"id" db:"id"`
	Name      string          `json:"nome" db:"name"`
	Teacher   teacher.Teacher `json:"docente"`
	Course    course.Course   `json:"curso"`
	StartDate string          `json:"dataInicio" db:"start_date"`
	EndDate   string          `json:"dataTermino" db:"end_date"`
	Schedule  string          `json:"horario" db:"schedule"`
}

// NewCohort contains information needed to open a new Cohort.
type NewCohort struct {
	Name      string `json:"nome" validate:"required"`
	StartDate string `json:"dataInicio"`
	EndDate   string `json:"dataTermino"`
	Schedule  string `json:"horario"`
	TeacherID int    `json:"docente" validate:"required"`
	CourseID  int    `json:"curso" validate:"required"`
}

func (nc *NewCohort) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

// UpdateCohort replaces all mutable fields; course and teacher are re-resolved
// and re-validated exactly as on create.
type UpdateCohort struct {
	Name      string `json:"nome" validate:"required"`
	StartDate string `json:"dataInicio"`
	EndDate   string `json:"dataTermino"`
	Schedule  string `json:"horario"`
	TeacherID int    `json:"docente" validate:"required"`
	CourseID  int    `json:"curso" validate:"required"`
}

func (uc *UpdateCohort) Validate() error {
	uc.Name = core.CleanString(uc.Name)
	return core.Validate.Struct(uc)
}
