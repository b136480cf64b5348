package course

import "github.com/fullstack-education/academico/core"

type Course struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"nome" db:"name"`
}

// NewCourse contains information needed to register a new Course.
type NewCourse struct {
	Name string `json:"nome" validate:"required"`
}

func (nc *NewCourse) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

// UpdateCourse defines what may be modified on an existing Course.
type UpdateCourse struct {
	Name string `json:"nome" validate:"required"`
}

func (uc *UpdateCourse) Validate() error {
	uc.Name = core.CleanString(uc.Name)
	return core.Validate.Struct(uc)
}
