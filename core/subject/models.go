package subject

import (
	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/course"
)

// Subject belongs to at most one Course; many subjects per course.
type Subject struct {
	ID     int            `json:"id" db:"id"`
	Name   string         `json:"nome" db:"name"`
	Course *course.Course `json:"curso,omitempty"`
}

type NewSubject struct {
	Name     string `json:"nome" validate:"required"`
	CourseID *int   `json:"curso,omitempty"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	return core.Validate.Struct(ns)
}

type UpdateSubject struct {
	Name     string `json:"nome" validate:"required"`
	CourseID *int   `json:"curso,omitempty"`
}

func (us *UpdateSubject) Validate() error {
	us.Name = core.CleanString(us.Name)
	return core.Validate.Struct(us)
}
