package dashboard

import (
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
	"github.com/fullstack-education/academico/core/cohort"
	"github.com/fullstack-education/academico/core/student"
	"github.com/fullstack-education/academico/core/teacher"
)

var permRead = auth.Allow(account.RoleAdmin)

// Summary holds the admin dashboard counts.
type Summary struct {
	Students int `json:"quantidadeAlunos"`
	Teachers int `json:"quantidadeDocentes"`
	Cohorts  int `json:"quantidadeTurmas"`
}

type Service struct {
	students student.Repository
	teachers teacher.Repository
	cohorts  cohort.Repository
	claims   auth.ClaimReader
}

func NewService(students student.Repository, teachers teacher.Repository, cohorts cohort.Repository, claims auth.ClaimReader) *Service {
	return &Service{students: students, teachers: teachers, cohorts: cohorts, claims: claims}
}

func (svc *Service) GetSummary(token string) (Summary, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Summary{}, err
	}
	if err := permRead.Check(role); err != nil {
		return Summary{}, err
	}

	students, err := svc.students.CountStudents()
	if err != nil {
		return Summary{}, err
	}
	teachers, err := svc.teachers.CountTeachers()
	if err != nil {
		return Summary{}, err
	}
	cohorts, err := svc.cohorts.CountCohorts()
	if err != nil {
		return Summary{}, err
	}
	return Summary{Students: students, Teachers: teachers, Cohorts: cohorts}, nil
}
