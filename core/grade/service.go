package grade

import (
	"math/big"
	"strconv"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
	"github.com/fullstack-education/academico/core/student"
	"github.com/fullstack-education/academico/core/subject"
	"github.com/fullstack-education/academico/core/teacher"
)

var (
	permRead    = auth.Allow(account.RoleAdmin, account.RolePedagogico, account.RoleProfessor)
	permWrite   = auth.Allow(account.RoleAdmin, account.RolePedagogico, account.RoleProfessor)
	permDelete  = auth.Allow(account.RoleAdmin)
	permStudent = auth.Allow(account.RoleAdmin, account.RolePedagogico, account.RoleProfessor, account.RoleAluno)
)

type (
	Repository interface {
		CreateGrade(grd Grade) (Grade, error)
		QueryAllGrades() ([]Grade, error)
		QueryGradesByStudentID(studentID int) ([]Grade, error)
		QueryGradesByTeacherID(teacherID int) ([]Grade, error)
		GetGradeByID(id int) (Grade, error)
		UpdateGrade(grd Grade) (Grade, error)
		DeleteGradeByID(id int) error
	}

	Service struct {
		repo     Repository
		students student.Repository
		teachers teacher.Repository
		subjects subject.Repository
		claims   auth.ClaimReader
		logger   core.Logger
	}
)

func NewService(repo Repository, students student.Repository, teachers teacher.Repository, subjects subject.Repository, claims auth.ClaimReader, logger core.Logger) *Service {
	return &Service{repo: repo, students: students, teachers: teachers, subjects: subjects, claims: claims, logger: logger}
}

func (svc *Service) ListAll(token string) ([]Grade, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return nil, err
	}
	if err := permRead.Check(role); err != nil {
		svc.logger.Warn("grade list denied for role " + role)
		return nil, err
	}

	grades, err := svc.repo.QueryAllGrades()
	if err != nil {
		return nil, err
	}
	if len(grades) == 0 {
		return nil, core.NewNotFoundError("no grades found")
	}
	return grades, nil
}

func (svc *Service) GetByID(id int, token string) (Grade, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Grade{}, err
	}
	if err := permRead.Check(role); err != nil {
		return Grade{}, err
	}
	return svc.repo.GetGradeByID(id)
}

func (svc *Service) ListByStudent(studentID int, token string) ([]Grade, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return nil, err
	}
	if err := permStudent.Check(role); err != nil {
		return nil, err
	}

	if err := svc.checkStudentAccess(studentID, role, token); err != nil {
		return nil, err
	}
	grades, err := svc.repo.QueryGradesByStudentID(studentID)
	if err != nil {
		return nil, err
	}
	if len(grades) == 0 {
		return nil, core.NewNotFoundError("no grades found for student")
	}
	return grades, nil
}

// checkStudentAccess resolves the student and, for aluno callers, requires the
// token subject to be the student's own account.
func (svc *Service) checkStudentAccess(studentID int, role, token string) error {
	std, err := svc.students.GetStudentByID(studentID)
	if err != nil {
		return err
	}
	if role != account.RoleAluno {
		return nil
	}
	sub, err := svc.claims.ReadClaim(token, auth.SubjectClaim)
	if err != nil {
		return err
	}
	if sub != strconv.Itoa(std.Account.ID) {
		svc.logger.Warn("student " + std.Name + " grades denied for account " + sub)
		return core.NewAuthorizationError("user not authorized")
	}
	return nil
}

func (svc *Service) ListByTeacher(teacherID int, token string) ([]Grade, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return nil, err
	}
	if err := permRead.Check(role); err != nil {
		return nil, err
	}

	if _, err := svc.teachers.GetTeacherByID(teacherID); err != nil {
		return nil, err
	}
	grades, err := svc.repo.QueryGradesByTeacherID(teacherID)
	if err != nil {
		return nil, err
	}
	if len(grades) == 0 {
		return nil, core.NewNotFoundError("no grades found for teacher")
	}
	return grades, nil
}

// ComputeScore aggregates every grade belonging to the student into the
// arithmetic mean of the recorded values, as decimal text with two places.
func (svc *Service) ComputeScore(studentID int, token string) (string, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return "", err
	}
	if err := permStudent.Check(role); err != nil {
		svc.logger.Warn("score computation denied for role " + role)
		return "", err
	}

	if err := svc.checkStudentAccess(studentID, role, token); err != nil {
		return "", err
	}
	grades, err := svc.repo.QueryGradesByStudentID(studentID)
	if err != nil {
		return "", err
	}
	if len(grades) == 0 {
		return "", core.NewNotFoundError("no grades found for student")
	}

	sum := new(big.Rat)
	for _, grd := range grades {
		val, ok := new(big.Rat).SetString(grd.Value)
		if !ok {
			return "", core.NewValidationError(errBadValue,
				core.FieldError{Field: "valor", Error: errBadValue.Error()})
		}
		sum.Add(sum, val)
	}
	mean := sum.Quo(sum, new(big.Rat).SetInt64(int64(len(grades))))
	return mean.FloatString(2), nil
}

// Create records a grade, resolving the student, teacher and subject references.
func (svc *Service) Create(ng NewGrade, token string) (Grade, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Grade{}, err
	}
	if err := permWrite.Check(role); err != nil {
		svc.logger.Warn("grade create denied for role " + role)
		return Grade{}, err
	}

	if err := ng.Validate(); err != nil {
		return Grade{}, err
	}
	std, err := svc.students.GetStudentByID(ng.StudentID)
	if err != nil {
		return Grade{}, err
	}
	tch, err := svc.teachers.GetTeacherByID(ng.TeacherID)
	if err != nil {
		return Grade{}, err
	}
	sub, err := svc.subjects.GetSubjectByID(ng.SubjectID)
	if err != nil {
		return Grade{}, err
	}

	grd, err := svc.repo.CreateGrade(Grade{Student: std, Teacher: tch, Subject: sub, Value: ng.Value})
	if err != nil {
		return Grade{}, err
	}
	svc.logger.Info("grade recorded for student " + std.Name)
	return grd, nil
}

func (svc *Service) Update(id int, ug UpdateGrade, token string) (Grade, error) {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return Grade{}, err
	}
	if err := permWrite.Check(role); err != nil {
		return Grade{}, err
	}

	grd, err := svc.repo.GetGradeByID(id)
	if err != nil {
		return Grade{}, err
	}
	if err := ug.Validate(); err != nil {
		return Grade{}, err
	}

	grd.Value = ug.Value
	return svc.repo.UpdateGrade(grd)
}

func (svc *Service) Delete(id int, token string) error {
	role, err := svc.claims.ReadClaim(token, auth.ScopeClaim)
	if err != nil {
		return err
	}
	if err := permDelete.Check(role); err != nil {
		svc.logger.Warn("grade delete denied for role " + role)
		return err
	}

	if err := svc.repo.DeleteGradeByID(id); err != nil {
		return err
	}
	svc.logger.Info("grade deleted")
	return nil
}
