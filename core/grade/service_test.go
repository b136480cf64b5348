package grade_test

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
	"github.com/fullstack-education/academico/core/cohort"
	"github.com/fullstack-education/academico/core/course"
	"github.com/fullstack-education/academico/core/grade"
	"github.com/fullstack-education/academico/core/student"
	"github.com/fullstack-education/academico/core/subject"
	"github.com/fullstack-education/academico/core/teacher"
	inmemdb "github.com/fullstack-education/academico/storage/database/inmem"
)

type fixture struct {
	svc    *grade.Service
	tokens *auth.TokenService

	std student.Student
	tch teacher.Teacher
	sub subject.Subject
}

func setup(t *testing.T) fixture {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	logger := core.NewStdLogger(log.New(io.Discard, "", 0))
	tokens := auth.NewTokenService(core.Conf)

	accounts := inmemdb.NewAccountRepository(db)
	courses := inmemdb.NewCourseRepository(db)
	subjects := inmemdb.NewSubjectRepository(db)
	teachers := inmemdb.NewTeacherRepository(db)
	cohorts := inmemdb.NewCohortRepository(db)
	students := inmemdb.NewStudentRepository(db)

	crs, err := courses.CreateCourse(course.Course{Name: "Informatica"})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	sub, err := subjects.CreateSubject(subject.Subject{Name: "Algoritmos", Course: &crs})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	tchAcct, err := accounts.CreateAccount(account.Account{Login: "prof@x.com", Role: account.RoleProfessor})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	tch, err := teachers.CreateTeacher(teacher.Teacher{Name: "Prof", Email: "prof@x.com", Account: tchAcct})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	coh, err := cohorts.CreateCohort(cohort.Cohort{Name: "Turma A", Teacher: tch, Course: crs})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	stdAcct, err := accounts.CreateAccount(account.Account{Login: "aluno@x.com", Role: account.RoleAluno})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	std, err := students.CreateStudent(student.Student{Name: "Pedro", Email: "aluno@x.com", Account: stdAcct, Cohort: coh})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	svc := grade.NewService(inmemdb.NewGradeRepository(db), students, teachers, subjects, tokens, logger)
	return fixture{svc: svc, tokens: tokens, std: std, tch: tch, sub: sub}
}

func tokenFor(t *testing.T, tokens *auth.TokenService, role string) string {
	token, err := tokens.GenerateToken(1, role)
	if err != nil {
		t.Fatalf("tokenFor() failed: %v", err)
	}
	return token
}

// ownToken issues an aluno token bound to the fixture student's account.
func ownToken(t *testing.T, fix fixture) string {
	token, err := fix.tokens.GenerateToken(fix.std.Account.ID, account.RoleAluno)
	if err != nil {
		t.Fatalf("ownToken() failed: %v", err)
	}
	return token
}

func record(t *testing.T, fix fixture, value string) grade.Grade {
	grd, err := fix.svc.Create(grade.NewGrade{
		StudentID: fix.std.ID,
		TeacherID: fix.tch.ID,
		SubjectID: fix.sub.ID,
		Value:     value,
	}, tokenFor(t, fix.tokens, account.RoleProfessor))
	if err != nil {
		t.Fatalf("record() failed: %v", err)
	}
	return grd
}

func TestService_Create(t *testing.T) {
	fix := setup(t)

	grd := record(t, fix, "8.5")
	assert.NotZero(t, grd.ID)
	assert.Equal(t, "8.5", grd.Value)
	assert.Equal(t, fix.std.ID, grd.Student.ID)
	assert.Equal(t, fix.tch.ID, grd.Teacher.ID)
	assert.Equal(t, fix.sub.ID, grd.Subject.ID)
}

func TestService_Create_decimalComma(t *testing.T) {
	fix := setup(t)

	grd := record(t, fix, "7,5")
	assert.Equal(t, "7.5", grd.Value)
}

func TestService_Create_badValue(t *testing.T) {
	fix := setup(t)

	_, err := fix.svc.Create(grade.NewGrade{
		StudentID: fix.std.ID,
		TeacherID: fix.tch.ID,
		SubjectID: fix.sub.ID,
		Value:     "dez",
	}, tokenFor(t, fix.tokens, account.RoleAdmin))
	assert.True(t, core.IsValidationError(err))
}

func TestService_Create_missingRefs(t *testing.T) {
	fix := setup(t)
	adminToken := tokenFor(t, fix.tokens, account.RoleAdmin)

	_, err := fix.svc.Create(grade.NewGrade{StudentID: 99, TeacherID: fix.tch.ID, SubjectID: fix.sub.ID, Value: "7"}, adminToken)
	assert.True(t, core.IsNotFound(err))

	_, err = fix.svc.Create(grade.NewGrade{StudentID: fix.std.ID, TeacherID: 99, SubjectID: fix.sub.ID, Value: "7"}, adminToken)
	assert.True(t, core.IsNotFound(err))

	_, err = fix.svc.Create(grade.NewGrade{StudentID: fix.std.ID, TeacherID: fix.tch.ID, SubjectID: 99, Value: "7"}, adminToken)
	assert.True(t, core.IsNotFound(err))
}

func TestService_ComputeScore(t *testing.T) {
	fix := setup(t)
	record(t, fix, "10")
	record(t, fix, "8")
	record(t, fix, "9")

	// students may read their own score
	score, err := fix.svc.ComputeScore(fix.std.ID, ownToken(t, fix))
	assert.NoError(t, err)
	assert.Equal(t, "9.00", score)

	// but nobody else's
	otherToken, err := fix.tokens.GenerateToken(fix.std.Account.ID+1, account.RoleAluno)
	assert.NoError(t, err)
	_, err = fix.svc.ComputeScore(fix.std.ID, otherToken)
	assert.True(t, core.IsAuthorizationError(err))
}

func TestService_ComputeScore_exactDecimals(t *testing.T) {
	fix := setup(t)
	record(t, fix, "7.5")
	record(t, fix, "8")

	score, err := fix.svc.ComputeScore(fix.std.ID, tokenFor(t, fix.tokens, account.RoleAdmin))
	assert.NoError(t, err)
	assert.Equal(t, "7.75", score)
}

func TestService_ComputeScore_noGrades(t *testing.T) {
	fix := setup(t)

	_, err := fix.svc.ComputeScore(fix.std.ID, tokenFor(t, fix.tokens, account.RoleAdmin))
	assert.True(t, core.IsNotFound(err))
}

func TestService_ListByStudent(t *testing.T) {
	fix := setup(t)
	record(t, fix, "6")

	grades, err := fix.svc.ListByStudent(fix.std.ID, ownToken(t, fix))
	assert.NoError(t, err)
	assert.Len(t, grades, 1)

	_, err = fix.svc.ListByStudent(99, tokenFor(t, fix.tokens, account.RoleAdmin))
	assert.True(t, core.IsNotFound(err))
}

func TestService_ListByStudent_alunoOwnOnly(t *testing.T) {
	fix := setup(t)
	record(t, fix, "6")

	otherToken, err := fix.tokens.GenerateToken(fix.std.Account.ID+1, account.RoleAluno)
	assert.NoError(t, err)
	_, err = fix.svc.ListByStudent(fix.std.ID, otherToken)
	assert.True(t, core.IsAuthorizationError(err))

	// staff roles are not ownership-scoped
	grades, err := fix.svc.ListByStudent(fix.std.ID, tokenFor(t, fix.tokens, account.RolePedagogico))
	assert.NoError(t, err)
	assert.Len(t, grades, 1)
}

func TestService_ListByTeacher(t *testing.T) {
	fix := setup(t)
	record(t, fix, "6")

	grades, err := fix.svc.ListByTeacher(fix.tch.ID, tokenFor(t, fix.tokens, account.RoleProfessor))
	assert.NoError(t, err)
	assert.Len(t, grades, 1)

	// teacher listing is not open to students
	_, err = fix.svc.ListByTeacher(fix.tch.ID, tokenFor(t, fix.tokens, account.RoleAluno))
	assert.True(t, core.IsAuthorizationError(err))
}

func TestService_ListAll_emptyIsNotFound(t *testing.T) {
	fix := setup(t)

	_, err := fix.svc.ListAll(tokenFor(t, fix.tokens, account.RoleAdmin))
	assert.True(t, core.IsNotFound(err))
}

func TestService_UpdateAndDelete(t *testing.T) {
	fix := setup(t)
	grd := record(t, fix, "5")
	adminToken := tokenFor(t, fix.tokens, account.RoleAdmin)

	updated, err := fix.svc.Update(grd.ID, grade.UpdateGrade{Value: "6.5"}, adminToken)
	assert.NoError(t, err)
	assert.Equal(t, "6.5", updated.Value)

	// delete is admin-only
	err = fix.svc.Delete(grd.ID, tokenFor(t, fix.tokens, account.RoleProfessor))
	assert.True(t, core.IsAuthorizationError(err))

	assert.NoError(t, fix.svc.Delete(grd.ID, adminToken))
	_, err = fix.svc.GetByID(grd.ID, adminToken)
	assert.True(t, core.IsNotFound(err))
}
