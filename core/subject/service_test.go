package subject_test

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
	"github.com/fullstack-education/academico/core/course"
	"github.com/fullstack-education/academico/core/subject"
	inmemdb "github.com/fullstack-education/academico/storage/database/inmem"
)

func setup(t *testing.T) (*subject.Service, course.Repository, *auth.TokenService) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	logger := core.NewStdLogger(log.New(io.Discard, "", 0))
	tokens := auth.NewTokenService(core.Conf)
	courseRepo := inmemdb.NewCourseRepository(db)
	svc := subject.NewService(inmemdb.NewSubjectRepository(db), courseRepo, tokens, logger)
	return svc, courseRepo, tokens
}

func tokenFor(t *testing.T, tokens *auth.TokenService, role string) string {
	token, err := tokens.GenerateToken(1, role)
	if err != nil {
		t.Fatalf("tokenFor() failed: %v", err)
	}
	return token
}

func createCourse(t *testing.T, repo course.Repository, name string) course.Course {
	crs, err := repo.CreateCourse(course.Course{Name: name})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return crs
}

func TestService_Create_withCourse(t *testing.T) {
	svc, courseRepo, tokens := setup(t)
	crs := createCourse(t, courseRepo, "Informatica")
	adminToken := tokenFor(t, tokens, account.RoleAdmin)

	sub, err := svc.Create(subject.NewSubject{Name: "Algoritmos", CourseID: &crs.ID}, adminToken)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	assert.NotZero(t, sub.ID)
	if assert.NotNil(t, sub.Course) {
		assert.Equal(t, crs.ID, sub.Course.ID)
	}
}

func TestService_Create_withoutCourse(t *testing.T) {
	svc, _, tokens := setup(t)

	sub, err := svc.Create(subject.NewSubject{Name: "Etica"}, tokenFor(t, tokens, account.RolePedagogico))
	assert.NoError(t, err)
	assert.Nil(t, sub.Course)
}

func TestService_Create_missingCourse(t *testing.T) {
	svc, _, tokens := setup(t)
	missing := 99

	_, err := svc.Create(subject.NewSubject{Name: "Algoritmos", CourseID: &missing},
		tokenFor(t, tokens, account.RoleAdmin))
	assert.True(t, core.IsNotFound(err))
}

func TestService_ListByCourse(t *testing.T) {
	svc, courseRepo, tokens := setup(t)
	crs := createCourse(t, courseRepo, "Informatica")
	other := createCourse(t, courseRepo, "Administracao")
	adminToken := tokenFor(t, tokens, account.RoleAdmin)

	if _, err := svc.Create(subject.NewSubject{Name: "Algoritmos", CourseID: &crs.ID}, adminToken); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	subjects, err := svc.ListByCourse(crs.ID, adminToken)
	assert.NoError(t, err)
	assert.Len(t, subjects, 1)

	// existing course with no subjects is NotFound, per the empty-collection rule
	_, err = svc.ListByCourse(other.ID, adminToken)
	assert.True(t, core.IsNotFound(err))

	// missing course is NotFound as well
	_, err = svc.ListByCourse(12345, adminToken)
	assert.True(t, core.IsNotFound(err))
}

func TestService_ListAll_emptyIsNotFound(t *testing.T) {
	svc, _, tokens := setup(t)

	_, err := svc.ListAll(tokenFor(t, tokens, account.RoleAdmin))
	assert.True(t, core.IsNotFound(err))
}

func TestService_deniedRoles(t *testing.T) {
	svc, _, tokens := setup(t)

	_, err := svc.ListAll(tokenFor(t, tokens, account.RoleAluno))
	assert.True(t, core.IsAuthorizationError(err))

	err = svc.Delete(1, tokenFor(t, tokens, account.RolePedagogico))
	assert.True(t, core.IsAuthorizationError(err))
}
