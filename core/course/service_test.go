package course_test

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
	"github.com/fullstack-education/academico/core/course"
	inmemdb "github.com/fullstack-education/academico/storage/database/inmem"
)

func setup(t *testing.T) (*course.Service, *auth.TokenService) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	logger := core.NewStdLogger(log.New(io.Discard, "", 0))
	tokens := auth.NewTokenService(core.Conf)
	return course.NewService(inmemdb.NewCourseRepository(db), tokens, logger), tokens
}

func tokenFor(t *testing.T, tokens *auth.TokenService, role string) string {
	token, err := tokens.GenerateToken(1, role)
	if err != nil {
		t.Fatalf("tokenFor() failed: %v", err)
	}
	return token
}

func TestService_ListAll_emptyIsNotFound(t *testing.T) {
	svc, tokens := setup(t)

	_, err := svc.ListAll(tokenFor(t, tokens, account.RoleAdmin))
	assert.True(t, core.IsNotFound(err))
}

func TestService_CreateAndList(t *testing.T) {
	svc, tokens := setup(t)
	pedToken := tokenFor(t, tokens, account.RolePedagogico)

	crs, err := svc.Create(course.NewCourse{Name: " Desenvolvimento Web "}, pedToken)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	assert.NotZero(t, crs.ID)
	assert.Equal(t, "Desenvolvimento Web", crs.Name)

	courses, err := svc.ListAll(pedToken)
	assert.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestService_Create_duplicateName(t *testing.T) {
	svc, tokens := setup(t)
	adminToken := tokenFor(t, tokens, account.RoleAdmin)

	if _, err := svc.Create(course.NewCourse{Name: "Redes"}, adminToken); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	_, err := svc.Create(course.NewCourse{Name: "Redes"}, adminToken)
	assert.True(t, core.IsValidationError(err))
}

func TestService_Create_blankName(t *testing.T) {
	svc, tokens := setup(t)

	_, err := svc.Create(course.NewCourse{Name: "   "}, tokenFor(t, tokens, account.RoleAdmin))
	assert.Error(t, err)
}

func TestService_deniedRoles(t *testing.T) {
	svc, tokens := setup(t)

	for _, role := range []string{account.RoleProfessor, account.RoleAluno, account.RoleRecruiter} {
		token := tokenFor(t, tokens, role)

		_, err := svc.ListAll(token)
		assert.True(t, core.IsAuthorizationError(err), "list should be denied for %q", role)

		_, err = svc.Create(course.NewCourse{Name: "Banco de Dados"}, token)
		assert.True(t, core.IsAuthorizationError(err), "create should be denied for %q", role)
	}

	// delete is admin-only
	err := svc.Delete(1, tokenFor(t, tokens, account.RolePedagogico))
	assert.True(t, core.IsAuthorizationError(err))
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc, tokens := setup(t)
	adminToken := tokenFor(t, tokens, account.RoleAdmin)

	crs, err := svc.Create(course.NewCourse{Name: "Logica"}, adminToken)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	updated, err := svc.Update(crs.ID, course.UpdateCourse{Name: "Logica de Programacao"}, adminToken)
	assert.NoError(t, err)
	assert.Equal(t, "Logica de Programacao", updated.Name)

	assert.NoError(t, svc.Delete(crs.ID, adminToken))

	_, err = svc.GetByID(crs.ID, adminToken)
	assert.True(t, core.IsNotFound(err))
}
