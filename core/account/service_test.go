package account_test

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
	emailsvc "github.com/fullstack-education/academico/services/email"
	inmemdb "github.com/fullstack-education/academico/storage/database/inmem"
)

func setup(t *testing.T) (*account.Service, *auth.TokenService) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	logger := core.NewStdLogger(log.New(io.Discard, "", 0))
	tokens := auth.NewTokenService(core.Conf)
	svc := account.NewService(inmemdb.NewAccountRepository(db), tokens, emailsvc.NewConsoleServiceMock(), logger)
	return svc, tokens
}

func tokenFor(t *testing.T, tokens *auth.TokenService, role string) string {
	token, err := tokens.GenerateToken(1, role)
	if err != nil {
		t.Fatalf("tokenFor() failed: %v", err)
	}
	return token
}

func TestService_Create(t *testing.T) {
	svc, tokens := setup(t)
	emailsvc.ClearSentMessages()
	adminToken := tokenFor(t, tokens, account.RoleAdmin)

	acct, err := svc.Create(account.NewAccount{
		Login:  "joao@escola.com",
		Secret: "s3cret!",
		Role:   "professor",
	}, adminToken)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	assert.NotZero(t, acct.ID)
	assert.Equal(t, "joao@escola.com", acct.Login)
	assert.Equal(t, account.RoleProfessor, acct.Role)
	assert.NotEmpty(t, acct.SecretHash)
	assert.NoError(t, acct.CheckSecret("s3cret!"))

	// welcome email goes to the new login
	if assert.Len(t, emailsvc.SentMessages, 1) {
		assert.Equal(t, "joao@escola.com", emailsvc.SentMessages[0].To[0].Address)
	}
}

func TestService_Create_roleAlias(t *testing.T) {
	svc, tokens := setup(t)
	adminToken := tokenFor(t, tokens, account.RoleAdmin)

	acct, err := svc.Create(account.NewAccount{Login: "a@b.com", Secret: "pwd", Role: "Teacher"}, adminToken)
	assert.NoError(t, err)
	assert.Equal(t, account.RoleProfessor, acct.Role)

	acct, err = svc.Create(account.NewAccount{Login: "c@d.com", Secret: "pwd", Role: "student"}, adminToken)
	assert.NoError(t, err)
	assert.Equal(t, account.RoleAluno, acct.Role)
}

func TestService_Create_deniedRoles(t *testing.T) {
	svc, tokens := setup(t)

	for _, role := range []string{account.RoleProfessor, account.RoleAluno} {
		_, err := svc.Create(account.NewAccount{
			Login:  "x@y.com",
			Secret: "pwd",
			Role:   "aluno",
		}, tokenFor(t, tokens, role))
		assert.True(t, core.IsAuthorizationError(err), "role %q should be denied", role)
	}

	// garbage token fails authentication, not authorization
	_, err := svc.Create(account.NewAccount{Login: "x@y.com", Secret: "pwd", Role: "aluno"}, "not-a-token")
	assert.True(t, core.IsAuthenticationError(err))
}

func TestService_Create_unknownRole(t *testing.T) {
	svc, tokens := setup(t)

	_, err := svc.Create(account.NewAccount{
		Login:  "x@y.com",
		Secret: "pwd",
		Role:   "diretor",
	}, tokenFor(t, tokens, account.RoleAdmin))
	assert.True(t, core.IsNotFound(err))
}

func TestService_Create_duplicateLogin(t *testing.T) {
	svc, tokens := setup(t)
	adminToken := tokenFor(t, tokens, account.RoleAdmin)

	if _, err := svc.Create(account.NewAccount{Login: "dup@x.com", Secret: "pwd", Role: "aluno"}, adminToken); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	_, err := svc.Create(account.NewAccount{Login: "dup@x.com", Secret: "pwd", Role: "aluno"}, adminToken)
	assert.True(t, core.IsValidationError(err))
}

func TestService_Update(t *testing.T) {
	svc, tokens := setup(t)
	adminToken := tokenFor(t, tokens, account.RoleAdmin)

	acct, err := svc.Create(account.NewAccount{Login: "old@x.com", Secret: "pwd", Role: "aluno"}, adminToken)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	updated, err := svc.Update(acct.ID, account.UpdateAccount{Login: "new@x.com"})
	assert.NoError(t, err)
	assert.Equal(t, "new@x.com", updated.Login)
	// empty secret keeps the stored hash
	assert.NoError(t, updated.CheckSecret("pwd"))

	updated, err = svc.Update(acct.ID, account.UpdateAccount{Secret: "changed"})
	assert.NoError(t, err)
	assert.NoError(t, updated.CheckSecret("changed"))
}

func TestService_Authenticate(t *testing.T) {
	svc, tokens := setup(t)
	adminToken := tokenFor(t, tokens, account.RoleAdmin)

	if _, err := svc.Create(account.NewAccount{Login: "maria@x.com", Secret: "pwd", Role: "pedagogico"}, adminToken); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	acct, err := svc.Authenticate("maria@x.com", "pwd")
	assert.NoError(t, err)
	assert.Equal(t, account.RolePedagogico, acct.Role)

	_, err = svc.Authenticate("maria@x.com", "wrong")
	assert.True(t, core.IsAuthenticationError(err))

	_, err = svc.Authenticate("nobody@x.com", "pwd")
	assert.True(t, core.IsAuthenticationError(err))
}

func TestResolveRole(t *testing.T) {
	role, err := account.ResolveRole("  Admin ")
	assert.NoError(t, err)
	assert.Equal(t, account.RoleAdmin, role)

	_, err = account.ResolveRole("janitor")
	assert.True(t, core.IsNotFound(err))
}
