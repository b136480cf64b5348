package main

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

func setup(t *testing.T) *commandLine {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return &commandLine{accounts: inmemdb.NewAccountRepository(db)}
}

func mockPassword(pwd string) {
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(pwd), nil }
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
}

func Test_commandLine_run(t *testing.T) {
	tests := []cliTest{
		{name: "no subcommand", args: []string{}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"lol"}, wantErr: errHelp},
		{name: "adduser: no login", args: []string{"adduser"}, wantErr: errHelp},
		{name: "adduser: empty password", args: []string{"adduser", "-login", "root"}, wantErr: errHelp},
		{name: "adduser: unknown role", args: []string{"adduser", "-login", "root", "-role", "diretor"}, pwd: "s3cret", wantErrStr: "role not found: diretor"},
		{name: "adduser", args: []string{"adduser", "-login", "root"}, pwd: "s3cret"},
		{name: "resetpassword: no login", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "resetpassword: unknown login", args: []string{"resetpassword", "-login", "ghost"}, pwd: "s3cret", wantErrStr: "account not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := setup(t)
			mockPassword(tt.pwd)

			err := cli.run(append([]string{"admin"}, tt.args...))
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantErrStr != "":
				assert.EqualError(t, err, tt.wantErrStr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	assert.NoError(t, cli.addUser("Root@X.com", "admin", "s3cret"))

	acct, err := cli.accounts.GetAccountByLogin("root@x.com")
	assert.NoError(t, err)
	assert.Equal(t, account.RoleAdmin, acct.Role)
	assert.NoError(t, acct.CheckSecret("s3cret"))

	// rerun updates in place
	assert.NoError(t, cli.addUser("root@x.com", "teacher", "n3w"))
	updated, err := cli.accounts.GetAccountByLogin("root@x.com")
	assert.NoError(t, err)
	assert.Equal(t, acct.ID, updated.ID)
	assert.Equal(t, account.RoleProfessor, updated.Role)
	assert.NoError(t, updated.CheckSecret("n3w"))
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)
	assert.NoError(t, cli.addUser("root@x.com", "admin", "old"))

	assert.NoError(t, cli.resetPassword("root@x.com", "new"))
	acct, err := cli.accounts.GetAccountByLogin("root@x.com")
	assert.NoError(t, err)
	assert.NoError(t, acct.CheckSecret("new"))
	assert.Error(t, acct.CheckSecret("old"))
}

// The first admin created on an empty store can authenticate and register
// further accounts through the service gate.
func Test_commandLine_bootstrapsFirstAdmin(t *testing.T) {
	cli := setup(t)
	logger := core.NewStdLogger(log.New(io.Discard, "", 0))
	tokens := auth.NewTokenService(core.Conf)
	accounts := account.NewService(cli.accounts, tokens, emailsvc.NewConsoleServiceMock(), logger)

	// empty store: nobody can log in
	_, err := accounts.Authenticate("root@x.com", "s3cret")
	assert.True(t, core.IsAuthenticationError(err))

	assert.NoError(t, cli.addUser("root@x.com", "admin", "s3cret"))

	acct, err := accounts.Authenticate("root@x.com", "s3cret")
	assert.NoError(t, err)
	token, err := tokens.GenerateToken(acct.ID, acct.Role)
	assert.NoError(t, err)

	created, err := accounts.Create(account.NewAccount{
		Login:  "staff@x.com",
		Secret: "pwd",
		Role:   account.RolePedagogico,
	}, token)
	assert.NoError(t, err)
	assert.Equal(t, account.RolePedagogico, created.Role)
}
