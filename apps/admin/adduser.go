package main

import (
	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
)

// addUser creates or updates an account, bypassing the token gate so the
// first admin can be created on an empty store.
func (cli *commandLine) addUser(login, role, pwd string) error {
	role, err := account.ResolveRole(role)
	if err != nil {
		return err
	}
	login = core.CleanString(login, true /* lower */)

	acct, err := cli.accounts.GetAccountByLogin(login)
	if err != nil {
		if !core.IsNotFound(err) {
			return err
		}
		acct = account.Account{Login: login}
	}
	acct.Role = role
	if err := acct.SetSecret(pwd); err != nil {
		return err
	}

	if acct.ID == 0 {
		_, err = cli.accounts.CreateAccount(acct)
	} else {
		_, err = cli.accounts.UpdateAccount(acct)
	}
	return err
}
