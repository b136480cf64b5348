package main

import (
	"github.com/fullstack-education/academico/core"
)

func (cli *commandLine) resetPassword(login, pwd string) error {
	acct, err := cli.accounts.GetAccountByLogin(core.CleanString(login, true /* lower */))
	if err != nil {
		return err
	}
	if err := acct.SetSecret(pwd); err != nil {
		return err
	}
	_, err = cli.accounts.UpdateAccount(acct)
	return err
}
