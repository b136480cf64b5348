package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
)

type accountRepository struct {
	db *sqlx.DB
}

var _ account.Repository = (*accountRepository)(nil)

func NewAccountRepository(db *sqlx.DB) account.Repository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) CheckLoginUniqueness(login string, excluded ...account.Account) error {
	ids := make([]int, 0, len(excluded))
	for _, acct := range excluded {
		ids = append(ids, acct.ID)
	}
	return checkUniqueness(repo.db,
		`SELECT COUNT(*) FROM account WHERE login = $1 AND id != ALL($2)`,
		login, ids, account.ErrLoginExists)
}

func (repo *accountRepository) CreateAccount(acct account.Account) (account.Account, error) {
	err := repo.db.Get(&acct.ID,
		`INSERT INTO account (login, secret_hash, role) VALUES ($1, $2, $3) RETURNING id`,
		acct.Login, acct.SecretHash, acct.Role)
	if err != nil {
		return account.Account{}, errors.Wrap(err, "creating account")
	}
	return acct, nil
}

func (repo *accountRepository) GetAccountByID(id int) (account.Account, error) {
	return getAccountByID(repo.db, id)
}

func (repo *accountRepository) GetAccountByLogin(login string) (account.Account, error) {
	var acct account.Account
	err := repo.db.Get(&acct, `SELECT id, login, secret_hash, role FROM account WHERE login = $1`, login)
	if err == sql.ErrNoRows {
		return account.Account{}, core.NewNotFoundError("account not found")
	}
	if err != nil {
		return account.Account{}, errors.Wrap(err, "getting account")
	}
	return acct, nil
}

func (repo *accountRepository) UpdateAccount(acct account.Account) (account.Account, error) {
	res, err := repo.db.Exec(
		`UPDATE account SET login = $1, secret_hash = $2, role = $3 WHERE id = $4`,
		acct.Login, acct.SecretHash, acct.Role, acct.ID)
	if err != nil {
		return account.Account{}, errors.Wrap(err, "updating account")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return account.Account{}, core.NewNotFoundError("account not found")
	}
	return acct, nil
}

func (repo *accountRepository) DeleteAccountByID(id int) error {
	res, err := repo.db.Exec(`DELETE FROM account WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting account")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NewNotFoundError("account not found")
	}
	return nil
}
