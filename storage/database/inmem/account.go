package inmemdb

import (
	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
)

type accountRepository struct {
	db *DB
}

var _ account.Repository = (*accountRepository)(nil)

func NewAccountRepository(db *DB) account.Repository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) CheckLoginUniqueness(login string, excluded ...account.Account) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, acct := range repo.db.accounts {
		if acct.Login == login && !isExcludedID(acct.ID, accountIDs(excluded)) {
			return account.ErrLoginExists
		}
	}
	return nil
}

func (repo *accountRepository) CreateAccount(acct account.Account) (account.Account, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.accountPK++
	acct.ID = repo.db.accountPK
	repo.db.accounts[acct.ID] = &acct
	return acct, nil
}

func (repo *accountRepository) GetAccountByID(id int) (account.Account, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if acct, ok := repo.db.accounts[id]; ok {
		return *acct, nil
	}
	return account.Account{}, core.NewNotFoundError("account not found")
}

func (repo *accountRepository) GetAccountByLogin(login string) (account.Account, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, acct := range repo.db.accounts {
		if acct.Login == login {
			return *acct, nil
		}
	}
	return account.Account{}, core.NewNotFoundError("account not found")
}

func (repo *accountRepository) UpdateAccount(acct account.Account) (account.Account, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.accounts[acct.ID]; !ok {
		return account.Account{}, core.NewNotFoundError("account not found")
	}
	repo.db.accounts[acct.ID] = &acct
	return acct, nil
}

func (repo *accountRepository) DeleteAccountByID(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.accounts[id]; !ok {
		return core.NewNotFoundError("account not found")
	}
	delete(repo.db.accounts, id)
	return nil
}

func accountIDs(accts []account.Account) []int {
	ids := make([]int, 0, len(accts))
	for _, acct := range accts {
		ids = append(ids, acct.ID)
	}
	return ids
}

func isExcludedID(id int, excluded []int) bool {
	for _, exclID := range excluded {
		if id == exclID {
			return true
		}
	}
	return false
}
