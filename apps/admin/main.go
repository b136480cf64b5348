package main

import (
	"log"
	"os"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/storage/database"
	sqlxrepos "github.com/fullstack-education/academico/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lshortfile)

	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(database.Bootstrap(db))

	cli := commandLine{accounts: sqlxrepos.NewAccountRepository(db)}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
