package database

import (
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/fullstack-education/academico/core"
)

func Open(conf *core.Config) (*sqlx.DB, error) {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.Database.Engine,
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     conf.Database.Name,
		RawQuery: q.Encode(),
	}

	db, err := sqlx.Open(conf.Database.Engine, u.String())
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

var schema = `
CREATE TABLE IF NOT EXISTS account (
	id          SERIAL PRIMARY KEY,
	login       TEXT NOT NULL UNIQUE,
	secret_hash BYTEA NOT NULL,
	role        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS course (
	id   SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS subject (
	id        SERIAL PRIMARY KEY,
	name      TEXT NOT NULL,
	course_id INT REFERENCES course (id)
);

CREATE TABLE IF NOT EXISTS teacher (
	id             SERIAL PRIMARY KEY,
	name           TEXT NOT NULL UNIQUE,
	birth_date     TEXT NOT NULL DEFAULT '',
	gender         TEXT NOT NULL DEFAULT '',
	cpf            TEXT NOT NULL DEFAULT '',
	rg             TEXT NOT NULL DEFAULT '',
	marital_status TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL UNIQUE,
	birthplace     TEXT NOT NULL DEFAULT '',
	cep            TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	state          TEXT NOT NULL DEFAULT '',
	street         TEXT NOT NULL DEFAULT '',
	number         TEXT NOT NULL DEFAULT '',
	complement     TEXT NOT NULL DEFAULT '',
	district       TEXT NOT NULL DEFAULT '',
	landmark       TEXT NOT NULL DEFAULT '',
	subjects       TEXT[] NOT NULL DEFAULT '{}',
	joined_at      TEXT NOT NULL DEFAULT '',
	account_id     INT NOT NULL REFERENCES account (id)
);

CREATE TABLE IF NOT EXISTS cohort (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	teacher_id INT NOT NULL REFERENCES teacher (id),
	course_id  INT NOT NULL REFERENCES course (id),
	start_date TEXT NOT NULL DEFAULT '',
	end_date   TEXT NOT NULL DEFAULT '',
	schedule   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS student (
	id             SERIAL PRIMARY KEY,
	name           TEXT NOT NULL UNIQUE,
	email          TEXT NOT NULL,
	birth_date     TEXT NOT NULL DEFAULT '',
	gender         TEXT NOT NULL DEFAULT '',
	cpf            TEXT NOT NULL DEFAULT '',
	rg             TEXT NOT NULL DEFAULT '',
	marital_status TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	birthplace     TEXT NOT NULL DEFAULT '',
	cep            TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	state          TEXT NOT NULL DEFAULT '',
	street         TEXT NOT NULL DEFAULT '',
	number         TEXT NOT NULL DEFAULT '',
	complement     TEXT NOT NULL DEFAULT '',
	district       TEXT NOT NULL DEFAULT '',
	landmark       TEXT NOT NULL DEFAULT '',
	account_id     INT NOT NULL REFERENCES account (id),
	cohort_id      INT NOT NULL REFERENCES cohort (id)
);

CREATE TABLE IF NOT EXISTS grade (
	id         SERIAL PRIMARY KEY,
	student_id INT NOT NULL REFERENCES student (id) ON DELETE CASCADE,
	teacher_id INT NOT NULL REFERENCES teacher (id),
	subject_id INT NOT NULL REFERENCES subject (id),
	value      TEXT NOT NULL
);
`

// Bootstrap creates the schema when it does not exist yet.
func Bootstrap(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "bootstrapping schema")
	}
	return nil
}
