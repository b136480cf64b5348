package inmemdb

import (
	"sync"

	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/cohort"
	"github.com/fullstack-education/academico/core/course"
	"github.com/fullstack-education/academico/core/grade"
	"github.com/fullstack-education/academico/core/student"
	"github.com/fullstack-education/academico/core/subject"
	"github.com/fullstack-education/academico/core/teacher"
)

// DB is a mutex-guarded in-memory store, used in dev mode and as the test
// backing store.
type DB struct {
	mutex sync.RWMutex

	accountPK int
	accounts  map[int]*account.Account

	coursePK int
	courses  map[int]*course.Course

	subjectPK int
	subjects  map[int]*subject.Subject

	cohortPK int
	cohorts  map[int]*cohort.Cohort

	studentPK int
	students  map[int]*student.Student

	teacherPK int
	teachers  map[int]*teacher.Teacher

	gradePK int
	grades  map[int]*grade.Grade
}

func Open() (*DB, error) {
	return &DB{
		accounts: make(map[int]*account.Account),
		courses:  make(map[int]*course.Course),
		subjects: make(map[int]*subject.Subject),
		cohorts:  make(map[int]*cohort.Cohort),
		students: make(map[int]*student.Student),
		teachers: make(map[int]*teacher.Teacher),
		grades:   make(map[int]*grade.Grade),
	}, nil
}
