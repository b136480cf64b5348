package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/fullstack-education/academico/api/echo"
	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
	"github.com/fullstack-education/academico/core/cohort"
	"github.com/fullstack-education/academico/core/course"
	"github.com/fullstack-education/academico/core/dashboard"
	"github.com/fullstack-education/academico/core/grade"
	"github.com/fullstack-education/academico/core/student"
	"github.com/fullstack-education/academico/core/subject"
	"github.com/fullstack-education/academico/core/teacher"
	emailsvc "github.com/fullstack-education/academico/services/email"
	logsvc "github.com/fullstack-education/academico/services/logger"
	"github.com/fullstack-education/academico/storage/database"
	inmemdb "github.com/fullstack-education/academico/storage/database/inmem"
	sqlxrepos "github.com/fullstack-education/academico/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if core.Conf.Debug || core.Conf.RollbarToken == "" {
		logger = core.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	var (
		accountRepo account.Repository
		courseRepo  course.Repository
		subjectRepo subject.Repository
		teacherRepo teacher.Repository
		cohortRepo  cohort.Repository
		studentRepo student.Repository
		gradeRepo   grade.Repository
	)
	if core.Conf.Debug {
		db, err := inmemdb.Open()
		if err != nil {
			logger.Fatal("opening in-memory store", err)
		}
		accountRepo = inmemdb.NewAccountRepository(db)
		courseRepo = inmemdb.NewCourseRepository(db)
		subjectRepo = inmemdb.NewSubjectRepository(db)
		teacherRepo = inmemdb.NewTeacherRepository(db)
		cohortRepo = inmemdb.NewCohortRepository(db)
		studentRepo = inmemdb.NewStudentRepository(db)
		gradeRepo = inmemdb.NewGradeRepository(db)
	} else {
		db, err := database.Open(core.Conf)
		if err != nil {
			logger.Fatal("opening database", err)
		}
		defer db.Close()
		if err = database.Bootstrap(db); err != nil {
			logger.Fatal("bootstrapping database", err)
		}
		accountRepo = sqlxrepos.NewAccountRepository(db)
		courseRepo = sqlxrepos.NewCourseRepository(db)
		subjectRepo = sqlxrepos.NewSubjectRepository(db)
		teacherRepo = sqlxrepos.NewTeacherRepository(db)
		cohortRepo = sqlxrepos.NewCohortRepository(db)
		studentRepo = sqlxrepos.NewStudentRepository(db)
		gradeRepo = sqlxrepos.NewGradeRepository(db)
	}

	var mailSvc core.EmailService
	if core.Conf.Debug || core.Conf.SendgridApiKey == "" {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	tokenSvc := auth.NewTokenService(core.Conf)
	accountSvc := account.NewService(accountRepo, tokenSvc, mailSvc, logger)
	courseSvc := course.NewService(courseRepo, tokenSvc, logger)
	subjectSvc := subject.NewService(subjectRepo, courseRepo, tokenSvc, logger)
	teacherSvc := teacher.NewService(teacherRepo, accountSvc, tokenSvc, logger)
	cohortSvc := cohort.NewService(cohortRepo, courseRepo, teacherRepo, tokenSvc, logger)
	studentSvc := student.NewService(studentRepo, cohortRepo, accountSvc, tokenSvc, logger)
	gradeSvc := grade.NewService(gradeRepo, studentRepo, teacherRepo, subjectRepo, tokenSvc, logger)
	dashboardSvc := dashboard.NewService(studentRepo, teacherRepo, cohortRepo, tokenSvc)

	app := echoapi.NewServer(echoapi.Options{
		Addr:      core.Conf.Server.Address(),
		Accounts:  accountSvc,
		Students:  studentSvc,
		Teachers:  teacherSvc,
		Cohorts:   cohortSvc,
		Courses:   courseSvc,
		Subjects:  subjectSvc,
		Grades:    gradeSvc,
		Dashboard: dashboardSvc,
		Tokens:    tokenSvc,
		Logger:    logger,
	})

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() { errs <- app.Start() }()

	select {
	case err := <-errs:
		logger.Fatal("server error", err)
	case sig := <-shutdown:
		logger.Info("shutting down: " + sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			logger.Error("graceful shutdown failed", err)
		}
	}
}
