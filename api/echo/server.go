// Package echoapi exposes the academic records services over HTTP.
package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

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
)

type Options struct {
	Addr      string
	Accounts  *account.Service
	Students  *student.Service
	Teachers  *teacher.Service
	Cohorts   *cohort.Service
	Courses   *course.Service
	Subjects  *subject.Service
	Grades    *grade.Service
	Dashboard *dashboard.Service
	Tokens    *auth.TokenService
	Logger    core.Logger
}

type Server struct {
	addr   string
	router *echo.Echo
	logger core.Logger
}

type appValidator struct {
	validate *validator.Validate
}

func (v appValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Debug = core.Conf.Debug
	e.Pre(middleware.RemoveTrailingSlash())
	if e.Debug {
		e.Use(middleware.Logger())
		e.Use(middleware.Recover())
	} else {
		e.Logger.SetLevel(log.ERROR)
		e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	e.Validator = &appValidator{validate: core.Validate}
	e.HTTPErrorHandler = appHTTPErrorHandler

	e.GET("/", home)

	registerAuthAPI(e, opts.Accounts, opts.Tokens)
	registerStudentAPI(e, opts.Students)
	registerTeacherAPI(e, opts.Teachers)
	registerCohortAPI(e, opts.Cohorts)
	registerCourseAPI(e, opts.Courses)
	registerSubjectAPI(e, opts.Subjects)
	registerGradeAPI(e, opts.Grades)
	registerDashboardAPI(e, opts.Dashboard)

	return &Server{
		addr:   opts.Addr,
		router: e,
		logger: opts.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("server listening on " + s.addr)
	return s.router.Start(s.addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.router.Shutdown(ctx)
}

// ServeHTTP lets tests drive the full router without a listening socket.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func home(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome to "+core.Conf.AppName+"!")
}
