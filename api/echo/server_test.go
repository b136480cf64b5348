package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

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
	inmemdb "github.com/fullstack-education/academico/storage/database/inmem"
)

type fixture struct {
	app    *Server
	tokens *auth.TokenService

	accounts *account.Service
	acctRepo account.Repository
}

func setup(t *testing.T) fixture {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	logger := core.NewStdLogger(log.New(io.Discard, "", 0))
	mailSvc := emailsvc.NewConsoleServiceMock()
	tokens := auth.NewTokenService(core.Conf)

	acctRepo := inmemdb.NewAccountRepository(db)
	courseRepo := inmemdb.NewCourseRepository(db)
	subjectRepo := inmemdb.NewSubjectRepository(db)
	teacherRepo := inmemdb.NewTeacherRepository(db)
	cohortRepo := inmemdb.NewCohortRepository(db)
	studentRepo := inmemdb.NewStudentRepository(db)
	gradeRepo := inmemdb.NewGradeRepository(db)

	accounts := account.NewService(acctRepo, tokens, mailSvc, logger)
	app := NewServer(Options{
		Addr:      ":0",
		Accounts:  accounts,
		Students:  student.NewService(studentRepo, cohortRepo, accounts, tokens, logger),
		Teachers:  teacher.NewService(teacherRepo, accounts, tokens, logger),
		Cohorts:   cohort.NewService(cohortRepo, courseRepo, teacherRepo, tokens, logger),
		Courses:   course.NewService(courseRepo, tokens, logger),
		Subjects:  subject.NewService(subjectRepo, courseRepo, tokens, logger),
		Grades:    grade.NewService(gradeRepo, studentRepo, teacherRepo, subjectRepo, tokens, logger),
		Dashboard: dashboard.NewService(studentRepo, teacherRepo, cohortRepo, tokens),
		Tokens:    tokens,
		Logger:    logger,
	})

	return fixture{app: app, tokens: tokens, accounts: accounts, acctRepo: acctRepo}
}

func (fix fixture) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("request() failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	fix.app.ServeHTTP(rec, req)
	return rec
}

func (fix fixture) tokenFor(t *testing.T, role string) string {
	token, err := fix.tokens.GenerateToken(1, role)
	if err != nil {
		t.Fatalf("tokenFor() failed: %v", err)
	}
	return token
}

func seedAccount(t *testing.T, fix fixture, login, secret, role string) account.Account {
	acct := account.Account{Login: login, Role: role}
	if err := acct.SetSecret(secret); err != nil {
		t.Fatalf("seedAccount() failed: %v", err)
	}
	acct, err := fix.acctRepo.CreateAccount(acct)
	if err != nil {
		t.Fatalf("seedAccount() failed: %v", err)
	}
	return acct
}

func TestLogin(t *testing.T) {
	fix := setup(t)
	seedAccount(t, fix, "admin@x.com", "pwd", account.RoleAdmin)

	rec := fix.request(t, http.MethodPost, "/login", "", echoMap{"login": "admin@x.com", "senha": "pwd"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var res LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(core.Conf.JWTExpirationDelta.Seconds()), res.ExpirationTimeSecs)

	// the issued token carries the account role in the scope claim
	role, err := fix.tokens.ReadClaim(res.Token, auth.ScopeClaim)
	assert.NoError(t, err)
	assert.Equal(t, account.RoleAdmin, role)
}

type echoMap = map[string]interface{}

func TestLogin_badCredentials(t *testing.T) {
	fix := setup(t)
	seedAccount(t, fix, "admin@x.com", "pwd", account.RoleAdmin)

	rec := fix.request(t, http.MethodPost, "/login", "", echoMap{"login": "admin@x.com", "senha": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = fix.request(t, http.MethodPost, "/login", "", echoMap{"login": "ghost@x.com", "senha": "pwd"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_missingFields(t *testing.T) {
	fix := setup(t)

	rec := fix.request(t, http.MethodPost, "/login", "", echoMap{"login": "admin@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCadastro(t *testing.T) {
	fix := setup(t)
	adminToken := fix.tokenFor(t, account.RoleAdmin)

	rec := fix.request(t, http.MethodPost, "/cadastro", adminToken,
		echoMap{"nomeLogin": "novo@x.com", "senha": "pwd", "nomePapel": "pedagogico"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var acct account.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &acct); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	assert.Equal(t, account.RolePedagogico, acct.Role)
	// the secret hash never leaves the service
	assert.NotContains(t, rec.Body.String(), "secretHash")
	assert.NotContains(t, rec.Body.String(), "SecretHash")
}

func TestCadastro_denied(t *testing.T) {
	fix := setup(t)

	rec := fix.request(t, http.MethodPost, "/cadastro", fix.tokenFor(t, account.RoleAluno),
		echoMap{"nomeLogin": "novo@x.com", "senha": "pwd", "nomePapel": "aluno"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = fix.request(t, http.MethodPost, "/cadastro", "garbage",
		echoMap{"nomeLogin": "novo@x.com", "senha": "pwd", "nomePapel": "aluno"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCourses_endToEnd(t *testing.T) {
	fix := setup(t)
	adminToken := fix.tokenFor(t, account.RoleAdmin)

	// empty collection reads as 404, by design
	rec := fix.request(t, http.MethodGet, "/cursos", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = fix.request(t, http.MethodPost, "/cursos", adminToken, echoMap{"nome": "Informatica"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var crs course.Course
	if err := json.Unmarshal(rec.Body.Bytes(), &crs); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	assert.Equal(t, "Informatica", crs.Name)

	rec = fix.request(t, http.MethodGet, "/cursos", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// duplicate name maps to 400 with the field message
	rec = fix.request(t, http.MethodPost, "/cursos", adminToken, echoMap{"nome": "Informatica"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "nome")

	// students cannot read the catalog
	rec = fix.request(t, http.MethodGet, "/cursos", fix.tokenFor(t, account.RoleAluno), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// delete is admin-only and returns 204
	rec = fix.request(t, http.MethodDelete, "/cursos/1", fix.tokenFor(t, account.RolePedagogico), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = fix.request(t, http.MethodDelete, "/cursos/1", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = fix.request(t, http.MethodGet, "/cursos/1", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTeacherAndGradeFlow(t *testing.T) {
	fix := setup(t)
	adminToken := fix.tokenFor(t, account.RoleAdmin)

	// course + subject
	rec := fix.request(t, http.MethodPost, "/cursos", adminToken, echoMap{"nome": "Informatica"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = fix.request(t, http.MethodPost, "/materias", adminToken, echoMap{"nome": "Algoritmos", "curso": 1})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// teacher (creates the professor login)
	rec = fix.request(t, http.MethodPost, "/docentes", adminToken, echoMap{
		"nome":  "Carlos Silva",
		"email": "carlos@x.com",
		"senha": "pwd",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	var tch teacher.Teacher
	if err := json.Unmarshal(rec.Body.Bytes(), &tch); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	assert.Equal(t, account.RoleProfessor, tch.Account.Role)

	// cohort bound to the teacher
	rec = fix.request(t, http.MethodPost, "/turmas", adminToken, echoMap{
		"nome": "Turma A", "docente": tch.ID, "curso": 1,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// student enrolled in the cohort
	rec = fix.request(t, http.MethodPost, "/alunos", adminToken, echoMap{
		"nome": "Pedro", "email": "pedro@x.com", "senha": "pwd", "turma": 1,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	var res student.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	assert.Equal(t, account.RoleAluno, res.Account.Role)

	// grades and the aggregate score
	for _, value := range []string{"10", "8", "9"} {
		rec = fix.request(t, http.MethodPost, "/notas", adminToken, echoMap{
			"aluno": res.ID, "docente": tch.ID, "materia": 1, "valor": value,
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	// the student logs in and reads their own score
	rec = fix.request(t, http.MethodPost, "/login", "", echoMap{"login": "pedro@x.com", "senha": "pwd"})
	assert.Equal(t, http.StatusOK, rec.Code)
	var login echoMap
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	alunoToken, _ := login["valorJWT"].(string)

	rec = fix.request(t, http.MethodGet, "/notas/alunos/1/pontuacao", alunoToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pontuacao":"9.00"}`, rec.Body.String())

	// another aluno login cannot read it
	rec = fix.request(t, http.MethodGet, "/notas/alunos/1/pontuacao", fix.tokenFor(t, account.RoleAluno), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = fix.request(t, http.MethodGet, "/notas/docentes/1", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// dashboard counts reflect the flow
	rec = fix.request(t, http.MethodGet, "/dashboard", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var summary dashboard.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	assert.Equal(t, dashboard.Summary{Students: 1, Teachers: 1, Cohorts: 1}, summary)
}

func TestUnauthenticatedRequests(t *testing.T) {
	fix := setup(t)

	for _, path := range []string{"/alunos", "/docentes", "/turmas", "/cursos", "/materias", "/notas", "/dashboard"} {
		rec := fix.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "GET %s without a token", path)
	}
}

func TestDashboard_adminOnly(t *testing.T) {
	fix := setup(t)

	rec := fix.request(t, http.MethodGet, "/dashboard", fix.tokenFor(t, account.RolePedagogico), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
