package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstack-education/academico/core/grade"
)

type gradeApi struct {
	grades *grade.Service
}

func registerGradeAPI(e *echo.Echo, grades *grade.Service) {
	a := gradeApi{grades: grades}

	g := e.Group("/notas")
	g.GET("", a.list)
	g.GET("/alunos/:aluno_id", a.listByStudent)
	g.GET("/alunos/:aluno_id/pontuacao", a.score)
	g.GET("/docentes/:docente_id", a.listByTeacher)
	g.GET("/:id", a.retrieve)
	g.POST("", a.create)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.destroy)
}

func (a *gradeApi) list(c echo.Context) error {
	grades, err := a.grades.ListAll(bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, grades)
}

func (a *gradeApi) listByStudent(c echo.Context) error {
	studentID, err := intParam(c, "aluno_id")
	if err != nil {
		return err
	}
	grades, err := a.grades.ListByStudent(studentID, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, grades)
}

func (a *gradeApi) listByTeacher(c echo.Context) error {
	teacherID, err := intParam(c, "docente_id")
	if err != nil {
		return err
	}
	grades, err := a.grades.ListByTeacher(teacherID, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, grades)
}

func (a *gradeApi) score(c echo.Context) error {
	studentID, err := intParam(c, "aluno_id")
	if err != nil {
		return err
	}
	score, err := a.grades.ComputeScore(studentID, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"pontuacao": score})
}

func (a *gradeApi) retrieve(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	grd, err := a.grades.GetByID(id, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, grd)
}

func (a *gradeApi) create(c echo.Context) error {
	data := new(grade.NewGrade)
	if err := c.Bind(data); err != nil {
		return err
	}
	grd, err := a.grades.Create(*data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, grd)
}

func (a *gradeApi) update(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	data := new(grade.UpdateGrade)
	if err := c.Bind(data); err != nil {
		return err
	}
	grd, err := a.grades.Update(id, *data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, grd)
}

func (a *gradeApi) destroy(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := a.grades.Delete(id, bearerToken(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
