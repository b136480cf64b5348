package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstack-education/academico/core/student"
)

type studentApi struct {
	students *student.Service
}

func registerStudentAPI(e *echo.Echo, students *student.Service) {
	a := studentApi{students: students}

	g := e.Group("/alunos")
	g.GET("", a.list)
	g.GET("/:id", a.retrieve)
	g.POST("", a.create)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.destroy)
}

func (a *studentApi) list(c echo.Context) error {
	students, err := a.students.ListAll(bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, students)
}

func (a *studentApi) retrieve(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	std, err := a.students.GetByID(id, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, std)
}

func (a *studentApi) create(c echo.Context) error {
	data := new(student.NewStudent)
	if err := c.Bind(data); err != nil {
		return err
	}
	res, err := a.students.Create(*data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (a *studentApi) update(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	data := new(student.UpdateStudent)
	if err := c.Bind(data); err != nil {
		return err
	}
	std, err := a.students.Update(id, *data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, std)
}

func (a *studentApi) destroy(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := a.students.Delete(id, bearerToken(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
