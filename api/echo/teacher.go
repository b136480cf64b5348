package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstack-education/academico/core/teacher"
)

type teacherApi struct {
	teachers *teacher.Service
}

func registerTeacherAPI(e *echo.Echo, teachers *teacher.Service) {
	a := teacherApi{teachers: teachers}

	g := e.Group("/docentes")
	g.GET("", a.list)
	g.GET("/:id", a.retrieve)
	g.POST("", a.create)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.destroy)
}

func (a *teacherApi) list(c echo.Context) error {
	teachers, err := a.teachers.ListAll(bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teachers)
}

func (a *teacherApi) retrieve(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	tch, err := a.teachers.GetByID(id, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tch)
}

func (a *teacherApi) create(c echo.Context) error {
	data := new(teacher.NewTeacher)
	if err := c.Bind(data); err != nil {
		return err
	}
	tch, err := a.teachers.Create(*data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tch)
}

func (a *teacherApi) update(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	data := new(teacher.UpdateTeacher)
	if err := c.Bind(data); err != nil {
		return err
	}
	tch, err := a.teachers.Update(id, *data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tch)
}

func (a *teacherApi) destroy(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := a.teachers.Delete(id, bearerToken(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
