package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstack-education/academico/core/subject"
)

type subjectApi struct {
	subjects *subject.Service
}

func registerSubjectAPI(e *echo.Echo, subjects *subject.Service) {
	a := subjectApi{subjects: subjects}

	g := e.Group("/materias")
	g.GET("", a.list)
	g.GET("/cursos/:curso_id", a.listByCourse)
	g.GET("/:id", a.retrieve)
	g.POST("", a.create)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.destroy)
}

func (a *subjectApi) list(c echo.Context) error {
	subjects, err := a.subjects.ListAll(bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subjects)
}

func (a *subjectApi) listByCourse(c echo.Context) error {
	courseID, err := intParam(c, "curso_id")
	if err != nil {
		return err
	}
	subjects, err := a.subjects.ListByCourse(courseID, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subjects)
}

func (a *subjectApi) retrieve(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	sub, err := a.subjects.GetByID(id, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

func (a *subjectApi) create(c echo.Context) error {
	data := new(subject.NewSubject)
	if err := c.Bind(data); err != nil {
		return err
	}
	sub, err := a.subjects.Create(*data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

func (a *subjectApi) update(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	data := new(subject.UpdateSubject)
	if err := c.Bind(data); err != nil {
		return err
	}
	sub, err := a.subjects.Update(id, *data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

func (a *subjectApi) destroy(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := a.subjects.Delete(id, bearerToken(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
