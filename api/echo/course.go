package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstack-education/academico/core/course"
)

type courseApi struct {
	courses *course.Service
}

func registerCourseAPI(e *echo.Echo, courses *course.Service) {
	a := courseApi{courses: courses}

	g := e.Group("/cursos")
	g.GET("", a.list)
	g.GET("/:id", a.retrieve)
	g.POST("", a.create)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.destroy)
}

func (a *courseApi) list(c echo.Context) error {
	courses, err := a.courses.ListAll(bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

func (a *courseApi) retrieve(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	crs, err := a.courses.GetByID(id, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, crs)
}

func (a *courseApi) create(c echo.Context) error {
	data := new(course.NewCourse)
	if err := c.Bind(data); err != nil {
		return err
	}
	crs, err := a.courses.Create(*data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, crs)
}

func (a *courseApi) update(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	data := new(course.UpdateCourse)
	if err := c.Bind(data); err != nil {
		return err
	}
	crs, err := a.courses.Update(id, *data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, crs)
}

func (a *courseApi) destroy(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := a.courses.Delete(id, bearerToken(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
