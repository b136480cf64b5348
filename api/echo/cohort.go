package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstack-education/academico/core/cohort"
)

type cohortApi struct {
	cohorts *cohort.Service
}

func registerCohortAPI(e *echo.Echo, cohorts *cohort.Service) {
	a := cohortApi{cohorts: cohorts}

	g := e.Group("/turmas")
	g.GET("", a.list)
	g.GET("/:id", a.retrieve)
	g.POST("", a.create)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.destroy)
}

func (a *cohortApi) list(c echo.Context) error {
	cohorts, err := a.cohorts.ListAll(bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cohorts)
}

func (a *cohortApi) retrieve(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	coh, err := a.cohorts.GetByID(id, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coh)
}

func (a *cohortApi) create(c echo.Context) error {
	data := new(cohort.NewCohort)
	if err := c.Bind(data); err != nil {
		return err
	}
	coh, err := a.cohorts.Create(*data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, coh)
}

func (a *cohortApi) update(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	data := new(cohort.UpdateCohort)
	if err := c.Bind(data); err != nil {
		return err
	}
	coh, err := a.cohorts.Update(id, *data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coh)
}

func (a *cohortApi) destroy(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := a.cohorts.Delete(id, bearerToken(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
