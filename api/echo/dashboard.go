package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstack-education/academico/core/dashboard"
)

type dashboardApi struct {
	dashboard *dashboard.Service
}

func registerDashboardAPI(e *echo.Echo, dash *dashboard.Service) {
	a := dashboardApi{dashboard: dash}
	e.GET("/dashboard", a.summary)
}

func (a *dashboardApi) summary(c echo.Context) error {
	summary, err := a.dashboard.GetSummary(bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
