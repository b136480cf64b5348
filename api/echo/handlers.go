package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fullstack-education/academico/core"
)

// bearerToken extracts the bare token from the Authorization header; the
// services verify it themselves. An absent header yields an empty token, which
// fails claim reading downstream.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func intParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, core.NewNotFoundError(name + " not found")
	}
	return id, nil
}
