package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstack-education/academico/core"
	"github.com/fullstack-education/academico/core/account"
	"github.com/fullstack-education/academico/core/auth"
)

type authApi struct {
	accounts *account.Service
	tokens   *auth.TokenService
}

func registerAuthAPI(e *echo.Echo, accounts *account.Service, tokens *auth.TokenService) {
	a := authApi{accounts: accounts, tokens: tokens}

	e.POST("/login", a.login)
	e.POST("/cadastro", a.register)
}

type LoginRequest struct {
	Login  string `json:"login" validate:"required"`
	Secret string `json:"senha" validate:"required"`
}

type LoginResponse struct {
	Token              string `json:"valorJWT"`
	ExpirationTimeSecs int64  `json:"tempoExpiracao"`
}

func (a *authApi) login(c echo.Context) error {
	data := new(LoginRequest)
	if err := c.Bind(data); err != nil {
		return err
	}
	data.Login = core.CleanString(data.Login, true /* lower */)
	if err := c.Validate(data); err != nil {
		return err
	}

	acct, err := a.accounts.Authenticate(data.Login, data.Secret)
	if err != nil {
		return err
	}
	token, err := a.tokens.GenerateToken(acct.ID, acct.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &LoginResponse{
		Token:              token,
		ExpirationTimeSecs: int64(core.Conf.JWTExpirationDelta.Seconds()),
	})
}

func (a *authApi) register(c echo.Context) error {
	data := new(account.NewAccount)
	if err := c.Bind(data); err != nil {
		return err
	}

	acct, err := a.accounts.Create(*data, bearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, acct)
}
