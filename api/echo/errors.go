package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"

	"github.com/fullstack-education/academico/core"
)

// appHTTPErrorHandler maps domain errors to HTTP responses: validation
// failures become 400 with per-field messages, missing records 404,
// authentication and authorization failures 401 (matching the original API
// contract), anything else a bare 500.
func appHTTPErrorHandler(err error, c echo.Context) {
	var code int
	var message interface{}

	switch cause := pkgerrors.Cause(err).(type) {
	case *echo.HTTPError:
		herr := cause
		if herr.Internal != nil {
			if ierr, ok := herr.Internal.(*echo.HTTPError); ok {
				herr = ierr
			}
		}
		code = herr.Code
		message = herr.Message
	case validator.ValidationErrors:
		fldErrs := make(map[string]string)
		for _, vErr := range cause {
			fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
		}
		code = http.StatusBadRequest
		message = fldErrs
	case *core.ValidationError:
		code = http.StatusBadRequest
		if cause.Fields != nil {
			fldErrs := make(map[string]string)
			for _, fErr := range cause.Fields {
				fldErrs[fErr.Field] = fErr.Error
			}
			message = fldErrs
		} else {
			message = cause.Error()
		}
	case *core.NotFoundError:
		code = http.StatusNotFound
		message = cause.Error()
	case *core.AuthorizationError, *core.AuthenticationError:
		code = http.StatusUnauthorized
		message = cause.(error).Error()
	default: // any other error is a server error
		code = http.StatusInternalServerError
		message = http.StatusText(http.StatusInternalServerError)
	}

	if c.Echo().Debug && code >= http.StatusInternalServerError {
		message = err.Error()
	}
	if m, ok := message.(string); ok {
		message = echo.Map{"error": m}
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead { // Issue #608
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, message)
		}
		if code >= http.StatusInternalServerError {
			c.Echo().Logger.Error(err)
		}
	}
}
