package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/report"
	"github.com/saraswati/sdms/core/user"
	"github.com/saraswati/sdms/services/pdfreport"
)

var (
	errUnauthorized   = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errRefreshExpired = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden  = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound   = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		if fields, ok := core.FieldErrors(err); ok {
			code = http.StatusBadRequest
			if len(fields) > 0 {
				message = fields
			} else {
				message = err.Error()
			}
		} else {
			switch origErr := errors.Cause(err).(type) {
			case *echo.HTTPError:
				if origErr == middleware.ErrJWTMissing {
					code = http.StatusUnauthorized
					message = origErr.Message
					break
				}
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				message = origErr.Message
			case *core.ReferenceError:
				code = http.StatusBadRequest
				message = map[string]string{origErr.Field: origErr.Error()}
			case *core.DuplicateKeyError:
				code = http.StatusConflict
				message = map[string]string{origErr.Field: origErr.Error()}
			default:
				switch origErr {
				case user.ErrInvalidCredentials:
					code = http.StatusUnauthorized
					message = origErr.Error()
				case core.ErrNotFound:
					code = http.StatusNotFound
					message = http.StatusText(code)
				case report.ErrUnknownReport, pdfreport.ErrNoMarks:
					code = http.StatusNotFound
					message = err.Error()
				default: // any other error is a server error
					code = http.StatusInternalServerError
					msg := http.StatusText(http.StatusInternalServerError)
					message = msg

					var sess user.Session
					if claims, cErr := getContextClaims(ctx); cErr == nil {
						sess = claims.Session()
					}
					logger.Error(msg, errors.Wrap(err, msg), sess)
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
