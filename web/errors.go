package web

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
)

var errHTTPNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that renders
// errors as HTML pages and knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever
// a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = fmt.Sprint(origErr.Message)
		case validator.ValidationErrors, *core.ValidationError:
			// handlers re-render their form on validation failures; anything
			// reaching this point fell through a non-form path
			code = http.StatusBadRequest
			message = "submitted data is invalid"
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(code)

			var usr session.User
			if sess, ok := contextSession(ctx); ok {
				usr = sess.User
			}
			logger.Error(message, errors.Wrap(err, message), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}

		if !ctx.Response().Committed {
			view := errorView{Code: code, Message: message}
			if rerr := ctx.Render(code, "error.html", view); rerr != nil {
				ctx.Echo().Logger.Error(rerr)
			}
		}
	}
}

// fieldErrors flattens a validation error into a field -> message map for
// form re-rendering. It returns nil when err is not a validation error.
func fieldErrors(err error) map[string]string {
	switch vErrs := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		flds := make(map[string]string, len(vErrs))
		for _, vErr := range vErrs {
			flds[vErr.Field()] = vErr.Translate(core.Translator)
		}
		return flds
	case *core.ValidationError:
		if vErrs.Fields == nil {
			return map[string]string{"": vErrs.Error()}
		}
		flds := make(map[string]string, len(vErrs.Fields))
		for _, fErr := range vErrs.Fields {
			flds[fErr.Field] = fErr.Error
		}
		return flds
	}
	return nil
}
