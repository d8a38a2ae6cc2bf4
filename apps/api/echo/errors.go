package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
	"github.com/mensahq/sukuu/core/otp"
	"github.com/mensahq/sukuu/core/sba"
	"github.com/mensahq/sukuu/core/staff"
	"github.com/mensahq/sukuu/core/student"
	"github.com/mensahq/sukuu/storage/sheetdb"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how
// to translate our errors: "not found" vs "validation" vs "transport" must
// stay distinguishable, the admin UI shows these messages directly.
// signalShutdown is called to gracefully stop the Server when a core.shutdown
// error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *core.NotFoundError:
			code = http.StatusNotFound
			message = origErr.Error()
		default:
			code, message = translateDomainErr(origErr)
			if code == 0 { // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
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

// translateDomainErr maps the domain sentinels onto HTTP codes; (0, nil)
// means the error is not one of ours.
func translateDomainErr(err error) (int, interface{}) {
	switch err {
	case student.ErrNotFound, staff.ErrNotFound, claim.ErrNotFound, sba.ErrNotFound, otp.ErrNotFound:
		return http.StatusNotFound, err.Error()
	case otp.ErrExpired, otp.ErrMismatch, core.ErrOTPRejected:
		return http.StatusBadRequest, err.Error()
	case claim.ErrAlreadyPaid:
		return http.StatusConflict, err.Error()
	case sheetdb.ErrHeaderlessSheet:
		// an operator problem, not a client one; still made explicit
		return http.StatusInternalServerError, err.Error()
	}
	return 0, nil
}
