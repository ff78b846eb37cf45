package mid

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/omoto202/MyCoin/business/web/errs"
	"github.com/omoto202/MyCoin/foundation/web"
)

// Errors handles errors coming out of the call chain. It detects normal
// application errors which are used to respond to the client in a uniform
// way. Unexpected errors (status >= 500) are logged.
func Errors(log *zap.SugaredLogger) web.Middleware {

	m := func(handler web.Handler) web.Handler {

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			v, verr := web.GetValues(ctx)
			if verr != nil {
				return web.NewShutdownError("web value missing from context")
			}

			log.Errorw("request error", "traceid", v.TraceID, "message", err)

			// Build out the error response.
			var er errs.Response
			var status int

			switch {
			case web.IsFieldErrors(err):
				fieldErrors := web.GetFieldErrors(err)
				er = errs.Response{
					Error:  "data validation error",
					Fields: fieldsMap(fieldErrors),
				}
				status = http.StatusBadRequest

			case errs.IsTrusted(err):
				trsErr := errs.GetTrusted(err)
				er = errs.Response{
					Error: trsErr.Error(),
				}
				status = trsErr.Status

			default:
				er = errs.Response{
					Error: http.StatusText(http.StatusInternalServerError),
				}
				status = http.StatusInternalServerError
			}

			if err := web.Respond(ctx, w, er, status); err != nil {
				return err
			}

			// If we receive the shutdown err we need to return it back to the
			// base handler to shut down the service.
			if web.IsShutdown(err) {
				return err
			}

			return nil
		}

		return h
	}

	return m
}

// fieldsMap converts the field errors slice into the response map form.
func fieldsMap(fieldErrors web.FieldErrors) map[string]string {
	m := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		m[fe.Field] = fe.Error
	}
	return m
}
