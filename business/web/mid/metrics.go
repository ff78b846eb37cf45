package mid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/omoto202/MyCoin/business/sys/metrics"
	"github.com/omoto202/MyCoin/foundation/web"
)

// Metrics updates the request counters published on the debug endpoint.
func Metrics() web.Middleware {

	m := func(handler web.Handler) web.Handler {

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			err := handler(ctx, w, r)

			status := http.StatusOK
			if v, verr := web.GetValues(ctx); verr == nil && v.StatusCode != 0 {
				status = v.StatusCode
			}
			metrics.Requests.WithLabelValues(fmt.Sprintf("%dxx", status/100)).Inc()

			return err
		}

		return h
	}

	return m
}
