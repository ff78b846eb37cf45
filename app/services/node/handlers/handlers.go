// Package handlers manages the different versions of the API.
package handlers

import (
	"context"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/omoto202/MyCoin/app/services/node/handlers/debug/checkgrp"
	v1 "github.com/omoto202/MyCoin/app/services/node/handlers/v1"
	"github.com/omoto202/MyCoin/business/web/mid"
	"github.com/omoto202/MyCoin/foundation/events"
	"github.com/omoto202/MyCoin/foundation/ledger/gossip"
	"github.com/omoto202/MyCoin/foundation/ledger/state"
	"github.com/omoto202/MyCoin/foundation/web"
)

// MuxConfig contains all the mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown chan os.Signal
	Log      *zap.SugaredLogger
	State    *state.State
	Evts     *events.Events
}

// PublicMux constructs a http.Handler with all application routes defined.
func PublicMux(cfg MuxConfig) http.Handler {

	// Construct the web.App which holds all routes as well as common
	// Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Cors("*"),
		mid.Panics(),
	)

	// Accept CORS 'OPTIONS' preflight requests.
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	app.Handle(http.MethodOptions, "", "/*path", h, mid.Cors("*"))

	// Load the v1 routes.
	v1.PublicRoutes(app, v1.Config{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	})

	return app
}

// GossipMux constructs a http.Handler serving the peer gossip endpoint.
func GossipMux(g *gossip.Gossip) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/v1/gossip", g)

	return mux
}

// DebugMux registers the standard library debug endpoints, the prometheus
// metrics, and the check endpoints. This bypasses the DefaultServerMux so a
// dependency can't inject a handler into the service without us knowing it.
func DebugMux(build string, log *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/metrics", promhttp.Handler())

	cgh := checkgrp.Handlers{
		Build: build,
		Log:   log,
	}
	mux.HandleFunc("/debug/readiness", cgh.Readiness)
	mux.HandleFunc("/debug/liveness", cgh.Liveness)

	return mux
}
