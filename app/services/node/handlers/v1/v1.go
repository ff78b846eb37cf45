// Package v1 contains the full set of handler functions and routes supported
// by the v1 web api.
package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/omoto202/MyCoin/app/services/node/handlers/v1/nodegrp"
	"github.com/omoto202/MyCoin/foundation/events"
	"github.com/omoto202/MyCoin/foundation/ledger/state"
	"github.com/omoto202/MyCoin/foundation/web"
)

// Config contains all the mandatory systems required by routes.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

const version = "v1"

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	ngh := nodegrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodPost, version, "/tx/submit", ngh.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/mine", ngh.Mine)
	app.Handle(http.MethodGet, version, "/balance/:account", ngh.Balance)
	app.Handle(http.MethodGet, version, "/chain", ngh.Chain)
	app.Handle(http.MethodGet, version, "/mempool", ngh.Mempool)
	app.Handle(http.MethodGet, version, "/status", ngh.Status)
	app.Handle(http.MethodGet, version, "/events", ngh.Events)
}
