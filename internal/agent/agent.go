// Package agent walks an inventory and applies one shared
// configuration set to every host in it, one host at a time.
package agent

import (
	"github.com/rs/zerolog"

	"github.com/eniac111/plumbcfg/internal/config"
	"github.com/eniac111/plumbcfg/internal/reconcile"
	"github.com/eniac111/plumbcfg/internal/ssh"
	"github.com/eniac111/plumbcfg/internal/types"
)

// Dialer opens a session to one host.
type Dialer func(types.Host) (reconcile.Session, error)

// Agent applies a read-only configuration set to each host in an
// inventory. A fatal failure on one host never stops the remaining
// hosts.
type Agent struct {
	items  []types.Item
	creds  config.Credentials
	log    zerolog.Logger
	runner *reconcile.Runner
	dial   Dialer
}

func New(items []types.Item, creds config.Credentials, log zerolog.Logger) *Agent {
	return &Agent{
		items:  items,
		creds:  creds,
		log:    log,
		runner: reconcile.NewRunner(log),
		dial: func(h types.Host) (reconcile.Session, error) {
			return ssh.Connect(h)
		},
	}
}

// Run processes every server in the inventory in order and returns the
// per-host outcomes.
func (a *Agent) Run(inv types.Inventory) []types.RunOutcome {
	outcomes := make([]types.RunOutcome, 0, len(inv.Servers))
	for _, srv := range inv.Servers {
		outcomes = append(outcomes, a.runHost(srv))
	}
	return outcomes
}

func (a *Agent) runHost(srv types.Server) types.RunOutcome {
	host := types.Host{
		Name:     srv.Host,
		Port:     srv.Port,
		User:     a.creds.Username,
		Password: a.creds.Password,
	}

	sess, err := a.dial(host)
	if err != nil {
		a.log.Error().Err(err).Str("host", srv.Host).Msg("SSH connection failed")
		return types.RunOutcome{Host: srv.Host, Status: types.RunAborted, Err: err}
	}
	a.log.Info().Str("host", srv.Host).Msg("connected")

	outcome := a.runner.Apply(sess, srv.Host, a.items)
	if outcome.Status == types.RunAborted {
		a.log.Error().Str("host", srv.Host).Str("item", outcome.FailedItem).
			Int("applied", outcome.Applied).Msg("run aborted")
	} else {
		a.log.Info().Str("host", srv.Host).Int("applied", outcome.Applied).Msg("run completed")
	}
	return outcome
}
