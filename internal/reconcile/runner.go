package reconcile

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eniac111/plumbcfg/internal/types"
)

// Runner applies an ordered configuration set to one already-open
// session. The first fatal error aborts the remaining items; the
// session is always closed when the run ends.
type Runner struct {
	log zerolog.Logger
}

func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{log: log}
}

// Apply reconciles every item in order against the session. Items are
// never reordered and no action is retried. The returned outcome
// records whether the run completed or which item aborted it.
func (r *Runner) Apply(sess Session, host string, items []types.Item) types.RunOutcome {
	defer func() {
		if err := sess.Close(); err != nil {
			r.log.Warn().Err(err).Str("host", host).Msg("failed to close session")
			return
		}
		r.log.Info().Str("host", host).Msg("SSH connection closed")
	}()

	for i, it := range items {
		r.log.Debug().Int("index", i).Str("type", string(it.Type)).
			Str("target", it.Target()).Msg("processing item")

		if err := r.applyItem(sess, it); err != nil {
			r.log.Error().Err(err).Str("target", it.Target()).
				Msg(fmt.Sprintf("failed to manage %s", it.Type))
			return types.RunOutcome{
				Host:       host,
				Status:     types.RunAborted,
				Applied:    i,
				FailedItem: it.Target(),
				Err:        err,
			}
		}
	}

	return types.RunOutcome{Host: host, Status: types.RunCompleted, Applied: len(items)}
}

// applyItem validates the item's state and dispatches on its type.
// Validation happens before any remote action is attempted.
func (r *Runner) applyItem(sess Session, it types.Item) error {
	if !it.StateValid() {
		return &InvalidStateError{Type: it.Type, Target: it.Target(), State: it.State}
	}

	switch it.Type {
	case types.TypeFile:
		return r.applyFile(sess, it)
	case types.TypePackage:
		return r.applyPackage(sess, it)
	case types.TypeService:
		return r.applyService(sess, it)
	}
	return fmt.Errorf("unknown item type %q", it.Type)
}
