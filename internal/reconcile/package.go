package reconcile

import (
	"fmt"

	"github.com/eniac111/plumbcfg/internal/types"
)

// packageCommand maps the declared package state to the apt command
// realizing it. Install is idempotent; absent purges and autoremoves.
func packageCommand(it types.Item) (string, bool) {
	switch it.State {
	case "present":
		return fmt.Sprintf("apt-get install -y %s", it.Name), true
	case "absent":
		return fmt.Sprintf("apt-get purge -y %s && apt-get autoremove -y", it.Name), true
	}
	return "", false
}

// applyPackage executes the package command once. Non-empty stderr is
// reported as a warning but does not fail the item; only a transport
// error does.
func (r *Runner) applyPackage(sess Session, it types.Item) error {
	cmd, ok := packageCommand(it)
	if !ok {
		// Unreachable: the runner rejects invalid states before dispatch.
		return &InvalidStateError{Type: it.Type, Target: it.Name, State: it.State}
	}

	r.log.Info().Str("package", it.Name).Str("state", it.State).Msg("managing package")
	_, stdout, stderr, err := sess.Execute(cmd)
	if err != nil {
		return err
	}

	if len(stdout) > 0 {
		r.log.Info().Str("package", it.Name).Msg(string(stdout))
	}
	if len(stderr) > 0 {
		r.log.Warn().Str("package", it.Name).Str("stderr", string(stderr)).
			Msg("package command wrote to stderr")
	}
	return nil
}
