package reconcile

import (
	"bytes"
	"fmt"

	"github.com/eniac111/plumbcfg/internal/types"
)

// installCheckCommand queries the host's package index for an exact
// match on the service's package name.
func installCheckCommand(name string) string {
	return fmt.Sprintf("dpkg -l | awk '$2 == \"%s\"'", name)
}

// serviceCommand maps a control verb to its systemctl invocation.
func serviceCommand(it types.Item) (string, bool) {
	switch it.State {
	case "start", "stop", "restart", "reload":
		return fmt.Sprintf("systemctl %s %s", it.State, it.Name), true
	}
	return "", false
}

// isInstalled reports whether the named package appears in the host's
// package index. A query that errors or returns no output counts as
// not installed; the query is never retried.
func (r *Runner) isInstalled(sess Session, name string) bool {
	status, stdout, _, err := sess.Execute(installCheckCommand(name))
	if err != nil {
		r.log.Error().Err(err).Str("service", name).
			Msg("an error occurred while checking service installation")
		return false
	}
	if status != 0 {
		return false
	}
	return len(bytes.TrimSpace(stdout)) > 0
}

// applyService checks the install precondition and then dispatches the
// control verb. Success is assumed once the command is dispatched
// without a transport error; the unit's status is not polled.
func (r *Runner) applyService(sess Session, it types.Item) error {
	if !r.isInstalled(sess, it.Name) {
		return &ServiceNotInstalledError{Name: it.Name}
	}

	cmd, ok := serviceCommand(it)
	if !ok {
		// Unreachable: the runner rejects invalid states before dispatch.
		return &InvalidStateError{Type: it.Type, Target: it.Name, State: it.State}
	}

	r.log.Info().Str("service", it.Name).Str("state", it.State).Msg("managing service")
	if _, _, _, err := sess.Execute(cmd); err != nil {
		return err
	}
	return nil
}
