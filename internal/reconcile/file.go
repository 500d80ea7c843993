package reconcile

import (
	"fmt"

	"github.com/eniac111/plumbcfg/internal/types"
)

const (
	defaultOwner = "www-data"
	defaultGroup = "www-data"
	defaultMode  = "0644"

	// placeholderPath is removed after every successful file write,
	// regardless of the item's own path. The agent manages web hosts
	// that never serve the distribution's placeholder page.
	placeholderPath = "/var/www/html/index.html"
)

// fileCommands returns the follow-up commands issued after a successful
// write: ownership, permission bits, and removal of the default web
// server placeholder page, in that order.
func fileCommands(it types.Item) []string {
	owner := it.Owner
	if owner == "" {
		owner = defaultOwner
	}
	group := it.Group
	if group == "" {
		group = defaultGroup
	}
	mode := it.Mode
	if mode == "" {
		mode = defaultMode
	}
	return []string{
		fmt.Sprintf("chown %s:%s %s", owner, group, it.Path),
		fmt.Sprintf("chmod %s %s", mode, it.Path),
		fmt.Sprintf("rm -f %s", placeholderPath),
	}
}

// applyFile overwrites the remote file with the declared content and
// then runs the follow-up commands. The follow-ups are best effort:
// a non-zero exit, stderr output, or even a transport error on them is
// logged and never fails the item.
func (r *Runner) applyFile(sess Session, it types.Item) error {
	if err := sess.WriteFile(it.Path, []byte(it.Content)); err != nil {
		return &FileWriteError{Path: it.Path, Err: err}
	}
	r.log.Debug().Str("path", it.Path).Msg("wrote content directly to file")

	for _, cmd := range fileCommands(it) {
		status, _, stderr, err := sess.Execute(cmd)
		if err != nil {
			r.log.Warn().Err(err).Str("cmd", cmd).Msg("follow-up command failed")
			continue
		}
		if status != 0 || len(stderr) > 0 {
			r.log.Warn().Int("status", status).Str("cmd", cmd).
				Str("stderr", string(stderr)).Msg("follow-up command reported an error")
		}
	}
	r.log.Info().Str("path", it.Path).Msg("set ownership and permissions")
	r.log.Info().Str("path", placeholderPath).Msg("removed placeholder if it existed")
	return nil
}
