// Package reconcile drives a remote host toward the state declared by
// an ordered list of configuration items.
package reconcile

// Session is the remote channel the reconciler acts through. The
// connection must already be established; authentication and host key
// policy are the caller's concern.
type Session interface {
	// Execute runs a command and returns its exit status plus captured
	// stdout and stderr. A non-zero exit status is not an error.
	Execute(cmd string) (exitStatus int, stdout, stderr []byte, err error)
	// WriteFile overwrites the remote file at path with content.
	WriteFile(path string, content []byte) error
	Close() error
}
