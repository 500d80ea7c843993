package reconcile

import (
	"fmt"

	"github.com/eniac111/plumbcfg/internal/types"
)

// InvalidStateError reports an item whose state is outside the enum
// valid for its type. It is detected before any remote action is
// attempted for the item and aborts the whole host run.
type InvalidStateError struct {
	Type   types.ItemType
	Target string
	State  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %q for %s %q", e.State, e.Type, e.Target)
}

// ServiceNotInstalledError reports a service control request for a
// service whose package is not installed on the host.
type ServiceNotInstalledError struct {
	Name string
}

func (e *ServiceNotInstalledError) Error() string {
	return fmt.Sprintf("service %q is not installed, cannot perform any action on it", e.Name)
}

// FileWriteError reports a failed file transfer.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write file %q: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }
