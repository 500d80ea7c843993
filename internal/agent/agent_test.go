package agent

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eniac111/plumbcfg/internal/config"
	"github.com/eniac111/plumbcfg/internal/reconcile"
	"github.com/eniac111/plumbcfg/internal/types"
)

type fakeSession struct {
	execErr error
	closed  int
}

func (s *fakeSession) Execute(cmd string) (int, []byte, []byte, error) {
	if s.execErr != nil {
		return -1, nil, nil, s.execErr
	}
	return 0, nil, nil, nil
}

func (s *fakeSession) WriteFile(path string, content []byte) error { return nil }

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

func testAgent(items []types.Item) *Agent {
	creds := config.Credentials{Username: "deploy", Password: "hunter2"}
	return New(items, creds, zerolog.Nop())
}

// A fatal abort on the first host must not stop the second host from
// being dialed and processed.
func TestHostsProcessedIndependently(t *testing.T) {
	items := []types.Item{{Type: types.TypePackage, Name: "nginx", State: "present"}}
	a := testAgent(items)

	sessions := map[string]*fakeSession{
		"web1": {execErr: errors.New("ssh: session failed")},
		"web2": {},
	}
	var dialed []string
	a.dial = func(h types.Host) (reconcile.Session, error) {
		dialed = append(dialed, h.Name)
		return sessions[h.Name], nil
	}

	outcomes := a.Run(types.Inventory{Servers: []types.Server{{Host: "web1"}, {Host: "web2"}}})
	if len(dialed) != 2 {
		t.Fatalf("dialed %v, want both hosts", dialed)
	}
	if outcomes[0].Status != types.RunAborted {
		t.Errorf("host 1 status = %q, want aborted", outcomes[0].Status)
	}
	if outcomes[1].Status != types.RunCompleted {
		t.Errorf("host 2 status = %q, want completed", outcomes[1].Status)
	}
	for name, sess := range sessions {
		if sess.closed != 1 {
			t.Errorf("session for %s closed %d times, want 1", name, sess.closed)
		}
	}
}

// A failed connection aborts that host's run before any item is
// processed, and the next host is still attempted.
func TestDialFailureAbortsOnlyThatHost(t *testing.T) {
	items := []types.Item{{Type: types.TypeFile, Path: "/etc/motd", Content: "x"}}
	a := testAgent(items)

	good := &fakeSession{}
	a.dial = func(h types.Host) (reconcile.Session, error) {
		if h.Name == "web1" {
			return nil, errors.New("ssh: handshake failed")
		}
		return good, nil
	}

	outcomes := a.Run(types.Inventory{Servers: []types.Server{{Host: "web1"}, {Host: "web2"}}})
	if outcomes[0].Status != types.RunAborted || outcomes[0].Err == nil {
		t.Errorf("host 1 outcome = %+v, want aborted with error", outcomes[0])
	}
	if outcomes[1].Status != types.RunCompleted {
		t.Errorf("host 2 status = %q, want completed", outcomes[1].Status)
	}
}

// Credentials from the environment apply to every host uniformly.
func TestCredentialsAppliedToEveryHost(t *testing.T) {
	a := testAgent(nil)

	var hosts []types.Host
	a.dial = func(h types.Host) (reconcile.Session, error) {
		hosts = append(hosts, h)
		return &fakeSession{}, nil
	}

	a.Run(types.Inventory{Servers: []types.Server{{Host: "web1"}, {Host: "web2", Port: 2222}}})
	if len(hosts) != 2 {
		t.Fatalf("dialed %d hosts, want 2", len(hosts))
	}
	for _, h := range hosts {
		if h.User != "deploy" || h.Password != "hunter2" {
			t.Errorf("host %s dialed with %q/%q", h.Name, h.User, h.Password)
		}
	}
	if hosts[1].Port != 2222 {
		t.Errorf("port = %d, want 2222 carried from inventory", hosts[1].Port)
	}
}
