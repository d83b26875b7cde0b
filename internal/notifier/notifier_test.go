package notifier

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid        int
	executable string
}

func (p *fakeProcess) Pid() int           { return p.pid }
func (p *fakeProcess) PPid() int          { return 0 }
func (p *fakeProcess) Executable() string { return p.executable }

func stubProcess(t *testing.T, executable string) {
	t.Helper()
	orig := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &fakeProcess{pid: pid, executable: executable}, nil
	}
	t.Cleanup(func() { findProcessFunc = orig })
}

func writeLockfile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "agent.lock"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestFindAndValidateAgent(t *testing.T) {
	cases := []struct {
		name     string
		lockfile string
	}{
		{"wrong field count", "8080|1234"},
		{"non-numeric port", "eighty|1234|secret"},
		{"port out of range", "70000|1234|secret"},
		{"non-numeric pid", "8080|agent|secret"},
		{"empty secret", "8080|1234| "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeLockfile(t, dir, tc.lockfile)
			stubProcess(t, "chorewheel-agent")

			if _, _, err := findAndValidateAgent(filepath.Join(dir, "agent.lock")); err == nil {
				t.Errorf("lockfile %q validated, want error", tc.lockfile)
			}
		})
	}

	t.Run("missing lockfile", func(t *testing.T) {
		if _, _, err := findAndValidateAgent(filepath.Join(t.TempDir(), "agent.lock")); err == nil {
			t.Error("missing lockfile validated, want error")
		}
	})

	t.Run("pid belongs to another executable", func(t *testing.T) {
		dir := t.TempDir()
		writeLockfile(t, dir, "8080|1234|secret")
		stubProcess(t, "sshd")

		if _, _, err := findAndValidateAgent(filepath.Join(dir, "agent.lock")); err == nil {
			t.Error("foreign process validated, want error")
		}
	})

	t.Run("valid lockfile", func(t *testing.T) {
		dir := t.TempDir()
		writeLockfile(t, dir, "8080|1234|topsecret")
		stubProcess(t, "chorewheel-agent")

		port, secret, err := findAndValidateAgent(filepath.Join(dir, "agent.lock"))
		if err != nil {
			t.Fatalf("validation failed: %v", err)
		}
		if port != "8080" || secret != "topsecret" {
			t.Errorf("parsed (%s, %s), want (8080, topsecret)", port, secret)
		}
	})
}

func TestNotify(t *testing.T) {
	var gotSecret string
	var gotPayload webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Chorewheel-Secret")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	_, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	writeLockfile(t, dir, port+"|1234|topsecret")
	stubProcess(t, "chorewheel-agent")

	n := New(dir)
	if err := n.Notify("id-alice", "reminder text"); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if gotSecret != "topsecret" {
		t.Errorf("secret header = %s, want topsecret", gotSecret)
	}
	if gotPayload.Recipient != "id-alice" || gotPayload.Text != "reminder text" {
		t.Errorf("payload = %+v", gotPayload)
	}
}

func TestNotifyWithoutAgent(t *testing.T) {
	n := New(t.TempDir())

	err := n.Notify("id-alice", "reminder text")
	var deliveryErr *DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Fatalf("error = %v, want *DeliveryError", err)
	}
	if deliveryErr.Recipient != "id-alice" {
		t.Errorf("recipient = %s, want id-alice", deliveryErr.Recipient)
	}
}
