// Package notifier delivers reminders through the local chorewheel-agent
// process (the chat-bridge that owns the actual messaging credentials). The
// agent writes a lockfile containing "port|pid|secret"; the notifier
// validates the process is really the agent before posting to it.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/chorewheel/internal/constants"
)

var findProcessFunc = ps.FindProcess

// DeliveryError wraps any failure between the notifier and the agent. A
// delivery failure never cancels later reminders; callers log and move on.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

type Notifier struct {
	configDir string
}

type webhookPayload struct {
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// New creates a Notifier that looks for the agent lockfile in configDir.
func New(configDir string) *Notifier {
	return &Notifier{configDir: configDir}
}

// Notify sends a message to the participant identified by externalID.
func (n *Notifier) Notify(externalID, message string) error {
	lockfile := filepath.Join(n.configDir, constants.AgentLockfileName)
	port, secret, err := findAndValidateAgent(lockfile)
	if err != nil {
		return &DeliveryError{Recipient: externalID, Err: err}
	}

	payload := webhookPayload{Recipient: externalID, Text: message}
	if err := sendNotification(port, secret, payload); err != nil {
		return &DeliveryError{Recipient: externalID, Err: err}
	}
	return nil
}

func findAndValidateAgent(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("chorewheel-agent is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("chorewheel-agent process not running")
	}
	if !strings.HasPrefix(process.Executable(), constants.AgentExecutablePrefix) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.AgentExecutablePrefix, process.Executable())
	}

	return port, secret, nil
}

func sendNotification(port string, secret string, payload webhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s/notify", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Chorewheel-Secret", secret)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
