// Package notifier delivers focus-timer alerts: through the companion tray
// app's local webhook when it is running, or as a terminal bell.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

var (
	ErrTrayNotRunning    = errors.New(constants.TrayExecutablePrefix + " is not running")
	ErrMalformedLockfile = errors.New("lockfile is malformed")
)

// WebhookPayload is the body posted to the tray app. Action is empty for a
// plain toast.
type WebhookPayload struct {
	Text       string `json:"text,omitempty"`
	DurationMs uint32 `json:"duration_ms,omitempty"`
	Action     string `json:"action,omitempty"`
}

// Tray talks to the tray app found through its lockfile.
type Tray struct {
	Client  *http.Client
	Timeout time.Duration
}

func New() *Tray {
	return &Tray{Client: &http.Client{}, Timeout: 3 * time.Second}
}

func (n *Tray) NotifyTimerComplete(label string) error {
	text := "Focus session complete"
	if label = strings.TrimSpace(label); label != "" {
		text += ": " + label
	}
	return n.Notify(text)
}

func (n *Tray) Notify(text string) error {
	return n.post(WebhookPayload{Text: text, DurationMs: constants.NotificationDurationMs})
}

// RequestForeground asks the tray app to raise the terminal window.
func (n *Tray) RequestForeground() error {
	return n.post(WebhookPayload{Action: constants.NotifyActionForeground})
}

func (n *Tray) post(payload WebhookPayload) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}
	port, secret, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.Timeout)
	defer cancel()
	return sendNotification(ctx, n.Client, port, secret, payload)
}

// GetTrayAppConfigDir returns the directory holding the tray lockfile. The
// tray app may point it elsewhere through lockfile_dir in its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Warn("ignoring unreadable tray settings", "error", err)
		return trayConfigDir, nil
	}
	if d := store.Settings.LockfileDir; d != nil && *d != "" {
		return *d, nil
	}
	return trayConfigDir, nil
}

// findAndValidateTrayProcess reads a "port|pid|secret" lockfile and checks
// that pid is still the tray app.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", ErrMalformedLockfile
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", fmt.Errorf("%w: port is empty", ErrMalformedLockfile)
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid port %q", ErrMalformedLockfile, port)
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("%w: port %d is outside 1-65535", ErrMalformedLockfile, portNum)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid process ID", ErrMalformedLockfile)
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return "", "", fmt.Errorf("%w: secret is empty", ErrMalformedLockfile)
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return port, secret, nil
}

func sendNotification(ctx context.Context, client *http.Client, port, secret string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://127.0.0.1:"+port, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.NotifySecretHeader, secret)

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
}
