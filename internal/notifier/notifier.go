// Package notifier hands reminders to the praxable tray app, which shows them
// as desktop notifications.
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

	"github.com/praxable/praxable-cli/internal/constants"
)

const (
	trayExecutablePrefix = "praxable-tray"
	secretHeader         = "X-Praxable-Secret"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	ErrTrayNotRunning = errors.New("praxable-tray is not running")
)

// Tray posts notifications to the tray app's local webhook.
type Tray struct {
	client *http.Client
}

// Payload is the webhook body understood by the tray app.
type Payload struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// Endpoint is where a running tray app listens.
type Endpoint struct {
	Port   int
	Secret string
}

func (e Endpoint) url() string {
	return "http://127.0.0.1:" + strconv.Itoa(e.Port)
}

// New returns a tray notifier.
func New() *Tray {
	return &Tray{client: &http.Client{Timeout: 5 * time.Second}}
}

// Notify discovers the running tray app and asks it to show title and body.
func (n *Tray) Notify(ctx context.Context, title, body string) error {
	dir, err := TrayConfigDir()
	if err != nil {
		return err
	}

	ep, err := Discover(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	return n.send(ctx, ep, Payload{
		Title:      title,
		Text:       body,
		DurationMs: constants.NotificationDurationMs,
	})
}

// TrayConfigDir returns the directory holding the tray app's lockfile. The
// tray's settings.json may point it elsewhere via lockfile_dir.
func TrayConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayDir, "settings.json"))
	if err != nil {
		return trayDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil && store.Settings.LockfileDir != "" {
		return store.Settings.LockfileDir, nil
	}
	return trayDir, nil
}

// ParseLockfile reads a "port|pid|secret" lockfile line.
func ParseLockfile(content string) (Endpoint, int, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return Endpoint{}, 0, errors.New("lockfile is malformed")
	}

	portStr := strings.TrimSpace(parts[0])
	if portStr == "" {
		return Endpoint{}, 0, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Endpoint{}, 0, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return Endpoint{}, 0, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || pid <= 0 {
		return Endpoint{}, 0, errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return Endpoint{}, 0, errors.New("secret in lockfile is empty")
	}

	return Endpoint{Port: port, Secret: secret}, pid, nil
}

// Discover reads the lockfile and confirms its pid belongs to a live tray app.
func Discover(lockfilePath string) (Endpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return Endpoint{}, ErrTrayNotRunning
	}

	ep, pid, err := ParseLockfile(string(content))
	if err != nil {
		return Endpoint{}, err
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return Endpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), trayExecutablePrefix) {
		return Endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, trayExecutablePrefix, process.Executable())
	}

	return ep, nil
}

func (n *Tray) send(ctx context.Context, ep Endpoint, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.url(), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, ep.Secret)

	res, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach tray app: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
}
