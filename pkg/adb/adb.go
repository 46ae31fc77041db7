// Package adb wraps the Android device bridge binary. Every call spawns
// one adb process, waits for it, and returns its combined output; nothing
// is held open between calls.
package adb

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"droidclip/pkg/logger"
)

// Manager encapsulates device bridge invocations and path configuration.
type Manager struct {
	// Path is the adb binary location. Empty means look up "adb" on PATH.
	Path string
	// Serial selects a device when more than one is attached, injected
	// as "-s <serial>".
	Serial string
}

func NewManager(path, serial string) *Manager {
	return &Manager{Path: path, Serial: serial}
}

func (m *Manager) bin() string {
	if m.Path != "" {
		return m.Path
	}
	return "adb"
}

// IsAvailable reports whether the adb binary can be invoked at all.
func (m *Manager) IsAvailable() bool {
	if m.Path != "" {
		if _, err := os.Stat(m.Path); err == nil {
			return true
		}
		return false
	}
	_, err := exec.LookPath("adb")
	return err == nil
}

// Exec runs adb with the provided args and returns combined output. The
// serial, when set, is injected before the args.
func (m *Manager) Exec(ctx context.Context, args ...string) (string, error) {
	verb := args[0]
	args = withSerial(m.Serial, args)

	logger.Debug().Str("bin", m.bin()).Strs("args", args).Msg("exec adb")

	cmd := exec.CommandContext(ctx, m.bin(), args...)
	cmd.Env = os.Environ()

	out, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return string(out), ctx.Err()
	}
	if err != nil {
		return string(out), fmt.Errorf("adb %s: %w: %s", verb, err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// Shell runs a single shell command string on the device. The command is
// passed as one argument, so quoting inside it reaches the device shell
// intact.
func (m *Manager) Shell(ctx context.Context, command string) (string, error) {
	return m.Exec(ctx, "shell", command)
}

func withSerial(serial string, args []string) []string {
	if strings.TrimSpace(serial) == "" {
		return args
	}
	return append([]string{"-s", serial}, args...)
}

// Forward maps a device-local TCP port onto the host loopback interface.
func (m *Manager) Forward(ctx context.Context, port int) error {
	spec := fmt.Sprintf("tcp:%d", port)
	_, err := m.Exec(ctx, "forward", spec, spec)
	return err
}
