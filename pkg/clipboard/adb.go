package clipboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// bridge is the slice of adb.Manager the shell transport needs.
type bridge interface {
	Shell(ctx context.Context, command string) (string, error)
	Forward(ctx context.Context, port int) error
}

// shellTransport drives the portal's content provider through adb shell.
type shellTransport struct {
	bridge    bridge
	authority string
}

func newShellTransport(b bridge, authority string) *shellTransport {
	return &shellTransport{bridge: b, authority: authority}
}

func (t *shellTransport) Name() string { return "adb" }

func (t *shellTransport) Get(ctx context.Context) (string, bool, error) {
	command := fmt.Sprintf("content query --uri content://%s/clipboard/get", t.authority)
	out, err := t.bridge.Shell(ctx, command)
	if err != nil {
		return "", false, fmt.Errorf("ADB GET failed: %w", err)
	}

	text, ok, err := parseQueryOutput(out)
	if err != nil {
		return "", false, fmt.Errorf("ADB GET failed: %w", err)
	}
	return text, ok, nil
}

// parseQueryOutput scans content-query output for a "result=" marker and
// decodes the JSON payload after it. No marker, or a payload without
// success status, means no content rather than an error.
func parseQueryOutput(out string) (string, bool, error) {
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		idx := strings.Index(line, "result=")
		if idx < 0 {
			continue
		}
		payload := line[idx+len("result="):]

		var resp providerResponse
		if err := json.Unmarshal([]byte(payload), &resp); err != nil {
			return "", false, fmt.Errorf("decode result payload: %w", err)
		}
		if resp.Status == statusSuccess {
			return resp.Data, true, nil
		}
	}
	return "", false, nil
}

// Set inserts text through the content provider. Success is judged by
// the exit code alone: Android denies clipboard reads to unfocused apps,
// so a read-back verification would produce false negatives.
func (t *shellTransport) Set(ctx context.Context, text string) error {
	command := fmt.Sprintf(
		"content insert --uri content://%s/clipboard/set --bind 'text:s:%s'",
		t.authority, escapeBindValue(text),
	)
	if _, err := t.bridge.Shell(ctx, command); err != nil {
		return fmt.Errorf("ADB SET failed: %w", err)
	}
	return nil
}

// escapeBindValue makes text safe inside the single-quoted --bind
// argument: backslashes are doubled first, then each single quote becomes
// '\'' (close the quote, escaped literal quote, reopen the quote).
func escapeBindValue(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	return strings.ReplaceAll(text, `'`, `'\''`)
}
