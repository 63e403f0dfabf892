package tmux

import (
	"os"
	"strings"
)

// CurrentClientID returns the client that owns the pane in TMUX_PANE so
// switch-client targets the visible terminal rather than the control-mode
// connection. It returns "" when the client cannot be determined.
func CurrentClientID(socketPath string) string {
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	if target == "" {
		return ""
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return ""
	}
	defer client.Close()
	name, err := client.DisplayMessage(target, "#{client_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

// CurrentWindowID returns the window holding TMUX_PANE, or "".
func CurrentWindowID(socketPath string) string {
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	if target == "" {
		return ""
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return ""
	}
	defer client.Close()
	id, err := client.DisplayMessage(target, "#{window_id}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(id)
}
