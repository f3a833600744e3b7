// Package notify is the notification collaborator: desktop notifications and
// a terminal bell for timer completions and due-date reminders. Callers never
// depend on delivery succeeding.
package notify

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

type Notification struct {
	Title string
	Body  string
	Level string
}

type Notifier interface {
	Send(Notification) error
}

type Noop struct{}

func (Noop) Send(Notification) error { return nil }

// Desktop shells out to the platform notifier. Unsupported platforms are a
// silent no-op.
type Desktop struct{}

func (Desktop) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Bell writes the terminal bell, the closest a TUI gets to the original's
// completion sound.
type Bell struct{}

func (Bell) Send(Notification) error {
	_, err := fmt.Fprint(os.Stderr, "\a")
	return err
}

// Multi fans a notification out to several notifiers, returning the first
// error after trying all of them.
type Multi []Notifier

func (m Multi) Send(n Notification) error {
	var firstErr error
	for _, notifier := range m {
		if err := notifier.Send(n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
