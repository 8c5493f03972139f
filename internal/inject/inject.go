package inject

import (
	"context"
	"strings"
	"time"
)

// Injector delivers a binding's text to the user
type Injector interface {
	// Copy places text on the clipboard
	Copy(ctx context.Context, text string) error
	// Paste copies text and sends the platform paste shortcut, restoring the
	// previous clipboard afterwards
	Paste(ctx context.Context, text string) error
	// Deliver pastes when preferred and supported, and copies otherwise
	Deliver(ctx context.Context, text string) error
}

// Expand fills the placeholders a snippet may contain: {{date}}, {{time}}
// and {{keystring}}.
func Expand(text, keystring string, now time.Time) string {
	return strings.NewReplacer(
		"{{date}}", now.Format("2006-01-02"),
		"{{time}}", now.Format("15:04:05"),
		"{{keystring}}", keystring,
	).Replace(text)
}
