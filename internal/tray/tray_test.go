package tray

import (
	"testing"

	"github.com/petems/keybinder-tray/internal/app"
	"github.com/petems/keybinder-tray/internal/config"
)

func TestEmojiForStatus(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"idle", "🟢"},
		{"fired", "🔵"},
		{"error", "⚪️"},
		{"unknown", "🟢"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := emojiForStatus(tt.status); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestBindingLabel(t *testing.T) {
	tests := []struct {
		name string
		st   app.BindingStatus
		want string
	}{
		{
			name: "bound",
			st:   app.BindingStatus{Binding: config.Binding{Keystring: "<Ctrl>e", Action: config.ActionCopy}, Bound: true},
			want: "<Ctrl>e → copy",
		},
		{
			name: "rejected",
			st:   app.BindingStatus{Binding: config.Binding{Keystring: "<Ctrl>e", Action: config.ActionLog}},
			want: "<Ctrl>e → log (not grabbed)",
		},
		{
			name: "pressed",
			st:   app.BindingStatus{Binding: config.Binding{Keystring: "F9", Action: config.ActionCopy}, Bound: true, Presses: 3},
			want: "F9 → copy ×3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bindingLabel(tt.st); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
