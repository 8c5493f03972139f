//go:build !darwin

package permissions

// EnsurePermissions is a no-op outside macOS; X11 and Win32 let any process
// grab global hotkeys.
func EnsurePermissions() error {
	return nil
}
