//go:build !(darwin && cgo)

package inject

// sendPasteShortcut is only implemented for macOS; elsewhere Deliver falls
// back to a plain clipboard copy.
func sendPasteShortcut() error {
	return errPasteUnsupported
}
