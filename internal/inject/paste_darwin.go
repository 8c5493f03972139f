//go:build darwin && cgo

package inject

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static void postKey(CGEventSourceRef source, CGKeyCode key, bool down, CGEventFlags flags) {
    CGEventRef ev = CGEventCreateKeyboardEvent(source, key, down);
    CGEventSetFlags(ev, flags);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
}

// Cmd+V: 55 is Command, 9 is V.
static int sendPasteShortcut() {
    CGEventSourceRef source = CGEventSourceCreate(kCGEventSourceStateHIDSystemState);
    if (source == NULL) {
        return 0;
    }
    postKey(source, 55, true, kCGEventFlagMaskCommand);
    postKey(source, 9, true, kCGEventFlagMaskCommand);
    postKey(source, 9, false, kCGEventFlagMaskCommand);
    postKey(source, 55, false, 0);
    CFRelease(source);
    return 1;
}
*/
import "C"

import "errors"

// sendPasteShortcut sends Cmd+V on macOS
func sendPasteShortcut() error {
	if C.sendPasteShortcut() == 0 {
		return errors.New("failed to create event source")
	}
	return nil
}
