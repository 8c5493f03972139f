//go:build darwin

package permissions

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation
#import <ApplicationServices/ApplicationServices.h>
#import <Foundation/Foundation.h>

int checkAccessibilityPermission(int prompt) {
    NSDictionary *options = @{(__bridge id)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}
*/
import "C"

import (
	"errors"
	"fmt"
)

var errAccessibility = errors.New("accessibility permission not granted")

// CheckAccessibility reports whether the process may register global hotkeys
// and post paste keystrokes. With prompt set, macOS shows its approval dialog.
func CheckAccessibility(prompt bool) bool {
	p := C.int(0)
	if prompt {
		p = 1
	}
	return C.checkAccessibilityPermission(p) == 1
}

// EnsurePermissions checks and requests all required permissions
func EnsurePermissions() error {
	if !CheckAccessibility(true) {
		fmt.Println("⚠️  Accessibility permission required for global hotkeys")
		fmt.Println("   Go to: System Settings → Privacy & Security → Accessibility")
		return errAccessibility
	}
	return nil
}
