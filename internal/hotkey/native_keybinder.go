//go:build linux && cgo

package hotkey

/*
#cgo pkg-config: keybinder-3.0
#include <stdint.h>
#include <stdlib.h>
#include <glib.h>
#include <keybinder.h>

extern void goKeybinderHandler(char *keystring, uintptr_t data);

static void keybinderShim(const char *keystring, void *data) {
    goKeybinderHandler((char *)keystring, (uintptr_t)data);
}

static gboolean bindKey(const char *keystring, uintptr_t data) {
    return keybinder_bind(keystring, keybinderShim, (void *)data);
}

static void unbindKey(const char *keystring) {
    keybinder_unbind(keystring, keybinderShim);
}

extern void goMainThreadCall(uintptr_t id);

static gboolean mainThreadShim(gpointer id) {
    goMainThreadCall((uintptr_t)id);
    return G_SOURCE_REMOVE;
}

static void scheduleMainThread(uintptr_t id) {
    g_idle_add(mainThreadShim, (gpointer)id);
}

static gboolean acquireMainContext(void) {
    return g_main_context_acquire(g_main_context_default());
}

static void releaseMainContext(void) {
    g_main_context_release(g_main_context_default());
}
*/
import "C"

import (
	"runtime"
	"strings"
	"sync"
	"unsafe"
)

// keybinderNative talks to libkeybinder-3.0. GTK must be initialized, and its
// main loop running, for bindings to fire; the tray takes care of both. Calls
// from other goroutines must go through onMainThread.
type keybinderNative struct{}

func platformNative() Native {
	return keybinderNative{}
}

//export goKeybinderHandler
func goKeybinderHandler(keystring *C.char, data C.uintptr_t) {
	trampoline(C.GoString(keystring), Handle(data))
}

// mainCalls holds functions queued for the GLib main loop, keyed by the id
// passed through g_idle_add.
var mainCalls = struct {
	mu   sync.Mutex
	next uintptr
	m    map[uintptr]func()
}{m: map[uintptr]func(){}}

//export goMainThreadCall
func goMainThreadCall(id C.uintptr_t) {
	mainCalls.mu.Lock()
	fn := mainCalls.m[uintptr(id)]
	delete(mainCalls.m, uintptr(id))
	mainCalls.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// onMainThread runs fn directly when this thread can own the default main
// context: either it already does (a dispatch is calling us) or no loop is
// running. Otherwise fn is queued on the running loop.
func onMainThread(fn func()) {
	runtime.LockOSThread()
	if C.acquireMainContext() != 0 {
		defer runtime.UnlockOSThread()
		defer C.releaseMainContext()
		fn()
		return
	}
	runtime.UnlockOSThread()

	done := make(chan struct{})
	mainCalls.mu.Lock()
	mainCalls.next++
	id := mainCalls.next
	mainCalls.m[id] = func() {
		defer close(done)
		fn()
	}
	mainCalls.mu.Unlock()

	C.scheduleMainThread(C.uintptr_t(id))
	<-done
}

func (keybinderNative) Supported() bool {
	return C.keybinder_supported() != 0
}

func (keybinderNative) Init() {
	C.keybinder_init()
}

func (keybinderNative) SetUseCookedAccelerators(useCooked bool) {
	C.keybinder_set_use_cooked_accelerators(cBool(useCooked))
}

// Bind ignores handler: the C shim always enters Go through
// goKeybinderHandler, which forwards to trampoline.
func (keybinderNative) Bind(keystring string, _ Trampoline, data Handle) bool {
	cs, ok := cString(keystring)
	if !ok {
		return false
	}
	defer C.free(unsafe.Pointer(cs))
	return C.bindKey(cs, C.uintptr_t(data)) != 0
}

func (keybinderNative) Unbind(keystring string) {
	cs, ok := cString(keystring)
	if !ok {
		return
	}
	defer C.free(unsafe.Pointer(cs))
	C.unbindKey(cs)
}

func (keybinderNative) UnbindAll(keystring string) {
	cs, ok := cString(keystring)
	if !ok {
		return
	}
	defer C.free(unsafe.Pointer(cs))
	C.keybinder_unbind_all(cs)
}

func (keybinderNative) CurrentEventTime() uint32 {
	return uint32(C.keybinder_get_current_event_time())
}

// cString refuses keystrings with an embedded NUL; C would silently truncate
// them into a different accelerator.
func cString(s string) (*C.char, bool) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, false
	}
	return C.CString(s), true
}

func cBool(b bool) C.gboolean {
	if b {
		return 1
	}
	return 0
}
