package hotkey

import "sync"

// Handle identifies a binding's storage across the native boundary. Zero is
// never issued.
type Handle uintptr

// entry is the type-erased view of a payload[T] held by the handle table.
type entry interface {
	dispatch(keystring string)
	release() error
}

// The handle table is shared by every Binder in the process because the
// trampoline recovers state from the Handle alone.
var handles = struct {
	mu   sync.Mutex
	next Handle
	m    map[Handle]entry
}{
	next: 1,
	m:    map[Handle]entry{},
}

func alloc(e entry) Handle {
	handles.mu.Lock()
	h := handles.next
	handles.next++
	handles.m[h] = e
	handles.mu.Unlock()
	return h
}

func lookup(h Handle) (entry, bool) {
	handles.mu.Lock()
	e, ok := handles.m[h]
	handles.mu.Unlock()
	return e, ok
}

// free removes h from the table and hands the entry back to the caller, who
// becomes its only owner.
func free(h Handle) (entry, bool) {
	handles.mu.Lock()
	e, ok := handles.m[h]
	delete(handles.m, h)
	handles.mu.Unlock()
	return e, ok
}
