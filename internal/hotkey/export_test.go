package hotkey

import "sync"

func resetInit() {
	initOnce = new(sync.Once)
}

func liveHandles() int {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	return len(handles.m)
}
