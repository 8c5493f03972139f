//go:build !(linux && cgo) && !(darwin && cgo) && !windows

package hotkey

// stubNative is used where no global hotkey backend is compiled in; New
// always fails with ErrUnsupported.
type stubNative struct{}

func platformNative() Native {
	return stubNative{}
}

func (stubNative) Supported() bool                      { return false }
func (stubNative) Init()                                {}
func (stubNative) SetUseCookedAccelerators(bool)        {}
func (stubNative) Bind(string, Trampoline, Handle) bool { return false }
func (stubNative) Unbind(string)                        {}
func (stubNative) UnbindAll(string)                     {}
func (stubNative) CurrentEventTime() uint32             { return 0 }

// onMainThread runs fn directly; there is no dispatch to race.
func onMainThread(fn func()) {
	fn()
}
