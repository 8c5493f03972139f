package hotkey

import "fmt"

type mockBinding struct {
	handler Trampoline
	data    Handle
}

// mockNative stands in for the native library. It keeps the same
// keystring -> (trampoline, handle) table the real library does and appends
// every call to a shared journal.
type mockNative struct {
	supported bool
	accept    bool
	inits     int
	cooked    []bool
	eventTime uint32

	bound      map[string]mockBinding
	unbinds    []string
	unbindAlls []string
	journal    *[]string
}

func newMockNative(journal *[]string) *mockNative {
	if journal == nil {
		journal = &[]string{}
	}
	return &mockNative{
		supported: true,
		accept:    true,
		bound:     map[string]mockBinding{},
		journal:   journal,
	}
}

func (m *mockNative) Supported() bool { return m.supported }

func (m *mockNative) Init() { m.inits++ }

func (m *mockNative) SetUseCookedAccelerators(useCooked bool) {
	m.cooked = append(m.cooked, useCooked)
}

func (m *mockNative) Bind(keystring string, handler Trampoline, data Handle) bool {
	*m.journal = append(*m.journal, "bind:"+keystring)
	if !m.accept {
		return false
	}
	m.bound[keystring] = mockBinding{handler: handler, data: data}
	return true
}

func (m *mockNative) Unbind(keystring string) {
	*m.journal = append(*m.journal, "unbind:"+keystring)
	m.unbinds = append(m.unbinds, keystring)
	delete(m.bound, keystring)
}

func (m *mockNative) UnbindAll(keystring string) {
	*m.journal = append(*m.journal, "unbind-all:"+keystring)
	m.unbindAlls = append(m.unbindAlls, keystring)
	delete(m.bound, keystring)
}

func (m *mockNative) CurrentEventTime() uint32 { return m.eventTime }

// press simulates the native library detecting keystring. It reports false
// when keystring is not bound natively.
func (m *mockNative) press(keystring string) bool {
	b, ok := m.bound[keystring]
	if !ok {
		return false
	}
	b.handler(keystring, b.data)
	return true
}

func (m *mockNative) knows(keystring string) bool {
	_, ok := m.bound[keystring]
	return ok
}

// tracked is binding data that records its own release.
type tracked struct {
	id    string
	value int
	rec   *recorder
}

func (t tracked) Close() error {
	return t.rec.closed(t.id)
}

type recorder struct {
	journal *[]string
	closes  map[string]int
	onClose func(id string)
	err     error
}

func newRecorder() *recorder {
	return &recorder{journal: &[]string{}, closes: map[string]int{}}
}

func (r *recorder) closed(id string) error {
	r.closes[id]++
	*r.journal = append(*r.journal, "release:"+id)
	if r.onClose != nil {
		r.onClose(id)
	}
	if r.err != nil {
		return fmt.Errorf("%s: %w", id, r.err)
	}
	return nil
}
