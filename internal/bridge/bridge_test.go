package bridge

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maximilian-Winter/pytonium-shell/internal/browser"
)

// fakeView is a minimal in-memory browser.View double recording every
// script it was asked to execute, so tests can assert on the JS the
// bridge would have pushed into a real WebView2 document.
type fakeView struct {
	mu      sync.Mutex
	scripts []string
	onMsg   browser.MessageHandler
}

func (v *fakeView) NativeHandle() uintptr { return 0 }
func (v *fakeView) Navigate(string) error { return nil }
func (v *fakeView) ExecuteScript(js string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scripts = append(v.scripts, js)
	return nil
}
func (v *fakeView) SetBounds(browser.Bounds) error { return nil }
func (v *fakeView) Show() error                    { return nil }
func (v *fakeView) Hide() error                    { return nil }
func (v *fakeView) OnMessage(h browser.MessageHandler) {
	v.onMsg = h
}
func (v *fakeView) OnNavigationComplete(browser.NavigationHandler) {}
func (v *fakeView) Close() error                                   { return nil }

func (v *fakeView) deliver(raw string) {
	v.onMsg(raw)
}

func (v *fakeView) lastScript() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.scripts) == 0 {
		return ""
	}
	return v.scripts[len(v.scripts)-1]
}

type recordingHandler struct {
	namespace, key string
	value          any
}

func (h *recordingHandler) UpdateState(namespace, key string, value any) {
	h.namespace, h.key, h.value = namespace, key, value
}

func TestSetStatePushesScriptAndStoresValue(t *testing.T) {
	view := &fakeView{}
	b := New(view)

	require.NoError(t, b.State.SetState("clock", "time", "10:32"))
	assert.Contains(t, view.lastScript(), "__pytonium_state")
	assert.Contains(t, view.lastScript(), `"clock"`)
	assert.Equal(t, "10:32", b.State.Snapshot("clock")["time"])
}

func TestStateWriteFromWebNotifiesHandler(t *testing.T) {
	view := &fakeView{}
	b := New(view)

	h := &recordingHandler{}
	b.State.AddStateHandler(h, []string{"sysbar"})

	view.deliver(`{"type":"state_write","namespace":"sysbar","key":"cpu","value":42}`)

	assert.Equal(t, "sysbar", h.namespace)
	assert.Equal(t, "cpu", h.key)
	assert.EqualValues(t, 42, h.value)
}

func TestFunctionCallResolvesWithResult(t *testing.T) {
	view := &fakeView{}
	b := New(view)

	b.Functions.Bind(Binding{
		Namespace: "sysbar",
		Name:      "double",
		Returns:   ReturnValue,
		Fn: func(args []json.RawMessage) (any, error) {
			var n int
			if err := json.Unmarshal(args[0], &n); err != nil {
				return nil, err
			}
			return n * 2, nil
		},
	})

	view.deliver(`{"type":"function_call","requestId":"r1","namespace":"sysbar","name":"double","args":[21]}`)

	assert.Contains(t, view.lastScript(), "__pytonium_resolve")
	assert.Contains(t, view.lastScript(), `"r1"`)
	assert.Contains(t, view.lastScript(), "42")
}

func TestFunctionCallRejectsOnError(t *testing.T) {
	view := &fakeView{}
	b := New(view)

	b.Functions.Bind(Binding{
		Namespace: "sysbar",
		Name:      "boom",
		Returns:   ReturnValue,
		Fn: func(args []json.RawMessage) (any, error) {
			return nil, fmt.Errorf("kaboom")
		},
	})

	view.deliver(`{"type":"function_call","requestId":"r2","namespace":"sysbar","name":"boom","args":[]}`)

	assert.Contains(t, view.lastScript(), "__pytonium_reject")
	assert.Contains(t, view.lastScript(), "kaboom")
}

func TestFunctionCallUnknownBindingRejects(t *testing.T) {
	view := &fakeView{}
	b := New(view)

	view.deliver(`{"type":"function_call","requestId":"r3","namespace":"sysbar","name":"missing","args":[]}`)

	assert.Contains(t, view.lastScript(), "__pytonium_reject")
	assert.Contains(t, view.lastScript(), "no function bound")
}

func TestBindObjectMethodsReflectsExportedMethods(t *testing.T) {
	view := &fakeView{}
	b := New(view)

	b.Functions.BindObjectMethods("clock", &clockBackend{})

	view.deliver(`{"type":"function_call","requestId":"r4","namespace":"clock","name":"Greet","args":["world"]}`)

	assert.Contains(t, view.lastScript(), "__pytonium_resolve")
	assert.Contains(t, view.lastScript(), "hello world")
}

type clockBackend struct{}

func (c *clockBackend) Greet(name string) (string, error) {
	return "hello " + name, nil
}
