package backend

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maximilian-Winter/pytonium-shell/internal/bridge"
	"github.com/Maximilian-Winter/pytonium-shell/internal/browser"
)

// fakeView is a minimal in-memory browser.View double recording every
// script the bridge asked it to run, so tests can inspect the JS a bound
// backend method's result would have pushed into a real document.
type fakeView struct {
	mu      sync.Mutex
	scripts []string
	onMsg   browser.MessageHandler
}

func (v *fakeView) NativeHandle() uintptr                         { return 0 }
func (v *fakeView) Navigate(string) error                         { return nil }
func (v *fakeView) SetBounds(browser.Bounds) error                { return nil }
func (v *fakeView) Show() error                                   { return nil }
func (v *fakeView) Hide() error                                   { return nil }
func (v *fakeView) OnNavigationComplete(browser.NavigationHandler) {}
func (v *fakeView) Close() error                                   { return nil }

func (v *fakeView) ExecuteScript(js string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scripts = append(v.scripts, js)
	return nil
}

func (v *fakeView) OnMessage(h browser.MessageHandler) {
	v.onMsg = h
}

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

func writeBackend(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "backend.js")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestLoadBindsOwnInstanceMethods(t *testing.T) {
	view := &fakeView{}
	br := bridge.New(view)

	path := writeBackend(t, `
		class WidgetBackend {
			constructor(bridge) {
				this.bridge = bridge;
				this.greet = (name) => "hello " + name;
			}
		}
		WidgetBackend.returnsValue = ["greet"];
	`)

	b, err := Load(path, br)
	require.NoError(t, err)
	defer b.Close()

	view.deliver(`{"type":"function_call","requestId":"r1","namespace":"widget","name":"greet","args":["world"]}`)
	assert.Contains(t, view.lastScript(), "hello world")
}

func TestLoadUnflaggedMethodDoesNotResolve(t *testing.T) {
	view := &fakeView{}
	br := bridge.New(view)

	path := writeBackend(t, `
		class WidgetBackend {
			constructor(bridge) {
				this.tick = () => { return 1; };
			}
		}
	`)

	b, err := Load(path, br)
	require.NoError(t, err)
	defer b.Close()

	view.deliver(`{"type":"function_call","requestId":"r2","namespace":"widget","name":"tick","args":[]}`)
	assert.Empty(t, view.lastScript())
}

func TestLoadMissingClassErrors(t *testing.T) {
	view := &fakeView{}
	br := bridge.New(view)

	path := writeBackend(t, `const x = 1;`)

	_, err := Load(path, br)
	assert.Error(t, err)
}

func TestLoadMissingFileErrors(t *testing.T) {
	view := &fakeView{}
	br := bridge.New(view)

	_, err := Load(filepath.Join(t.TempDir(), "nope.js"), br)
	assert.Error(t, err)
}
