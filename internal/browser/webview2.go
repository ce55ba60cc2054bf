// Concrete Windows adapter over github.com/wailsapp/go-webview2/pkg/edge,
// grounded on the Chromium lifecycle calls used in
// other_examples/5537904a_zhimaAi-ChatClaw (pkg/webviewpanel/panel_windows.go):
// edge.NewChromium, Embed, Resize, MessageCallback,
// NavigationCompletedCallback, Navigate/NavigateToString, Eval, Show/Hide.
package browser

import (
	"context"
	"fmt"
	"sync"
	"unsafe"

	"github.com/wailsapp/go-webview2/pkg/edge"
	"golang.org/x/sys/windows"
)

var (
	modUser32        = windows.NewLazySystemDLL("user32.dll")
	procPeekMessageW = modUser32.NewProc("PeekMessageW")
	procTranslateMsg = modUser32.NewProc("TranslateMessage")
	procDispatchMsgW = modUser32.NewProc("DispatchMessageW")
)

const pmRemove = 0x0001

type nativeMsg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// webview2Runtime is the concrete Runtime backing the shell on Windows.
type webview2Runtime struct {
	mu       sync.Mutex
	dataRoot string
}

// NewWebView2Runtime constructs the process-wide runtime. dataRoot is the
// WebView2 user-data folder root. A view uses ViewOptions.DataDir when it is
// set and dataRoot itself otherwise; no per-widget subdirectory is derived
// here.
func NewWebView2Runtime(dataRoot string) Runtime {
	return &webview2Runtime{dataRoot: dataRoot}
}

func (r *webview2Runtime) Initialize(ctx context.Context) error {
	return nil
}

func (r *webview2Runtime) NewView(opts ViewOptions) (View, error) {
	if opts.ParentHandle == 0 {
		return nil, fmt.Errorf("browser: NewView requires a parent window handle")
	}

	chromium := edge.NewChromium()
	if opts.DataDir != "" {
		chromium.DataPath = opts.DataDir
	} else if r.dataRoot != "" {
		chromium.DataPath = r.dataRoot
	}

	v := &webview2View{chromium: chromium, hwnd: opts.ParentHandle}
	chromium.MessageCallback = v.handleMessage
	chromium.NavigationCompletedCallback = v.handleNavigationComplete

	chromium.Embed(opts.ParentHandle)
	chromium.Resize()

	if settings, err := chromium.GetSettings(); err == nil {
		settings.PutAreDevToolsEnabled(false)
	}

	if err := v.SetBounds(opts.Bounds); err != nil {
		return nil, err
	}

	if opts.InitialURL != "" {
		if err := v.Navigate(opts.InitialURL); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// PumpOnce drains every pending message on the calling thread's queue,
// non-blocking (PM_REMOVE, no wait). Every widget window created on this
// thread — including each WebView2 instance's internal child windows —
// shares this one queue, which is why a single pump call services all of
// them.
func (r *webview2Runtime) PumpOnce() {
	var m nativeMsg
	for {
		ret, _, _ := procPeekMessageW.Call(
			uintptrPtr(&m), 0, 0, 0, pmRemove,
		)
		if ret == 0 {
			return
		}
		procTranslateMsg.Call(uintptrPtr(&m))
		procDispatchMsgW.Call(uintptrPtr(&m))
	}
}

func (r *webview2Runtime) Shutdown() error {
	return nil
}

func uintptrPtr(m *nativeMsg) uintptr {
	return uintptr(unsafe.Pointer(m))
}

type webview2View struct {
	mu                sync.Mutex
	chromium          *edge.Chromium
	hwnd              uintptr
	onMessage         MessageHandler
	onNavigationReady NavigationHandler
}

func (v *webview2View) NativeHandle() uintptr { return v.hwnd }

func (v *webview2View) Navigate(url string) error {
	v.chromium.Navigate(url)
	return nil
}

func (v *webview2View) ExecuteScript(js string) error {
	v.chromium.Eval(js)
	return nil
}

func (v *webview2View) SetBounds(b Bounds) error {
	v.chromium.Resize()
	return nil
}

func (v *webview2View) Show() error {
	return v.chromium.Show()
}

func (v *webview2View) Hide() error {
	return v.chromium.Hide()
}

func (v *webview2View) OnMessage(h MessageHandler) {
	v.mu.Lock()
	v.onMessage = h
	v.mu.Unlock()
}

func (v *webview2View) OnNavigationComplete(h NavigationHandler) {
	v.mu.Lock()
	v.onNavigationReady = h
	v.mu.Unlock()
}

func (v *webview2View) Close() error {
	v.chromium.ShuttingDown()
	return nil
}

func (v *webview2View) handleMessage(message string, _ *edge.ICoreWebView2, _ *edge.ICoreWebView2WebMessageReceivedEventArgs) {
	v.mu.Lock()
	h := v.onMessage
	v.mu.Unlock()
	if h != nil {
		h(message)
	}
}

func (v *webview2View) handleNavigationComplete(_ *edge.ICoreWebView2, _ *edge.ICoreWebView2NavigationCompletedEventArgs) {
	v.mu.Lock()
	h := v.onNavigationReady
	v.mu.Unlock()
	if h != nil {
		h()
	}
}
