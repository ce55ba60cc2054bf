// Package browser abstracts the embedded-browser engine: one process-wide
// runtime, one window-scoped view per widget, and a single global message
// pump that every view's native window rides. Every operation defined here
// must only ever be called from the shell's main thread — the interface
// boundary exists so the rest of the shell kernel never has to know it is
// wailsapp/go-webview2 underneath.
package browser

import "context"

// Bounds is a view's screen-space rectangle, in the same coordinate space
// as winapi.Rect (a dependency this package does not take, to keep the
// contract free of any Win32 specifics beyond a raw native handle).
type Bounds struct {
	X, Y, Width, Height int
}

// MessageHandler receives a message posted by the web side via the bridge's
// postMessage channel.
type MessageHandler func(raw string)

// NavigationHandler fires once the view's document and scripts have
// finished loading, the point at which theme injection and state bridge
// wiring become safe.
type NavigationHandler func()

// View is one widget's embedded-browser window.
type View interface {
	// NativeHandle returns the OS window handle backing this view, as a
	// raw uintptr so callers translate it to their own HWND type.
	NativeHandle() uintptr

	// Navigate loads a file:// or http(s):// URL.
	Navigate(url string) error

	// ExecuteScript runs js in the view's document. Must only be called
	// from the main thread — the watcher routes its reload requests through
	// a queue drained by the main loop, and the bridge calls this only from
	// message callbacks and state pushes, which run on the main thread.
	ExecuteScript(js string) error

	// SetBounds repositions/resizes the view to track its host window.
	SetBounds(b Bounds) error

	// Show / Hide toggle native visibility without destroying state.
	Show() error
	Hide() error

	// OnMessage registers the handler invoked for messages posted from
	// the web side (the bridge's postMessage channel).
	OnMessage(h MessageHandler)

	// OnNavigationComplete registers a one-shot-per-navigation callback.
	OnNavigationComplete(h NavigationHandler)

	// Close tears down this view's native resources. Safe to call once.
	Close() error
}

// ViewOptions configures a new View.
type ViewOptions struct {
	// ParentHandle is the native top-level window the view renders into;
	// the concrete adapter embeds the browser engine as that window's
	// full client-area content.
	ParentHandle uintptr
	Bounds       Bounds
	// InitialURL, when non-empty, is navigated immediately after creation.
	InitialURL string
	DataDir     string
}

// Runtime owns the single process-wide embedded-browser engine and its
// message pump. Initialize/Shutdown and PumpOnce run on the main thread.
type Runtime interface {
	// Initialize prepares the shared engine (e.g. locating the WebView2
	// runtime and its user-data root). Called once at shell startup.
	Initialize(ctx context.Context) error

	// NewView creates a view for a single widget window.
	NewView(opts ViewOptions) (View, error)

	// PumpOnce services one pass of the global message queue, non-blocking.
	// Every widget window's messages (including WebView2's own child
	// windows) are processed by this single call regardless of which View
	// they belong to — one pump per tick services all of them.
	PumpOnce()

	// Shutdown tears down the shared engine after every View has closed.
	Shutdown() error
}
