// Package hotkey implements the single OS-level global hotkey thread:
// chords are registered before start, assigned monotonic ids, and triggers
// are pushed onto a thread-safe queue drained by the main loop.
//
// Grounded on the window-class + message-loop idiom in
// other_examples/3c527e74_serty2005-clipQueue (platform/windows/host.go):
// a goroutine pinned to its own OS thread via runtime.LockOSThread registers
// every chord against that thread's message queue (no window is created),
// then pumps GetMessageW until Stop posts its stop message (or a WM_QUIT
// arrives), following that file's Start/messageLoop/Stop shape.
package hotkey

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Maximilian-Winter/pytonium-shell/internal/logging"
)

const (
	wmHotkey = 0x0312
	wmQuit   = 0x0012
	wmUser   = 0x0400

	wmStop = wmUser + 1
)

var (
	modUser32 = windows.NewLazySystemDLL("user32.dll")

	procRegisterHotKey   = modUser32.NewProc("RegisterHotKey")
	procUnregisterHotKey = modUser32.NewProc("UnregisterHotKey")
	procGetMessageW      = modUser32.NewProc("GetMessageW")
	procPostThreadMessageW = modUser32.NewProc("PostThreadMessageW")
	procTranslateMessage = modUser32.NewProc("TranslateMessage")
	procDispatchMessageW = modUser32.NewProc("DispatchMessageW")

	modKernel32            = windows.NewLazySystemDLL("kernel32.dll")
	procGetCurrentThreadID = modKernel32.NewProc("GetCurrentThreadId")
)

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

type registration struct {
	id        int32
	name      string
	modifiers uint32
	vk        uint32
}

// Listener owns every chord registration for the process. Register must be
// called before Start; calling it afterward returns an error.
type Listener struct {
	mu           sync.Mutex
	pending      []registration
	nextID       int32
	started      bool
	threadID     uint32
	stopped      chan struct{}
	triggeredMu  sync.Mutex
	triggered    []string
}

// New creates an idle listener with no registrations.
func New() *Listener {
	return &Listener{nextID: 1}
}

// Register assigns name to chord, to be claimed with the OS once Start runs.
// Returns ErrChordSyntax immediately for a malformed chord; registration
// collisions are only detectable at Start and are reported there.
func (l *Listener) Register(name, chord string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return fmt.Errorf("hotkey: cannot register %q after start", name)
	}
	modifiers, vk, err := parseChord(chord)
	if err != nil {
		return err
	}
	id := l.nextID
	l.nextID++
	l.pending = append(l.pending, registration{id: id, name: name, modifiers: modifiers, vk: vk})
	return nil
}

// Start registers every pending chord with the OS on a dedicated thread and
// begins pumping its message queue. Registration collisions are logged and
// skipped; they do not prevent the listener or the shell from starting.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return fmt.Errorf("hotkey: already started")
	}
	l.started = true
	regs := append([]registration(nil), l.pending...)
	l.mu.Unlock()

	ready := make(chan uint32, 1)
	l.stopped = make(chan struct{})

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(l.stopped)

		tid := currentThreadID()
		registered := make([]registration, 0, len(regs))
		for _, r := range regs {
			ret, _, callErr := procRegisterHotKey.Call(0, uintptr(r.id), uintptr(r.modifiers), uintptr(r.vk))
			if ret == 0 {
				logging.FromContext(ctx).Warn().
					Str("chord", r.name).
					Err(callErr).
					Msg("hotkey registration collision, continuing without it")
				continue
			}
			registered = append(registered, r)
		}
		ready <- tid

		l.pump(ctx, registered)

		for _, r := range registered {
			procUnregisterHotKey.Call(0, uintptr(r.id))
		}
	}()

	l.threadID = <-ready
	return nil
}

func (l *Listener) pump(ctx context.Context, registered []registration) {
	byID := make(map[int32]string, len(registered))
	for _, r := range registered {
		byID[r.id] = r.name
	}

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 {
			return
		}
		if m.message == wmStop {
			return
		}
		if m.message == wmHotkey {
			if name, ok := byID[int32(m.wParam)]; ok {
				l.triggeredMu.Lock()
				l.triggered = append(l.triggered, name)
				l.triggeredMu.Unlock()
			}
			continue
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// PollTriggered drains and returns every chord name triggered since the last
// call. May return an empty (nil) slice.
func (l *Listener) PollTriggered() []string {
	l.triggeredMu.Lock()
	defer l.triggeredMu.Unlock()
	if len(l.triggered) == 0 {
		return nil
	}
	out := l.triggered
	l.triggered = nil
	return out
}

// Stop posts a quit message to the listener thread and joins it, bounded by
// a 2s timeout so a stuck thread cannot hang shutdown.
func (l *Listener) Stop() error {
	l.mu.Lock()
	started := l.started
	tid := l.threadID
	l.mu.Unlock()
	if !started {
		return nil
	}

	procPostThreadMessageW.Call(uintptr(tid), wmStop, 0, 0)

	select {
	case <-l.stopped:
		return nil
	case <-time.After(2 * time.Second):
		return fmt.Errorf("hotkey: listener did not stop within timeout")
	}
}

func currentThreadID() uint32 {
	id, _, _ := procGetCurrentThreadID.Call()
	return uint32(id)
}
