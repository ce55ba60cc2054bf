// Package winapi implements a stateless Win32 window helper: topmost/
// tool-window/click-through flags, position and size, monitor enumeration,
// AppBar register/unregister, and the wallpaper worker reparent dance.
package winapi

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modUser32   = windows.NewLazySystemDLL("user32.dll")
	modDwmapi   = windows.NewLazySystemDLL("dwmapi.dll")
	modShell32  = windows.NewLazySystemDLL("shell32.dll")

	procSetWindowPos          = modUser32.NewProc("SetWindowPos")
	procGetWindowLongW        = modUser32.NewProc("GetWindowLongW")
	procSetWindowLongW        = modUser32.NewProc("SetWindowLongW")
	procShowWindow            = modUser32.NewProc("ShowWindow")
	procGetWindowRect         = modUser32.NewProc("GetWindowRect")
	procSetParent             = modUser32.NewProc("SetParent")
	procGetParent             = modUser32.NewProc("GetParent")
	procIsWindow              = modUser32.NewProc("IsWindow")
	procFindWindowW           = modUser32.NewProc("FindWindowW")
	procFindWindowExW         = modUser32.NewProc("FindWindowExW")
	procEnumWindows           = modUser32.NewProc("EnumWindows")
	procSendMessageTimeoutW   = modUser32.NewProc("SendMessageTimeoutW")
	procEnumDisplayMonitors   = modUser32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW       = modUser32.NewProc("GetMonitorInfoW")
	procMonitorFromWindow     = modUser32.NewProc("MonitorFromWindow")
	procSetLayeredWindowAttrs = modUser32.NewProc("SetLayeredWindowAttributes")

	procDwmSetWindowAttribute = modDwmapi.NewProc("DwmSetWindowAttribute")
	procSHAppBarMessage       = modShell32.NewProc("SHAppBarMessage")
)

// HWND is a native window handle.
type HWND uintptr

// Rect is a screen-space rectangle, left/top inclusive, right/bottom exclusive.
type Rect struct {
	Left, Top, Right, Bottom int32
}

func (r Rect) Width() int  { return int(r.Right - r.Left) }
func (r Rect) Height() int { return int(r.Bottom - r.Top) }

const (
	gwlExStyle = -20
	gwlStyle   = -16

	wsExTopmost     = 0x00000008
	wsExToolWindow  = 0x00000080
	wsExTransparent = 0x00000020
	wsExLayered     = 0x00080000
	wsExAppWindow   = 0x00040000

	swpNoMove     = 0x0002
	swpNoSize     = 0x0001
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
	swpShowWindow = 0x0040
	swpFrameChanged = 0x0020

	hwndTopmost   = ^uintptr(0)
	hwndNoTopmost = ^uintptr(0) - 1
	hwndTop       = 0

	swHide = 0
	swShow = 5

	lwaAlpha = 0x2
)

// IsWindow reports whether hwnd still refers to a live window.
func IsWindow(hwnd HWND) bool {
	r, _, _ := procIsWindow.Call(uintptr(hwnd))
	return r != 0
}

// GetRect returns the current screen-space rectangle of hwnd.
func GetRect(hwnd HWND) (Rect, error) {
	var r Rect
	ret, _, err := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return Rect{}, err
	}
	return r, nil
}

// SetPos moves and resizes hwnd, without changing its Z order.
func SetPos(hwnd HWND, x, y, width, height int) error {
	ret, _, err := procSetWindowPos.Call(
		uintptr(hwnd), hwndTop,
		uintptr(x), uintptr(y), uintptr(width), uintptr(height),
		swpNoZOrder|swpNoActivate,
	)
	if ret == 0 {
		return err
	}
	return nil
}

// SetTopmost forces or releases always-on-top behavior without activating
// the window, leaving position and size untouched.
func SetTopmost(hwnd HWND, topmost bool) error {
	insertAfter := uintptr(hwndNoTopmost)
	if topmost {
		insertAfter = uintptr(hwndTopmost)
	}
	ret, _, err := procSetWindowPos.Call(
		uintptr(hwnd), insertAfter,
		0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoActivate,
	)
	if ret == 0 {
		return err
	}
	return nil
}

// SetToolWindow sets or clears WS_EX_TOOLWINDOW, which hides the window
// from the taskbar and Alt+Tab.
func SetToolWindow(hwnd HWND, enabled bool) error {
	return toggleExStyle(hwnd, wsExToolWindow, enabled)
}

// SetClickThrough sets WS_EX_TRANSPARENT + WS_EX_LAYERED so input passes
// through to whatever is beneath the window; clearing it removes only
// WS_EX_TRANSPARENT and leaves WS_EX_LAYERED set.
func SetClickThrough(hwnd HWND, enabled bool) error {
	style, _, _ := procGetWindowLongW.Call(uintptr(hwnd), uintptr(int32(gwlExStyle)))
	newStyle := uint32(style)
	if enabled {
		newStyle |= wsExTransparent | wsExLayered
	} else {
		newStyle &^= wsExTransparent
	}
	ret, _, err := procSetWindowLongW.Call(uintptr(hwnd), uintptr(int32(gwlExStyle)), uintptr(newStyle))
	if ret == 0 && newStyle != 0 {
		return err
	}
	if enabled {
		// A layered window needs an explicit alpha to actually composite;
		// fully opaque keeps visuals unchanged while enabling click-through.
		procSetLayeredWindowAttrs.Call(uintptr(hwnd), 0, 255, lwaAlpha)
	}
	return nil
}

// SetTransparentBackground enables per-pixel alpha compositing for hwnd via
// DWM, used for `window.transparent_background`.
func SetTransparentBackground(hwnd HWND) error {
	const dwmwaSystemBackdropType = 38
	const dwmsbtTransparent = 4
	backdrop := int32(dwmsbtTransparent)
	ret, _, _ := procDwmSetWindowAttribute.Call(
		uintptr(hwnd), uintptr(dwmwaSystemBackdropType),
		uintptr(unsafe.Pointer(&backdrop)), unsafe.Sizeof(backdrop),
	)
	if ret != 0 {
		return windows.Errno(ret)
	}
	return nil
}

// SetVisible shows or hides hwnd without changing any other state.
func SetVisible(hwnd HWND, visible bool) {
	cmd := uintptr(swHide)
	if visible {
		cmd = uintptr(swShow)
	}
	procShowWindow.Call(uintptr(hwnd), cmd)
}

func toggleExStyle(hwnd HWND, bit uint32, enabled bool) error {
	style, _, _ := procGetWindowLongW.Call(uintptr(hwnd), uintptr(int32(gwlExStyle)))
	newStyle := uint32(style)
	if enabled {
		newStyle |= bit
	} else {
		newStyle &^= bit
	}
	procSetWindowLongW.Call(uintptr(hwnd), uintptr(int32(gwlExStyle)), uintptr(newStyle))
	procSetWindowPos.Call(uintptr(hwnd), 0, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoZOrder|swpFrameChanged)
	return nil
}
