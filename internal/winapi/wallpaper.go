package winapi

import (
	"syscall"
	"unsafe"
)

const (
	smtoAbortIfHung = 0x0002
	progmanSpawnWorkerMsg = 0x052C
)

// FindWallpaperWorker locates the WorkerW window the desktop shell uses to
// host desktop icons' sibling, which is where wallpaper-mode widgets must be
// reparented. Progman does not always own a WorkerW until asked to spawn
// one, so this first nudges it via the documented
// "spawn worker" message, then walks the top-level window list looking for
// a WorkerW that is a sibling of a Progman window hosting SHELLDLL_DefView.
func FindWallpaperWorker() (HWND, error) {
	progman := findWindow("Progman", "")
	if progman == 0 {
		return 0, errWorkerNotFound
	}

	procSendMessageTimeoutW.Call(
		uintptr(progman), progmanSpawnWorkerMsg, 0, 0,
		smtoAbortIfHung, 1000, 0,
	)

	var worker uintptr
	cb := syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		shellView, _, _ := procFindWindowExW.Call(hwnd, 0, strPtr("SHELLDLL_DefView"), 0)
		if shellView == 0 {
			return 1
		}
		w, _, _ := procFindWindowExW.Call(0, hwnd, strPtr("WorkerW"), 0)
		if w != 0 {
			worker = w
			return 0
		}
		return 1
	})
	procEnumWindows.Call(cb, 0)

	if worker == 0 {
		// Some shell versions host the WorkerW as Progman's own next sibling
		// instead of a child of the SHELLDLL_DefView owner.
		w, _, _ := procFindWindowExW.Call(0, uintptr(progman), strPtr("WorkerW"), 0)
		worker = w
	}
	if worker == 0 {
		return 0, errWorkerNotFound
	}
	return HWND(worker), nil
}

// ReparentToWallpaper reparents hwnd to the live wallpaper worker window and
// positions it over rect. Returns an error (rather than silently falling
// back to a click-through overlay) so the caller can decide explicitly to
// leave the widget as a plain visible window instead.
func ReparentToWallpaper(hwnd HWND, rect Rect) error {
	worker, err := FindWallpaperWorker()
	if err != nil {
		return err
	}
	ret, _, callErr := procSetParent.Call(uintptr(hwnd), uintptr(worker))
	if ret == 0 {
		return callErr
	}
	return SetPos(hwnd, int(rect.Left), int(rect.Top), rect.Width(), rect.Height())
}

// IsParentLive reports whether parent is a real, live window.
func IsParentLive(parent HWND) bool {
	return parent != 0 && IsWindow(parent)
}

// GetParent returns hwnd's current parent window, or 0 if it has none.
func GetParent(hwnd HWND) HWND {
	h, _, _ := procGetParent.Call(uintptr(hwnd))
	return HWND(h)
}

// RestoreWallpaperParent reparents hwnd back to the desktop (a null parent),
// undoing ReparentToWallpaper.
func RestoreWallpaperParent(hwnd HWND) error {
	ret, _, callErr := procSetParent.Call(uintptr(hwnd), 0)
	if ret == 0 {
		return callErr
	}
	return nil
}

func findWindow(class, title string) HWND {
	var classPtr, titlePtr uintptr
	if class != "" {
		classPtr = strPtr(class)
	}
	if title != "" {
		titlePtr = strPtr(title)
	}
	h, _, _ := procFindWindowW.Call(classPtr, titlePtr)
	return HWND(h)
}

func strPtr(s string) uintptr {
	p, err := syscall.UTF16PtrFromString(s)
	if err != nil {
		return 0
	}
	return uintptr(unsafe.Pointer(p))
}
