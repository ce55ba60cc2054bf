package winapi

import (
	"sort"
	"syscall"
	"unsafe"
)

// Monitor is the record shape returned by display enumeration and by
// lookups for the primary monitor or a window's current monitor.
type Monitor struct {
	Index      int
	Handle     uintptr
	Rect       Rect
	WorkRect   Rect
	Primary    bool
	DeviceName string
}

type monitorInfoEx struct {
	cbSize    uint32
	rcMonitor Rect
	rcWork    Rect
	dwFlags   uint32
	szDevice  [32]uint16
}

const monitorInfoFPrimary = 0x1

// EnumMonitors returns every display monitor, primary first, remaining
// monitors sorted by (x, y), with 0-based indices assigned in that order.
func EnumMonitors() ([]Monitor, error) {
	var handles []uintptr
	cb := syscall.NewCallback(func(hMonitor uintptr, _ uintptr, _ uintptr, _ uintptr) uintptr {
		handles = append(handles, hMonitor)
		return 1
	})
	procEnumDisplayMonitors.Call(0, 0, cb, 0)

	monitors := make([]Monitor, 0, len(handles))
	for _, h := range handles {
		var info monitorInfoEx
		info.cbSize = uint32(unsafe.Sizeof(info))
		ret, _, _ := procGetMonitorInfoW.Call(h, uintptr(unsafe.Pointer(&info)))
		if ret == 0 {
			continue
		}
		monitors = append(monitors, Monitor{
			Handle:     h,
			Rect:       info.rcMonitor,
			WorkRect:   info.rcWork,
			Primary:    info.dwFlags&monitorInfoFPrimary != 0,
			DeviceName: syscall.UTF16ToString(info.szDevice[:]),
		})
	}

	sort.SliceStable(monitors, func(i, j int) bool {
		if monitors[i].Primary != monitors[j].Primary {
			return monitors[i].Primary
		}
		if monitors[i].Rect.Left != monitors[j].Rect.Left {
			return monitors[i].Rect.Left < monitors[j].Rect.Left
		}
		return monitors[i].Rect.Top < monitors[j].Rect.Top
	})
	for i := range monitors {
		monitors[i].Index = i
	}
	return monitors, nil
}

// PrimaryMonitor returns the monitor at index 0.
func PrimaryMonitor() (Monitor, error) {
	monitors, err := EnumMonitors()
	if err != nil {
		return Monitor{}, err
	}
	for _, m := range monitors {
		if m.Primary {
			return m, nil
		}
	}
	if len(monitors) > 0 {
		return monitors[0], nil
	}
	return Monitor{}, errNoMonitors
}

// MonitorForWindow returns the monitor currently containing the largest
// part of hwnd's window rect.
func MonitorForWindow(hwnd HWND) (Monitor, error) {
	const monitorDefaultToNearest = 2
	h, _, _ := procMonitorFromWindow.Call(uintptr(hwnd), monitorDefaultToNearest)

	monitors, err := EnumMonitors()
	if err != nil {
		return Monitor{}, err
	}
	for _, m := range monitors {
		if m.Handle == h {
			return m, nil
		}
	}
	return PrimaryMonitor()
}
