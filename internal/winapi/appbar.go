package winapi

import "unsafe"

// Edge identifies which screen edge an AppBar reserves space against.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
)

const (
	abmNew      = 0x00000000
	abmRemove   = 0x00000001
	abmQueryPos = 0x00000002
	abmSetPos   = 0x00000003
)

type appBarData struct {
	cbSize           uint32
	hWnd             uintptr
	uCallbackMessage uint32
	uEdge            uint32
	rc               Rect
	lParam           uintptr
}

// AppBarToken is returned by RegisterAppBar and must be passed to
// UnregisterAppBar to release the reservation.
type AppBarToken struct {
	hwnd HWND
	edge Edge
}

// RegisterAppBar reserves a band of depth bandDepth along edge on monitor:
// register, query the system-adjusted position, re-apply the requested
// depth along the edge axis (the system may shrink/slide the perpendicular
// axis but never guarantees the requested depth), claim the position with
// ABM_SETPOS, then move the window to match. On any failure along the way,
// the reservation is released and an error is returned so the caller can
// fall back to direct positioning.
func RegisterAppBar(hwnd HWND, edge Edge, bandDepth int, monitor Monitor) (AppBarToken, error) {
	data := appBarData{
		cbSize: uint32(unsafe.Sizeof(appBarData{})),
		hWnd:   uintptr(hwnd),
		uEdge:  uint32(edge),
	}

	ret, _, _ := procSHAppBarMessage.Call(abmNew, uintptr(unsafe.Pointer(&data)))
	if ret == 0 {
		return AppBarToken{}, errAppBarFailed
	}

	data.rc = edgeBandRect(edge, bandDepth, monitor)
	procSHAppBarMessage.Call(abmQueryPos, uintptr(unsafe.Pointer(&data)))
	data.rc = reapplyBandDepth(edge, bandDepth, data.rc, monitor)

	ret, _, _ = procSHAppBarMessage.Call(abmSetPos, uintptr(unsafe.Pointer(&data)))
	if ret == 0 {
		procSHAppBarMessage.Call(abmRemove, uintptr(unsafe.Pointer(&data)))
		return AppBarToken{}, errAppBarFailed
	}

	if err := SetPos(hwnd, int(data.rc.Left), int(data.rc.Top), data.rc.Width(), data.rc.Height()); err != nil {
		procSHAppBarMessage.Call(abmRemove, uintptr(unsafe.Pointer(&data)))
		return AppBarToken{}, err
	}

	return AppBarToken{hwnd: hwnd, edge: edge}, nil
}

// UnregisterAppBar releases a reservation acquired by RegisterAppBar.
func UnregisterAppBar(token AppBarToken) {
	data := appBarData{
		cbSize: uint32(unsafe.Sizeof(appBarData{})),
		hWnd:   uintptr(token.hwnd),
	}
	procSHAppBarMessage.Call(abmRemove, uintptr(unsafe.Pointer(&data)))
}

func edgeBandRect(edge Edge, depth int, m Monitor) Rect {
	r := m.Rect
	switch edge {
	case EdgeTop:
		r.Bottom = r.Top + int32(depth)
	case EdgeBottom:
		r.Top = r.Bottom - int32(depth)
	case EdgeLeft:
		r.Right = r.Left + int32(depth)
	case EdgeRight:
		r.Left = r.Right - int32(depth)
	}
	return r
}

// reapplyBandDepth restores the requested depth along the reservation axis
// after ABM_QUERYPOS, which may have adjusted it; the perpendicular span
// returned by the system is kept as-is.
func reapplyBandDepth(edge Edge, depth int, adjusted Rect, m Monitor) Rect {
	switch edge {
	case EdgeTop:
		adjusted.Bottom = adjusted.Top + int32(depth)
	case EdgeBottom:
		adjusted.Top = adjusted.Bottom - int32(depth)
	case EdgeLeft:
		adjusted.Right = adjusted.Left + int32(depth)
	case EdgeRight:
		adjusted.Left = adjusted.Right - int32(depth)
	}
	return adjusted
}
