package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Maximilian-Winter/pytonium-shell/internal/manifest"
	"github.com/Maximilian-Winter/pytonium-shell/internal/winapi"
)

func testMonitors() []winapi.Monitor {
	return []winapi.Monitor{
		{Index: 0, Primary: true, Rect: winapi.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}},
		{Index: 1, Primary: false, Rect: winapi.Rect{Left: 1920, Top: 0, Right: 3840, Bottom: 1080}},
	}
}

func TestResolveMonitorPrimary(t *testing.T) {
	mon, err := resolveMonitor("primary", testMonitors())
	assert.NoError(t, err)
	assert.True(t, mon.Primary)
}

func TestResolveMonitorEmptyDefaultsToPrimary(t *testing.T) {
	mon, err := resolveMonitor("", testMonitors())
	assert.NoError(t, err)
	assert.True(t, mon.Primary)
}

func TestResolveMonitorIndex(t *testing.T) {
	mon, err := resolveMonitor("1", testMonitors())
	assert.NoError(t, err)
	assert.Equal(t, 1, mon.Index)
}

func TestResolveMonitorOutOfRangeFallsBackToFirst(t *testing.T) {
	mon, err := resolveMonitor("9", testMonitors())
	assert.NoError(t, err)
	assert.Equal(t, 0, mon.Index)
}

func TestResolveMonitorNoMonitorsErrors(t *testing.T) {
	_, err := resolveMonitor("primary", nil)
	assert.Error(t, err)
}

func TestAnchorToEdge(t *testing.T) {
	assert.Equal(t, winapi.EdgeTop, anchorToEdge(manifest.AnchorTop))
	assert.Equal(t, winapi.EdgeBottom, anchorToEdge(manifest.AnchorBottom))
	assert.Equal(t, winapi.EdgeLeft, anchorToEdge(manifest.AnchorLeft))
	assert.Equal(t, winapi.EdgeRight, anchorToEdge(manifest.AnchorRight))
}

func TestBarRectTopBand(t *testing.T) {
	mon := testMonitors()[0]
	r := barRect(winapi.EdgeTop, 32, mon)
	assert.Equal(t, int32(0), r.Top)
	assert.Equal(t, int32(32), r.Bottom)
	assert.Equal(t, mon.Rect.Left, r.Left)
	assert.Equal(t, mon.Rect.Right, r.Right)
}

func TestBarRectRightBand(t *testing.T) {
	mon := testMonitors()[1]
	r := barRect(winapi.EdgeRight, 40, mon)
	assert.Equal(t, mon.Rect.Right-40, r.Left)
	assert.Equal(t, mon.Rect.Right, r.Right)
}
