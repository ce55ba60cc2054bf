package winapi

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitorSortPrimaryFirstThenPosition(t *testing.T) {
	monitors := []Monitor{
		{Rect: Rect{Left: 1920}, Primary: false},
		{Rect: Rect{Left: -1920}, Primary: false},
		{Rect: Rect{Left: 0}, Primary: true},
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

	assert.True(t, monitors[0].Primary)
	assert.Equal(t, 0, monitors[0].Index)
	assert.Equal(t, int32(-1920), monitors[1].Rect.Left)
	assert.Equal(t, int32(1920), monitors[2].Rect.Left)
}

func TestRectWidthHeight(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Right: 110, Bottom: 70}
	assert.Equal(t, 100, r.Width())
	assert.Equal(t, 50, r.Height())
}
