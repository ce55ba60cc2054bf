package winapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeBandRectTop(t *testing.T) {
	m := Monitor{Rect: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}}
	r := edgeBandRect(EdgeTop, 36, m)
	assert.Equal(t, Rect{Left: 0, Top: 0, Right: 1920, Bottom: 36}, r)
}

func TestEdgeBandRectBottom(t *testing.T) {
	m := Monitor{Rect: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}}
	r := edgeBandRect(EdgeBottom, 40, m)
	assert.Equal(t, Rect{Left: 0, Top: 1040, Right: 1920, Bottom: 1080}, r)
}

func TestReapplyBandDepthRestoresRequestedDepthAfterSystemShrink(t *testing.T) {
	m := Monitor{Rect: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}}
	// Simulate the system returning a shallower band than requested from
	// ABM_QUERYPOS; the perpendicular span (left/right) it adjusted must
	// survive, only the depth axis (bottom) gets corrected.
	adjusted := Rect{Left: 100, Top: 0, Right: 1820, Bottom: 20}
	r := reapplyBandDepth(EdgeTop, 36, adjusted, m)
	assert.Equal(t, int32(100), r.Left)
	assert.Equal(t, int32(1820), r.Right)
	assert.Equal(t, int32(36), r.Bottom-r.Top)
}
