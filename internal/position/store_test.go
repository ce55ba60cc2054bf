package position

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "widget_positions.json"), time.Minute)
	_, ok := s.Get("clock")
	assert.False(t, ok)
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget_positions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := New(path, time.Minute)
	assert.Empty(t, s.Snapshot())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget_positions.json")

	s := New(path, time.Minute)
	s.Update("clock", Rect{X: 500, Y: 500, Width: 200, Height: 80})
	require.NoError(t, s.Save())

	s2 := New(path, time.Minute)
	got, ok := s2.Get("clock")
	require.True(t, ok)
	assert.Equal(t, Rect{X: 500, Y: 500, Width: 200, Height: 80}, got)
}

func TestPollSaveRespectsInterval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget_positions.json")

	s := New(path, time.Hour)
	s.Update("clock", Rect{X: 1, Y: 1, Width: 1, Height: 1})
	require.NoError(t, s.PollSave())
	require.FileExists(t, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	firstModTime := info.ModTime()

	s.Update("clock", Rect{X: 2, Y: 2, Width: 2, Height: 2})
	require.NoError(t, s.PollSave())

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, firstModTime, info.ModTime(), "second PollSave within the interval must not rewrite the file")
}

func TestPollSaveNoopWhenClean(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget_positions.json")

	s := New(path, time.Hour)
	require.NoError(t, s.PollSave())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

type fakeWidget struct {
	name string
	mode string
	rect Rect
}

func (f fakeWidget) Name() string               { return f.name }
func (f fakeWidget) Mode() string                { return f.mode }
func (f fakeWidget) CurrentRect() (Rect, error) { return f.rect, nil }

func TestCollectPositionsSkipsNonWidgetModes(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "widget_positions.json"), time.Minute)
	s.CollectPositions([]Positionable{
		fakeWidget{name: "clock", mode: "widget", rect: Rect{X: 1, Y: 2, Width: 3, Height: 4}},
		fakeWidget{name: "dash", mode: "dashboard", rect: Rect{X: 9, Y: 9, Width: 9, Height: 9}},
	})

	_, ok := s.Get("dash")
	assert.False(t, ok)
	got, ok := s.Get("clock")
	require.True(t, ok)
	assert.Equal(t, Rect{X: 1, Y: 2, Width: 3, Height: 4}, got)
}
