package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPollActionsDrainsAndClears(t *testing.T) {
	tr := New(nil, false)
	tr.push("reload_all")
	tr.push("widget_toggle:clock")

	got := tr.PollActions()
	assert.Equal(t, []string{"reload_all", "widget_toggle:clock"}, got)
	assert.Nil(t, tr.PollActions())
}

func TestPollActionsEmptyReturnsNil(t *testing.T) {
	tr := New(nil, false)
	assert.Nil(t, tr.PollActions())
}
