package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWidgetToggleExtractsName(t *testing.T) {
	name, ok := parseWidgetToggle("widget_toggle:clock")
	assert.True(t, ok)
	assert.Equal(t, "clock", name)
}

func TestParseWidgetToggleRejectsOtherActions(t *testing.T) {
	_, ok := parseWidgetToggle("reload_all")
	assert.False(t, ok)
}

func TestParseWidgetToggleRejectsEmptyName(t *testing.T) {
	_, ok := parseWidgetToggle("widget_toggle:")
	assert.False(t, ok)
}
