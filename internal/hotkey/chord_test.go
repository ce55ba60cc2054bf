package hotkey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChordModifiersAndKey(t *testing.T) {
	modifiers, vk, err := parseChord("ctrl+alt+d")
	require.NoError(t, err)
	assert.Equal(t, modControl|modAlt|modNoRepeat, int(modifiers))
	assert.Equal(t, uint32('D'), vk)
}

func TestParseChordAcceptsSynonyms(t *testing.T) {
	_, _, err := parseChord("control+super+esc")
	require.NoError(t, err)
}

func TestParseChordFunctionKey(t *testing.T) {
	_, vk, err := parseChord("ctrl+f12")
	require.NoError(t, err)
	assert.Equal(t, uint32(vkF1+11), vk)
}

func TestParseChordRejectsUnknownModifier(t *testing.T) {
	_, _, err := parseChord("meta+d")
	require.Error(t, err)
	var syntaxErr *ErrChordSyntax
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestParseChordRejectsUnknownKey(t *testing.T) {
	_, _, err := parseChord("ctrl+delete")
	require.Error(t, err)
	var syntaxErr *ErrChordSyntax
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestRegisterRejectsAfterStart(t *testing.T) {
	l := New()
	require.NoError(t, l.Register("quit", "ctrl+alt+q"))
	l.mu.Lock()
	l.started = true
	l.mu.Unlock()

	err := l.Register("reload", "ctrl+alt+r")
	require.Error(t, err)
}

func TestRegisterAssignsMonotonicIDs(t *testing.T) {
	l := New()
	require.NoError(t, l.Register("dashboard", "ctrl+alt+d"))
	require.NoError(t, l.Register("quit", "ctrl+alt+q"))

	require.Len(t, l.pending, 2)
	assert.Less(t, l.pending[0].id, l.pending[1].id)
}
