package hotkey

import (
	"fmt"
	"strings"
)

// Modifier and key bit values as expected by RegisterHotKey, plus the
// "no auto-repeat" flag applied to every registration.
const (
	modAlt     = 0x0001
	modControl = 0x0002
	modShift   = 0x0004
	modWin     = 0x0008
	modNoRepeat = 0x4000

	vkSpace  = 0x20
	vkEscape = 0x1B
	vkTab    = 0x09
	vkF1     = 0x70
)

// ErrChordSyntax means the chord string itself is malformed or names an
// unsupported key or modifier.
type ErrChordSyntax struct {
	Chord string
	Token string
}

func (e *ErrChordSyntax) Error() string {
	return fmt.Sprintf("hotkey: invalid token %q in chord %q", e.Token, e.Chord)
}

// ErrChordCollision means the chord parsed fine but the OS rejected
// registration because another process already holds it.
type ErrChordCollision struct {
	Chord string
}

func (e *ErrChordCollision) Error() string {
	return fmt.Sprintf("hotkey: chord %q already registered by another process", e.Chord)
}

// parseChord turns a "+"-separated chord string into a (modifiers, vk) pair.
// The final token is the key; every earlier token must be a recognized
// modifier.
func parseChord(chord string) (modifiers uint32, vk uint32, err error) {
	tokens := strings.Split(chord, "+")
	if len(tokens) < 1 || tokens[len(tokens)-1] == "" {
		return 0, 0, &ErrChordSyntax{Chord: chord, Token: chord}
	}

	for _, tok := range tokens[:len(tokens)-1] {
		switch strings.ToLower(tok) {
		case "ctrl", "control":
			modifiers |= modControl
		case "alt":
			modifiers |= modAlt
		case "shift":
			modifiers |= modShift
		case "win", "super":
			modifiers |= modWin
		default:
			return 0, 0, &ErrChordSyntax{Chord: chord, Token: tok}
		}
	}

	vk, err = parseKey(tokens[len(tokens)-1])
	if err != nil {
		return 0, 0, &ErrChordSyntax{Chord: chord, Token: tokens[len(tokens)-1]}
	}
	return modifiers | modNoRepeat, vk, nil
}

func parseKey(token string) (uint32, error) {
	lower := strings.ToLower(token)
	switch lower {
	case "space":
		return vkSpace, nil
	case "tab":
		return vkTab, nil
	case "escape", "esc":
		return vkEscape, nil
	}
	if len(lower) == 1 {
		c := lower[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint32(strings.ToUpper(lower)[0]), nil
		case c >= '0' && c <= '9':
			return uint32(c), nil
		}
	}
	if len(lower) >= 2 && lower[0] == 'f' {
		var n int
		if _, err := fmt.Sscanf(lower, "f%d", &n); err == nil && n >= 1 && n <= 12 {
			return uint32(vkF1 + n - 1), nil
		}
	}
	return 0, fmt.Errorf("unsupported key %q", token)
}
