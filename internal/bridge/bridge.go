package bridge

import (
	"context"
	"encoding/json"

	"github.com/Maximilian-Winter/pytonium-shell/internal/browser"
	"github.com/Maximilian-Winter/pytonium-shell/internal/logging"
)

// Bridge couples one widget's browser.View to its State store and
// Functions table. It owns the view's single OnMessage registration and
// routes each decoded message to whichever side it belongs to, since a
// browser.View has exactly one raw message channel but the wire protocol
// carries two distinct message shapes.
type Bridge struct {
	view      browser.View
	State     *State
	Functions *Functions
}

// New builds a Bridge over view and wires it as that view's sole message
// handler. Call this once per widget instance, after the view exists but
// before its initial navigation, so no early web-side message is dropped.
func New(view browser.View) *Bridge {
	b := &Bridge{
		view:      view,
		State:     newState(view),
		Functions: newFunctions(view),
	}
	view.OnMessage(b.handleRawMessage)
	return b
}

type messageEnvelope struct {
	Type string `json:"type"`
}

// handleRawMessage decodes a postMessage payload from the web side and
// dispatches it by its type discriminator. Unknown or malformed messages
// are logged and dropped rather than treated as fatal, since a stale
// widget page reloading mid-navigation can still have in-flight messages
// from a previous document.
func (b *Bridge) handleRawMessage(raw string) {
	var env messageEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		logging.FromContext(context.Background()).Warn().Err(err).Msg("bridge: malformed message")
		return
	}

	switch env.Type {
	case "state_write":
		var msg stateWriteMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			logging.FromContext(context.Background()).Warn().Err(err).Msg("bridge: malformed state_write")
			return
		}
		b.State.handleStateWrite(msg)

	case "function_call":
		var msg functionCallMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			logging.FromContext(context.Background()).Warn().Err(err).Msg("bridge: malformed function_call")
			return
		}
		b.Functions.handleFunctionCall(msg)

	default:
		logging.FromContext(context.Background()).Warn().Str("type", env.Type).Msg("bridge: unknown message type")
	}
}
