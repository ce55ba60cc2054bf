// Package bridge implements the state and IPC bridge: a namespaced
// host<->web state store plus a web-callable function table, coupling
// each widget's embedded-browser view to host-language state and an
// optional sobek-run backend.js.
package bridge

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Maximilian-Winter/pytonium-shell/internal/browser"
)

// StateHandler receives writes the web side pushes into any of its
// subscribed namespaces.
type StateHandler interface {
	UpdateState(namespace, key string, value any)
}

// State is one widget instance's namespaced state store and the
// host<->web notification wiring layered over a browser.View.
type State struct {
	mu        sync.Mutex
	view      browser.View
	values    map[string]map[string]any
	handlers  map[string][]StateHandler
}

// newState creates a State bound to view. Dispatching the view's raw
// incoming messages to handleStateWrite is the owning Bridge's job (see
// bridge.go), since a browser.View accepts only one message handler and
// state writes and function calls share that one channel.
func newState(view browser.View) *State {
	return &State{
		view:     view,
		values:   make(map[string]map[string]any),
		handlers: make(map[string][]StateHandler),
	}
}

// SetState pushes a JSON-typed value into namespace/key and notifies the
// web side. Must be called from the main thread, since it ultimately
// calls browser.View.ExecuteScript.
func (s *State) SetState(namespace, key string, value any) error {
	s.mu.Lock()
	bucket, ok := s.values[namespace]
	if !ok {
		bucket = make(map[string]any)
		s.values[namespace] = bucket
	}
	bucket[key] = value
	s.mu.Unlock()

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("bridge: marshal state %s.%s: %w", namespace, key, err)
	}
	js := fmt.Sprintf(
		"window.__pytonium_state && window.__pytonium_state(%s, %s, %s)",
		jsonString(namespace), jsonString(key), string(payload),
	)
	return s.view.ExecuteScript(js)
}

// AddStateHandler registers handler to be notified for web-side writes into
// any of namespaces. Callers must implement StateHandler to register at
// all, so there is no equivalent of silently registering a handler missing
// its update method.
func (s *State) AddStateHandler(handler StateHandler, namespaces []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ns := range namespaces {
		s.handlers[ns] = append(s.handlers[ns], handler)
	}
}

// Snapshot returns a copy of the current value of every key in namespace.
func (s *State) Snapshot(namespace string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.values[namespace]))
	for k, v := range s.values[namespace] {
		out[k] = v
	}
	return out
}

type stateWriteMessage struct {
	Type      string `json:"type"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     any    `json:"value"`
}

// handleStateWrite processes a decoded state_write message; called by the
// owning Bridge's message dispatcher.
func (s *State) handleStateWrite(msg stateWriteMessage) {
	s.mu.Lock()
	handlers := append([]StateHandler(nil), s.handlers[msg.Namespace]...)
	s.mu.Unlock()

	for _, h := range handlers {
		h.UpdateState(msg.Namespace, msg.Key, msg.Value)
	}
}

func jsonString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
