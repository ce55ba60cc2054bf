package backend

import (
	"github.com/grafana/sobek"

	"github.com/Maximilian-Winter/pytonium-shell/internal/bridge"
)

// newBridgeObject builds the plain JS object passed into a backend's
// constructor, exposing the subset of the host bridge a backend needs to
// push state toward the web side. Handing over a concrete object here,
// rather than reaching for a language-global, keeps a backend's
// dependencies explicit and testable.
func newBridgeObject(vm *sobek.Runtime, br *bridge.Bridge) *sobek.Object {
	obj := vm.NewObject()
	_ = obj.Set("set_state", func(namespace, key string, value sobek.Value) {
		_ = br.State.SetState(namespace, key, value.Export())
	})
	return obj
}
