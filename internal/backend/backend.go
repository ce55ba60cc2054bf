// Package backend loads a widget's optional backend.js and reflects its
// public methods into the bridge's web-callable function table. Each
// widget backend runs in its own grafana/sobek virtual machine — a
// pure-Go, goja-API-compatible ECMAScript engine — rather than shelling
// out to an interpreter, so a widget backend crash is an ordinary Go
// error return, never a child-process failure mode.
package backend

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grafana/sobek"

	"github.com/Maximilian-Winter/pytonium-shell/internal/bridge"
)

// namespace is the fixed JS-side object every backend's methods are bound
// under.
const namespace = "widget"

// Backend owns one widget's sobek VM and the WidgetBackend instance
// running inside it.
type Backend struct {
	vm       *sobek.Runtime
	instance *sobek.Object
}

// Load reads scriptPath, evaluates it, and instantiates the script's
// exported WidgetBackend class with a bridge handle as its sole
// constructor argument, rather than exposing a global `pytonium`
// identifier. Every method the class attaches to its own instance (e.g. as a
// class field / arrow-function property, not a prototype method) is then
// bound into br's function table under "widget.<name>".
//
// A method name listed in the class's static `returnsValue` array (an
// array of strings) is bound with bridge.ReturnValue so its JS-side call
// resolves a promise with the result; every other method is bound with
// bridge.ReturnNone, matching the original's
// `returns_value_to_javascript` marker without needing a decorator.
func Load(scriptPath string, br *bridge.Bridge) (*Backend, error) {
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("backend: read %s: %w", scriptPath, err)
	}

	vm := sobek.New()
	if _, err := vm.RunString(string(source)); err != nil {
		return nil, fmt.Errorf("backend: evaluate %s: %w", scriptPath, err)
	}

	ctorValue := vm.Get("WidgetBackend")
	if ctorValue == nil || sobek.IsUndefined(ctorValue) {
		return nil, fmt.Errorf("backend: %s does not define a WidgetBackend class", scriptPath)
	}

	instance, err := vm.New(ctorValue, newBridgeObject(vm, br))
	if err != nil {
		return nil, fmt.Errorf("backend: construct WidgetBackend in %s: %w", scriptPath, err)
	}

	b := &Backend{vm: vm, instance: instance}
	b.bindMethods(ctorValue, br)
	return b, nil
}

func (b *Backend) bindMethods(ctorValue sobek.Value, br *bridge.Bridge) {
	returnsValue := make(map[string]bool)
	if ctorObj, ok := ctorValue.(*sobek.Object); ok {
		if raw := ctorObj.Get("returnsValue"); raw != nil && !sobek.IsUndefined(raw) {
			if names, ok := raw.Export().([]any); ok {
				for _, n := range names {
					if s, ok := n.(string); ok {
						returnsValue[s] = true
					}
				}
			}
		}
	}

	for _, key := range b.instance.Keys() {
		call, ok := sobek.AssertFunction(b.instance.Get(key))
		if !ok {
			continue
		}

		kind := bridge.ReturnNone
		if returnsValue[key] {
			kind = bridge.ReturnValue
		}

		br.Functions.Bind(bridge.Binding{
			Namespace: namespace,
			Name:      key,
			Returns:   kind,
			Fn:        b.callAdapter(call),
		})
	}
}

// callAdapter wraps a sobek callable so it satisfies the
// func([]json.RawMessage) (any, error) shape bridge.Binding.Fn expects,
// converting each JSON argument to a sobek.Value and the returned value
// back to a plain Go value via Export so the bridge can re-marshal it
// for the web side without knowing sobek exists.
func (b *Backend) callAdapter(call sobek.Callable) func(args []json.RawMessage) (any, error) {
	return func(args []json.RawMessage) (any, error) {
		vmArgs := make([]sobek.Value, len(args))
		for i, raw := range args {
			var decoded any
			if err := json.Unmarshal(raw, &decoded); err != nil {
				return nil, fmt.Errorf("backend: decode argument %d: %w", i, err)
			}
			vmArgs[i] = b.vm.ToValue(decoded)
		}

		result, err := call(sobek.Undefined(), vmArgs...)
		if err != nil {
			return nil, fmt.Errorf("backend: %w", err)
		}
		if result == nil || sobek.IsUndefined(result) {
			return nil, nil
		}
		return result.Export(), nil
	}
}

// Close does nothing and always returns nil: the VM has no background
// resources of its own. The method exists to keep backend lifecycle
// symmetric with the rest of the widget instance's owned resources.
func (b *Backend) Close() error {
	return nil
}
