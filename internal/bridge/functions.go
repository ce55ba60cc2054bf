package bridge

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/Maximilian-Winter/pytonium-shell/internal/browser"
)

// ReturnKind says whether a bound function's JS call site resolves a
// promise with the function's result ("value") or just fires the call, with
// nothing sent back to the web side on success ("none"). Callers build a Binding
// value explicitly rather than annotating a method with a decorator.
type ReturnKind int

const (
	ReturnNone ReturnKind = iota
	ReturnValue
)

// Binding is one host function exposed to the web side under
// "namespace.name".
type Binding struct {
	Namespace string
	Name      string
	Fn        func(args []json.RawMessage) (any, error)
	Returns   ReturnKind
}

// Functions is the web-callable function table for one widget instance.
type Functions struct {
	view browser.View

	mu       sync.Mutex
	bindings map[string]Binding // keyed by "namespace.name"
}

func newFunctions(view browser.View) *Functions {
	return &Functions{
		view:     view,
		bindings: make(map[string]Binding),
	}
}

// Bind registers a single function under b.Namespace/b.Name, overwriting
// any existing binding at that key.
func (f *Functions) Bind(b Binding) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bindings[bindingKey(b.Namespace, b.Name)] = b
}

// BindObjectMethods reflects every exported method of obj into namespace,
// each one returning its single value to the caller. Methods must take
// JSON-decodable arguments and return either a single value, or a value
// and a trailing error.
func (f *Functions) BindObjectMethods(namespace string, obj any) {
	v := reflect.ValueOf(obj)
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if !method.IsExported() {
			continue
		}
		boundMethod := v.Method(i)
		f.Bind(Binding{
			Namespace: namespace,
			Name:      method.Name,
			Fn:        reflectCaller(boundMethod),
			Returns:   ReturnValue,
		})
	}
}

type functionCallMessage struct {
	Type      string            `json:"type"`
	RequestID string            `json:"requestId"`
	Namespace string            `json:"namespace"`
	Name      string            `json:"name"`
	Args      []json.RawMessage `json:"args"`
}

// handleFunctionCall processes a decoded function_call message, invoking
// the bound function and, for ReturnValue bindings, pushing the resolved
// value (or rejection) back to the promise the web side is awaiting.
// Called by the owning Bridge's message dispatcher.
func (f *Functions) handleFunctionCall(msg functionCallMessage) {
	f.mu.Lock()
	b, ok := f.bindings[bindingKey(msg.Namespace, msg.Name)]
	f.mu.Unlock()

	if !ok {
		f.reject(msg.RequestID, fmt.Sprintf("bridge: no function bound at %s.%s", msg.Namespace, msg.Name))
		return
	}

	result, err := b.Fn(msg.Args)
	if err != nil {
		// An exception raised by a bound function rejects the caller's
		// promise rather than crashing the shell.
		f.reject(msg.RequestID, err.Error())
		return
	}

	if b.Returns == ReturnValue {
		f.resolve(msg.RequestID, result)
	}
}

func (f *Functions) resolve(requestID string, value any) {
	if requestID == "" {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		f.reject(requestID, fmt.Sprintf("bridge: marshal result: %v", err))
		return
	}
	js := fmt.Sprintf(
		"window.__pytonium_resolve && window.__pytonium_resolve(%s, %s)",
		jsonString(requestID), string(payload),
	)
	_ = f.view.ExecuteScript(js)
}

func (f *Functions) reject(requestID, message string) {
	if requestID == "" {
		return
	}
	js := fmt.Sprintf(
		"window.__pytonium_reject && window.__pytonium_reject(%s, %s)",
		jsonString(requestID), jsonString(message),
	)
	_ = f.view.ExecuteScript(js)
}

func bindingKey(namespace, name string) string {
	return namespace + "." + name
}

// reflectCaller adapts a bound reflect.Value method to the
// func([]json.RawMessage) (any, error) shape Binding.Fn expects, decoding
// each JSON argument into the method's declared parameter type.
func reflectCaller(method reflect.Value) func(args []json.RawMessage) (any, error) {
	methodType := method.Type()
	return func(args []json.RawMessage) (any, error) {
		if len(args) != methodType.NumIn() {
			return nil, fmt.Errorf("bridge: expected %d arguments, got %d", methodType.NumIn(), len(args))
		}

		in := make([]reflect.Value, methodType.NumIn())
		for i, raw := range args {
			argPtr := reflect.New(methodType.In(i))
			if err := json.Unmarshal(raw, argPtr.Interface()); err != nil {
				return nil, fmt.Errorf("bridge: decode argument %d: %w", i, err)
			}
			in[i] = argPtr.Elem()
		}

		out := method.Call(in)
		return splitMethodResult(out)
	}
}

func splitMethodResult(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if errVal, ok := out[0].Interface().(error); ok {
			return nil, errVal
		}
		return out[0].Interface(), nil
	default:
		last := out[len(out)-1]
		var err error
		if errVal, ok := last.Interface().(error); ok {
			err = errVal
		}
		return out[0].Interface(), err
	}
}
