package widget

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/Maximilian-Winter/pytonium-shell/internal/bridge"
)

// pushStruct pushes each exported field of v into namespace under its
// snake_case name via br.State.SetState, so sysservices.Snapshot's
// datetime/system sub-structs map directly onto state keys without each
// caller hand-writing a field-by-field push.
func pushStruct(br *bridge.Bridge, namespace string, v any) {
	if br == nil {
		return
	}
	val := reflect.ValueOf(v)
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		key := toSnakeCase(field.Name)
		_ = br.State.SetState(namespace, key, val.Field(i).Interface())
	}
}

// toSnakeCase converts CPUPercent -> cpu_percent and TimeSeconds ->
// time_seconds, treating a run of uppercase letters followed by a
// lowercase one (an acronym like "CPU" before "Percent") as a single word
// boundary rather than splitting every letter.
func toSnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
