package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCaseConvertsCamelCase(t *testing.T) {
	assert.Equal(t, "cpu_percent", toSnakeCase("CPUPercent"))
	assert.Equal(t, "time_seconds", toSnakeCase("TimeSeconds"))
	assert.Equal(t, "day", toSnakeCase("Day"))
}

func TestPushStructNilBridgeIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		pushStruct(nil, "system", struct{ CPUPercent float64 }{CPUPercent: 1})
	})
}
