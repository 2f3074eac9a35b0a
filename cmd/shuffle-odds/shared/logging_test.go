package shared

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	logger := SetupLogger(&buf, false)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	SetupLogger(&buf, true).Debug("visible", "key", 1)
	assert.Contains(t, buf.String(), "visible")
}

func TestSetupStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	SetupStructuredLogger(&buf, false).Info("done", "trials", 10)

	out := buf.String()
	assert.Contains(t, out, "msg=done")
	assert.Contains(t, out, "trials=10")
}
