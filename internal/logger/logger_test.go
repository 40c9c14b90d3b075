package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLevel_FiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel("info")
	})

	SetLevel("warn")
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Equal(t, "warn", Level())
}

func TestSetLevel_UnknownFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	SetLevel("debug")
	assert.Equal(t, "debug", Level())

	SetLevel("loud")
	assert.Equal(t, "info", Level())
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	With("stage", "seed").Info("valued")
	assert.Contains(t, buf.String(), "stage=seed")
	assert.Contains(t, buf.String(), "msg=valued")
}
