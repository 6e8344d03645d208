package logger

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTagsSession(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Setup("debug", &buf))

	For("netconn").Debug("dialing")
	out := buf.String()
	assert.Contains(t, out, "session="+Session)
	assert.Contains(t, out, "component=netconn")
	assert.Contains(t, out, "dialing")

	_, err := uuid.Parse(Session)
	assert.NoError(t, err)
}

func TestSetupFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Setup("warn", &buf))

	For("scene").Info("hidden")
	For("scene").Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Setup("chatty", nil))
}
