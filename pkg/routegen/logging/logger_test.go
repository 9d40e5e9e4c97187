package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewNamed(t *testing.T) {
	log, err := NewNamed("development", "routegen", "")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = NewNamed("production", "routegen", "")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))

	log, err = NewNamed("production", "routegen", "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))

	_, err = NewNamed("production", "routegen", "loud")
	assert.Error(t, err)
}

func TestRouteFields(t *testing.T) {
	fields := Route("chennai-to-ooty", "Chennai", "Ooty")
	require.Len(t, fields, 3)
	assert.Equal(t, "slug", fields[0].Key)
	assert.Equal(t, "Ooty", fields[2].String)
}
