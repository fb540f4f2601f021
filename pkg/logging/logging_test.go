package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	debug, err := New(Options{Debug: true})
	require.NoError(t, err)
	assert.True(t, debug.Core().Enabled(zap.DebugLevel))

	info, err := New(Options{JSON: true})
	require.NoError(t, err)
	assert.False(t, info.Core().Enabled(zap.DebugLevel))
	assert.True(t, info.Core().Enabled(zap.InfoLevel))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
