package log

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Log(t *testing.T) {
	var b strings.Builder
	l, err := NewLogger(&b)
	require.NoError(t, err)

	l.Log("state: %v", 3)
	l.Log("done")

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `level=DEBUG msg="state: 3"`, lines[0])
	assert.Equal(t, `level=DEBUG msg=done`, lines[1])
}

func TestNewLogger_NilWriter(t *testing.T) {
	_, err := NewLogger(nil)
	assert.Error(t, err)
}
