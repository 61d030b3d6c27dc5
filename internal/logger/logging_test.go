package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWithConfigHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(&buf, "anagram", log.WarnLevel, false, false, log.LogfmtFormatter)

	l.Debug("hidden")
	l.Warn("word dropped", "word", "xyz")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "anagram")
	assert.Contains(t, out, "word=xyz")
}

func TestDefaultFollowsGlobalLevel(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)

	log.SetLevel(log.DebugLevel)
	assert.Equal(t, log.DebugLevel, Default("x").GetLevel())

	log.SetLevel(log.ErrorLevel)
	assert.Equal(t, log.ErrorLevel, New("x").GetLevel())
}
