package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, parseLevel(" DEBUG ", logrus.InfoLevel))
	assert.Equal(t, logrus.WarnLevel, parseLevel("warning", logrus.InfoLevel))
	assert.Equal(t, logrus.InfoLevel, parseLevel("", logrus.InfoLevel))
	assert.Equal(t, logrus.ErrorLevel, parseLevel("nope", logrus.ErrorLevel))
}

func TestNewCLI_QuietByDefault(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer

	l := NewCLI(&buf, false)
	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
