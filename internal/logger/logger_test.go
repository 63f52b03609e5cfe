package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogrus(t *testing.T) {
	t.Helper()
	out, level, formatter := logrus.StandardLogger().Out, logrus.GetLevel(), logrus.StandardLogger().Formatter
	t.Cleanup(func() {
		logrus.SetOutput(out)
		logrus.SetLevel(level)
		logrus.SetFormatter(formatter)
	})
}

func TestSetupWritesToFile(t *testing.T) {
	restoreLogrus(t)
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	out, err := Setup(Options{File: path, Level: "info", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, out)

	logrus.WithField("stop_id", 7).Info("stop created")
	logrus.Debug("hidden at info level")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"stop_id":7`)
	assert.Contains(t, string(data), `"msg":"stop created"`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	restoreLogrus(t)

	_, err := Setup(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestGormLoggerReportsSlowQueries(t *testing.T) {
	restoreLogrus(t)
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	logrus.SetLevel(logrus.InfoLevel)

	l := GormLogger(10 * time.Millisecond)
	begin := time.Now().Add(-time.Second)
	l.Trace(context.Background(), begin, func() (string, int64) { return "SELECT * FROM stops", 3 }, nil)

	assert.Contains(t, buf.String(), "SLOW SQL")
	assert.Contains(t, buf.String(), "SELECT * FROM stops")
}
