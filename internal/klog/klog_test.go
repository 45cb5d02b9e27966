package klog

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)
	fn()
	return buf.String()
}

func TestLevelGating(t *testing.T) {
	SetLevel(LevelWarn)
	defer SetLevel(LevelInfo)

	out := captureLog(t, func() {
		Infof("pkg", "hidden %d", 1)
		Warnf("pkg", "shown %d", 2)
	})
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown 2")
}

func TestWithFieldsPrefixesMessage(t *testing.T) {
	SetLevel(LevelDebug)
	defer SetLevel(LevelInfo)

	out := captureLog(t, func() {
		WithFields("scheduler", Fields{"frame": 3}).Infof("ran")
	})
	require.Contains(t, out, "scheduler:")
	require.Contains(t, out, "frame=3")
	require.Contains(t, out, "ran")
}
