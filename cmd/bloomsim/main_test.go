package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bloomsim/internal/config"
	"bloomsim/internal/hashing"
)

func quietConfig() *config.Config {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Presentation.ShowAfterCommand = false
	return cfg
}

func TestDemoScript(t *testing.T) {
	app, err := NewApp(quietConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, app.RunScript(context.Background(), strings.NewReader(demoScript), &out))

	got := out.String()
	tp := strings.Index(got, "outcome: TruePositive")
	fp := strings.Index(got, "outcome: FalsePositive")
	tn := strings.Index(got, "outcome: TrueNegative")
	require.True(t, tp >= 0 && fp > tp && tn > fp, got)
}

func TestRunShellPrintsBanner(t *testing.T) {
	cfg := quietConfig()
	cfg.Presentation.HighlightDelayMS = 0
	app, err := NewApp(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, app.RunShell(context.Background(), strings.NewReader("insert cat\nquit\n"), &out))
	require.Contains(t, out.String(), "Type help for commands.")
	require.Contains(t, out.String(), "bloom> ")
	require.Contains(t, out.String(), `inserted "cat"`)
}

func TestRunHash(t *testing.T) {
	cfg := quietConfig()
	cfg.Engine.HashFunctions = []string{hashing.NameLength, hashing.NameCharSum, hashing.NameCharAvg}
	app, err := NewApp(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, app.RunHash(&out, "AAB"))
	require.Regexp(t, `length\s+3`, out.String())
	require.Regexp(t, `char-sum\s+2`, out.String())
	require.Regexp(t, `char-avg\s+7`, out.String())

	require.Error(t, app.RunHash(&out, "   "))
}

func TestNewAppRejectsBadConfig(t *testing.T) {
	cfg := quietConfig()
	cfg.Engine.HashFunctions = []string{"crc32"}
	_, err := NewApp(cfg)
	require.ErrorIs(t, err, hashing.ErrUnknownFunction)
}
