package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/utils"
)

func writeJCBlockDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range map[string]string{
		constants.DefaultCallLogFile:     "--DATE = 011916--TIME = 1600--NMBR = 8005551212--NAME = PIZZA PALACE--\n",
		constants.DefaultSafeListFile:    "5551234567?        ++++++        Mom\n",
		constants.DefaultBlockedListFile: "",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "missing.yaml"), "--dir", dir}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")

	require.NoError(t, err)
	assert.Contains(t, out, "Version: dev")
}

func TestClassifyCommand(t *testing.T) {
	dir := writeJCBlockDir(t)

	out, err := run(t, dir, "classify", "blocked", "8005551212")
	require.NoError(t, err)

	var resp map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "blocked", resp["status"])

	blocked, err := os.ReadFile(filepath.Join(dir, constants.DefaultBlockedListFile))
	require.NoError(t, err)
	assert.Contains(t, string(blocked), "8005551212?")

	out, err = run(t, dir, "list", "blocked")
	require.NoError(t, err)
	assert.Contains(t, out, "PIZZA PALACE")
}

func TestCallerCommand(t *testing.T) {
	dir := writeJCBlockDir(t)

	out, err := run(t, dir, "caller", "8005551212")
	require.NoError(t, err)
	assert.Contains(t, out, `"count": 1`)

	_, err = run(t, dir, "caller", "12")
	assert.Equal(t, http.StatusBadRequest, utils.StatusCode(err))
}

func TestRenameAndDeleteCommands(t *testing.T) {
	dir := writeJCBlockDir(t)

	_, err := run(t, dir, "rename", "5551234567", "Mum")
	require.NoError(t, err)

	out, err := run(t, dir, "caller", "5551234567")
	require.NoError(t, err)
	assert.Contains(t, out, "Mum")

	_, err = run(t, dir, "delete", "8005551212")
	assert.Error(t, err)

	out, err = run(t, dir, "delete", "5551234567")
	require.NoError(t, err)
	assert.Contains(t, out, `"deleted": true`)
}

func TestCallsCommand(t *testing.T) {
	dir := writeJCBlockDir(t)

	out, err := run(t, dir, "calls", "0", "5")
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 1`)

	_, err = run(t, dir, "calls", "x")
	assert.Error(t, err)
}

func TestPollCommand(t *testing.T) {
	out, err := run(t, writeJCBlockDir(t), "poll")

	require.NoError(t, err)
	assert.Contains(t, out, "callerid")
}

func TestLogLevelFlag(t *testing.T) {
	dir := writeJCBlockDir(t)

	_, err := run(t, dir, "--log-level", "loud", "poll")
	assert.ErrorContains(t, err, "invalid log level")

	_, err = run(t, dir, "--log-level", "warn", "poll")
	assert.NoError(t, err)
	assert.Equal(t, "warn", utils.GetLogLevel())
}
