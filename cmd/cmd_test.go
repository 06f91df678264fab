// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/shx/cmd/cmdflags"
	"github.com/matt-FFFFFF/shx/cmd/testconfig"
	"github.com/matt-FFFFFF/shx/internal/color"
	"github.com/matt-FFFFFF/shx/internal/procrunner"
	"github.com/matt-FFFFFF/shx/internal/taskrunner"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.SetEnabled(false)
	os.Exit(m.Run())
}

func runShx(t *testing.T, argv ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	p := New("test")
	p.Writer = buf
	p.ErrWriter = buf

	err := p.Run(context.Background(), append([]string{Name}, argv...))

	return buf.String(), err
}

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

func TestNew_Tasks(t *testing.T) {
	assert.Equal(t, []string{"exec", "sh", "run", "test-config"}, New("test").Tasks())
}

func TestRun_NoTask(t *testing.T) {
	_, err := runShx(t)
	require.NoError(t, err)
}

func TestSh_Serial(t *testing.T) {
	skipOnWindows(t)

	out, err := runShx(t, "sh", "-c", "1", "--stdout", "--success", "echo a", "echo b")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ sh")
	assert.Contains(t, out, "  ✓ echo a")
	assert.Contains(t, out, "  ✓ echo b")
	assert.Less(t, bytes.Index([]byte(out), []byte("echo a")), bytes.Index([]byte(out), []byte("echo b")))
}

func TestSh_Failure(t *testing.T) {
	skipOnWindows(t)

	out, err := runShx(t, "sh", "exit 3", "echo nah")
	require.Error(t, err)
	require.ErrorIs(t, err, cmdflags.ErrBatchFailed)

	var taskErr *taskrunner.TaskError

	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "sh", taskErr.Task)
	assert.Equal(t, []string{"exit 3", "echo nah"}, taskErr.Positional)

	var execErr *procrunner.ExecError

	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Equal(t, "exit 3", execErr.Command)
	assert.Contains(t, out, "✗ exit 3 (exit code: 3)")
}

func TestExec_Env(t *testing.T) {
	skipOnWindows(t)

	out, err := runShx(t, "exec", "--shell", "-e", "SHX_CMD_TEST=yes", "--stdout", "--success", "echo $SHX_CMD_TEST")
	require.NoError(t, err)
	assert.Contains(t, out, "yes")
}

func TestExec_HelpDescribesDirectSplitting(t *testing.T) {
	out, err := runShx(t, "exec", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "quotes are passed through literally")
}

func TestExec_InvalidEnv(t *testing.T) {
	_, err := runShx(t, "exec", "-e", "novalue", "true")
	require.ErrorIs(t, err, cmdflags.ErrInvalidEnv)
}

func TestExec_InvalidStdio(t *testing.T) {
	_, err := runShx(t, "exec", "--stdio", "tty", "true")
	require.ErrorIs(t, err, procrunner.ErrUnknownStdio)
}

func TestRun_BatchFile(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.toml")

	require.NoError(t, os.WriteFile(good, []byte("name: good\nshell: true\ncommands:\n  - pwd\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("name = \"bad\"\nshell = true\ncommands = [\"exit 4\"]\n"), 0o644))

	out, err := runShx(t, "run", "--stdout", "--success", "-f", good, bad)
	require.Error(t, err)

	var execErr *procrunner.ExecError

	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 4, execErr.ExitCode)
	assert.Contains(t, out, "✓ good")
	assert.Contains(t, out, "✗ bad")

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, out, resolved, "relative cwd defaults to the batch file directory")
}

func TestRun_NoFiles(t *testing.T) {
	_, err := runShx(t, "run")
	require.Error(t, err)
	assert.ErrorContains(t, err, "at least one batch file")
}

func TestTestConfig_Stdout(t *testing.T) {
	out, err := runShx(t, "test-config", "--name", "lib", "--layout", "mono", "--cwd", "/work")
	require.NoError(t, err)

	var got map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "lib", got["displayName"])
	assert.Equal(t, "/work", got["rootDir"])
	assert.Equal(t, []any{"<rootDir>/packages/*/src/**/*.test.{js,ts}"}, got["testMatch"])
}

func TestTestConfig_OutFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	stubs := gostub.Stub(&testconfig.FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	_, err := runShx(t, "test-config", "--cwd", "/work/app", "--format", "yaml", "--target", "common", "-o", "/out/jest.yaml")
	require.NoError(t, err)

	b, err := afero.ReadFile(fs, "/out/jest.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(b), "displayName: app")
	assert.Contains(t, string(b), "outputDir: dist/common")
}

func TestTestConfig_Invalid(t *testing.T) {
	_, err := runShx(t, "test-config", "--layout", "flat")
	require.Error(t, err)

	var taskErr *taskrunner.TaskError

	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "test-config", taskErr.Task)
}
