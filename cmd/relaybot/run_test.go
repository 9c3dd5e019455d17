// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"relaybot/internal/config"
	"relaybot/internal/discovery"
	"relaybot/internal/issue"
)

func newRunTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	c.SetContext(context.Background())
	return c
}

func TestRunMissingPluginsDirExitCode(t *testing.T) {
	// No plugins/ under the working dir and no config file: discovery
	// fails on the default root.
	t.Chdir(t.TempDir())
	config.SetConfigDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	err := runRun(newRunTestCommand(t), nil)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runRun() = %v, want *ExitError", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("exit code = %d, want 2", exitErr.Code)
	}
	if !errors.Is(err, discovery.ErrBadRoot) {
		t.Error("error should wrap discovery.ErrBadRoot")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("error should carry actionable context")
	}
	if len(ae.Suggestions) == 0 {
		t.Error("actionable error should suggest a fix")
	}
}

func TestRunWrapsConsoleStartFailure(t *testing.T) {
	t.Chdir(t.TempDir())

	pluginsDir := filepath.Join(t.TempDir(), "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}

	// Occupy a port so the console cannot bind it.
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	cfgDir := t.TempDir()
	content := fmt.Sprintf(
		"[bot]\nplugins_dir = %q\n\n[console]\nenabled = true\nhost = \"127.0.0.1\"\nport = %d\n",
		pluginsDir, port)
	path := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	config.SetConfigDirOverride(cfgDir)
	t.Cleanup(config.Reset)

	err = runRun(newRunTestCommand(t), nil)

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("runRun() = %v, want *issue.ActionableError", err)
	}
	if ae.Operation != "start admin console" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "start admin console")
	}
}
