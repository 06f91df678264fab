// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procrunner

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	goosWindows      = "windows"
	binSh            = "/bin/sh"
	cmdExe           = "cmd.exe"
	switchUnix       = "-c"
	switchWindows    = "/C"
	winSystemRootEnv = "SystemRoot"
	winSystemRoot    = `C:\Windows`
)

// shellArgv returns the interpreter and arguments that run command through the system shell.
func shellArgv(command string) (string, []string) {
	if runtime.GOOS != goosWindows {
		return binSh, []string{switchUnix, command}
	}

	root := os.Getenv(winSystemRootEnv)
	if root == "" {
		root = winSystemRoot
	}

	return filepath.Join(root, "System32", cmdExe), []string{switchWindows, command}
}
