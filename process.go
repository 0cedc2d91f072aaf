// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
)

// runInPTY runs command through sh in a pseudo-terminal, copying its
// output to out. SIGINT and SIGTERM are forwarded to the command's
// process group while it runs.
func runInPTY(command string, out io.Writer) error {
	cmd := exec.Command("sh", "-c", command)

	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start PTY: %v", err)
	}
	defer ptyFile.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigChan)
		close(sigChan)
	}()
	go forwardSignals(cmd, sigChan)

	copied := make(chan struct{})
	go func() {
		_, _ = io.Copy(out, ptyFile)
		close(copied)
	}()

	waitErr := cmd.Wait()
	// closing the pty ends the copy once the child's output is drained
	_ = ptyFile.Close()
	<-copied

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return fmt.Errorf("command exited with status %d", exitErr.ExitCode())
	}
	return waitErr
}

// pty.Start puts the child in its own session, so its pid is also its
// process group id.
func forwardSignals(cmd *exec.Cmd, sigChan <-chan os.Signal) {
	for sig := range sigChan {
		if cmd.Process == nil {
			continue
		}
		err := syscall.Kill(-cmd.Process.Pid, sig.(syscall.Signal))
		if err != nil && err != syscall.ESRCH && err != syscall.EPERM {
			fmt.Fprintf(os.Stderr, "failed to forward signal %v: %v\n", sig, err)
		}
	}
}
