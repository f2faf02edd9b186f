// Copyright 2025 Alaska Satellite Facility
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rtc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/asfdaac/s1tbx-rtc/internal/log"
)

// Runner executes one external command. Implementations decide the transport
// (subprocess, container, remote); the pipeline only depends on this
// interface so tests can substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// CommandError reports an external command that exited non-zero. The whole
// run terminates with Code as its exit status.
type CommandError struct {
	Name string
	Args []string
	Code int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s exited with status %d", e.Name, strings.Join(e.Args, " "), e.Code)
}

// ExitCode maps an error to the process exit status: the failing command's
// own status when the cause is a CommandError, 1 otherwise, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return 1
}

// ExecRunner runs commands as local subprocesses in a fixed working
// directory, with output passed through to the parent's streams.
type ExecRunner struct {
	Dir string
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	log.Debug("exec: %s %s", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return &CommandError{Name: name, Args: args, Code: exit.ExitCode()}
	}
	return err
}
