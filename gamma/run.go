// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gamma invokes the external radar-processing toolchain. Invocation is
// synchronous; a failing tool surfaces as a ProcessError and is never retried.
package gamma

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/venicegeo/bf-scene-id/util"
)

// Runner invokes an external processing tool with positional arguments.
type Runner interface {
	Run(tool string, args ...string) error
}

// ProcessError wraps a non-zero exit status from an external processing tool.
type ProcessError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v: %s", e.Tool, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// ExecRunner runs tools as external processes, resolving them against
// GAMMA_HOME when it is set.
type ExecRunner struct{}

// Run executes the tool and blocks until it exits.
func (ExecRunner) Run(tool string, args ...string) error {
	bin := tool
	if home := util.GetGammaHome(); home != "" {
		bin = filepath.Join(home, "bin", tool)
	}
	util.LogAudit(&util.BasicLogContext{}, util.LogAuditInput{
		Actor: "gamma/run", Action: tool, Actee: strings.Join(args, " "), Message: "Invoking processing tool", Severity: util.INFO,
	})
	command := exec.Command(bin, args...)
	var stderr bytes.Buffer
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		return &ProcessError{Tool: tool, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}
