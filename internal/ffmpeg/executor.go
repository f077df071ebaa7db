package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Result holds the captured output of a single tool invocation.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Runner runs an external tool to completion. Implementations return a
// *ToolError when the tool is missing or exits non-zero.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (Result, error)
}

// ExecRunner runs tools as child processes. The call blocks until the child
// exits or ctx is cancelled, in which case the child is killed.
type ExecRunner struct {
	// Tee, when set, receives the child's stderr in real time in addition
	// to the captured copy (used for --verbose progress).
	Tee io.Writer
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args []string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if r.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderr, r.Tee)
	} else {
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		return res, newToolError(name, args, res, err)
	}
	return res, nil
}
