package ffmpeg

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"regexp"
)

// ErrToolNotFound marks a ToolError whose executable could not be started
// because it does not exist.
var ErrToolNotFound = errors.New("executable not found")

// ToolError describes a failed external tool invocation: either the binary
// is missing (errors.Is(err, ErrToolNotFound)) or it exited non-zero.
type ToolError struct {
	Tool     string // Base name of the executable, e.g. "ffprobe".
	Args     []string
	ExitCode int // -1 when the process never started or was killed.
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	if e.Missing() {
		return fmt.Sprintf("%s not found", e.Tool)
	}
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Missing reports whether the tool binary could not be found.
func (e *ToolError) Missing() bool { return errors.Is(e.Err, ErrToolNotFound) }

// NotFound returns the ToolError for a binary that could not be located,
// with cause being the lookup failure.
func NotFound(name string, cause error) *ToolError {
	return &ToolError{
		Tool:     filepath.Base(name),
		ExitCode: -1,
		Err:      fmt.Errorf("%w: %v", ErrToolNotFound, cause),
	}
}

func newToolError(name string, args []string, res Result, err error) *ToolError {
	te := &ToolError{
		Tool:     filepath.Base(name),
		Args:     args,
		ExitCode: -1,
		Stdout:   string(res.Stdout),
		Stderr:   string(res.Stderr),
		Err:      err,
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		te.Err = fmt.Errorf("%w: %v", ErrToolNotFound, err)
		return te
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		te.ExitCode = exitErr.ExitCode()
	}
	return te
}

// Pre-compiled regexes for classifying ffmpeg stderr output into known
// failure causes. Checked in order by [Hint]; the first match wins.
var (
	reMissingDrawtext = regexp.MustCompile(
		`No such filter: 'drawtext'|Filter not found.*drawtext`)

	reUnknownEncoder = regexp.MustCompile(
		`Unknown encoder '([^']+)'|Encoder \(codec [^)]*\) not found|Encoder not found`)

	reFontLoad = regexp.MustCompile(
		`(?i)Cannot find a valid font|Could not load font|Cannot load font|Could not load face`)

	reMissingInput = regexp.MustCompile(
		`(?m)^(.+): No such file or directory\s*$`)

	reBadInput = regexp.MustCompile(
		`(?m)^(.+): Invalid data found when processing input\s*$`)
)

// Hint inspects ffmpeg stderr and returns a one-line explanation of a known
// failure cause, or "" when nothing matches.
func Hint(stderr string) string {
	switch {
	case reMissingDrawtext.MatchString(stderr):
		return "this ffmpeg build has no drawtext filter (it needs libfreetype); install a full ffmpeg build"
	case reUnknownEncoder.MatchString(stderr):
		if m := reUnknownEncoder.FindStringSubmatch(stderr); len(m) > 1 && m[1] != "" {
			return fmt.Sprintf("encoder %q is not available in this ffmpeg build; pick another with --video-codec/--audio-codec", m[1])
		}
		return "a requested encoder is not available in this ffmpeg build"
	case reFontLoad.MatchString(stderr):
		return "ffmpeg could not load the font; check the --font path and file format"
	case reMissingInput.MatchString(stderr):
		m := reMissingInput.FindStringSubmatch(stderr)
		return fmt.Sprintf("input not found: %s", m[1])
	case reBadInput.MatchString(stderr):
		m := reBadInput.FindStringSubmatch(stderr)
		return fmt.Sprintf("input is not a readable media file: %s", m[1])
	}
	return ""
}
