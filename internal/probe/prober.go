package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/backmassage/slidereel/internal/ffmpeg"
)

// Sentinel causes carried by ParseError.
var (
	ErrNoDuration  = errors.New("no duration reported")
	ErrBadDuration = errors.New("invalid duration")
)

// ParseError reports ffprobe output that could not be turned into a
// duration for Path.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not read duration of %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Prober runs ffprobe through Runner.
type Prober struct {
	Bin    string // ffprobe executable name or path.
	Runner ffmpeg.Runner
}

// NewProber returns a Prober for bin. A nil runner uses ffmpeg.ExecRunner.
func NewProber(bin string, runner ffmpeg.Runner) *Prober {
	if runner == nil {
		runner = ffmpeg.ExecRunner{}
	}
	return &Prober{Bin: bin, Runner: runner}
}

// DurationArgs returns the ffprobe arguments that print only
// format.duration for path as JSON.
func DurationArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	}
}

// Duration returns the duration of the media file at path in seconds.
// Tool failures are returned unchanged; unusable output is a *ParseError.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	res, err := p.Runner.Run(ctx, p.Bin, DurationArgs(path))
	if err != nil {
		return 0, err
	}
	d, err := ParseDuration(res.Stdout)
	if err != nil {
		return 0, &ParseError{Path: path, Err: err}
	}
	return d, nil
}

// ParseDuration extracts format.duration from ffprobe JSON output.
// Exported for testing without a real ffprobe binary.
func ParseDuration(data []byte) (float64, error) {
	var raw probeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	if raw.Format == nil {
		return 0, ErrNoDuration
	}

	s := strings.TrimSpace(raw.Format.Duration)
	if s == "" || s == "N/A" {
		return 0, ErrNoDuration
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrBadDuration, s)
	}
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%w %q", ErrBadDuration, s)
	}
	return d, nil
}
