// Package config holds runtime configuration: defaults, CLI flag parsing, the
// optional YAML config file, and validation.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultText is the overlay text used when --text is not given.
const DefaultText = "Centered Text"

// Config holds all runtime settings. It is populated by [DefaultConfig], then
// by the config file and CLI flags in [ParseFlags], and finally checked by
// [Config.Validate].
type Config struct {
	// Slideshow inputs. ImagePaths[i] pairs with AudioPaths[i].
	ImagePaths []string
	AudioPaths []string
	OutputPath string
	FontPath   string
	Text       string // Default: "Centered Text".

	// External tools, resolved through PATH unless absolute.
	FFmpegBin  string // Default: "ffmpeg".
	FFprobeBin string // Default: "ffprobe".

	// Encode settings.
	VideoCodec   string // Default: "libx264".
	Preset       string // Default: "medium".
	CRF          int    // Default: 23.
	AudioCodec   string // Default: "aac".
	AudioBitrate string // Default: "128k".

	// Overlay styling.
	FontSize  int    // Default: 48.
	FontColor string // Default: "white".

	// Behavior flags.
	DryRun      bool   // Probe and print the command, skip the encode.
	PreviewPath string // Optional PNG preview of the first slide.
	CheckOnly   bool   // Run --check diagnostics and exit.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	ConfigFile string    // Optional YAML config file.
}

// DefaultConfig returns the stock settings: libx264/medium/CRF 23 video,
// 128k AAC audio, 48px white text.
func DefaultConfig() Config {
	return Config{
		Text:         DefaultText,
		FFmpegBin:    "ffmpeg",
		FFprobeBin:   "ffprobe",
		VideoCodec:   "libx264",
		Preset:       "medium",
		CRF:          23,
		AudioCodec:   "aac",
		AudioBitrate: "128k",
		FontSize:     48,
		FontColor:    "white",
		ColorMode:    ColorAuto,
	}
}

// ValidationError reports invalid settings or inputs. It is returned before
// any external process is spawned.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// Input validation failures, matched with errors.Is.
var (
	ErrCountMismatch = errors.New("the number of image files and audio files must be the same")
	ErrNoInputs      = errors.New("no input files provided")
)

// Validate checks every setting and collects all problems into a single
// *ValidationError. In CheckOnly mode the slideshow inputs are not required.
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		result = multierror.Append(result, fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode))
	}

	if c.CRF < 0 || c.CRF > 51 {
		result = multierror.Append(result, fmt.Errorf("crf must be between 0 and 51 (got %d)", c.CRF))
	}
	if c.FontSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("font size must be positive (got %d)", c.FontSize))
	}
	for _, f := range []struct{ name, value string }{
		{"video codec", c.VideoCodec},
		{"preset", c.Preset},
		{"audio codec", c.AudioCodec},
		{"font color", c.FontColor},
		{"ffmpeg binary", c.FFmpegBin},
		{"ffprobe binary", c.FFprobeBin},
	} {
		if strings.TrimSpace(f.value) == "" {
			result = multierror.Append(result, fmt.Errorf("%s must not be empty", f.name))
		}
	}

	bitrate, err := normalizeAudioBitrate(c.AudioBitrate)
	if err != nil {
		result = multierror.Append(result, err)
	} else {
		c.AudioBitrate = bitrate
	}

	if !c.CheckOnly {
		if c.OutputPath == "" {
			result = multierror.Append(result, errors.New("output path is required (-o/--output)"))
		}
		if c.FontPath == "" {
			result = multierror.Append(result, errors.New("font path is required (-f/--font)"))
		}
		if err := ValidatePairs(c.ImagePaths, c.AudioPaths); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		result.ErrorFormat = listFormat
		return &ValidationError{Err: result}
	}
	return nil
}

// ValidatePairs enforces the positional pairing contract: equal, non-zero
// lengths. A mismatch is reported before emptiness.
func ValidatePairs(images, audio []string) error {
	if len(images) != len(audio) {
		return fmt.Errorf("%w (%d images, %d audio)", ErrCountMismatch, len(images), len(audio))
	}
	if len(images) == 0 {
		return ErrNoInputs
	}
	return nil
}

// listFormat renders one problem per line; a single problem is printed bare.
func listFormat(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "  - " + err.Error()
	}
	return fmt.Sprintf("%d configuration problems:\n%s", len(errs), strings.Join(lines, "\n"))
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "128", "128k", "128K", "128kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 128k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}
