package config

// This file implements CLI flag parsing on top of cobra/pflag.
// Flags are grouped into inputs, encoding, overlay, behavior, and display.
// Values from --config are applied only to flags the user did not set.

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrExitEarly is returned by ParseFlags after --help or --version has been
// printed. Callers should exit successfully without doing any work.
var ErrExitEarly = errors.New("exit requested")

// ParseFlags parses args (without the program name) into cfg, then merges the
// config file if one was given. On --help or --version it prints to out and
// returns ErrExitEarly.
func ParseFlags(cfg *Config, args []string, version string, out io.Writer) error {
	var noColor, forceColor, ran bool

	cmd := &cobra.Command{
		Use:   "slidereel -i IMAGE... -a AUDIO... -o OUTPUT -f FONT [-t TEXT]",
		Short: "Create a video slideshow with audio and centered text using FFmpeg",
		Long: "Slidereel shows each image for the duration of its paired audio clip, " +
			"concatenates all audio in order, and draws the given text centered over the whole video.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ran = true
			if noColor {
				cfg.ColorMode = ColorNever
			} else if forceColor {
				cfg.ColorMode = ColorAlways
			}
			return applyConfigFile(cmd.Flags(), cfg)
		},
	}
	cmd.SetVersionTemplate("slidereel v{{.Version}}\n")
	cmd.SetOut(out)
	cmd.SetErr(out)

	fs := cmd.Flags()
	fs.SortFlags = false
	defineInputFlags(fs, cfg)
	defineEncodingFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &noColor, &forceColor)

	cmd.SetArgs(ExpandVariadic(args))
	if err := cmd.Execute(); err != nil {
		return err
	}
	if !ran {
		return ErrExitEarly
	}
	return nil
}

// defineInputFlags registers -i/--images, -a/--audio, -o/--output, -f/--font, -t/--text.
// StringArray keeps commas inside paths intact.
func defineInputFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringArrayVarP(&cfg.ImagePaths, "images", "i", nil, "Input image file paths, in display order")
	fs.StringArrayVarP(&cfg.AudioPaths, "audio", "a", nil, "Input audio file paths, paired positionally with images")
	fs.StringVarP(&cfg.OutputPath, "output", "o", "", "Output video file path")
	fs.StringVarP(&cfg.FontPath, "font", "f", "", "Path to a TrueType font (.ttf) for the text overlay")
	fs.StringVarP(&cfg.Text, "text", "t", cfg.Text, "Text drawn at the center of the video")
}

// defineEncodingFlags registers codec, quality, and overlay styling overrides.
func defineEncodingFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.VideoCodec, "video-codec", cfg.VideoCodec, "Video encoder")
	fs.StringVarP(&cfg.Preset, "preset", "p", cfg.Preset, "Encoder preset (e.g. slow, medium)")
	fs.IntVarP(&cfg.CRF, "crf", "q", cfg.CRF, "Constant rate factor, 0-51 (lower is better)")
	fs.StringVar(&cfg.AudioCodec, "audio-codec", cfg.AudioCodec, "Audio encoder")
	fs.StringVar(&cfg.AudioBitrate, "audio-bitrate", cfg.AudioBitrate, "Audio bitrate (e.g. 128k)")
	fs.IntVar(&cfg.FontSize, "font-size", cfg.FontSize, "Overlay font size in pixels")
	fs.StringVar(&cfg.FontColor, "font-color", cfg.FontColor, "Overlay font color (ffmpeg color syntax)")
	fs.StringVar(&cfg.FFmpegBin, "ffmpeg", cfg.FFmpegBin, "ffmpeg binary name or path")
	fs.StringVar(&cfg.FFprobeBin, "ffprobe", cfg.FFprobeBin, "ffprobe binary name or path")
}

// defineBehaviorFlags registers --dry-run, --preview, --check, --config.
func defineBehaviorFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Probe and print the ffmpeg command without encoding")
	fs.StringVar(&cfg.PreviewPath, "preview", "", "Write a PNG preview of the first slide with the overlay")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Run system diagnostics and exit")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML config file with default settings")
}

// defineDisplayFlags registers --color, --no-color, -v/--verbose, -l/--log, -V/--version.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, noColor, forceColor *bool) {
	fs.BoolVar(forceColor, "color", false, "Force colored logs")
	fs.BoolVar(noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output (stream ffmpeg progress)")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	fs.BoolP("version", "V", false, "Print version and exit")
}

// variadicFlags are the flags that accept one or more values after a single
// occurrence, e.g. "-i a.jpg b.jpg".
var variadicFlags = map[string]bool{
	"-i": true, "--images": true,
	"-a": true, "--audio": true,
}

// ExpandVariadic rewrites "-i a b -a c d" into "-i a -i b -a c -a d" so that
// pflag's repeated-flag arrays accept the multi-value form. Tokens after "--"
// are left alone.
func ExpandVariadic(args []string) []string {
	out := make([]string, 0, len(args))
	current := ""  // active variadic flag
	first := false // next token is the value consumed by the flag itself
	for i, arg := range args {
		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case variadicFlags[arg]:
			current, first = arg, true
		case strings.HasPrefix(arg, "-") && arg != "-":
			current, first = "", false
		case current != "":
			if !first {
				out = append(out, current)
			}
			first = false
		}
		out = append(out, arg)
	}
	return out
}

// applyConfigFile merges cfg.ConfigFile into cfg for every flag that was not
// set on the command line.
func applyConfigFile(fs *pflag.FlagSet, cfg *Config) error {
	if cfg.ConfigFile == "" {
		return nil
	}
	f, err := LoadFile(cfg.ConfigFile)
	if err != nil {
		return err
	}

	setString := func(name string, dst *string, v string) {
		if v != "" && !fs.Changed(name) {
			*dst = v
		}
	}
	setInt := func(name string, dst *int, v *int) {
		if v != nil && !fs.Changed(name) {
			*dst = *v
		}
	}

	setString("ffmpeg", &cfg.FFmpegBin, f.Tools.FFmpeg)
	setString("ffprobe", &cfg.FFprobeBin, f.Tools.FFprobe)
	setString("video-codec", &cfg.VideoCodec, f.Encode.VideoCodec)
	setString("preset", &cfg.Preset, f.Encode.Preset)
	setInt("crf", &cfg.CRF, f.Encode.CRF)
	setString("audio-codec", &cfg.AudioCodec, f.Encode.AudioCodec)
	setString("audio-bitrate", &cfg.AudioBitrate, f.Encode.AudioBitrate)
	setString("font", &cfg.FontPath, f.Overlay.Font)
	setString("text", &cfg.Text, f.Overlay.Text)
	setInt("font-size", &cfg.FontSize, f.Overlay.FontSize)
	setString("font-color", &cfg.FontColor, f.Overlay.FontColor)
	setString("log", &cfg.LogFile, f.Log.File)

	if f.Log.Color != "" && !fs.Changed("color") && !fs.Changed("no-color") {
		mode := ColorMode(strings.ToLower(f.Log.Color))
		switch mode {
		case ColorAuto, ColorAlways, ColorNever:
			cfg.ColorMode = mode
		default:
			return fmt.Errorf("config file %s: invalid log.color %q (use 'auto', 'always' or 'never')", cfg.ConfigFile, f.Log.Color)
		}
	}
	if f.Log.Verbose != nil && !fs.Changed("verbose") {
		cfg.Verbose = *f.Log.Verbose
	}
	return nil
}
