// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, ffprobe, the configured
// encoders, and the drawtext filter.
package check

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/slidereel/internal/config"
	"github.com/backmassage/slidereel/internal/ffmpeg"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// RunCheck runs the interactive --check flow: it reports the ffmpeg and
// ffprobe versions, test-encodes with the configured video and audio codecs,
// and looks for the drawtext filter. Every check runs even after a failure;
// the result reports whether all of them passed.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger, runner ffmpeg.Runner) bool {
	log.Info("=== System Check ===")

	ok := checkVersion(ctx, runner, cfg.FFmpegBin, log)
	ok = checkVersion(ctx, runner, cfg.FFprobeBin, log) && ok
	if !ok {
		// Nothing below can run without ffmpeg.
		return false
	}
	ok = checkVideoEncoder(ctx, runner, cfg, log) && ok
	ok = checkAudioEncoder(ctx, runner, cfg, log) && ok
	ok = checkDrawtext(ctx, runner, cfg.FFmpegBin, log) && ok
	return ok
}

// checkVersion verifies bin runs and logs the first line of -version.
func checkVersion(ctx context.Context, runner ffmpeg.Runner, bin string, log Logger) bool {
	res, err := runner.Run(ctx, bin, []string{"-version"})
	if err != nil {
		if errors.Is(err, ffmpeg.ErrToolNotFound) {
			log.Error("%s not found", bin)
		} else {
			log.Error("%s found but -version failed: %v", bin, err)
		}
		return false
	}
	firstLine := strings.TrimSpace(string(res.Stdout))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", bin, firstLine)
	return true
}

// checkVideoEncoder runs a minimal encode with the configured video codec.
func checkVideoEncoder(ctx context.Context, runner ffmpeg.Runner, cfg *config.Config, log Logger) bool {
	log.Info("Testing %s...", cfg.VideoCodec)
	if _, err := runner.Run(ctx, cfg.FFmpegBin, VideoTestArgs(cfg.VideoCodec)); err != nil {
		log.Error("%s test encode failed", cfg.VideoCodec)
		log.Debug("%v", err)
		return false
	}
	log.Success("%s works", cfg.VideoCodec)
	return true
}

// checkAudioEncoder runs a minimal encode with the configured audio codec.
func checkAudioEncoder(ctx context.Context, runner ffmpeg.Runner, cfg *config.Config, log Logger) bool {
	log.Info("Testing %s encoder...", cfg.AudioCodec)
	if _, err := runner.Run(ctx, cfg.FFmpegBin, AudioTestArgs(cfg.AudioCodec)); err != nil {
		log.Error("%s encoder test failed", cfg.AudioCodec)
		log.Debug("%v", err)
		return false
	}
	log.Success("%s encoder works", cfg.AudioCodec)
	return true
}

// checkDrawtext looks for drawtext in the ffmpeg filter list.
func checkDrawtext(ctx context.Context, runner ffmpeg.Runner, bin string, log Logger) bool {
	res, err := runner.Run(ctx, bin, []string{"-hide_banner", "-filters"})
	if err != nil {
		log.Warn("Could not list filters: %v", err)
		return false
	}
	if !HasFilter(string(res.Stdout), "drawtext") {
		log.Error("drawtext filter missing (ffmpeg was built without libfreetype)")
		return false
	}
	log.Success("drawtext filter available")
	return true
}

// CheckDeps is the pre-pipeline validation: it verifies that the ffmpeg and
// ffprobe binaries can be found without starting either of them. A dry run
// never starts ffmpeg, so only ffprobe is required then. A missing binary is
// reported as an *ffmpeg.ToolError wrapping ffmpeg.ErrToolNotFound.
func CheckDeps(cfg *config.Config) error {
	bins := []string{cfg.FFprobeBin}
	if !cfg.DryRun {
		bins = append(bins, cfg.FFmpegBin)
	}
	for _, bin := range bins {
		if _, err := exec.LookPath(bin); err != nil {
			return ffmpeg.NotFound(bin, err)
		}
	}
	return nil
}

// HasFilter reports whether the output of `ffmpeg -filters` lists name.
// Filter lines look like " T.C drawtext  V->V  Draw text on top of ...".
func HasFilter(listing, name string) bool {
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}

// VideoTestArgs returns the ffmpeg arguments for a minimal test encode with
// the given video codec.
func VideoTestArgs(codec string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", codec,
		"-f", "null", "-",
	}
}

// AudioTestArgs returns the ffmpeg arguments for a minimal test encode with
// the given audio codec.
func AudioTestArgs(codec string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", codec,
		"-f", "null", "-",
	}
}
