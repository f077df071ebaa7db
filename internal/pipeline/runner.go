package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/backmassage/slidereel/internal/config"
	"github.com/backmassage/slidereel/internal/display"
	"github.com/backmassage/slidereel/internal/ffmpeg"
	"github.com/backmassage/slidereel/internal/logging"
	"github.com/backmassage/slidereel/internal/overlay"
	"github.com/backmassage/slidereel/internal/probe"
)

// Run builds the slideshow described by cfg. Probes and the encode are
// executed through runner. On a pair-count problem nothing is spawned; on a
// probe failure the encoder is never started.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, runner ffmpeg.Runner) (RunStats, error) {
	stats := RunStats{DryRun: cfg.DryRun}

	// --- Validate ---
	if err := config.ValidatePairs(cfg.ImagePaths, cfg.AudioPaths); err != nil {
		return stats, &config.ValidationError{Err: err}
	}
	stats.Slides = len(cfg.ImagePaths)
	checkFont(cfg, log)

	// --- Probe ---
	slides, err := probeAll(ctx, cfg, log, probe.NewProber(cfg.FFprobeBin, runner))
	if err != nil {
		return stats, err
	}
	stats.TotalDuration = ffmpeg.TotalDuration(slides)

	// --- Build ---
	req, err := ffmpeg.BuildEncode(cfg, slides)
	if err != nil {
		return stats, err
	}
	log.Debug("Filter graph: %s", req.Filter)

	if cfg.PreviewPath != "" {
		if err := overlay.RenderPreview(cfg.ImagePaths[0], cfg.PreviewPath, overlayFor(cfg)); err != nil {
			return stats, fmt.Errorf("preview: %w", err)
		}
		log.Info("Preview saved to: %s", cfg.PreviewPath)
	}

	// --- Encode ---
	args := req.Args()
	log.Info("Executing FFmpeg command...")
	log.Info("%s", ffmpeg.QuoteCommand(append([]string{cfg.FFmpegBin}, args...)))

	if cfg.DryRun {
		log.Success("[DRY] Would encode %d %s to %s", stats.Slides, display.Plural(stats.Slides, "slide"), cfg.OutputPath)
		logSummary(log, &stats)
		return stats, nil
	}

	start := time.Now()
	if _, err := runner.Run(ctx, cfg.FFmpegBin, args); err != nil {
		if ctx.Err() != nil {
			// The child was killed; report the interrupt, not its exit status.
			return stats, ctx.Err()
		}
		return stats, err
	}
	stats.Elapsed = time.Since(start)
	if fi, err := os.Stat(cfg.OutputPath); err == nil {
		stats.OutputBytes = fi.Size()
	}

	log.Success("FFmpeg process finished successfully.")
	log.Info("Output saved to: %s", cfg.OutputPath)
	logSummary(log, &stats)
	return stats, nil
}

// probeAll reads every audio duration, one file at a time in input order.
func probeAll(ctx context.Context, cfg *config.Config, log *logging.Logger, p *probe.Prober) ([]ffmpeg.Slide, error) {
	n := len(cfg.AudioPaths)
	slides := make([]ffmpeg.Slide, 0, n)

	log.Info("Getting audio durations using ffprobe...")
	for i, audio := range cfg.AudioPaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Info("  Processing audio file %d/%d: %s", i+1, n, audio)
		if tags, err := probe.ReadTags(audio); err == nil && tags.Label() != "" {
			log.Debug("    %s", tags.Label())
		}

		d, err := p.Duration(ctx, audio)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		log.Debug("    duration: %ss", ffmpeg.FormatSeconds(d))

		slides = append(slides, ffmpeg.Slide{Image: cfg.ImagePaths[i], Audio: audio, Duration: d})
	}
	log.Info("Audio durations obtained.")
	return slides, nil
}

// checkFont warns when the overlay font cannot be parsed locally. ffmpeg has
// the final say, so the run continues.
func checkFont(cfg *config.Config, log *logging.Logger) {
	if cfg.FontPath == "" {
		return
	}
	if err := overlay.ValidateFont(cfg.FontPath); err != nil {
		log.Warn("Font check: %v", err)
	}
}

func overlayFor(cfg *config.Config) ffmpeg.Overlay {
	return ffmpeg.Overlay{
		Text:      cfg.Text,
		FontPath:  cfg.FontPath,
		FontSize:  cfg.FontSize,
		FontColor: cfg.FontColor,
	}
}

// --- Logging helpers ---

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Summary report:")
	log.Info("  Slides: %d (average %s each)", stats.Slides, display.FormatSeconds(stats.AverageSlide()))
	log.Info("  Total duration: %s", display.FormatSeconds(stats.TotalDuration))

	if stats.DryRun {
		log.Info("  Output size: n/a (dry run)")
		return
	}
	log.Info("  Output size: %s", display.FormatBytes(stats.OutputBytes))
	log.Info("  Encode time: %s", stats.Elapsed.Round(time.Second))
}
