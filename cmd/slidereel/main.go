// Command slidereel turns ordered images and matching audio clips into a
// single slideshow video with centered overlay text.
//
// It parses flags, validates the configuration, probes every audio clip with
// ffprobe, and hands one generated command line to ffmpeg. With --check it
// runs system diagnostics instead.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/slidereel/internal/check"
	"github.com/backmassage/slidereel/internal/config"
	"github.com/backmassage/slidereel/internal/display"
	"github.com/backmassage/slidereel/internal/ffmpeg"
	"github.com/backmassage/slidereel/internal/logging"
	"github.com/backmassage/slidereel/internal/pipeline"
	"github.com/backmassage/slidereel/internal/probe"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Phase 1: Bootstrap. Parse and validate first, but hold the error until
	// the logger exists so report renders it like every other failure.
	cfg := config.DefaultConfig()
	err := config.ParseFlags(&cfg, args, version, stdout)
	if errors.Is(err, config.ErrExitEarly) {
		return 0
	}
	if err == nil {
		err = cfg.Validate()
	}

	log, logErr := logging.New(&cfg, stdout, stderr)
	if logErr != nil {
		fmt.Fprintf(stderr, "slidereel: %v\n", logErr)
		return 1
	}
	defer log.Close()

	if err != nil {
		return report(stderr, log, err)
	}

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner(stdout)
	log.Debug("slidereel v%s (%s), run %s", version, commit, log.RunID())

	// Phase 3: Signal handling. SIGINT/SIGTERM cancel the context, which
	// kills whichever child process is running.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			log.Warn("Received interrupt, stopping…")
			cancel()
		}
	}()

	runner := ffmpeg.ExecRunner{}
	if cfg.Verbose {
		runner.Tee = stderr
	}

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, &cfg, log, runner) {
			return 1
		}
		return 0
	}

	// Fail fast if ffmpeg or ffprobe cannot be found.
	if err := check.CheckDeps(&cfg); err != nil {
		return report(stderr, log, err)
	}

	if cfg.DryRun {
		log.Warn("DRY RUN: nothing will be encoded")
	}

	// Phase 4: Run pipeline (probe → build → encode).
	if _, err := pipeline.Run(ctx, &cfg, log, runner); err != nil {
		return report(stderr, log, err)
	}
	return 0
}

// report is the single place a failed run is described to the user. It
// returns the process exit status.
func report(w io.Writer, log *logging.Logger, err error) int {
	var (
		ve *config.ValidationError
		te *ffmpeg.ToolError
		pe *probe.ParseError
	)
	switch {
	case errors.Is(err, context.Canceled):
		log.Warn("Interrupted")

	case errors.As(err, &ve):
		log.Error("%v", ve)

	case errors.As(err, &te) && te.Missing():
		log.Error("%s not found. Please ensure FFmpeg and FFprobe are installed and in your PATH.", te.Tool)

	case errors.As(err, &te):
		log.Error("%v", te)
		if te.Stdout != "" {
			fmt.Fprintf(w, "%s stdout:\n%s\n", te.Tool, te.Stdout)
		}
		if te.Stderr != "" {
			fmt.Fprintf(w, "%s stderr:\n%s\n", te.Tool, te.Stderr)
		}
		if hint := ffmpeg.Hint(te.Stderr); hint != "" {
			log.Error("Hint: %s", hint)
		}

	case errors.As(err, &pe):
		log.Error("%v", pe)

	default:
		log.Error("%v", err)
	}
	return 1
}
