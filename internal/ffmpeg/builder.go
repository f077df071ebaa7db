package ffmpeg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/backmassage/slidereel/internal/config"
)

// Slide is one image shown for the duration of its paired audio clip.
type Slide struct {
	Image    string
	Audio    string
	Duration float64 // Seconds, from the audio clip.
}

// Input is one -i declaration together with the options that precede it.
type Input struct {
	Options []string
	Path    string
}

// EncodeRequest is the complete argument list for one slideshow encode.
// Inputs are ordered images first, then audio, so an input's position is its
// ffmpeg input index.
type EncodeRequest struct {
	Inputs        []Input
	Filter        FilterGraph
	Maps          []string
	OutputOptions []string
	Output        string
}

// BuildEncode constructs the encode request for slides using the encode
// settings and overlay styling in cfg.
func BuildEncode(cfg *config.Config, slides []Slide) (*EncodeRequest, error) {
	if len(slides) == 0 {
		return nil, config.ErrNoInputs
	}
	for i, s := range slides {
		if s.Duration < 0 || math.IsNaN(s.Duration) || math.IsInf(s.Duration, 0) {
			return nil, fmt.Errorf("slide %d (%s): invalid duration %v", i+1, s.Audio, s.Duration)
		}
	}

	req := &EncodeRequest{
		Inputs: make([]Input, 0, 2*len(slides)),
		Output: cfg.OutputPath,
	}

	// --- Image inputs: loop each still for exactly its audio duration ---
	for _, s := range slides {
		req.Inputs = append(req.Inputs, Input{
			Options: []string{"-loop", "1", "-t", FormatSeconds(s.Duration)},
			Path:    s.Image,
		})
	}

	// --- Audio inputs, same relative order ---
	for _, s := range slides {
		req.Inputs = append(req.Inputs, Input{Path: s.Audio})
	}

	// --- Filter graph and output maps ---
	req.Filter = BuildFilterGraph(len(slides), Overlay{
		Text:      cfg.Text,
		FontPath:  cfg.FontPath,
		FontSize:  cfg.FontSize,
		FontColor: cfg.FontColor,
	})
	req.Maps = []string{"[" + LabelVideoOut + "]", "[" + LabelAudioOut + "]"}

	// --- Encode parameters ---
	req.OutputOptions = []string{
		"-c:v", cfg.VideoCodec,
		"-preset", cfg.Preset,
		"-crf", strconv.Itoa(cfg.CRF),
		"-c:a", cfg.AudioCodec,
		"-b:a", cfg.AudioBitrate,
		"-shortest",
		"-y",
	}
	return req, nil
}

// Args returns the ffmpeg argument list, without the binary name.
func (r *EncodeRequest) Args() []string {
	args := make([]string, 0, 64)
	for _, in := range r.Inputs {
		args = append(args, in.Options...)
		args = append(args, "-i", in.Path)
	}
	args = append(args, "-filter_complex", r.Filter.String())
	for _, m := range r.Maps {
		args = append(args, "-map", m)
	}
	args = append(args, r.OutputOptions...)
	args = append(args, r.Output)
	return args
}

// TotalDuration sums the slide durations in seconds.
func TotalDuration(slides []Slide) float64 {
	var total float64
	for _, s := range slides {
		total += s.Duration
	}
	return total
}

// FormatSeconds renders a duration for the -t option in its shortest exact
// decimal form, always with a fractional part: 5 -> "5.0", 7.25 -> "7.25".
func FormatSeconds(secs float64) string {
	s := strconv.FormatFloat(secs, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
