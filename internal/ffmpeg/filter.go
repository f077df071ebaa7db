package ffmpeg

import (
	"fmt"
	"strings"
)

// Stream labels shared by the filter clauses and the output maps.
const (
	LabelSlideshow = "v_slideshow"
	LabelAudio     = "a_combined"
	LabelText      = "v_text"
	LabelVideoOut  = "v_out"
	LabelAudioOut  = "a_out"
)

// Overlay describes the centered text drawn over the whole video.
type Overlay struct {
	Text      string
	FontPath  string
	FontSize  int
	FontColor string
}

// FilterGraph is an ordered list of filter clauses for -filter_complex.
type FilterGraph struct {
	Clauses []string
}

// String joins the clauses with "; ". The last clause is left unterminated
// because ffmpeg rejects an empty trailing filter chain.
func (g FilterGraph) String() string {
	return strings.Join(g.Clauses, "; ")
}

// BuildFilterGraph returns the four clauses for n image/audio pairs: video
// concat, audio concat, text overlay, and merge, in that order.
func BuildFilterGraph(n int, o Overlay) FilterGraph {
	return FilterGraph{Clauses: []string{
		VideoConcat(n),
		AudioConcat(n, n),
		DrawText(o),
		Merge(),
	}}
}

// VideoConcat joins the video streams of inputs 0..n-1 into LabelSlideshow.
func VideoConcat(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[%d:v]", i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=1:a=0[%s]", n, LabelSlideshow)
	return b.String()
}

// AudioConcat joins the audio streams of inputs offset..offset+n-1 into
// LabelAudio.
func AudioConcat(offset, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[%d:a]", offset+i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=0:a=1[%s]", n, LabelAudio)
	return b.String()
}

// DrawText centers the overlay text on LabelSlideshow, producing LabelText.
func DrawText(o Overlay) string {
	return fmt.Sprintf(
		"[%s]drawtext=text='%s':fontfile='%s':fontsize=%d:fontcolor=%s:x=(w-text_w)/2:y=(h-text_h)/2[%s]",
		LabelSlideshow, EscapeText(o.Text), EscapeFontPath(o.FontPath), o.FontSize, o.FontColor, LabelText)
}

// Merge pairs the overlaid video with the concatenated audio as a single
// segment, producing LabelVideoOut and LabelAudioOut for the output maps.
// The encoder's -shortest flag bounds the result by the shorter stream.
func Merge() string {
	return fmt.Sprintf("[%s][%s]concat=n=1:v=1:a=1[%s][%s]",
		LabelText, LabelAudio, LabelVideoOut, LabelAudioOut)
}
