package ffmpeg

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoConcat(t *testing.T) {
	assert.Equal(t, "[0:v]concat=n=1:v=1:a=0[v_slideshow]", VideoConcat(1))
	assert.Equal(t, "[0:v][1:v][2:v]concat=n=3:v=1:a=0[v_slideshow]", VideoConcat(3))
}

func TestAudioConcat(t *testing.T) {
	assert.Equal(t, "[1:a]concat=n=1:v=0:a=1[a_combined]", AudioConcat(1, 1))
	assert.Equal(t, "[3:a][4:a][5:a]concat=n=3:v=0:a=1[a_combined]", AudioConcat(3, 3))
}

func TestDrawText(t *testing.T) {
	got := DrawText(Overlay{Text: "Hi:there", FontPath: "/fonts/Sans.ttf", FontSize: 48, FontColor: "white"})
	want := `[v_slideshow]drawtext=text='Hi\:there':fontfile='/fonts/Sans.ttf':fontsize=48:` +
		`fontcolor=white:x=(w-text_w)/2:y=(h-text_h)/2[v_text]`
	assert.Equal(t, want, got)
}

func TestMerge(t *testing.T) {
	assert.Equal(t, "[v_text][a_combined]concat=n=1:v=1:a=1[v_out][a_out]", Merge())
}

func TestBuildFilterGraph_ClauseOrder(t *testing.T) {
	g := BuildFilterGraph(2, Overlay{Text: "x", FontPath: "f.ttf", FontSize: 48, FontColor: "white"})
	require.Len(t, g.Clauses, 4)

	s := g.String()
	iv := strings.Index(s, "concat=n=2:v=1:a=0")
	ia := strings.Index(s, "concat=n=2:v=0:a=1")
	it := strings.Index(s, "drawtext=")
	im := strings.Index(s, "concat=n=1:v=1:a=1")
	assert.True(t, iv < ia && ia < it && it < im, "clauses out of order: %s", s)

	assert.Equal(t, 3, strings.Count(s, "; "))
	assert.False(t, strings.HasSuffix(s, ";"))
	assert.False(t, strings.HasSuffix(s, "; "))
}

// For N pairs the video concat references exactly 0..N-1 and the audio concat
// exactly N..2N-1, in order.
func TestBuildFilterGraph_IndexRanges(t *testing.T) {
	for n := 1; n <= 8; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			g := BuildFilterGraph(n, Overlay{FontSize: 48, FontColor: "white"})

			var wantV, wantA strings.Builder
			for i := 0; i < n; i++ {
				fmt.Fprintf(&wantV, "[%d:v]", i)
				fmt.Fprintf(&wantA, "[%d:a]", n+i)
			}
			assert.True(t, strings.HasPrefix(g.Clauses[0], wantV.String()+"concat="), g.Clauses[0])
			assert.True(t, strings.HasPrefix(g.Clauses[1], wantA.String()+"concat="), g.Clauses[1])
			assert.Equal(t, n, strings.Count(g.Clauses[0], ":v]"))
			assert.Equal(t, n, strings.Count(g.Clauses[1], ":a]"))
		})
	}
}
